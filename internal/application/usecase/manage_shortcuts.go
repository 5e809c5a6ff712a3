package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/repository"
	"github.com/bnema/newtab/internal/domain/url"
	"github.com/bnema/newtab/internal/logging"
)

// ShortcutsStorageKey is the storage key of the serialized shortcut list.
const ShortcutsStorageKey = "betterfox-shortcuts"

const shortcutIDPrefix = "shortcut-"

// ManageShortcutsUseCase owns the shortcut list. The list is read from
// storage on first use and written back after every change; write failures
// are logged and the in-memory list is kept. Until a read succeeds, List
// reports an empty list and changes are refused, so a failed read never
// overwrites the stored list.
type ManageShortcutsUseCase struct {
	repo     repository.KeyValueRepository
	settings *SettingsStore
	now      func() time.Time

	mu        sync.Mutex
	shortcuts []entity.Shortcut
	loaded    bool
}

// NewManageShortcutsUseCase creates a new shortcut management use case.
func NewManageShortcutsUseCase(repo repository.KeyValueRepository, settings *SettingsStore) *ManageShortcutsUseCase {
	return &ManageShortcutsUseCase{
		repo:     repo,
		settings: settings,
		now:      time.Now,
	}
}

// AddShortcutInput contains parameters for adding a shortcut.
type AddShortcutInput struct {
	Name string
	URL  string
}

// UpdateShortcutInput contains parameters for editing a shortcut.
type UpdateShortcutInput struct {
	ID   string
	Name string
	URL  string
}

// List returns the shortcuts in display order.
func (uc *ManageShortcutsUseCase) List(ctx context.Context) []entity.Shortcut {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureLoaded(ctx); err != nil {
		return []entity.Shortcut{}
	}
	return slices.Clone(uc.shortcuts)
}

// Get returns the shortcut with the given id.
func (uc *ManageShortcutsUseCase) Get(ctx context.Context, id string) (*entity.Shortcut, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	i := uc.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrShortcutNotFound, id)
	}
	sc := uc.shortcuts[i]
	return &sc, nil
}

// Add appends a shortcut. Name and URL are required; the URL is stored
// normalized.
func (uc *ManageShortcutsUseCase) Add(ctx context.Context, input AddShortcutInput) (*entity.Shortcut, error) {
	log := logging.FromContext(ctx)

	name, rawURL, err := entity.ValidateShortcutInput(input.Name, input.URL)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	sc := entity.Shortcut{
		ID:   uc.nextID(),
		Name: name,
		URL:  url.Normalize(rawURL),
	}
	uc.shortcuts = append(uc.shortcuts, sc)
	uc.persist(ctx)

	log.Info().Str("id", sc.ID).Str("url", sc.URL).Msg("shortcut added")
	return &sc, nil
}

// Update edits a shortcut in place.
func (uc *ManageShortcutsUseCase) Update(ctx context.Context, input UpdateShortcutInput) (*entity.Shortcut, error) {
	log := logging.FromContext(ctx)

	name, rawURL, err := entity.ValidateShortcutInput(input.Name, input.URL)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	i := uc.indexOf(input.ID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrShortcutNotFound, input.ID)
	}
	uc.shortcuts[i].Name = name
	uc.shortcuts[i].URL = url.Normalize(rawURL)
	sc := uc.shortcuts[i]
	uc.persist(ctx)

	log.Info().Str("id", sc.ID).Msg("shortcut updated")
	return &sc, nil
}

// Delete removes a shortcut. Removing the last one also hides the shortcuts
// widget, before any other change to the list can interleave.
func (uc *ManageShortcutsUseCase) Delete(ctx context.Context, id string) error {
	log := logging.FromContext(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.ensureLoaded(ctx); err != nil {
		return err
	}
	i := uc.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", entity.ErrShortcutNotFound, id)
	}
	uc.shortcuts = slices.Delete(uc.shortcuts, i, i+1)
	uc.persist(ctx)
	log.Info().Str("id", id).Msg("shortcut deleted")

	if len(uc.shortcuts) == 0 {
		visibility := uc.settings.Get().WidgetVisibility
		visibility.Shortcuts = false
		uc.settings.Update(ctx, entity.SettingsPatch{WidgetVisibility: &visibility})
		log.Debug().Msg("last shortcut removed, shortcuts widget hidden")
	}
	return nil
}

// Reset removes the stored list; the default shortcuts are written back on
// the next read.
func (uc *ManageShortcutsUseCase) Reset(ctx context.Context) ([]entity.Shortcut, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.repo.Delete(ctx, ShortcutsStorageKey); err != nil {
		return nil, fmt.Errorf("failed to reset shortcuts: %w", err)
	}
	uc.loaded = false
	uc.shortcuts = nil
	if err := uc.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Int("count", len(uc.shortcuts)).Msg("shortcuts reset")
	return slices.Clone(uc.shortcuts), nil
}

// ensureLoaded reads the stored list once. A failed read is retried on the
// next call.
func (uc *ManageShortcutsUseCase) ensureLoaded(ctx context.Context) error {
	if uc.loaded {
		return nil
	}
	log := logging.FromContext(ctx)

	raw, found, err := uc.repo.Get(ctx, ShortcutsStorageKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read shortcuts")
		return fmt.Errorf("failed to read shortcuts: %w", err)
	}
	uc.loaded = true
	if !found {
		uc.shortcuts = entity.DefaultShortcuts()
		uc.persist(ctx)
		log.Debug().Msg("shortcut list initialized with defaults")
		return nil
	}

	var list []entity.Shortcut
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Warn().Err(err).Msg("stored shortcuts unreadable, starting empty")
		list = nil
	}
	if list == nil {
		list = []entity.Shortcut{}
	}
	uc.shortcuts = list
	return nil
}

func (uc *ManageShortcutsUseCase) persist(ctx context.Context) {
	log := logging.FromContext(ctx)

	data, err := json.Marshal(uc.shortcuts)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode shortcuts")
		return
	}
	if err := uc.repo.Set(ctx, ShortcutsStorageKey, string(data)); err != nil {
		log.Error().Err(err).Msg("failed to persist shortcuts")
	}
}

func (uc *ManageShortcutsUseCase) indexOf(id string) int {
	return slices.IndexFunc(uc.shortcuts, func(s entity.Shortcut) bool { return s.ID == id })
}

// nextID returns "shortcut-<unix ms>", bumped until unique.
func (uc *ManageShortcutsUseCase) nextID() string {
	ms := uc.now().UnixMilli()
	for {
		id := shortcutIDPrefix + strconv.FormatInt(ms, 10)
		if uc.indexOf(id) < 0 {
			return id
		}
		ms++
	}
}
