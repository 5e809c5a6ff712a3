package usecase

import (
	"context"
	"sync"

	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/repository"
	"github.com/bnema/newtab/internal/logging"
)

// SettingsStorageKey is the storage key of the serialized settings document.
const SettingsStorageKey = "betterfox-settings"

// SettingsStore owns the settings document. It is loaded once, mutated by
// partial updates and written through to storage after every mutation.
//
// Subscribers run synchronously after each mutation, before the write, and
// must not call back into Update or Reset.
type SettingsStore struct {
	repo repository.KeyValueRepository

	// writeMu serializes mutations so writes reach storage in order.
	writeMu sync.Mutex

	mu       sync.RWMutex
	settings entity.Settings
	hydrated bool

	subMu       sync.Mutex
	subscribers map[int]func(entity.Settings)
	nextSubID   int
}

// NewSettingsStore creates a store holding the default settings.
func NewSettingsStore(repo repository.KeyValueRepository) *SettingsStore {
	return &SettingsStore{
		repo:        repo,
		settings:    entity.DefaultSettings(),
		subscribers: make(map[int]func(entity.Settings)),
	}
}

// Load hydrates the store from storage. Only the first call reads storage.
// Missing or unreadable documents leave the defaults in place; failures are
// logged, never returned.
func (s *SettingsStore) Load(ctx context.Context) entity.Settings {
	log := logging.FromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.Hydrated() {
		return s.Get()
	}

	loaded := entity.DefaultSettings()
	raw, found, err := s.repo.Get(ctx, SettingsStorageKey)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("failed to read settings, using defaults")
	case !found:
		log.Debug().Msg("no stored settings, using defaults")
	default:
		decoded, decodeErr := entity.DecodeSettings([]byte(raw))
		if decodeErr != nil {
			log.Warn().Err(decodeErr).Msg("stored settings partially unreadable, defaults applied")
		}
		loaded = decoded
	}

	// Updates made before hydration are overwritten by the stored document.
	s.mu.Lock()
	s.settings = loaded
	s.hydrated = true
	s.mu.Unlock()

	s.notify(loaded)
	log.Info().Bool("found", found).Msg("settings loaded")
	return loaded.Clone()
}

// Hydrated reports whether Load has completed.
func (s *SettingsStore) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Get returns a copy of the current document.
func (s *SettingsStore) Get() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Update replaces the sections present in patch, notifies subscribers and
// persists the result. Nested fields are not merged: callers pass complete
// sections. Persistence failures are logged and the in-memory change is kept.
func (s *SettingsStore) Update(ctx context.Context, patch entity.SettingsPatch) entity.Settings {
	if patch.IsEmpty() {
		return s.Get()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.settings = patch.ApplyTo(s.settings)
	next := s.settings.Clone()
	hydrated := s.hydrated
	s.mu.Unlock()

	s.notify(next)
	if hydrated {
		s.persist(ctx, next)
	} else {
		logging.FromContext(ctx).Debug().Msg("settings updated before load, not persisted")
	}
	return next.Clone()
}

// Reset restores the defaults and persists them. The shortcut list is
// stored separately and is left untouched.
func (s *SettingsStore) Reset(ctx context.Context) entity.Settings {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	defaults := entity.DefaultSettings()

	s.mu.Lock()
	s.settings = defaults
	hydrated := s.hydrated
	s.mu.Unlock()

	s.notify(defaults.Clone())
	if hydrated {
		s.persist(ctx, defaults)
	}
	logging.FromContext(ctx).Info().Msg("settings reset to defaults")
	return defaults.Clone()
}

// Subscribe registers fn to receive the document after every mutation.
// fn runs synchronously on the mutating goroutine and must not call back
// into the store or the shortcut list. The returned function removes the
// subscription.
func (s *SettingsStore) Subscribe(fn func(entity.Settings)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *SettingsStore) notify(settings entity.Settings) {
	s.subMu.Lock()
	fns := make([]func(entity.Settings), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(settings.Clone())
	}
}

func (s *SettingsStore) persist(ctx context.Context, settings entity.Settings) {
	log := logging.FromContext(ctx)

	data, err := entity.EncodeSettings(settings)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode settings")
		return
	}
	if err := s.repo.Set(ctx, SettingsStorageKey, string(data)); err != nil {
		log.Error().Err(err).Msg("failed to persist settings")
		return
	}
	log.Debug().Int("bytes", len(data)).Msg("settings persisted")
}
