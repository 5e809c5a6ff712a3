package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/logging"
)

// ManageNotesUseCase edits the quick notes held in the settings document.
type ManageNotesUseCase struct {
	mu       sync.Mutex
	settings *SettingsStore
	now      func() time.Time
	newID    func() string
}

// NewManageNotesUseCase creates a new notes use case.
func NewManageNotesUseCase(settings *SettingsStore) *ManageNotesUseCase {
	return &ManageNotesUseCase{
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// NoteInput contains the editable fields of a note.
type NoteInput struct {
	Title   string
	Content string
}

// List returns the notes, newest first.
func (uc *ManageNotesUseCase) List() []entity.Note {
	return uc.settings.Get().Notes
}

// Get returns the note with the given id.
func (uc *ManageNotesUseCase) Get(id string) (*entity.Note, error) {
	notes := uc.settings.Get().Notes
	i := slices.IndexFunc(notes, func(n entity.Note) bool { return n.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoteNotFound, id)
	}
	return &notes[i], nil
}

// Add creates a note and puts it first.
func (uc *ManageNotesUseCase) Add(ctx context.Context, input NoteInput) entity.Note {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	note := entity.Note{
		ID:        uc.newID(),
		Title:     noteTitle(input.Title),
		Content:   input.Content,
		UpdatedAt: uc.now().UnixMilli(),
	}

	notes := append([]entity.Note{note}, uc.settings.Get().Notes...)
	uc.settings.Update(ctx, entity.SettingsPatch{Notes: &notes})

	logging.FromContext(ctx).Info().Str("id", note.ID).Msg("note added")
	return note
}

// Update replaces the title and content of a note, keeping its position.
func (uc *ManageNotesUseCase) Update(ctx context.Context, id string, input NoteInput) (*entity.Note, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	notes := uc.settings.Get().Notes
	i := slices.IndexFunc(notes, func(n entity.Note) bool { return n.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoteNotFound, id)
	}

	notes[i].Title = noteTitle(input.Title)
	notes[i].Content = input.Content
	notes[i].UpdatedAt = uc.now().UnixMilli()
	note := notes[i]
	uc.settings.Update(ctx, entity.SettingsPatch{Notes: &notes})

	logging.FromContext(ctx).Info().Str("id", id).Msg("note updated")
	return &note, nil
}

// Delete removes a note.
func (uc *ManageNotesUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	notes := uc.settings.Get().Notes
	i := slices.IndexFunc(notes, func(n entity.Note) bool { return n.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", entity.ErrNoteNotFound, id)
	}

	notes = slices.Delete(notes, i, i+1)
	uc.settings.Update(ctx, entity.SettingsPatch{Notes: &notes})

	logging.FromContext(ctx).Info().Str("id", id).Msg("note deleted")
	return nil
}

func noteTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return entity.DefaultNoteTitle
	}
	return title
}
