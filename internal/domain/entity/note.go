package entity

import "errors"

// DefaultNoteTitle is used when a note is saved without a title.
const DefaultNoteTitle = "Untitled Note"

// ErrNoteNotFound is returned when no note has the requested id.
var ErrNoteNotFound = errors.New("note not found")

// Note is a quick note shown on the page.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"` // unix milliseconds
}
