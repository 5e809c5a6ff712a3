package entity

import (
	"errors"
	"strings"
)

var (
	// ErrShortcutNotFound is returned when no shortcut has the requested id.
	ErrShortcutNotFound = errors.New("shortcut not found")
	// ErrInvalidShortcut is returned when name or url is blank.
	ErrInvalidShortcut = errors.New("shortcut name and url are required")
)

// Shortcut is a tile linking to a site.
type Shortcut struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultShortcuts is written the first time the shortcut list is read.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{ID: "github", Name: "GitHub", URL: "https://github.com"},
	}
}

// ValidateShortcutInput trims name and url and rejects blanks.
func ValidateShortcutInput(name, rawURL string) (string, string, error) {
	name = strings.TrimSpace(name)
	rawURL = strings.TrimSpace(rawURL)
	if name == "" || rawURL == "" {
		return "", "", ErrInvalidShortcut
	}
	return name, rawURL, nil
}
