package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// storedSettings keeps each section raw so it can be merged over its defaults.
type storedSettings struct {
	Background       json.RawMessage `json:"background"`
	Theme            json.RawMessage `json:"theme"`
	Clock            json.RawMessage `json:"clock"`
	Search           json.RawMessage `json:"search"`
	Shortcuts        json.RawMessage `json:"shortcuts"`
	WidgetVisibility json.RawMessage `json:"widgetVisibility"`
	Notes            json.RawMessage `json:"notes"`
}

// DecodeSettings parses a persisted settings document.
//
// Each section is decoded field by field over its defaults, so fields missing
// from an older document keep their default value. Notes replace the default
// only when present and non-null. A section that fails to decode falls back to
// its defaults and contributes to the returned error; the returned Settings is
// always usable. A document that is not a JSON object yields defaults and an error.
func DecodeSettings(data []byte) (Settings, error) {
	out := DefaultSettings()

	var raw storedSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return out, fmt.Errorf("failed to parse settings document: %w", err)
	}

	var errs []error
	mergeSection(&errs, "background", raw.Background, &out.Background)
	mergeSection(&errs, "theme", raw.Theme, &out.Theme)
	mergeSection(&errs, "clock", raw.Clock, &out.Clock)
	mergeSection(&errs, "search", raw.Search, &out.Search)
	mergeSection(&errs, "shortcuts", raw.Shortcuts, &out.Shortcuts)
	mergeSection(&errs, "widgetVisibility", raw.WidgetVisibility, &out.WidgetVisibility)

	if present(raw.Notes) {
		var notes []Note
		if err := json.Unmarshal(raw.Notes, &notes); err != nil {
			errs = append(errs, fmt.Errorf("notes: %w", err))
		} else if notes != nil {
			out.Notes = notes
		}
	}

	return out, errors.Join(errs...)
}

func mergeSection[T any](errs *[]error, name string, raw json.RawMessage, dst *T) {
	if !present(raw) {
		return
	}
	merged := *dst
	if err := json.Unmarshal(raw, &merged); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = merged
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// EncodeSettings serializes settings in their persisted wire form.
func EncodeSettings(s Settings) ([]byte, error) {
	if s.Notes == nil {
		s.Notes = []Note{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}
