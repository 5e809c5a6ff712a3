package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// SettingsPatch is a partial update. Each non-nil section replaces the
// corresponding section of the document as a whole.
type SettingsPatch struct {
	Background       *BackgroundSettings `json:"background,omitempty"`
	Theme            *ThemeSettings      `json:"theme,omitempty"`
	Clock            *ClockSettings      `json:"clock,omitempty"`
	Search           *SearchSettings     `json:"search,omitempty"`
	Shortcuts        *ShortcutLayout     `json:"shortcuts,omitempty"`
	WidgetVisibility *WidgetVisibility   `json:"widgetVisibility,omitempty"`
	Notes            *[]Note             `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Background == nil && p.Theme == nil && p.Clock == nil && p.Search == nil &&
		p.Shortcuts == nil && p.WidgetVisibility == nil && p.Notes == nil
}

// ApplyTo returns s with every section present in the patch replaced.
func (p SettingsPatch) ApplyTo(s Settings) Settings {
	out := s.Clone()
	if p.Background != nil {
		out.Background = *p.Background
	}
	if p.Theme != nil {
		out.Theme = *p.Theme
	}
	if p.Clock != nil {
		out.Clock = *p.Clock
	}
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Shortcuts != nil {
		out.Shortcuts = *p.Shortcuts
	}
	if p.WidgetVisibility != nil {
		out.WidgetVisibility = *p.WidgetVisibility
	}
	if p.Notes != nil {
		out.Notes = slices.Clone(*p.Notes)
		if out.Notes == nil {
			out.Notes = []Note{}
		}
	}
	return out
}

// DecodePatch parses a JSON patch whose sections may be partial. Fields left
// out of a section keep their value from current, so the resulting patch
// always carries complete sections. Unknown sections or fields are rejected.
func DecodePatch(current Settings, data []byte) (SettingsPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return SettingsPatch{}, fmt.Errorf("invalid patch: %w", err)
	}

	var p SettingsPatch
	for key, value := range raw {
		if !present(value) {
			continue
		}
		var err error
		switch key {
		case "background":
			p.Background, err = decodeOver(current.Background, value)
		case "theme":
			p.Theme, err = decodeOver(current.Theme, value)
		case "clock":
			p.Clock, err = decodeOver(current.Clock, value)
		case "search":
			p.Search, err = decodeOver(current.Search, value)
		case "shortcuts":
			p.Shortcuts, err = decodeOver(current.Shortcuts, value)
		case "widgetVisibility":
			p.WidgetVisibility, err = decodeOver(current.WidgetVisibility, value)
		case "notes":
			var notes []Note
			if err = strictUnmarshal(value, &notes); err == nil {
				p.Notes = &notes
			}
		default:
			err = fmt.Errorf("unknown section")
		}
		if err != nil {
			return SettingsPatch{}, fmt.Errorf("invalid patch section %q: %w", key, err)
		}
	}
	return p, nil
}

// PatchField builds a patch setting one field addressed as "section.field".
// value is parsed as JSON when possible and as a bare string otherwise.
func (s Settings) PatchField(path, value string) (SettingsPatch, error) {
	section, field, ok := strings.Cut(path, ".")
	if !ok || section == "" || field == "" || section == "notes" {
		return SettingsPatch{}, fmt.Errorf("invalid settings path %q, want section.field", path)
	}

	encoded := json.RawMessage(value)
	if !json.Valid(encoded) {
		quoted, err := json.Marshal(value)
		if err != nil {
			return SettingsPatch{}, err
		}
		encoded = quoted
	}

	body, err := json.Marshal(map[string]map[string]json.RawMessage{
		section: {field: encoded},
	})
	if err != nil {
		return SettingsPatch{}, err
	}
	return DecodePatch(s, body)
}

func decodeOver[T any](base T, raw json.RawMessage) (*T, error) {
	out := base
	if err := strictUnmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func strictUnmarshal(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
