package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/newtab/internal/domain/validation"
)

// BackgroundType selects which background source is active.
type BackgroundType string

const (
	BackgroundSolid BackgroundType = "solid"
	BackgroundImage BackgroundType = "image"
	BackgroundVideo BackgroundType = "video"
)

// ThemeMode is the light/dark mode of the page.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ViewPreset is the card style used by the theme and the shortcut tiles.
type ViewPreset string

const (
	PresetCard    ViewPreset = "card"
	PresetMinimal ViewPreset = "minimal"
	PresetGlass   ViewPreset = "glass"
)

// TimeFormat is "12" or "24" hour clock.
type TimeFormat string

const (
	TimeFormat12 TimeFormat = "12"
	TimeFormat24 TimeFormat = "24"
)

// ClockDisplayMode controls which parts of the clock widget are shown.
type ClockDisplayMode string

const (
	DisplayTimeOnly ClockDisplayMode = "time-only"
	DisplayDateOnly ClockDisplayMode = "date-only"
	DisplayBoth     ClockDisplayMode = "both"
)

// DateFormat values are the literal example strings the page offers.
type DateFormat string

const (
	DateFormatShort    DateFormat = "Mon Jan 12"
	DateFormatUS       DateFormat = "01/12/2024"
	DateFormatEU       DateFormat = "12/01/2024"
	DateFormatISO      DateFormat = "2024-01-12"
	DateFormatLongDate DateFormat = "Jan 12, 2024"
)

// Alignment of the shortcut grid.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

const (
	MaxBlur       = 20
	MaxBrightness = 200
	MaxPosition   = 100
)

// BackgroundSettings describes the page background.
type BackgroundSettings struct {
	Type       BackgroundType `json:"type"`
	SolidColor string         `json:"solidColor,omitempty"`
	ImageURL   string         `json:"imageUrl,omitempty"`
	VideoURL   string         `json:"videoUrl,omitempty"`
	Blur       int            `json:"blur"`
	Brightness int            `json:"brightness"`
	Position   int            `json:"position"`
}

// ThemeSettings holds the page theme.
type ThemeSettings struct {
	Mode       ThemeMode  `json:"mode"`
	DarkColor  string     `json:"darkColor"`
	LightColor string     `json:"lightColor"`
	ViewPreset ViewPreset `json:"viewPreset"`
}

// ClockSettings configures the clock widget.
type ClockSettings struct {
	ShowSeconds    bool             `json:"showSeconds"`
	TimeFormat     TimeFormat       `json:"timeFormat"`
	DisplayMode    ClockDisplayMode `json:"displayMode"`
	DateFormat     DateFormat       `json:"dateFormat"`
	FontSize       int              `json:"fontSize"`
	DateFontSize   int              `json:"dateFontSize"`
	FontFamily     string           `json:"fontFamily"`
	DateFontFamily string           `json:"dateFontFamily"`
	FontWeight     int              `json:"fontWeight"`
	TextColor      string           `json:"textColor,omitempty"`
}

// SearchSettings configures the search bar.
type SearchSettings struct {
	OpenInNewTab    bool `json:"openInNewTab"`
	ShowSuggestions bool `json:"showSuggestions"`
}

// ShortcutLayout configures the shortcut tiles.
type ShortcutLayout struct {
	ViewPreset ViewPreset `json:"viewPreset"`
	Alignment  Alignment  `json:"alignment"`
}

// WidgetVisibility toggles each widget on the page.
type WidgetVisibility struct {
	Clock      bool `json:"clock"`
	SearchBar  bool `json:"searchBar"`
	Shortcuts  bool `json:"shortcuts"`
	QuickNotes bool `json:"quickNotes"`
	ShowTitles bool `json:"showTitles"`
}

// Settings is the whole user-configurable state of the page.
type Settings struct {
	Background       BackgroundSettings `json:"background"`
	Theme            ThemeSettings      `json:"theme"`
	Clock            ClockSettings      `json:"clock"`
	Search           SearchSettings     `json:"search"`
	Shortcuts        ShortcutLayout     `json:"shortcuts"`
	WidgetVisibility WidgetVisibility   `json:"widgetVisibility"`
	Notes            []Note             `json:"notes"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		Background: BackgroundSettings{
			Type:       BackgroundSolid,
			Blur:       0,
			Brightness: 100,
			Position:   50,
		},
		Theme: ThemeSettings{
			Mode:       ThemeDark,
			DarkColor:  "#09090b",
			LightColor: "#ffffff",
			ViewPreset: PresetCard,
		},
		Clock: ClockSettings{
			ShowSeconds:    false,
			TimeFormat:     TimeFormat24,
			DisplayMode:    DisplayBoth,
			DateFormat:     DateFormatShort,
			FontSize:       80,
			DateFontSize:   18,
			FontFamily:     "var(--font-monoton)",
			DateFontFamily: "var(--font-sans)",
			FontWeight:     400,
		},
		Search: SearchSettings{
			OpenInNewTab:    false,
			ShowSuggestions: true,
		},
		Shortcuts: ShortcutLayout{
			ViewPreset: PresetCard,
			Alignment:  AlignCenter,
		},
		WidgetVisibility: WidgetVisibility{
			Clock:      true,
			SearchBar:  true,
			Shortcuts:  true,
			QuickNotes: false,
			ShowTitles: true,
		},
		Notes: []Note{},
	}
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := s
	if s.Notes != nil {
		out.Notes = slices.Clone(s.Notes)
	}
	return out
}

// DateFormats lists the supported clock date formats in display order.
func DateFormats() []DateFormat {
	return []DateFormat{DateFormatShort, DateFormatUS, DateFormatEU, DateFormatISO, DateFormatLongDate}
}

// Validate checks enum values, numeric ranges and colours.
func (s Settings) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	bg := s.Background
	switch bg.Type {
	case BackgroundSolid, BackgroundImage, BackgroundVideo:
	default:
		add("background.type %q is not one of solid, image, video", bg.Type)
	}
	if bg.SolidColor != "" && !validation.IsHexColor(bg.SolidColor) {
		add("background.solidColor must be a hex color like #RRGGBB")
	}
	if bg.Blur < 0 || bg.Blur > MaxBlur {
		add("background.blur must be between 0 and %d", MaxBlur)
	}
	if bg.Brightness < 0 || bg.Brightness > MaxBrightness {
		add("background.brightness must be between 0 and %d", MaxBrightness)
	}
	if bg.Position < 0 || bg.Position > MaxPosition {
		add("background.position must be between 0 and %d", MaxPosition)
	}

	switch s.Theme.Mode {
	case ThemeLight, ThemeDark:
	default:
		add("theme.mode %q is not one of light, dark", s.Theme.Mode)
	}
	if !validation.IsHexColor(s.Theme.DarkColor) {
		add("theme.darkColor must be a hex color like #RRGGBB")
	}
	if !validation.IsHexColor(s.Theme.LightColor) {
		add("theme.lightColor must be a hex color like #RRGGBB")
	}
	if !s.Theme.ViewPreset.valid() {
		add("theme.viewPreset %q is not one of card, minimal, glass", s.Theme.ViewPreset)
	}

	c := s.Clock
	if c.TimeFormat != TimeFormat12 && c.TimeFormat != TimeFormat24 {
		add("clock.timeFormat %q is not one of 12, 24", c.TimeFormat)
	}
	switch c.DisplayMode {
	case DisplayTimeOnly, DisplayDateOnly, DisplayBoth:
	default:
		add("clock.displayMode %q is not one of time-only, date-only, both", c.DisplayMode)
	}
	if !slices.Contains(DateFormats(), c.DateFormat) {
		add("clock.dateFormat %q is not supported", c.DateFormat)
	}
	if c.FontSize <= 0 || c.DateFontSize <= 0 {
		add("clock font sizes must be positive")
	}
	if c.FontWeight < 100 || c.FontWeight > 900 {
		add("clock.fontWeight must be between 100 and 900")
	}
	for _, msg := range validation.ValidateFontReference("clock.fontFamily", c.FontFamily) {
		errs = append(errs, errors.New(msg))
	}
	for _, msg := range validation.ValidateFontReference("clock.dateFontFamily", c.DateFontFamily) {
		errs = append(errs, errors.New(msg))
	}
	if c.TextColor != "" && !validation.IsHexColor(c.TextColor) {
		add("clock.textColor must be a hex color like #RRGGBB")
	}

	if !s.Shortcuts.ViewPreset.valid() {
		add("shortcuts.viewPreset %q is not one of card, minimal, glass", s.Shortcuts.ViewPreset)
	}
	switch s.Shortcuts.Alignment {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		add("shortcuts.alignment %q is not one of left, center, right", s.Shortcuts.Alignment)
	}

	seen := make(map[string]struct{}, len(s.Notes))
	for _, n := range s.Notes {
		if n.ID == "" {
			add("notes: id must not be empty")
			continue
		}
		if _, dup := seen[n.ID]; dup {
			add("notes: duplicate id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

func (p ViewPreset) valid() bool {
	switch p {
	case PresetCard, PresetMinimal, PresetGlass:
		return true
	}
	return false
}
