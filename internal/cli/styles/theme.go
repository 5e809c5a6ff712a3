// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/newtab/internal/domain/entity"
)

// Theme holds lipgloss colors and styles derived from the page settings.
type Theme struct {
	// Base colors (from Palette)
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color

	// Additional semantic colors
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	// Pre-built styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Preset is the card style of the shortcut tiles.
	Preset entity.ViewPreset

	// Component styles
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	Clock     lipgloss.Style
	ClockDate lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemTitle    lipgloss.Style
	ListItemDesc     lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

// Palette is the set of base colours a Theme is built from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// DefaultDarkPalette returns the dark palette used when no settings are loaded.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#09090b",
		Surface:        "#18181b",
		SurfaceVariant: "#27272a",
		Text:           "#fafafa",
		Muted:          "#a1a1aa",
		Accent:         "#4ade80",
		Border:         "#3f3f46",
	}
}

// DefaultLightPalette returns the palette for the light theme mode.
func DefaultLightPalette() Palette {
	return Palette{
		Background:     "#ffffff",
		Surface:        "#f4f4f5",
		SurfaceVariant: "#e4e4e7",
		Text:           "#09090b",
		Muted:          "#71717a",
		Accent:         "#16a34a",
		Border:         "#d4d4d8",
	}
}

// PaletteFromSettings derives a palette from the effective page appearance:
// the mode picks the base palette, the solid background and the clock text
// colour override it.
func PaletteFromSettings(s entity.Settings) Palette {
	a := entity.ResolveAppearance(s)

	p := DefaultLightPalette()
	if a.Dark {
		p = DefaultDarkPalette()
	}
	if a.BackgroundColor != "" {
		p.Background = a.BackgroundColor
	}
	if a.TextColor != "" {
		p.Text = a.TextColor
	}
	return p
}

// NewTheme creates a Theme matching the page settings.
func NewTheme(s entity.Settings) *Theme {
	t := NewThemeFromPalette(PaletteFromSettings(s))
	t.Preset = s.Shortcuts.ViewPreset
	return t
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color(p.Accent),

		Preset: entity.PresetCard,
	}

	t.buildStyles()
	return t
}

// buildStyles creates all derived lipgloss styles.
func (t *Theme) buildStyles() {
	// Text styles
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	// Button styles
	t.ActiveTab = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 2).
		Bold(true)

	t.InactiveTab = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface).
		Padding(0, 2)

	// Clock styles
	t.Clock = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		Padding(0, 1)

	t.ClockDate = lipgloss.NewStyle().
		Foreground(t.Muted)

	// List item styles
	t.ListItem = lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(2)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceVariant).
		PaddingLeft(2).
		Bold(true)

	t.ListItemTitle = lipgloss.NewStyle().
		Foreground(t.Text)

	t.ListItemDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	// Badge styles
	t.Badge = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	t.BadgeMuted = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.SurfaceVariant).
		Padding(0, 1)

	// Input styles
	t.Input = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.InputFocused = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)

	// Help styles
	t.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	// Box/container styles
	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)

	t.BoxHeader = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border).
		MarginBottom(1)
}

// Tile returns the style of a shortcut tile for the theme preset.
func (t *Theme) Tile(selected bool) lipgloss.Style {
	border := t.Border
	if selected {
		border = t.Accent
	}

	switch t.Preset {
	case entity.PresetMinimal:
		return lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1).
			Width(tileWidth).
			Align(lipgloss.Center)
	case entity.PresetGlass:
		return lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.SurfaceVariant).
			BorderStyle(lipgloss.HiddenBorder()).
			BorderBackground(t.SurfaceVariant).
			Padding(0, 1).
			Width(tileWidth).
			Align(lipgloss.Center)
	default:
		return lipgloss.NewStyle().
			Foreground(t.Text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(tileWidth).
			Align(lipgloss.Center)
	}
}

// tileWidth is the inner width of a shortcut tile.
const tileWidth = 14
