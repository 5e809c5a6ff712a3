// Package styles provides reusable lipgloss-based TUI components.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "" // browser/web
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconHeart     = "" // heart
	IconGo        = "" // go gopher
	IconArrow     = "" // arrow right
	IconCheck     = "" // check
	IconX         = "" // x
	IconInfo      = "" // info
	IconConfig    = "" // config
	IconDatabase  = "" // database
	IconCursor    = "" // chevron-right
	IconSearch    = "" // search
	IconNote      = "" // sticky note
	IconPlug      = "" // plug
)
