package styles

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// NewDefaultSpinner creates the themed spinner shown while a command works.
func NewDefaultSpinner(theme *Theme) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return s
}

// LoadingView renders a spinner frame next to message.
func (t *Theme) LoadingView(frame, message string) string {
	return lipgloss.JoinHorizontal(lipgloss.Center, frame, " ", t.Subtle.Render(message))
}
