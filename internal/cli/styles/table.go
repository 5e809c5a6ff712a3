package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	// Static tables have no cursor.
	s.Selected = s.Cell.Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// RenderTable renders rows under columns as a static table.
func (t *Theme) RenderTable(columns []table.Column, rows []table.Row) string {
	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}
	return NewStyledTable(t, columns, rows, width, len(rows)+1).View()
}

// ShortcutTableColumns returns columns for the shortcut list.
func ShortcutTableColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 22},
		{Title: "Name", Width: 20},
		{Title: "URL", Width: 40},
	}
}

// NoteTableColumns returns columns for the note list.
func NoteTableColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Title", Width: 28},
		{Title: "Edited", Width: 12},
	}
}
