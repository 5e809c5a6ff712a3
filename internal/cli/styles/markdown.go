package styles

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// markdownWidth is the word wrap of rendered notes.
const markdownWidth = 80

// RenderMarkdown renders note content for the terminal in the light or dark
// glamour style.
func RenderMarkdown(content string, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
