package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/invopop/jsonschema"
)

// ConfigRenderer renders config values and the config schema.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPath renders the location of the config file.
func (r *ConfigRenderer) RenderPath(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderValues renders dotted keys grouped by their section.
func (r *ConfigRenderer) RenderValues(keys []string, value func(key string) any) string {
	sections := make(map[string][]string)
	for _, key := range keys {
		section, _, _ := strings.Cut(key, ".")
		sections[section] = append(sections[section], key)
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	keyStyle := r.theme.Normal.Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		lines := []string{r.theme.Highlight.Render(name)}
		for _, key := range sections[name] {
			_, field, _ := strings.Cut(key, ".")
			lines = append(lines, fmt.Sprintf("%s = %s", keyStyle.Render(field), valueStyle.Render(fmt.Sprint(value(key)))))
		}
		parts = append(parts, r.theme.Box.PaddingTop(0).Render(strings.Join(lines, "\n")))
	}
	return strings.Join(parts, "\n")
}

// RenderSet renders the confirmation of a changed key.
func (r *ConfigRenderer) RenderSet(key string, value any) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s %s = %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(key),
		r.theme.Normal.Render(fmt.Sprint(value)),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}

// RenderSchema renders every section of the schema with the type, bounds
// and description of each key.
func (r *ConfigRenderer) RenderSchema(schema *jsonschema.Schema) string {
	if schema == nil || schema.Properties == nil {
		return r.theme.Subtle.Render("No configuration keys found")
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	parts := []string{
		fmt.Sprintf("%s %s", iconStyle.Render(IconConfig), r.theme.Title.Render("Config Schema Reference")),
		"",
	}

	for section := schema.Properties.Oldest(); section != nil; section = section.Next() {
		if section.Value.Properties == nil {
			continue
		}
		lines := []string{r.theme.Highlight.Render(section.Key)}
		for field := section.Value.Properties.Oldest(); field != nil; field = field.Next() {
			lines = append(lines, r.renderSchemaKey(field.Key, field.Value))
		}
		parts = append(parts, r.theme.Box.PaddingTop(0).Render(strings.Join(lines, "\n")), "")
	}
	return strings.Join(parts, "\n")
}

func (r *ConfigRenderer) renderSchemaKey(name string, s *jsonschema.Schema) string {
	line := fmt.Sprintf("%s  %s", r.theme.Normal.Bold(true).Render(name), r.theme.Subtle.Render(s.Type))
	if s.Description != "" {
		line += "\n  " + r.theme.Subtle.Render(s.Description)
	}

	switch {
	case len(s.Enum) > 0:
		values := make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			values = append(values, fmt.Sprint(v))
		}
		line += "\n  " + r.theme.Normal.Render("Values: "+strings.Join(values, ", "))
	case s.Minimum != "" || s.Maximum != "":
		line += "\n  " + r.theme.Normal.Render(fmt.Sprintf("Range: %s..%s", orAny(string(s.Minimum)), orAny(string(s.Maximum))))
	}
	return line
}

func orAny(bound string) string {
	if bound == "" {
		return "*"
	}
	return bound
}
