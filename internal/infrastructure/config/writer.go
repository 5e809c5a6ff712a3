package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var tomlSectionHeader = regexp.MustCompile(`^(\s*)\[([^\]]+)\]\s*$`)

// WriteConfigOrdered writes cfg as TOML. Keys keep their struct order and
// tables are sorted by name so the output is stable across writes.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sortTOMLSections(buf.String())), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// sortTOMLSections reorders TOML tables alphabetically. Top-level keys stay
// first.
func sortTOMLSections(content string) string {
	type section struct {
		header string
		lines  []string
	}

	var (
		preamble []string
		sections []section
		current  *section
	)

	for _, line := range strings.Split(content, "\n") {
		match := tomlSectionHeader.FindStringSubmatch(line)
		switch {
		case match != nil:
			if current != nil {
				sections = append(sections, *current)
			}
			current = &section{header: match[2], lines: []string{line}}
		case current != nil:
			current.lines = append(current.lines, line)
		default:
			preamble = append(preamble, line)
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].header < sections[j].header
	})

	var out strings.Builder
	write := func(lines []string) {
		for _, l := range lines {
			if strings.TrimSpace(l) == "" {
				continue
			}
			out.WriteString(l)
			out.WriteString("\n")
		}
	}

	write(preamble)
	for i, sec := range sections {
		if i > 0 || out.Len() > 0 {
			out.WriteString("\n")
		}
		write(sec.lines)
	}
	return out.String()
}
