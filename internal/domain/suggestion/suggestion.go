// Package suggestion holds the pure parts of search suggestions: query rules,
// provider payload parsing and execution environment detection.
package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MinQueryLength is the shortest trimmed query that is sent upstream.
const MinQueryLength = 2

// NormalizeQuery trims q and reports whether it is long enough to fetch.
func NormalizeQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, len([]rune(q)) >= MinQueryLength
}

// ParseProviderResponse extracts the completions from an upstream payload
// shaped like ["query", ["completion", ...], ...].
//
// Only malformed JSON is an error. A well-formed payload of any other shape
// yields an empty list, and non-string completions are skipped.
func ParseProviderResponse(data []byte) ([]string, error) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		if !json.Valid(data) {
			return []string{}, fmt.Errorf("failed to parse provider response: %w", err)
		}
		return []string{}, nil
	}
	if len(tuple) < 2 {
		return []string{}, nil
	}
	return stringsOf(tuple[1]), nil
}

// ParseRelayResponse reads the relay endpoint body. It accepts the flat
// array the relay returns and, leniently, the raw provider tuple.
func ParseRelayResponse(data []byte) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return []string{}, fmt.Errorf("failed to parse relay response: %w", err)
	}
	if len(items) >= 2 && isString(items[0]) && isArray(items[1]) {
		return stringsOf(items[1]), nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := stringValue(item); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func stringsOf(raw json.RawMessage) []string {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := stringValue(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// stringValue decodes a JSON string. null decodes without error into a
// string, so it is rejected through the pointer.
func stringValue(raw json.RawMessage) (string, bool) {
	var s *string
	if json.Unmarshal(raw, &s) != nil || s == nil {
		return "", false
	}
	return *s, true
}

func isString(raw json.RawMessage) bool {
	_, ok := stringValue(raw)
	return ok
}

func isArray(raw json.RawMessage) bool {
	t := strings.TrimSpace(string(raw))
	return strings.HasPrefix(t, "[")
}
