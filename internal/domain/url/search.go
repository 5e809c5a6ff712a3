package url

import (
	"net/url"
	"strings"
)

// DefaultSearchTemplate is used when no search engine is configured.
const DefaultSearchTemplate = "https://google.com/search?q=%s"

// Target says where a navigation should happen.
type Target int

const (
	TargetCurrentTab Target = iota
	TargetNewTab
)

func (t Target) String() string {
	if t == TargetNewTab {
		return "new_tab"
	}
	return "current_tab"
}

// MarshalText encodes the target as "current_tab" or "new_tab".
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Navigation is the outcome of submitting the search bar.
type Navigation struct {
	URL      string `json:"url"`
	Target   Target `json:"target"`
	IsSearch bool   `json:"isSearch"`
}

// BuildSearchURL substitutes the query-escaped text into template.
func BuildSearchURL(template, text string) string {
	if template == "" {
		template = DefaultSearchTemplate
	}
	return strings.Replace(template, "%s", url.QueryEscape(text), 1)
}

// ResolveSubmission decides what submitting text does. Addresses always open
// in the current tab; searches open in a new tab only when openInNewTab is set.
// ok is false when the trimmed text is empty.
func ResolveSubmission(text string, openInNewTab bool, template string) (nav Navigation, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Navigation{}, false
	}

	if LooksLikeAddress(text) {
		return Navigation{URL: Normalize(text), Target: TargetCurrentTab}, true
	}

	target := TargetCurrentTab
	if openInNewTab {
		target = TargetNewTab
	}
	return Navigation{URL: BuildSearchURL(template, text), Target: target, IsSearch: true}, true
}
