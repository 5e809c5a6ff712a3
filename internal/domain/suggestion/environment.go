package suggestion

import (
	"net/url"
	"strings"
)

// Environment is where the page runs, which decides the suggestion transport.
type Environment int

const (
	// EnvironmentInProcess means no page URL is known; suggestions are
	// fetched from the provider directly.
	EnvironmentInProcess Environment = iota
	// EnvironmentWebPage is an ordinary http(s) page served with the relay.
	EnvironmentWebPage
	// EnvironmentExtension is an extension page or a local file.
	EnvironmentExtension
)

func (e Environment) String() string {
	switch e {
	case EnvironmentWebPage:
		return "web_page"
	case EnvironmentExtension:
		return "extension"
	default:
		return "in_process"
	}
}

var extensionSchemes = map[string]struct{}{
	"chrome-extension":     {},
	"moz-extension":        {},
	"safari-web-extension": {},
	"file":                 {},
}

// DetectEnvironment classifies the URL the page was loaded from.
func DetectEnvironment(pageURL string) Environment {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return EnvironmentInProcess
	}
	scheme := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	} else if i := strings.Index(pageURL, ":"); i > 0 {
		scheme = pageURL[:i]
	}
	if _, ok := extensionSchemes[strings.ToLower(scheme)]; ok {
		return EnvironmentExtension
	}
	return EnvironmentWebPage
}
