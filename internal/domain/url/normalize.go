// Package url provides URL classification and normalization for the search bar
// and the shortcut tiles.
package url

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	// addressRE matches input typed as an address rather than a search:
	// an http(s) scheme, a www. prefix, or a leading "label." segment.
	addressRE = regexp.MustCompile(`(?i)^(https?://|www\.|[a-z0-9-]+\.)`)
)

// HasScheme reports whether input starts with "<scheme>://".
func HasScheme(input string) bool {
	return schemeRE.MatchString(input)
}

// Normalize adds the https:// prefix when input carries no scheme.
// Empty input stays empty.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || HasScheme(input) {
		return input
	}
	return "https://" + input
}

// LooksLikeAddress reports whether the search bar should navigate to input
// directly instead of searching for it.
func LooksLikeAddress(input string) bool {
	return addressRE.MatchString(input)
}

// ExtractDomain extracts the host from a URL string.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Hostname()
}

const faviconService = "https://www.google.com/s2/favicons"

// FaviconURL returns the favicon service URL for a shortcut target.
// It returns "" when no host can be extracted.
func FaviconURL(rawURL string) string {
	host := ExtractDomain(Normalize(rawURL))
	if host == "" {
		return ""
	}
	q := url.Values{}
	q.Set("domain", host)
	q.Set("sz", "64")
	return faviconService + "?" + q.Encode()
}
