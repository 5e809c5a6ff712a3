package validation

import (
	"net/url"
	"strings"
)

// ValidateSearchTemplate checks a search engine URL template such as
// "https://google.com/search?q=%s".
func ValidateSearchTemplate(field string, value string) []string {
	var errs []string
	value = strings.TrimSpace(value)
	if value == "" {
		errs = append(errs, field+" cannot be empty")
		return errs
	}
	if !strings.Contains(value, "%s") {
		errs = append(errs, field+" must contain %s placeholder for the search query")
		return errs
	}

	candidate := strings.ReplaceAll(value, "%s", "query")
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, field+" must be a valid absolute URL")
	}

	return errs
}

// ValidateAbsoluteURL checks that value parses with a scheme and a host.
func ValidateAbsoluteURL(field string, value string, schemes ...string) []string {
	var errs []string
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, field+" must be a valid absolute URL")
		return errs
	}
	if len(schemes) == 0 {
		return errs
	}
	for _, s := range schemes {
		if parsed.Scheme == s {
			return errs
		}
	}
	errs = append(errs, field+" must use one of the schemes "+strings.Join(schemes, ", "))
	return errs
}
