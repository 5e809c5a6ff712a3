package validation

import "strings"

const maxFontReference = 200

// ValidateFontReference checks a clock font setting. Values are either a
// family list ("Inter, sans-serif") or a CSS variable ("var(--font-sans)"),
// and are pasted into a style attribute by the web front-end, so characters
// that could close the declaration are rejected.
func ValidateFontReference(field string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{field + " cannot be empty"}
	}

	var errs []string
	if strings.ContainsAny(value, "\r\n;{}<>") {
		errs = append(errs, field+" contains characters not allowed in a font value")
	}
	if strings.HasPrefix(value, "var(") && !strings.HasSuffix(value, ")") {
		errs = append(errs, field+" has an unterminated var()")
	}
	if len(value) > maxFontReference {
		errs = append(errs, field+" is too long")
	}
	return errs
}
