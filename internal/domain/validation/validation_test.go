package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexColor(t *testing.T) {
	assert.True(t, IsHexColor("#09090b"))
	assert.True(t, IsHexColor("#FFFFFF"))
	assert.False(t, IsHexColor("#fff"))
	assert.False(t, IsHexColor("09090b"))
	assert.False(t, IsHexColor("#gggggg"))
}

func TestValidateSearchTemplate(t *testing.T) {
	assert.Empty(t, ValidateSearchTemplate("search.engine_url", "https://google.com/search?q=%s"))
	assert.Len(t, ValidateSearchTemplate("search.engine_url", ""), 1)
	assert.Contains(t, ValidateSearchTemplate("search.engine_url", "https://google.com/search")[0], "%s")
	assert.Contains(t, ValidateSearchTemplate("search.engine_url", "google?q=%s")[0], "absolute")
}

func TestValidateAbsoluteURL(t *testing.T) {
	assert.Empty(t, ValidateAbsoluteURL("extension.endpoint", "ws://127.0.0.1:8787/ext", "ws", "wss"))
	assert.NotEmpty(t, ValidateAbsoluteURL("extension.endpoint", "http://127.0.0.1:8787/ext", "ws", "wss"))
	assert.NotEmpty(t, ValidateAbsoluteURL("suggestions.provider_url", "/relative"))
}

func TestValidateFontReference(t *testing.T) {
	assert.Empty(t, ValidateFontReference("clock.fontFamily", "var(--font-monoton)"))
	assert.Empty(t, ValidateFontReference("clock.fontFamily", "Inter, sans-serif"))
	assert.NotEmpty(t, ValidateFontReference("clock.fontFamily", "  "))
	assert.NotEmpty(t, ValidateFontReference("clock.fontFamily", "a\nb"))
	assert.NotEmpty(t, ValidateFontReference("clock.fontFamily", "serif; color: red"))
	assert.NotEmpty(t, ValidateFontReference("clock.fontFamily", "var(--font-sans"))
}
