package styles

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/infrastructure/config"
)

func TestConfigRenderer_RenderValuesGroupsBySection(t *testing.T) {
	r := NewConfigRenderer(NewTheme(entity.DefaultSettings()))
	values := map[string]any{
		"server.listen":     "127.0.0.1:8787",
		"search.engine_url": "https://google.com/search?q=%s",
	}

	out := r.RenderValues([]string{"search.engine_url", "server.listen"}, func(k string) any { return values[k] })

	assert.Contains(t, out, "server")
	assert.Contains(t, out, "listen = 127.0.0.1:8787")
	assert.Contains(t, out, "engine_url = https://google.com/search?q=%s")
	assert.Less(t, strings.Index(out, "search"), strings.Index(out, "server"))
}

func TestConfigRenderer_RenderSchema(t *testing.T) {
	r := NewConfigRenderer(NewTheme(entity.DefaultSettings()))

	out := r.RenderSchema(config.Schema())

	assert.Contains(t, out, "Config Schema Reference")
	assert.Contains(t, out, "debounce_ms")
	assert.Contains(t, out, "Range: 0..5000")
	assert.Contains(t, out, "Values: sqlite, json")
}

func TestConfigRenderer_RenderError(t *testing.T) {
	r := NewConfigRenderer(NewTheme(entity.DefaultSettings()))
	assert.Contains(t, r.RenderError(errors.New("boom")), "Config error: boom")
}
