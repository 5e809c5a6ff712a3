package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "listen without port", mutate: func(c *Config) { c.Server.Listen = "localhost" }, wantErr: "server.listen"},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, wantErr: "storage.backend"},
		{name: "relative provider", mutate: func(c *Config) { c.Suggestions.ProviderURL = "/complete" }, wantErr: "suggestions.provider_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Suggestions.TimeoutMs = 0 }, wantErr: "suggestions.timeout_ms"},
		{name: "negative rate", mutate: func(c *Config) { c.Suggestions.RatePerSecond = -1 }, wantErr: "suggestions.rate_per_second"},
		{name: "template without placeholder", mutate: func(c *Config) { c.Search.EngineURL = "https://x.test/" }, wantErr: "search.engine_url"},
		{name: "debounce too long", mutate: func(c *Config) { c.Search.DebounceMs = 6000 }, wantErr: "search.debounce_ms"},
		{name: "http extension endpoint", mutate: func(c *Config) { c.Extension.Endpoint = "http://127.0.0.1/ext" }, wantErr: "extension.endpoint"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchema_DescribesSections(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)

	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, section := range []string{"server", "storage", "suggestions", "search", "extension", "logging"} {
		assert.Contains(t, doc.Properties, section)
	}
}
