package config

import "time"

// StorageBackend selects where settings and shortcuts are persisted.
type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendJSON   StorageBackend = "json"
)

// Config is the process configuration of newtab. It covers the server,
// persistence and the suggestion pipeline; the user-facing page settings
// live in the key-value store instead.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" toml:"server" json:"server"`
	Storage     StorageConfig     `mapstructure:"storage" toml:"storage" json:"storage"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions" toml:"suggestions" json:"suggestions"`
	Search      SearchConfig      `mapstructure:"search" toml:"search" json:"search"`
	Extension   ExtensionConfig   `mapstructure:"extension" toml:"extension" json:"extension"`
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging" json:"logging"`
}

// ServerConfig configures the HTTP server that serves the relay, the
// settings API and the extension host.
type ServerConfig struct {
	Listen            string `mapstructure:"listen" toml:"listen" json:"listen" jsonschema:"description=host:port the server binds to,default=127.0.0.1:8787"`
	ShutdownTimeoutMs int    `mapstructure:"shutdown_timeout_ms" toml:"shutdown_timeout_ms" json:"shutdown_timeout_ms" jsonschema:"minimum=0"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=sqlite,enum=json"`
	// Path of the database or JSON file. Empty selects a file in the XDG data directory.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// SuggestionsConfig configures the upstream autocomplete provider.
type SuggestionsConfig struct {
	ProviderURL     string  `mapstructure:"provider_url" toml:"provider_url" json:"provider_url"`
	TimeoutMs       int     `mapstructure:"timeout_ms" toml:"timeout_ms" json:"timeout_ms" jsonschema:"minimum=1"`
	CacheSize       int     `mapstructure:"cache_size" toml:"cache_size" json:"cache_size" jsonschema:"minimum=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" toml:"cache_ttl_seconds" json:"cache_ttl_seconds" jsonschema:"minimum=0"`
	RatePerSecond   float64 `mapstructure:"rate_per_second" toml:"rate_per_second" json:"rate_per_second" jsonschema:"minimum=0"`
	Burst           int     `mapstructure:"burst" toml:"burst" json:"burst" jsonschema:"minimum=0"`
}

// SearchConfig configures query submission.
type SearchConfig struct {
	// EngineURL is a URL template with a %s placeholder for the escaped query.
	EngineURL  string `mapstructure:"engine_url" toml:"engine_url" json:"engine_url"`
	DebounceMs int    `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" jsonschema:"minimum=0,maximum=5000"`
}

// ExtensionConfig configures the extension messaging channel.
type ExtensionConfig struct {
	// Endpoint is the WebSocket URL the extension transport dials.
	Endpoint string `mapstructure:"endpoint" toml:"endpoint" json:"endpoint"`
	// PageURL is the page URL the terminal front-end pretends to run at.
	// Empty runs suggestions in process.
	PageURL string `mapstructure:"page_url" toml:"page_url" json:"page_url"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days"`
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func (c SuggestionsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c SuggestionsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
