package config

// Default configuration constants
const (
	defaultListen            = "127.0.0.1:8787"
	defaultShutdownTimeoutMs = 5000

	defaultProviderURL     = "https://suggestqueries.google.com/complete/search"
	defaultTimeoutMs       = 5000
	defaultCacheSize       = 256
	defaultCacheTTLSeconds = 300
	defaultRatePerSecond   = 10.0
	defaultBurst           = 5

	defaultEngineURL  = "https://google.com/search?q=%s"
	defaultDebounceMs = 300

	defaultExtensionEndpoint = "ws://127.0.0.1:8787/ext"

	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 7
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:            defaultListen,
			ShutdownTimeoutMs: defaultShutdownTimeoutMs,
		},
		Storage: StorageConfig{
			Backend: StorageBackendSQLite,
		},
		Suggestions: SuggestionsConfig{
			ProviderURL:     defaultProviderURL,
			TimeoutMs:       defaultTimeoutMs,
			CacheSize:       defaultCacheSize,
			CacheTTLSeconds: defaultCacheTTLSeconds,
			RatePerSecond:   defaultRatePerSecond,
			Burst:           defaultBurst,
		},
		Search: SearchConfig{
			EngineURL:  defaultEngineURL,
			DebounceMs: defaultDebounceMs,
		},
		Extension: ExtensionConfig{
			Endpoint: defaultExtensionEndpoint,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("server.shutdown_timeout_ms", defaults.Server.ShutdownTimeoutMs)

	// Storage.Path is resolved in Load when empty
	m.viper.SetDefault("storage.backend", string(defaults.Storage.Backend))
	m.viper.SetDefault("storage.path", defaults.Storage.Path)

	m.viper.SetDefault("suggestions.provider_url", defaults.Suggestions.ProviderURL)
	m.viper.SetDefault("suggestions.timeout_ms", defaults.Suggestions.TimeoutMs)
	m.viper.SetDefault("suggestions.cache_size", defaults.Suggestions.CacheSize)
	m.viper.SetDefault("suggestions.cache_ttl_seconds", defaults.Suggestions.CacheTTLSeconds)
	m.viper.SetDefault("suggestions.rate_per_second", defaults.Suggestions.RatePerSecond)
	m.viper.SetDefault("suggestions.burst", defaults.Suggestions.Burst)

	m.viper.SetDefault("search.engine_url", defaults.Search.EngineURL)
	m.viper.SetDefault("search.debounce_ms", defaults.Search.DebounceMs)

	m.viper.SetDefault("extension.endpoint", defaults.Extension.Endpoint)
	m.viper.SetDefault("extension.page_url", defaults.Extension.PageURL)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
}
