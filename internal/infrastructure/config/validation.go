package config

import (
	"fmt"
	"net"
	"strings"

	domainvalidation "github.com/bnema/newtab/internal/domain/validation"
)

// validateConfig performs validation of configuration values
func validateConfig(cfg *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateServer(cfg)...)
	validationErrors = append(validationErrors, validateStorage(cfg)...)
	validationErrors = append(validationErrors, validateSuggestions(cfg)...)
	validationErrors = append(validationErrors, validateSearch(cfg)...)
	validationErrors = append(validationErrors, validateExtension(cfg)...)
	validationErrors = append(validationErrors, validateLogging(cfg)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateServer(cfg *Config) []string {
	var errs []string
	if _, _, err := net.SplitHostPort(cfg.Server.Listen); err != nil {
		errs = append(errs, "server.listen must be host:port")
	}
	if cfg.Server.ShutdownTimeoutMs < 0 {
		errs = append(errs, "server.shutdown_timeout_ms must be non-negative")
	}
	return errs
}

func validateStorage(cfg *Config) []string {
	switch cfg.Storage.Backend {
	case StorageBackendSQLite, StorageBackendJSON:
		return nil
	default:
		return []string{"storage.backend must be sqlite or json"}
	}
}

func validateSuggestions(cfg *Config) []string {
	s := cfg.Suggestions
	errs := domainvalidation.ValidateAbsoluteURL("suggestions.provider_url", s.ProviderURL, "http", "https")
	if s.TimeoutMs <= 0 {
		errs = append(errs, "suggestions.timeout_ms must be positive")
	}
	if s.CacheSize < 0 {
		errs = append(errs, "suggestions.cache_size must be non-negative")
	}
	if s.CacheTTLSeconds < 0 {
		errs = append(errs, "suggestions.cache_ttl_seconds must be non-negative")
	}
	if s.RatePerSecond < 0 {
		errs = append(errs, "suggestions.rate_per_second must be non-negative")
	}
	if s.Burst < 0 {
		errs = append(errs, "suggestions.burst must be non-negative")
	}
	return errs
}

func validateSearch(cfg *Config) []string {
	errs := domainvalidation.ValidateSearchTemplate("search.engine_url", cfg.Search.EngineURL)
	if cfg.Search.DebounceMs < 0 || cfg.Search.DebounceMs > 5000 {
		errs = append(errs, "search.debounce_ms must be between 0 and 5000")
	}
	return errs
}

func validateExtension(cfg *Config) []string {
	errs := domainvalidation.ValidateAbsoluteURL("extension.endpoint", cfg.Extension.Endpoint, "ws", "wss")
	if cfg.Extension.PageURL != "" && !strings.Contains(cfg.Extension.PageURL, ":") {
		errs = append(errs, "extension.page_url must be an absolute URL")
	}
	return errs
}

func validateLogging(cfg *Config) []string {
	var errs []string
	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, "logging.level must be one of trace, debug, info, warn, error")
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, "logging.format must be console or json")
	}
	if cfg.Logging.EnableFileLog && cfg.Logging.MaxSizeMB <= 0 {
		errs = append(errs, "logging.max_size_mb must be positive when file logging is enabled")
	}
	return errs
}
