// Package config loads the newtab process configuration from
// $XDG_CONFIG_HOME/newtab/config.toml and NEWTAB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const configFileName = "config.toml"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	dir            string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
	reloadDelay    time.Duration
}

// NewManager creates a manager for the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerForDir(configDir)
}

// NewManagerForDir creates a manager reading config.toml from dir.
func NewManagerForDir(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// NEWTAB_SERVER_LISTEN, NEWTAB_STORAGE_BACKEND, ...
	v.SetEnvPrefix("NEWTAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "NEWTAB_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind NEWTAB_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "NEWTAB_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind NEWTAB_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:       v,
		dir:         dir,
		reloadDelay: defaultReloadDelay,
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.reload(false)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.path(), err)
	}

	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.dir,
			err,
		)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// reload rebuilds m.config from viper. Must be called with m.mu held.
func (m *Manager) reload(reread bool) error {
	if reread {
		if err := m.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.path(),
			err,
		)
	}
	normalizeConfig(cfg)
	if err := ensureStoragePath(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func ensureStoragePath(cfg *Config) error {
	if cfg.Storage.Path != "" {
		return nil
	}
	path, err := DefaultStoragePath(cfg.Storage.Backend)
	if err != nil {
		return fmt.Errorf("failed to get storage path: %w", err)
	}
	cfg.Storage.Path = path
	return nil
}

func normalizeConfig(cfg *Config) {
	switch StorageBackend(strings.ToLower(strings.TrimSpace(string(cfg.Storage.Backend)))) {
	case StorageBackendJSON:
		cfg.Storage.Backend = StorageBackendJSON
	default:
		cfg.Storage.Backend = StorageBackendSQLite
	}

	cfg.Server.Listen = strings.TrimSpace(cfg.Server.Listen)
	cfg.Search.EngineURL = strings.TrimSpace(cfg.Search.EngineURL)
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if cfg.Logging.LogDir == "" {
		if dir, err := GetLogDir(); err == nil {
			cfg.Logging.LogDir = dir
		}
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Keys lists every configuration key in dotted form.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := m.viper.AllKeys()
	slices.Sort(keys)
	return keys
}

// Value returns the effective value of key.
func (m *Manager) Value(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key = strings.ToLower(key)
	if !slices.Contains(m.viper.AllKeys(), key) {
		return nil, false
	}
	return m.viper.Get(key), true
}

// Set assigns value to key, validates the result and writes the file.
func (m *Manager) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key = strings.ToLower(key)
	if !slices.Contains(m.viper.AllKeys(), key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	previous := m.viper.Get(key)
	m.viper.Set(key, value)
	cfg, err := m.decode()
	if err != nil {
		m.viper.Set(key, previous)
		return err
	}
	return m.writeLocked(cfg)
}

// Save validates cfg and writes it to disk.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return m.writeLocked(cfg)
}

func (m *Manager) writeLocked(cfg *Config) error {
	if err := WriteConfigOrdered(cfg, m.path()); err != nil {
		return err
	}
	if m.watching {
		m.skipNextReload = true
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reread config: %w", err)
	}
	configCopy := *cfg
	m.config = &configCopy
	return nil
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.path()
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, configFileName)
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	if err := WriteConfigOrdered(DefaultConfig(), m.path()); err != nil {
		return err
	}
	if err := GenerateSchemaFile(m.dir); err != nil {
		return err
	}
	return nil
}
