package config

import (
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/bnema/newtab/internal/logging"
)

// Editors and os.WriteFile truncate before writing, so a single save emits
// several events and the first one can see an empty file.
const defaultReloadDelay = 100 * time.Millisecond

// Watch starts watching the config file for changes and reloads automatically.
// Bursts of events are collapsed into one reload.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	debounced := debounce.New(m.reloadDelay)
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.NewFromEnv()
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")
		debounced(func() { m.handleChange(e.Name) })
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

func (m *Manager) handleChange(file string) {
	log := logging.NewFromEnv()

	m.mu.Lock()

	// Our own write already updated m.config.
	if m.skipNextReload {
		m.skipNextReload = false
		m.notifyCallbacksLocked()
		return
	}

	if info, err := os.Stat(m.path()); err != nil || info.Size() == 0 {
		log.Debug().Str("file", file).Msg("config file empty or missing, keeping previous values")
		m.mu.Unlock()
		return
	}

	if err := m.reload(true); err != nil {
		log.Warn().Err(err).Msg("failed to reload config, keeping previous values")
		m.mu.Unlock()
		return
	}
	log.Info().Str("file", file).Msg("config reloaded")
	m.notifyCallbacksLocked()
}

// notifyCallbacksLocked copies callbacks and config, releases the lock, then
// notifies. Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	cfg := *m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		c := cfg
		callback(&c)
	}
}

// OnConfigChange registers a callback invoked after each reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}
