// Package cli wires the newtab dependencies for the Cobra commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/cli/styles"
	"github.com/bnema/newtab/internal/domain/build"
	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/repository"
	"github.com/bnema/newtab/internal/infrastructure/browser"
	"github.com/bnema/newtab/internal/infrastructure/config"
	"github.com/bnema/newtab/internal/infrastructure/persistence/jsonfile"
	"github.com/bnema/newtab/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/newtab/internal/infrastructure/suggest"
	"github.com/bnema/newtab/internal/logging"
)

// Options tune NewApp.
type Options struct {
	// ConfigDir overrides the XDG config directory.
	ConfigDir string
	// LogToStderr mirrors logs on stderr, for long-running commands.
	LogToStderr bool
	BuildInfo   build.Info
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	ConfigMgr *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	Store     repository.KeyValueRepository
	Navigator port.Navigator
	Provider  *suggest.GoogleProvider

	settings     *usecase.SettingsStore
	settingsOnce sync.Once
	shortcuts    *usecase.ManageShortcutsUseCase
	notes        *usecase.ManageNotesUseCase
	search       *usecase.SubmitSearchUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
	closers    []func() error
}

// NewApp loads the configuration and creates the application dependencies.
// Storage is opened lazily on first use.
func NewApp(opts Options) (*App, error) {
	var (
		mgr *config.Manager
		err error
	)
	if opts.ConfigDir != "" {
		mgr, err = config.NewManagerForDir(opts.ConfigDir)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("NEWTAB_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	// The logger passes everything; the global level filters so that a
	// config reload can change it.
	zerolog.SetGlobalLevel(logging.ParseLevel(logLevel))
	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: zerolog.TraceLevel, Format: cfg.Logging.Format, TimeFormat: "15:04:05"},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			LogDir:        cfg.Logging.LogDir,
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxBackups:    cfg.Logging.MaxBackups,
			MaxAgeDays:    cfg.Logging.MaxAgeDays,
			WriteToStderr: opts.LogToStderr,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	ctx := logging.WithContext(context.Background(), logger)

	a := &App{
		Config:     cfg,
		ConfigMgr:  mgr,
		Theme:      styles.NewTheme(entity.DefaultSettings()),
		BuildInfo:  opts.BuildInfo,
		Navigator:  browser.NewNavigator(),
		ctx:        ctx,
		logCleanup: logCleanup,
	}

	if err := a.openStore(); err != nil {
		logCleanup()
		return nil, err
	}

	a.Provider = suggest.NewGoogleProvider(suggest.ProviderConfig{
		BaseURL:       cfg.Suggestions.ProviderURL,
		Timeout:       cfg.Suggestions.Timeout(),
		CacheSize:     cfg.Suggestions.CacheSize,
		CacheTTL:      cfg.Suggestions.CacheTTL(),
		RatePerSecond: cfg.Suggestions.RatePerSecond,
		Burst:         cfg.Suggestions.Burst,
		UserAgent:     opts.BuildInfo.UserAgent(),
	})

	logger.Debug().
		Str("config", mgr.ConfigFile()).
		Str("storage", string(cfg.Storage.Backend)).
		Str("path", cfg.Storage.Path).
		Msg("app initialized")
	return a, nil
}

func (a *App) openStore() error {
	switch a.Config.Storage.Backend {
	case config.StorageBackendJSON:
		store := jsonfile.NewStore(a.Config.Storage.Path)
		a.Store = store
		a.closers = append(a.closers, store.Close)
	case config.StorageBackendSQLite:
		lazy := sqlite.NewLazyDB(a.Config.Storage.Path)
		a.Store = sqlite.NewLazyKeyValueRepository(lazy)
		a.closers = append(a.closers, lazy.Close)
	default:
		return fmt.Errorf("unknown storage backend %q", a.Config.Storage.Backend)
	}
	return nil
}

// Settings returns the settings store, hydrating it on first call. The
// theme follows the stored appearance from then on.
func (a *App) Settings() *usecase.SettingsStore {
	a.settingsOnce.Do(func() {
		a.settings = usecase.NewSettingsStore(a.Store)
		a.Theme = styles.NewTheme(a.settings.Load(a.ctx))
		a.shortcuts = usecase.NewManageShortcutsUseCase(a.Store, a.settings)
		a.notes = usecase.NewManageNotesUseCase(a.settings)
		a.search = usecase.NewSubmitSearchUseCase(a.settings, a.Navigator, a.Config.Search.EngineURL)
	})
	return a.settings
}

// Shortcuts returns the shortcut use case.
func (a *App) Shortcuts() *usecase.ManageShortcutsUseCase {
	a.Settings()
	return a.shortcuts
}

// Notes returns the notes use case.
func (a *App) Notes() *usecase.ManageNotesUseCase {
	a.Settings()
	return a.notes
}

// Search returns the submit use case.
func (a *App) Search() *usecase.SubmitSearchUseCase {
	a.Settings()
	return a.search
}

// Suggestions builds the fetch use case for a page served from pageURL.
// An empty pageURL fetches in process.
func (a *App) Suggestions(pageURL string) (*usecase.FetchSuggestionsUseCase, error) {
	transport, err := suggest.SelectTransport(a.ctx, suggest.TransportConfig{
		PageURL:           pageURL,
		ExtensionEndpoint: a.Config.Extension.Endpoint,
		Timeout:           a.Config.Suggestions.Timeout(),
		Provider:          a.Provider,
	})
	if err != nil {
		return nil, fmt.Errorf("select suggestion transport: %w", err)
	}
	if c, ok := transport.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}
	return usecase.NewFetchSuggestionsUseCase(transport), nil
}

// SetLogLevel changes the level of every logger of the process.
func (a *App) SetLogLevel(level string) {
	zerolog.SetGlobalLevel(logging.ParseLevel(level))
}

// Close releases all resources.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
	return firstErr
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
