package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/app/api"
	"github.com/bnema/newtab/internal/cli"
	"github.com/bnema/newtab/internal/infrastructure/config"
	"github.com/bnema/newtab/internal/infrastructure/extension"
	"github.com/bnema/newtab/internal/logging"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the suggestion relay, the settings API and the extension host",
	Long: `Run the HTTP server used by browser front-ends.

Routes:
  GET  /api/suggestions?q=   suggestion relay (always 200, [] on failure)
  POST /api/search           resolve a submission to a navigation
  GET|PATCH /api/settings    settings document
  /api/shortcuts, /api/notes shortcut and note CRUD
  GET  /ext                  extension messaging (WebSocket)

The log level follows config.toml while the server runs.`,
	Annotations: map[string]string{annotationLogStderr: "true"},
	RunE:        runServe,
}

var extensionHostCmd = &cobra.Command{
	Use:   "extension-host",
	Short: "Run only the extension messaging host",
	Long: `Answer fetchSuggestions messages from browser extensions over
WebSocket on /ext, plus the suggestion relay. Nothing else is exposed.`,
	Annotations: map[string]string{annotationLogStderr: "true"},
	RunE:        runExtensionHost,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extensionHostCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "host:port to bind (default from config)")
	extensionHostCmd.Flags().StringVar(&serveListen, "listen", "", "host:port to bind (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	return serveWith(app, func(host *extension.Host) api.Deps {
		return api.Deps{
			Settings:  app.Settings(),
			Shortcuts: app.Shortcuts(),
			Notes:     app.Notes(),
			Search:    app.Search(),
			Provider:  app.Provider,
			Extension: host,
			Build:     app.BuildInfo,
		}
	})
}

func runExtensionHost(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	return serveWith(app, func(host *extension.Host) api.Deps {
		return api.Deps{
			Provider:  app.Provider,
			Extension: host,
			Build:     app.BuildInfo,
		}
	})
}

// serveWith runs an API server until SIGINT or SIGTERM.
func serveWith(app *cli.App, deps func(*extension.Host) api.Deps) error {
	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	router := extension.NewMessageRouter()
	if err := extension.RegisterSuggestionHandlers(router, app.Provider); err != nil {
		return fmt.Errorf("register extension handlers: %w", err)
	}
	host := extension.NewHost(ctx, router)
	defer func() { _ = host.Close() }()

	app.ConfigMgr.OnConfigChange(func(cfg *config.Config) {
		app.SetLogLevel(cfg.Logging.Level)
		log.Info().Str("level", cfg.Logging.Level).Msg("log level updated")
	})
	if err := app.ConfigMgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
	}

	addr := serveListen
	if addr == "" {
		addr = app.Config.Server.Listen
	}

	server := api.NewServer(logging.WithComponent(ctx, "api"), deps(host))
	if err := server.ListenAndServe(ctx, addr, app.Config.Server.ShutdownTimeout()); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
