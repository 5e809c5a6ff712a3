// Package cmd provides Cobra CLI commands for newtab.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/cli"
	"github.com/bnema/newtab/internal/domain/build"
)

// annotationLogStderr marks commands whose logs are mirrored on stderr.
const annotationLogStderr = "newtab/log-stderr"

var (
	app       *cli.App
	buildInfo build.Info
	configDir string
	rootCmd   = &cobra.Command{
		Use:   "newtab",
		Short: "A minimal new tab page with search suggestions",
		Long: `newtab - a minimal browser new tab page.

A clock, a search bar with live suggestions, shortcut tiles and quick notes.
The page runs in the terminal ('newtab start') or in a browser served by
'newtab serve'. Browser extensions fetch suggestions through the extension
host so they never hit the provider directly.

Settings, shortcuts and notes are stored locally in SQLite or a JSON file
and are shared by every front-end.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "__complete":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigDir:   configDir,
				LogToStderr: cmd.Annotations[annotationLogStderr] == "true",
				BuildInfo:   buildInfo,
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeApp()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.toml (default $XDG_CONFIG_HOME/newtab)")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = closeApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
