package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long:  `Display version, build info, storage location, repository URL, and contributors.`,
	RunE:  runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewAboutRenderer(app.Theme)
	storage := fmt.Sprintf("%s (%s)", app.Config.Storage.Path, app.Config.Storage.Backend)
	if keys, err := app.Store.Keys(app.Ctx()); err == nil {
		storage = fmt.Sprintf("%s (%s, %d keys)", app.Config.Storage.Path, app.Config.Storage.Backend, len(keys))
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(app.BuildInfo, storage, app.Config.Server.Listen))
	return nil
}
