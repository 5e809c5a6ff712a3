package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/cli/model"
)

var startPageURL string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the new tab page in the terminal",
	Long: `Show the clock, search bar, shortcuts and notes in a full-screen
terminal page. Typing fetches suggestions; enter searches or opens the
address; tab moves between the search bar and the shortcut tiles.

Suggestions are fetched in process unless --page-url (or extension.page_url
in config.toml) names a page origin, in which case the matching relay or
extension transport is used.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&startPageURL, "page-url", "", "pretend the page was loaded from this URL")
}

func runStart(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	pageURL := startPageURL
	if pageURL == "" {
		pageURL = app.Config.Extension.PageURL
	}
	fetch, err := app.Suggestions(pageURL)
	if err != nil {
		return err
	}

	m := model.NewStartPageModel(app.Ctx(), model.StartPageConfig{
		Settings:    app.Settings(),
		Shortcuts:   app.Shortcuts(),
		Suggestions: fetch,
		Search:      app.Search(),
		Navigator:   app.Navigator,
		Debounce:    app.Config.Search.Debounce(),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(app.Ctx()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("start page failed: %w", err)
	}
	return nil
}
