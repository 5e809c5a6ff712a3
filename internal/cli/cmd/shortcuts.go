package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/cli/styles"
)

var (
	shortcutName string
	shortcutURL  string
	shortcutYes  bool
)

var shortcutsCmd = &cobra.Command{
	Use:     "shortcuts",
	Aliases: []string{"sc"},
	Short:   "Manage the shortcut tiles",
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shortcuts in display order",
	Args:  cobra.NoArgs,
	RunE:  runShortcutsList,
}

var shortcutsAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a shortcut",
	Long: `Add a shortcut tile. URLs without a scheme get https://.

Examples:
  newtab shortcuts add "Go" go.dev`,
	Args: cobra.ExactArgs(2),
	RunE: runShortcutsAdd,
}

var shortcutsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a shortcut or change its URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runShortcutsUpdate,
}

var shortcutsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a shortcut",
	Long:  `Delete a shortcut. Deleting the last one hides the shortcut widget.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShortcutsDelete,
}

var shortcutsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default shortcut list",
	Long:  `Remove the stored shortcut list. The default list is written back in its place.`,
	Args:  cobra.NoArgs,
	RunE:  runShortcutsReset,
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)
	shortcutsCmd.AddCommand(shortcutsListCmd, shortcutsAddCmd, shortcutsUpdateCmd, shortcutsDeleteCmd, shortcutsResetCmd)
	shortcutsUpdateCmd.Flags().StringVar(&shortcutName, "name", "", "new name")
	shortcutsUpdateCmd.Flags().StringVar(&shortcutURL, "url", "", "new URL")
	shortcutsDeleteCmd.Flags().BoolVarP(&shortcutYes, "yes", "y", false, "skip confirmation prompt")
	shortcutsResetCmd.Flags().BoolVarP(&shortcutYes, "yes", "y", false, "skip confirmation prompt")
}

func runShortcutsList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	shortcuts := app.Shortcuts().List(app.Ctx())
	out := cmd.OutOrStdout()
	if len(shortcuts) == 0 {
		fmt.Fprintln(out, app.Theme.Subtle.Render("No shortcuts. Add one with `newtab shortcuts add <name> <url>`."))
		return nil
	}

	rows := make([]table.Row, 0, len(shortcuts))
	for _, sc := range shortcuts {
		rows = append(rows, table.Row{sc.ID, sc.Name, sc.URL})
	}
	fmt.Fprintln(out, app.Theme.RenderTable(styles.ShortcutTableColumns(), rows))
	return nil
}

func runShortcutsAdd(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	sc, err := app.Shortcuts().Add(app.Ctx(), usecase.AddShortcutInput{Name: args[0], URL: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Highlight.Render(sc.Name),
		app.Theme.Subtle.Render(sc.URL+" ("+sc.ID+")"),
	)
	return nil
}

func runShortcutsUpdate(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	uc := app.Shortcuts()
	current, err := uc.Get(app.Ctx(), args[0])
	if err != nil {
		return err
	}
	input := usecase.UpdateShortcutInput{ID: current.ID, Name: current.Name, URL: current.URL}
	if cmd.Flags().Changed("name") {
		input.Name = shortcutName
	}
	if cmd.Flags().Changed("url") {
		input.URL = shortcutURL
	}

	sc, err := uc.Update(app.Ctx(), input)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Highlight.Render(sc.Name),
		app.Theme.Subtle.Render(sc.URL),
	)
	return nil
}

func runShortcutsDelete(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	uc := app.Shortcuts()
	sc, err := uc.Get(app.Ctx(), args[0])
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Delete shortcut %q?", sc.Name)
	return confirmAndRun(cmd.OutOrStdout(), app.Theme, shortcutYes, question, func() (string, error) {
		if err := uc.Delete(app.Ctx(), sc.ID); err != nil {
			return "", err
		}
		return app.Theme.SuccessStyle.Render(styles.IconCheck + " Deleted " + sc.Name), nil
	})
}

func runShortcutsReset(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	question := "Replace all shortcuts with the defaults?"
	return confirmAndRun(cmd.OutOrStdout(), app.Theme, shortcutYes, question, func() (string, error) {
		shortcuts, err := app.Shortcuts().Reset(app.Ctx())
		if err != nil {
			return "", err
		}
		return app.Theme.SuccessStyle.Render(fmt.Sprintf("%s Restored %d default shortcut(s)", styles.IconCheck, len(shortcuts))), nil
	})
}
