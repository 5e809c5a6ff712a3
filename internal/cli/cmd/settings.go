package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/cli/styles"
	"github.com/bnema/newtab/internal/domain/entity"
)

var settingsYes bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change the page settings",
	Long: `The page settings (theme, clock, search, shortcut layout and widget
visibility) are shared by the terminal and browser front-ends. Fields are
addressed as section.field, using the names of 'newtab settings show'.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <section.field>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <section.field> <value>",
	Short: "Change one setting",
	Long: `Change one setting. The value is read as JSON when it parses, as a
plain string otherwise.

Examples:
  newtab settings set theme.mode light
  newtab settings set clock.showSeconds true
  newtab settings set clock.dateFormat iso`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Long:  `Restore every setting to its default. Notes are cleared; shortcuts are kept.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsGetCmd, settingsSetCmd, settingsResetCmd)
	settingsResetCmd.Flags().BoolVarP(&settingsYes, "yes", "y", false, "skip confirmation prompt")
}

// settingsFields flattens s into section.field keys. Notes are left out.
func settingsFields(s entity.Settings) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, err
	}

	fields := make(map[string]json.RawMessage)
	for section, raw := range sections {
		if section == "notes" {
			continue
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("failed to decode section %s: %w", section, err)
		}
		for field, value := range inner {
			fields[section+"."+field] = value
		}
	}
	return fields, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	fields, err := settingsFields(app.Settings().Get())
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderValues(keys, func(key string) any {
		return string(fields[key])
	}))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	fields, err := settingsFields(app.Settings().Get())
	if err != nil {
		return err
	}
	value, ok := fields[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Trim(string(value), `"`))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	store := app.Settings()
	current := store.Get()
	patch, err := current.PatchField(args[0], args[1])
	if err != nil {
		return err
	}
	if err := patch.ApplyTo(current).Validate(); err != nil {
		return err
	}
	next := store.Update(app.Ctx(), patch)

	fields, err := settingsFields(next)
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSet(args[0], string(fields[args[0]])))
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	return confirmAndRun(cmd.OutOrStdout(), app.Theme, settingsYes, "Restore the default settings?", func() (string, error) {
		app.Settings().Reset(app.Ctx())
		return app.Theme.SuccessStyle.Render(styles.IconCheck + " Settings restored to defaults"), nil
	})
}
