package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/cli/styles"
	"github.com/bnema/newtab/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change config.toml: the server address, the storage backend,
the suggestion provider and logging. NEWTAB_* environment variables
override the file (NEWTAB_SERVER_LISTEN, NEWTAB_STORAGE_BACKEND, ...).`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every effective config value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one config value and save the file",
	Long: `Change one config value. The whole configuration is validated before
the file is written.

Examples:
  newtab config set storage.backend json
  newtab config set search.debounce_ms 150`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Describe every config key",
	Args:  cobra.NoArgs,
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configListCmd, configGetCmd, configSetCmd, configSchemaCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPath(app.ConfigMgr.ConfigFile()))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	mgr := app.ConfigMgr
	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderValues(mgr.Keys(), func(key string) any {
		v, _ := mgr.Value(key)
		return v
	}))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	v, ok := app.ConfigMgr.Value(args[0])
	if !ok {
		return fmt.Errorf("unknown config key %q", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	if err := app.ConfigMgr.Set(args[0], args[1]); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), renderer.RenderError(err))
		return err
	}
	v, _ := app.ConfigMgr.Value(args[0])
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSet(args[0], v))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderSchema(config.Schema()))
	return nil
}
