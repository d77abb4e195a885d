package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rbxts-luau/rbxts-luau/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect rbxts-luau tool settings",
	Long: `Inspect the user-level tool settings.

Settings are read from $XDG_CONFIG_HOME/rbxts-luau/config.yaml (or --config)
and RBXTS_LUAU_* environment variables, e.g. RBXTS_LUAU_TOOLS_WALLY.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	settings := config.DefaultSettings()
	if d.Settings != nil {
		settings = *d.Settings
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := config.SettingsPath(config.SettingsOptions{ConfigFile: cfgFile})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
