package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rbxts-luau/rbxts-luau/pkg/version"
)

// Global flags.
var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rbxts-luau",
	Short: "Package roblox-ts projects as Luau libraries",
	Long: `rbxts-luau turns a roblox-ts project into a distributable Luau package.

It generates the wally.toml and Rojo project manifests, compiles the project
with rbxtsc, stages the Luau output together with the runtime library and
npm dependencies, and produces a wally archive and a Rojo model.

Typical use:
  rbxts-luau init       Write luau-config.json and the package manifests
  rbxts-luau build      Compile, stage and package the project`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if deps != nil {
			return nil
		}
		return InitDependencies(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $XDG_CONFIG_HOME/rbxts-luau/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. Interrupts cancel the command context, which
// stops running tools and watch mode.
func Execute() error {
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.GetFullVersion()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

// flagAliases maps the camelCase and --root-path spellings accepted by
// earlier releases to the canonical flag names.
var flagAliases = map[string]string{
	"root-path":      "root",
	"rootPath":       "root",
	"luauDir":        "luau-dir",
	"packageName":    "package-name",
	"nonInteractive": "non-interactive",
}

// normalizeFlagName resolves flagAliases.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
