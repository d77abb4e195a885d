package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rbxts-luau/rbxts-luau/internal/cli/wizard"
	"github.com/rbxts-luau/rbxts-luau/internal/core/project"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up Luau packaging for a roblox-ts project",
	Long: `Set up Luau packaging for the roblox-ts project at --root.

Reads package.json and tsconfig.json, asks for the wally username and package
name when they are not given as flags, then writes luau-config.json and the
generated manifests under <luau-dir>/dist. Does nothing when package.json or
tsconfig.json is missing.

Examples:
  rbxts-luau init
  rbxts-luau init --username alice --package-name signal --non-interactive`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("root", ".", "Project root directory")
	initCmd.Flags().SetNormalizeFunc(normalizeFlagName)
	initCmd.Flags().String("luau-dir", "", "Name of the Luau working directory (default \"luau\")")
	initCmd.Flags().String("package-name", "", "Package name (default: cleaned npm package name)")
	initCmd.Flags().String("username", "", "Wally username to publish under")
	initCmd.Flags().String("registry", "", "Wally registry URL (default: registry setting)")
	initCmd.Flags().Bool("non-interactive", false, "Never prompt; fail when the username is missing")
}

func runInit(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	root, err := filepath.Abs(getStringFlag(cmd, "root"))
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	registry := getStringFlag(cmd, "registry")
	if registry == "" && d.Settings != nil {
		registry = d.Settings.Registry
	}

	nonInteractive := getBoolFlag(cmd, "non-interactive") || d.Headless.IsHeadless()
	var prompter project.Prompter
	if !nonInteractive {
		prompter = d.Prompter
	}

	opts := project.InitOptions{
		Root:           root,
		LuauDir:        resolveLuauDir(getStringFlag(cmd, "luau-dir")),
		PackageName:    getStringFlag(cmd, "package-name"),
		Username:       getStringFlag(cmd, "username"),
		Registry:       registry,
		NonInteractive: nonInteractive,
	}

	result, err := project.NewInitializer(prompter, d.Logger).Init(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Initialization cancelled.")
			return nil
		}
		return fmt.Errorf("init: %w", err)
	}
	if result.Skipped {
		d.Logger.Debug("init skipped", "missing", result.Missing)
		return nil
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, d.Theme.Card("Initialized "+result.Config.Wally.PackageID(), result.CreatedFiles))

	if stdoutIsTerminal(out) {
		md, err := d.Theme.Markdown(nextSteps(opts.LuauDir), 80)
		if err != nil {
			d.Logger.Debug("render next steps", "error", err)
			return nil
		}
		_, _ = fmt.Fprint(out, md)
	}
	return nil
}

// nextSteps is the markdown panel shown after a successful init.
func nextSteps(luauDir string) string {
	return fmt.Sprintf(`## Next steps

1. Add a `+"`%[1]s/build.project.json`"+` Rojo project for the compiled model.
2. Run `+"`rbxts-luau build`"+` to compile and package.
3. Run `+"`rbxts-luau build --publish`"+` to publish to the registry.
`, luauDir)
}
