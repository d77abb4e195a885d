package cli

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rbxts-luau/rbxts-luau/internal/config"
	"github.com/rbxts-luau/rbxts-luau/internal/core/project"
	"github.com/rbxts-luau/rbxts-luau/internal/toolchain"
	"github.com/rbxts-luau/rbxts-luau/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile and package the project as a Luau library",
	Long: `Compile the roblox-ts project and package the result.

Regenerates <luau-dir>/dist/wally.toml, compiles with rbxtsc against
<luau-dir>/build.project.json, stages the Luau output in <luau-dir>/out and
writes the wally archive and Rojo model to <luau-dir>/artefacts.
Does nothing when luau-config.json or build.project.json is missing.

With --watch the build reruns whenever sources change, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("root", ".", "Project root directory")
	buildCmd.Flags().SetNormalizeFunc(normalizeFlagName)
	buildCmd.Flags().String("luau-dir", "", "Name of the Luau working directory (default \"luau\")")
	buildCmd.Flags().Bool("publish", false, "Publish the package with wally after building")
	buildCmd.Flags().Bool("watch", false, "Rebuild when source files change")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}

	root, err := filepath.Abs(getStringFlag(cmd, "root"))
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	opts := project.BuildOptions{
		Root:    root,
		LuauDir: resolveLuauDir(getStringFlag(cmd, "luau-dir")),
		Publish: getBoolFlag(cmd, "publish"),
	}

	builder := project.NewBuilder(project.BuilderDeps{
		Tools:    toolsFromSettings(d.Settings),
		Runner:   d.Runner,
		Progress: d.Progress,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Logger:   d.Logger,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, buildErr := builder.Build(ctx, opts)
	if !getBoolFlag(cmd, "watch") {
		return buildErr
	}
	if buildErr != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "build failed: %v\n", buildErr)
	}
	return watchAndRebuild(ctx, cmd, builder, opts)
}

// watchAndRebuild reruns the build on source changes until ctx is done.
func watchAndRebuild(ctx context.Context, cmd *cobra.Command, builder project.Builder, opts project.BuildOptions) error {
	d := deps

	w, err := watch.New(watch.Config{
		Root:   opts.Root,
		Ignore: watchIgnores(opts.Root, opts.LuauDir),
		OnChange: func(ctx context.Context, changed []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rebuilding (%d changed)...\n", len(changed))
			_, err := builder.Build(ctx, opts)
			return err
		},
	}, d.Logger)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "watching for changes...")
	return w.Run(ctx)
}

// watchIgnores keeps build outputs from retriggering the build: the Luau
// working directory and the compiler output directory.
func watchIgnores(root, luauDir string) []string {
	ignores := []string{path.Join(filepath.ToSlash(luauDir), "**")}
	cfg, ok, err := config.LoadProjectConfig(root)
	if err == nil && ok && cfg.Build.OutDir != "" {
		ignores = append(ignores, path.Join(path.Clean(filepath.ToSlash(cfg.Build.OutDir)), "**"))
	}
	return ignores
}

func toolsFromSettings(s *config.Settings) toolchain.Tools {
	if s == nil {
		return toolchain.DefaultTools()
	}
	return toolchain.Tools{
		Compiler: s.Tools.Compiler,
		Wally:    s.Tools.Wally,
		Rojo:     s.Tools.Rojo,
	}
}
