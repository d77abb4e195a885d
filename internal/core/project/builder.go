package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/rbxts-luau/rbxts-luau/internal/config"
	"github.com/rbxts-luau/rbxts-luau/internal/defs"
	"github.com/rbxts-luau/rbxts-luau/internal/manifest"
	"github.com/rbxts-luau/rbxts-luau/internal/stage"
	"github.com/rbxts-luau/rbxts-luau/internal/toolchain"
	"github.com/rbxts-luau/rbxts-luau/internal/ui"
	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

// BuildOptions configures one build.
type BuildOptions struct {
	Root    string // Project root containing luau-config.json.
	LuauDir string // Luau working directory below Root. Defaults to "luau".
	Publish bool   // Publish the staged package after packaging.
}

// BuildResult summarizes a build.
type BuildResult struct {
	// Skipped is set when a required input file was missing.
	Skipped bool
	// Missing names the input file that caused the skip.
	Missing string
	// PackageName is the built package.
	PackageName string
	// Copied is the number of files staged.
	Copied int
	// Archive and Model are the produced artefacts.
	Archive string
	Model   string
	// Published reports whether wally publish ran.
	Published bool
}

// Builder compiles and packages a project.
type Builder interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// BuilderDeps are the collaborators of a Builder.
type BuilderDeps struct {
	Tools    toolchain.Tools
	Runner   toolchain.Runner // Nil uses the exec runner.
	Progress ui.Progress      // Required.
	Stdout   io.Writer        // Progress lines and compiler output. Nil means os.Stdout.
	Stderr   io.Writer        // Compiler diagnostics. Nil means os.Stderr.
	Logger   *slog.Logger
}

type projectBuilder struct {
	deps   BuilderDeps
	logger *slog.Logger
}

// NewBuilder creates a Builder with the given dependencies.
func NewBuilder(deps BuilderDeps) Builder {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &projectBuilder{deps: deps, logger: logger.With("module", "build")}
}

// Build regenerates wally.toml, compiles the project, stages the output and
// produces the wally archive and rojo model. A missing luau-config.json or
// build.project.json ends the build silently.
func (b *projectBuilder) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths := NewPaths(opts.Root, opts.LuauDir)

	cfg, ok, err := config.LoadProjectConfig(paths.Root)
	if err != nil {
		return nil, err
	}
	if !ok {
		b.logger.Debug("luau-config.json not found, skipping", "root", paths.Root)
		return &BuildResult{Skipped: true, Missing: defs.LuauConfigJSON}, nil
	}
	b.warnInvalid(cfg)

	pkg, ok, err := config.LoadPackageInfo(paths.Root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPackageJSONRequired
	}

	name := cfg.Wally.PackageName
	result := &BuildResult{PackageName: name}

	b.printLine("generating wally.toml...")
	if err := manifest.GenerateWallyToml(cfg.Wally, pkg.Version, filepath.Join(paths.DistPath, defs.WallyToml)); err != nil {
		return nil, err
	}

	if _, err := os.Stat(paths.BuildProjectFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.logger.Debug("build.project.json not found, skipping", "path", paths.BuildProjectFile)
			result.Skipped = true
			result.Missing = paths.Rel(paths.BuildProjectFile)
			return result, nil
		}
		return nil, fmt.Errorf("stat build project: %w", err)
	}
	b.logBuildProject(paths.BuildProjectFile)

	tc := toolchain.New(paths.Root, b.deps.Tools, b.deps.Runner, b.logger)

	if err := tc.Compile(ctx, paths.BuildProjectFile, toolchain.Streams{Stdout: b.deps.Stdout, Stderr: b.deps.Stderr}); err != nil {
		return nil, err
	}
	b.printLine("compiled " + name)

	b.printLine("copying output files...")
	layout := stage.Layout{
		Root:           paths.Root,
		CompilerOutDir: cfg.Build.OutDir,
		DistPath:       paths.DistPath,
		OutPath:        paths.OutPath,
		Dependencies:   slices.Sorted(maps.Keys(pkg.Dependencies)),
	}
	result.Copied, err = stage.Assemble(layout, func(p string) {
		b.printLine("emit " + p)
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(paths.ArtefactsPath, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create artefacts directory: %w", err)
	}

	result.Archive = paths.ArchivePath(name)
	if err := b.deps.Progress.Step("packaging "+name, func() error {
		return tc.Package(ctx, paths.OutPath, result.Archive, toolchain.Streams{})
	}); err != nil {
		return nil, err
	}

	result.Model = paths.ModelPath(name)
	if err := b.deps.Progress.Step("building model "+filepath.Base(result.Model), func() error {
		return tc.BuildModel(ctx, paths.BuildProjectFile, result.Model, toolchain.Streams{})
	}); err != nil {
		return nil, err
	}

	if opts.Publish {
		if err := b.deps.Progress.Step("publishing "+cfg.Wally.PackageID(), func() error {
			return tc.Publish(ctx, paths.OutPath, toolchain.Streams{})
		}); err != nil {
			return nil, err
		}
		result.Published = true
	}

	b.logger.Info("build complete", "package", name, "copied", result.Copied)
	return result, nil
}

// warnInvalid logs validation problems without failing the build.
func (b *projectBuilder) warnInvalid(cfg models.ProjectConfig) {
	err := config.ValidateProjectConfig(cfg)
	if err == nil {
		return
	}
	var verrs *config.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs.Errors {
			b.logger.Warn("invalid luau-config.json", "field", ve.Field, "problem", ve.Message)
		}
		return
	}
	b.logger.Warn("invalid luau-config.json", "error", err)
}

// logBuildProject reports the name of the build project file. A parse
// failure is only logged since the compiler reads the file itself.
func (b *projectBuilder) logBuildProject(path string) {
	rf, err := manifest.ReadRojoFile(path)
	if err != nil {
		b.logger.Warn("unreadable build project", "path", path, "error", err)
		return
	}
	b.logger.Debug("using build project", "name", rf.Name, "path", path)
}

func (b *projectBuilder) printLine(line string) {
	_, _ = fmt.Fprintln(b.deps.Stdout, line)
}
