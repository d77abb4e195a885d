package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/rbxts-luau/rbxts-luau/internal/config"
	"github.com/rbxts-luau/rbxts-luau/internal/defs"
	"github.com/rbxts-luau/rbxts-luau/internal/manifest"
	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

// Identity is the publishing identity of a package.
type Identity struct {
	Username    string
	PackageName string
}

// Prompter asks the user for the identity fields missing from known.
// defaultPackageName pre-fills the package name prompt.
type Prompter interface {
	Prompt(ctx context.Context, known Identity, defaultPackageName string) (Identity, error)
}

// InitOptions configures the project initialization.
type InitOptions struct {
	Root           string // Project root containing package.json and tsconfig.json.
	LuauDir        string // Luau working directory below Root. Defaults to "luau".
	PackageName    string // Package name; prompted for when empty.
	Username       string // Publishing username; prompted for when empty.
	Registry       string // Registry URL. Defaults to defs.DefaultRegistry.
	NonInteractive bool   // Never prompt; missing values are errors.
}

// InitResult summarizes the outcome of project initialization.
type InitResult struct {
	// Skipped is set when a required input file was missing and nothing was written.
	Skipped bool
	// Missing names the input file that caused the skip.
	Missing string
	// Config is the written project configuration.
	Config models.ProjectConfig
	// CreatedFiles lists written files relative to the root.
	CreatedFiles []string
}

// Initializer sets up a roblox-ts project for Luau packaging.
type Initializer interface {
	Init(ctx context.Context, opts InitOptions) (*InitResult, error)
}

type projectInitializer struct {
	prompter Prompter // May be nil when prompting is unavailable.
	logger   *slog.Logger
}

// NewInitializer creates an Initializer with the given dependencies.
func NewInitializer(prompter Prompter, logger *slog.Logger) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &projectInitializer{
		prompter: prompter,
		logger:   logger.With("module", "init"),
	}
}

// Init writes luau-config.json, dist/default.project.json and dist/wally.toml.
// A missing package.json or tsconfig.json ends initialization silently.
func (i *projectInitializer) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths := NewPaths(opts.Root, opts.LuauDir)

	pkg, ok, err := config.LoadPackageInfo(paths.Root)
	if err != nil {
		return nil, err
	}
	if !ok {
		i.logger.Debug("package.json not found, skipping", "root", paths.Root)
		return &InitResult{Skipped: true, Missing: defs.PackageJSON}, nil
	}

	tsconfig, ok, err := config.LoadTSConfig(paths.Root)
	if err != nil {
		return nil, err
	}
	if !ok {
		i.logger.Debug("tsconfig.json not found, skipping", "root", paths.Root)
		return &InitResult{Skipped: true, Missing: defs.TSConfigJSON}, nil
	}

	if err := os.MkdirAll(paths.DistPath, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create dist directory: %w", err)
	}

	id, err := i.resolveIdentity(ctx, opts, pkg)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == "" {
		registry = defs.DefaultRegistry
	}

	cfg := models.ProjectConfig{
		Wally: models.ProjectWallyConfig{
			Username:    id.Username,
			PackageName: id.PackageName,
			License:     pkg.License,
			Registry:    registry,
			Authors:     []string{id.Username},
			Realm:       models.RealmShared,
			Description: pkg.Description,
		},
		Build: models.BuildConfig{
			OutDir: tsconfig.CompilerOptions.OutDir,
		},
	}
	i.logger.Info("initializing package", "package", cfg.Wally.PackageID(), "root", paths.Root)

	result := &InitResult{Config: cfg}

	if err := config.SaveProjectConfig(paths.Root, cfg); err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles, paths.Rel(paths.ConfigFile))

	rojoPath := filepath.Join(paths.DistPath, defs.DefaultProjectJSON)
	if err := manifest.WriteRelaxedJSON(rojoPath, manifest.NewRojoFile(id.PackageName)); err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles, paths.Rel(rojoPath))

	wallyPath := filepath.Join(paths.DistPath, defs.WallyToml)
	if err := manifest.GenerateWallyToml(cfg.Wally, pkg.Version, wallyPath); err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles, paths.Rel(wallyPath))

	return result, nil
}

// resolveIdentity combines flag values with prompted answers. Without a
// prompter the package name falls back to the cleaned npm name.
func (i *projectInitializer) resolveIdentity(ctx context.Context, opts InitOptions, pkg config.PackageInfo) (Identity, error) {
	known := Identity{
		Username:    norm.NFC.String(opts.Username),
		PackageName: norm.NFC.String(opts.PackageName),
	}
	defaultName := known.PackageName
	if defaultName == "" {
		defaultName = norm.NFC.String(CleanPackageName(pkg.Name))
	}

	id := known
	if known.Username == "" || known.PackageName == "" {
		if opts.NonInteractive || i.prompter == nil {
			if known.Username == "" {
				return Identity{}, ErrUsernameRequired
			}
			id.PackageName = defaultName
		} else {
			answered, err := i.prompter.Prompt(ctx, known, defaultName)
			if err != nil {
				return Identity{}, err
			}
			id = answered
		}
	}

	if id.Username == "" {
		return Identity{}, ErrUsernameRequired
	}
	if id.PackageName == "" {
		return Identity{}, ErrPackageNameRequired
	}
	if err := config.ValidatePackageName(id.PackageName); err != nil {
		return Identity{}, fmt.Errorf("package name %q: %w", id.PackageName, err)
	}
	return id, nil
}
