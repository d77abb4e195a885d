// Package cli provides the Cobra command tree of rbxts-luau and the
// dependency wiring shared by its commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/rbxts-luau/rbxts-luau/internal/cli/wizard"
	"github.com/rbxts-luau/rbxts-luau/internal/config"
	"github.com/rbxts-luau/rbxts-luau/internal/core/project"
	"github.com/rbxts-luau/rbxts-luau/internal/defs"
	"github.com/rbxts-luau/rbxts-luau/internal/toolchain"
	"github.com/rbxts-luau/rbxts-luau/internal/ui"
	"github.com/rbxts-luau/rbxts-luau/pkg/version"
)

// Dependencies holds the services used by CLI commands. It is built once per
// process; tests replace it with SetDeps.
type Dependencies struct {
	Settings     *config.Settings
	SettingsPath string // Settings file read, or "" when defaults were used.
	Logger       *slog.Logger
	Theme        *ui.Theme
	Headless     *ui.HeadlessManager
	Progress     ui.Progress
	Runner       toolchain.Runner
	Prompter     project.Prompter
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies loads the tool settings and wires the logger, terminal
// helpers and toolchain runner. Log output goes to logOut.
func InitDependencies(logOut io.Writer) error {
	settings, path, err := config.LoadSettings(config.SettingsOptions{ConfigFile: cfgFile})
	if err != nil {
		return err
	}

	theme := ui.NewTheme(false)
	headless := ui.NewHeadlessManager()
	deps = &Dependencies{
		Settings:     settings,
		SettingsPath: path,
		Logger:       newLogger(logOut, settings.LogLevel, verbose),
		Theme:        theme,
		Headless:     headless,
		Progress:     ui.NewProgress(theme, headless),
		Runner:       toolchain.NewExecRunner(),
		Prompter:     &wizardPrompter{},
	}
	deps.Logger.Debug("settings loaded", "path", path, "version", version.GetVersion())
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// newLogger returns a slog.Logger backed by a charmbracelet/log handler.
// verbose forces debug level; an unknown level falls back to warn.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "rbxts-luau",
		Level:  lvl,
	})
	return slog.New(handler)
}

// wizardPrompter asks for missing identity fields with the interactive wizard.
type wizardPrompter struct {
	in  io.Reader
	out io.Writer
}

var _ project.Prompter = (*wizardPrompter)(nil)

// Prompt implements project.Prompter.
func (p *wizardPrompter) Prompt(ctx context.Context, known project.Identity, defaultPackageName string) (project.Identity, error) {
	start := wizard.Result{Username: known.Username, PackageName: known.PackageName}
	questions := wizard.Questions(start, defaultPackageName)
	if len(questions) == 0 {
		return known, nil
	}

	res, err := wizard.Run(ctx, questions, start, wizard.Options{Input: p.in, Output: p.out})
	if err != nil {
		return project.Identity{}, err
	}
	return project.Identity{Username: res.Username, PackageName: res.PackageName}, nil
}

// stdoutIsTerminal reports whether w is a terminal.
func stdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}

// resolveLuauDir picks the flag value, then the luau_dir setting.
func resolveLuauDir(flag string) string {
	if flag != "" {
		return flag
	}
	if deps != nil && deps.Settings != nil && deps.Settings.LuauDir != "" {
		return deps.Settings.LuauDir
	}
	return defs.DefaultLuauDir
}

func requireDeps() (*Dependencies, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies not initialized")
	}
	return deps, nil
}
