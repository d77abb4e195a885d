package toolchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Tools names the executables used by the pipeline.
type Tools struct {
	Compiler string
	Wally    string
	Rojo     string
}

// DefaultTools resolves every tool through PATH.
func DefaultTools() Tools {
	return Tools{Compiler: "rbxtsc", Wally: "wally", Rojo: "rojo"}
}

// Streams receive a tool's output. A nil writer discards output; a nil
// Stderr is captured into the returned error instead.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Toolchain runs the pipeline tools from a project root.
type Toolchain struct {
	root   string
	tools  Tools
	runner Runner
	logger *slog.Logger
}

// New creates a Toolchain. Empty tool names fall back to DefaultTools.
func New(root string, tools Tools, runner Runner, logger *slog.Logger) *Toolchain {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	defaults := DefaultTools()
	if tools.Compiler == "" {
		tools.Compiler = defaults.Compiler
	}
	if tools.Wally == "" {
		tools.Wally = defaults.Wally
	}
	if tools.Rojo == "" {
		tools.Rojo = defaults.Rojo
	}
	return &Toolchain{
		root:   root,
		tools:  tools,
		runner: runner,
		logger: logger.With("module", "toolchain"),
	}
}

// CompileArgs returns the compiler arguments for a model build.
func CompileArgs(projectPath string) []string {
	return []string{"--verbose", "--type=model", "--rojo=" + projectPath}
}

// PackageArgs returns the wally arguments that archive the staging tree.
func PackageArgs(projectPath, archivePath string) []string {
	return []string{"package", "--project-path", projectPath, "--output", archivePath}
}

// BuildModelArgs returns the rojo arguments that build the model file.
func BuildModelArgs(projectPath, modelPath string) []string {
	return []string{"build", projectPath, "--output", modelPath}
}

// PublishArgs returns the wally arguments that publish the staging tree.
func PublishArgs(projectPath string) []string {
	return []string{"publish", "--project-path", projectPath}
}

// Compile runs the roblox-ts compiler against the build project file.
func (t *Toolchain) Compile(ctx context.Context, projectPath string, s Streams) error {
	if err := t.run(ctx, t.tools.Compiler, CompileArgs(projectPath), s); err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	return nil
}

// Package archives the staging tree with wally.
func (t *Toolchain) Package(ctx context.Context, outPath, archivePath string, s Streams) error {
	if err := t.run(ctx, t.tools.Wally, PackageArgs(outPath, archivePath), s); err != nil {
		return fmt.Errorf("package: %w", err)
	}
	return nil
}

// BuildModel builds the model file with rojo.
func (t *Toolchain) BuildModel(ctx context.Context, projectPath, modelPath string, s Streams) error {
	if err := t.run(ctx, t.tools.Rojo, BuildModelArgs(projectPath, modelPath), s); err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	return nil
}

// Publish publishes the staging tree to the wally registry.
func (t *Toolchain) Publish(ctx context.Context, outPath string, s Streams) error {
	if err := t.run(ctx, t.tools.Wally, PublishArgs(outPath), s); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (t *Toolchain) run(ctx context.Context, name string, args []string, s Streams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := Command{
		Name:   name,
		Args:   args,
		Dir:    t.root,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	}
	t.logger.Debug("running tool", "command", cmd.String(), "dir", cmd.Dir)
	return t.runner.Run(ctx, cmd)
}
