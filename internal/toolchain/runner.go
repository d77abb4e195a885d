// Package toolchain runs the external tools of the packaging pipeline:
// the roblox-ts compiler, wally and rojo.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrToolNotFound indicates the executable could not be resolved.
var ErrToolNotFound = errors.New("toolchain: executable not found")

// Command describes one subprocess invocation. Args are passed as-is; no
// shell is involved.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes commands. Implementations must report a non-zero exit as
// an error wrapping *exec.ExitError.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// lookPathFunc resolves an executable name. Replaced in tests.
type lookPathFunc func(name string) (string, error)

// execRunner implements Runner with os/exec.
type execRunner struct {
	lookPath lookPathFunc
}

// Compile-time interface compliance check.
var _ Runner = (*execRunner)(nil)

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() Runner {
	return &execRunner{lookPath: exec.LookPath}
}

// Run executes cmd and waits for it. Stderr is captured for the error message
// unless the caller streams it.
func (r *execRunner) Run(ctx context.Context, c Command) error {
	bin, err := r.lookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%s lookup: %w: %v", c.Name, ErrToolNotFound, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout

	var stderr bytes.Buffer
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		if len(c.Args) == 0 {
			return fmt.Errorf("%s: %s: %w", c.Name, errMsg, err)
		}
		return fmt.Errorf("%s %s: %s: %w", c.Name, c.Args[0], errMsg, err)
	}
	return nil
}

// ExitCode returns the exit status carried by err, if err wraps a process
// exit.
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
