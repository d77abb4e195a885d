package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerToolNotFound(t *testing.T) {
	r := &execRunner{lookPath: func(string) (string, error) {
		return "", exec.ErrNotFound
	}}

	err := r.Run(context.Background(), Command{Name: "rbxtsc"})
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("error = %v, want ErrToolNotFound", err)
	}
	if _, ok := ExitCode(err); ok {
		t.Error("lookup failure should not carry an exit code")
	}
}

func TestExecRunnerStreamsStdout(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	err := NewExecRunner().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo compiled"},
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "compiled" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestExecRunnerWorkingDirectory(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	var out bytes.Buffer
	err := NewExecRunner().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "pwd"},
		Dir:    dir,
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if filepath.Base(strings.TrimSpace(out.String())) != filepath.Base(dir) {
		t.Errorf("pwd = %q, want suffix of %q", out.String(), dir)
	}
}

func TestExecRunnerExitCodePropagates(t *testing.T) {
	requireShell(t)

	err := NewExecRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo bad manifest >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("expected error")
	}

	code, ok := ExitCode(err)
	if !ok {
		t.Fatalf("ExitCode(%v) not found", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.Contains(err.Error(), "bad manifest") {
		t.Errorf("captured stderr missing from %q", err.Error())
	}
}

func TestExitCodeWrapped(t *testing.T) {
	if _, ok := ExitCode(errors.New("plain")); ok {
		t.Error("plain error should not carry an exit code")
	}
	if _, ok := ExitCode(nil); ok {
		t.Error("nil should not carry an exit code")
	}
}
