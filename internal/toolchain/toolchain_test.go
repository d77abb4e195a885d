package toolchain

import (
	"context"
	"errors"
	"slices"
	"testing"
)

// fakeRunner records commands and returns scripted errors keyed by tool name.
type fakeRunner struct {
	calls []Command
	errs  map[string]error
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) error {
	f.calls = append(f.calls, cmd)
	return f.errs[cmd.Name]
}

func TestArgBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{
			"compile",
			CompileArgs("/p/luau/build.project.json"),
			[]string{"--verbose", "--type=model", "--rojo=/p/luau/build.project.json"},
		},
		{
			"package",
			PackageArgs("/p/luau/out", "/p/luau/artefacts/mylib-luau.zip"),
			[]string{"package", "--project-path", "/p/luau/out", "--output", "/p/luau/artefacts/mylib-luau.zip"},
		},
		{
			"build model",
			BuildModelArgs("/p/luau/build.project.json", "/p/luau/artefacts/mylib-luau.rbxm"),
			[]string{"build", "/p/luau/build.project.json", "--output", "/p/luau/artefacts/mylib-luau.rbxm"},
		},
		{
			"publish",
			PublishArgs("/p/luau/out"),
			[]string{"publish", "--project-path", "/p/luau/out"},
		},
		{
			"path with spaces stays one argument",
			PublishArgs("/my project/luau/out"),
			[]string{"publish", "--project-path", "/my project/luau/out"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestToolchainUsesConfiguredTools(t *testing.T) {
	runner := &fakeRunner{}
	tc := New("/proj", Tools{Compiler: "/opt/rbxtsc", Wally: "wally-dev"}, runner, nil)
	ctx := context.Background()

	if err := tc.Compile(ctx, "b.project.json", Streams{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := tc.Package(ctx, "out", "a.zip", Streams{}); err != nil {
		t.Fatalf("Package: %v", err)
	}
	if err := tc.BuildModel(ctx, "b.project.json", "a.rbxm", Streams{}); err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if err := tc.Publish(ctx, "out", Streams{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	names := make([]string, len(runner.calls))
	for i, c := range runner.calls {
		names[i] = c.Name
		if c.Dir != "/proj" {
			t.Errorf("call %d Dir = %q, want /proj", i, c.Dir)
		}
	}
	want := []string{"/opt/rbxtsc", "wally-dev", "rojo", "wally-dev"}
	if !slices.Equal(names, want) {
		t.Errorf("tools = %v, want %v", names, want)
	}
}

func TestToolchainPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	runner := &fakeRunner{errs: map[string]error{"rojo": boom}}
	tc := New("/proj", DefaultTools(), runner, nil)

	err := tc.BuildModel(context.Background(), "p", "m", Streams{})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped boom", err)
	}
	if err.Error() != "build model: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolchainCancelledContext(t *testing.T) {
	runner := &fakeRunner{}
	tc := New("/proj", DefaultTools(), runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tc.Compile(ctx, "p", Streams{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner called %d times after cancellation", len(runner.calls))
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "wally", Args: []string{"publish", "--project-path", "out"}}
	if got := c.String(); got != "wally publish --project-path out" {
		t.Errorf("String() = %q", got)
	}
}
