package stage

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
)

// Layout locates the inputs and the staging tree of one build.
type Layout struct {
	// Root is the project root.
	Root string
	// CompilerOutDir is the compiler output directory relative to Root.
	CompilerOutDir string
	// DistPath holds the generated manifests.
	DistPath string
	// OutPath is the staging tree root.
	OutPath string
	// Dependencies are npm runtime dependency names, e.g. "@rbxts/services".
	Dependencies []string
}

// Step is one copy operation of the staging plan.
type Step struct {
	BaseDir string
	Glob    string
	Dest    string
}

// Plan returns the copy steps for l:
//
//	<root>/<outDir>/**/*.lua                -> out/lib
//	dist/*.*                                -> out
//	<root>/include/*.lua                    -> out/lib/TS
//	<root>/node_modules/<dep>/**/*.lua      -> out/lib/TS/<dep>
//
// Dependencies are visited in sorted order.
func Plan(l Layout) []Step {
	libPath := filepath.Join(l.OutPath, defs.LibDir)
	runtimePath := filepath.Join(libPath, defs.RuntimeLibDir)

	steps := []Step{
		{BaseDir: filepath.Join(l.Root, l.CompilerOutDir), Glob: "**/*.lua", Dest: libPath},
		{BaseDir: l.DistPath, Glob: "*.*", Dest: l.OutPath},
		{BaseDir: filepath.Join(l.Root, defs.IncludeDir), Glob: "*.lua", Dest: runtimePath},
	}

	deps := slices.Clone(l.Dependencies)
	slices.Sort(deps)
	for _, dep := range deps {
		rel := filepath.FromSlash(path.Clean(dep))
		steps = append(steps, Step{
			BaseDir: filepath.Join(l.Root, defs.NodeModulesDir, rel),
			Glob:    "**/*.lua",
			Dest:    filepath.Join(runtimePath, rel),
		})
	}
	return steps
}

// Assemble runs every step of Plan(l). emit, if non-nil, is called with
// each copied destination path. Files copied before a failure stay in place.
func Assemble(l Layout, emit func(string)) (int, error) {
	total := 0
	for _, step := range Plan(l) {
		copied, err := CopyMatches(step.BaseDir, step.Glob, step.Dest)
		total += len(copied)
		if emit != nil {
			for _, p := range copied {
				emit(p)
			}
		}
		if err != nil {
			return total, fmt.Errorf("stage %s: %w", step.BaseDir, err)
		}
	}
	return total, nil
}
