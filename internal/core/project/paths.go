package project

import (
	"path/filepath"
	"strings"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
)

// Paths locates every file and directory the flows touch.
type Paths struct {
	Root             string
	LuauPath         string
	DistPath         string
	OutPath          string
	ArtefactsPath    string
	ConfigFile       string
	BuildProjectFile string
}

// NewPaths derives the layout below root. An empty luauDir means
// defs.DefaultLuauDir.
func NewPaths(root, luauDir string) Paths {
	if luauDir == "" {
		luauDir = defs.DefaultLuauDir
	}
	root = filepath.Clean(root)
	luau := filepath.Join(root, luauDir)
	return Paths{
		Root:             root,
		LuauPath:         luau,
		DistPath:         filepath.Join(luau, defs.DistDir),
		OutPath:          filepath.Join(luau, defs.OutDir),
		ArtefactsPath:    filepath.Join(luau, defs.ArtefactsDir),
		ConfigFile:       filepath.Join(root, defs.LuauConfigJSON),
		BuildProjectFile: filepath.Join(luau, defs.BuildProjectJSON),
	}
}

// ArchivePath is the wally archive for packageName.
func (p Paths) ArchivePath(packageName string) string {
	return filepath.Join(p.ArtefactsPath, packageName+"-luau.zip")
}

// ModelPath is the rojo model for packageName.
func (p Paths) ModelPath(packageName string) string {
	return filepath.Join(p.ArtefactsPath, packageName+"-luau.rbxm")
}

// Rel returns path relative to the root, or path itself when it lies outside.
func (p Paths) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// CleanPackageName derives a registry-safe default from an npm package name
// by dropping the first "@" and replacing the first "/" with "-":
// "@rbxts/net" becomes "rbxts-net".
func CleanPackageName(npmName string) string {
	name := strings.Replace(npmName, "@", "", 1)
	return strings.Replace(name, "/", "-", 1)
}
