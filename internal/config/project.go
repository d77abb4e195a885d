package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hjson/hjson-go/v4"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
	"github.com/rbxts-luau/rbxts-luau/internal/manifest"
	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

// PackageInfo holds the package.json fields rbxts-luau reads.
type PackageInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	License      string            `json:"license"`
	Description  string            `json:"description"`
	Dependencies map[string]string `json:"dependencies"`
}

// TSConfig holds the tsconfig.json fields rbxts-luau reads.
type TSConfig struct {
	CompilerOptions struct {
		OutDir string `json:"outDir"`
	} `json:"compilerOptions"`
}

// LoadProjectConfig reads luau-config.json from root.
// Returns loaded=false with no error when the file does not exist.
func LoadProjectConfig(root string) (models.ProjectConfig, bool, error) {
	var cfg models.ProjectConfig
	loaded, err := loadRelaxedJSONFile(root, defs.LuauConfigJSON, &cfg)
	if err != nil || !loaded {
		return models.ProjectConfig{}, loaded, err
	}
	return cfg, true, nil
}

// SaveProjectConfig writes cfg to root/luau-config.json.
func SaveProjectConfig(root string, cfg models.ProjectConfig) error {
	return manifest.WriteRelaxedJSON(filepath.Join(root, defs.LuauConfigJSON), cfg)
}

// LoadPackageInfo reads package.json from root.
// Returns loaded=false with no error when the file does not exist.
func LoadPackageInfo(root string) (PackageInfo, bool, error) {
	var info PackageInfo
	loaded, err := loadRelaxedJSONFile(root, defs.PackageJSON, &info)
	if err != nil || !loaded {
		return PackageInfo{}, loaded, err
	}
	return info, true, nil
}

// LoadTSConfig reads tsconfig.json from root. tsconfig files commonly carry
// comments and trailing commas, which the relaxed decoder accepts.
func LoadTSConfig(root string) (TSConfig, bool, error) {
	var tc TSConfig
	loaded, err := loadRelaxedJSONFile(root, defs.TSConfigJSON, &tc)
	if err != nil || !loaded {
		return TSConfig{}, loaded, err
	}
	return tc, true, nil
}

// loadRelaxedJSONFile reads a relaxed JSON file from the given directory and
// decodes it into target. Returns (true, nil) if the file was found and
// parsed, (false, nil) if the file does not exist, or (false, error) on failure.
func loadRelaxedJSONFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := hjson.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", filename, ErrInvalidJSON, err)
	}

	return true, nil
}
