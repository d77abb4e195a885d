// Package manifest renders the rbxts-luau configuration model to the on-disk
// manifests consumed by wally and rojo.
package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

// wallyManifest is the document layout of wally.toml.
type wallyManifest struct {
	Package wallyPackage `toml:"package"`
}

// wallyPackage keys are emitted in declaration order.
type wallyPackage struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Realm       models.Realm `toml:"realm"`
	License     string       `toml:"license"`
	Registry    string       `toml:"registry"`
	Authors     []string     `toml:"authors"`
	Version     string       `toml:"version"`
}

// RenderWallyToml returns the wally.toml text for the given package metadata.
// Values are passed through as-is; version is not validated. Strings are
// written as TOML literal strings, or basic strings when they contain a
// single quote or a newline.
func RenderWallyToml(cfg models.ProjectWallyConfig, version string) ([]byte, error) {
	authors := cfg.Authors
	if authors == nil {
		authors = []string{}
	}

	doc := wallyManifest{
		Package: wallyPackage{
			Name:        cfg.PackageID(),
			Description: cfg.Description,
			Realm:       cfg.Realm,
			License:     cfg.License,
			Registry:    cfg.Registry,
			Authors:     authors,
			Version:     version,
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode wally.toml: %w", err)
	}
	return data, nil
}

// GenerateWallyToml writes wally.toml to path, replacing any existing file.
// The parent directory must already exist.
func GenerateWallyToml(cfg models.ProjectWallyConfig, version, path string) error {
	data, err := RenderWallyToml(cfg, version)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write wally.toml: %w", err)
	}
	return nil
}
