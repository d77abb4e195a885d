package manifest

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

func sampleWallyConfig() models.ProjectWallyConfig {
	return models.ProjectWallyConfig{
		Username:    "alice",
		PackageName: "mylib",
		License:     "MIT",
		Registry:    "https://example.com/index",
		Authors:     []string{"alice"},
		Realm:       models.RealmShared,
		Description: "A lib",
	}
}

// parseWally decodes rendered wally.toml into a generic table.
func parseWally(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("toml.Unmarshal: %v\n%s", err, data)
	}
	if len(doc) != 1 {
		t.Fatalf("top-level keys = %d, want 1: %v", len(doc), doc)
	}
	pkg, ok := doc["package"].(map[string]any)
	if !ok {
		t.Fatalf("package table missing: %v", doc)
	}
	return pkg
}

func TestRenderWallyTomlScenario(t *testing.T) {
	data, err := RenderWallyToml(sampleWallyConfig(), "1.2.3")
	if err != nil {
		t.Fatalf("RenderWallyToml: %v", err)
	}
	pkg := parseWally(t, data)

	want := map[string]string{
		"name":        "alice/mylib",
		"description": "A lib",
		"realm":       "shared",
		"license":     "MIT",
		"registry":    "https://example.com/index",
		"version":     "1.2.3",
	}
	for key, value := range want {
		if got := pkg[key]; got != value {
			t.Errorf("package.%s = %v, want %q", key, got, value)
		}
	}

	authors, ok := pkg["authors"].([]any)
	if !ok || len(authors) != 1 || authors[0] != "alice" {
		t.Errorf("package.authors = %v, want [alice]", pkg["authors"])
	}

	if len(pkg) != 7 {
		t.Errorf("package has %d keys, want 7: %v", len(pkg), pkg)
	}
}

// Values are literal strings except where they contain a single quote.
func TestRenderWallyTomlGolden(t *testing.T) {
	cfg := sampleWallyConfig()
	cfg.Description = "it's"

	data, err := RenderWallyToml(cfg, "1.2.3")
	if err != nil {
		t.Fatalf("RenderWallyToml: %v", err)
	}

	want := `[package]
name = 'alice/mylib'
description = "it's"
realm = 'shared'
license = 'MIT'
registry = 'https://example.com/index'
authors = ['alice']
version = '1.2.3'
`
	if string(data) != want {
		t.Errorf("wally.toml =\n%s\nwant\n%s", data, want)
	}
	if got := parseWally(t, data)["description"]; got != "it's" {
		t.Errorf("description = %v, want %q", got, "it's")
	}
}

func TestRenderWallyTomlKeyOrder(t *testing.T) {
	data, err := RenderWallyToml(sampleWallyConfig(), "1.2.3")
	if err != nil {
		t.Fatalf("RenderWallyToml: %v", err)
	}

	order := []string{"name", "description", "realm", "license", "registry", "authors", "version"}
	var keys []string
	for line := range strings.SplitSeq(string(data), "\n") {
		key, _, found := strings.Cut(line, " = ")
		if found {
			keys = append(keys, strings.TrimSpace(key))
		}
	}
	if strings.Join(keys, ",") != strings.Join(order, ",") {
		t.Errorf("key order = %v, want %v", keys, order)
	}
}

func TestRenderWallyTomlNameNotTrimmed(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		packageName string
		want        string
	}{
		{"plain", "alice", "mylib", "alice/mylib"},
		{"leading space", " alice", "mylib", " alice/mylib"},
		{"trailing space", "alice", "mylib ", "alice/mylib "},
		{"empty username", "", "mylib", "/mylib"},
		{"empty package", "alice", "", "alice/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleWallyConfig()
			cfg.Username = tt.username
			cfg.PackageName = tt.packageName

			data, err := RenderWallyToml(cfg, "0.1.0")
			if err != nil {
				t.Fatalf("RenderWallyToml: %v", err)
			}
			pkg := parseWally(t, data)
			if got := pkg["name"]; got != tt.want {
				t.Errorf("package.name = %q, want %q", got, tt.want)
			}
			if strings.Contains(pkg["name"].(string), "//") {
				t.Errorf("package.name %q contains a double slash", pkg["name"])
			}
		})
	}
}

func TestRenderWallyTomlEmptyValuesKept(t *testing.T) {
	cfg := sampleWallyConfig()
	cfg.License = ""
	cfg.Description = ""
	cfg.Authors = nil

	data, err := RenderWallyToml(cfg, "")
	if err != nil {
		t.Fatalf("RenderWallyToml: %v", err)
	}
	pkg := parseWally(t, data)

	for _, key := range []string{"license", "description", "version"} {
		value, ok := pkg[key]
		if !ok {
			t.Errorf("package.%s missing", key)
			continue
		}
		if value != "" {
			t.Errorf("package.%s = %v, want empty string", key, value)
		}
	}
	if authors, ok := pkg["authors"].([]any); !ok || len(authors) != 0 {
		t.Errorf("package.authors = %v, want empty list", pkg["authors"])
	}
}

func TestGenerateWallyTomlIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wally.toml")
	cfg := sampleWallyConfig()

	if err := GenerateWallyToml(cfg, "1.0.0", path); err != nil {
		t.Fatalf("first GenerateWallyToml: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if err := GenerateWallyToml(cfg, "1.0.0", path); err != nil {
		t.Fatalf("second GenerateWallyToml: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("output differs between runs:\n%s\n---\n%s", first, second)
	}
}

func TestGenerateWallyTomlOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wally.toml")
	if err := os.WriteFile(path, []byte("stale content that is much longer than the manifest"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := GenerateWallyToml(sampleWallyConfig(), "2.0.0", path); err != nil {
		t.Fatalf("GenerateWallyToml: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Errorf("old content not replaced:\n%s", data)
	}
	if got := parseWally(t, data)["version"]; got != "2.0.0" {
		t.Errorf("version = %v, want 2.0.0", got)
	}
}

func TestGenerateWallyTomlMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	path := filepath.Join(dir, "wally.toml")

	err := GenerateWallyToml(sampleWallyConfig(), "1.0.0", path)
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("parent directory should not have been created")
	}
}
