package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, path, err := LoadSettings(SettingsOptions{ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if *s != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults %+v", *s, DefaultSettings())
	}
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "registry: https://example.com/index\ntools:\n  wally: /opt/wally\n")

	s, path, err := LoadSettings(SettingsOptions{ConfigDir: dir})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if path != filepath.Join(dir, "config.yaml") {
		t.Errorf("resolved path = %q", path)
	}
	if s.Registry != "https://example.com/index" {
		t.Errorf("Registry = %q", s.Registry)
	}
	if s.Tools.Wally != "/opt/wally" {
		t.Errorf("Tools.Wally = %q", s.Tools.Wally)
	}
	// Keys absent from the file keep their defaults.
	if s.Tools.Rojo != "rojo" || s.LuauDir != "luau" {
		t.Errorf("defaults not kept: %+v", s)
	}
}

func TestLoadSettingsEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "luau_dir: from-file\ntools:\n  rojo: file-rojo\n")
	t.Setenv("RBXTS_LUAU_LUAU_DIR", "from-env")
	t.Setenv("RBXTS_LUAU_TOOLS_ROJO", "env-rojo")

	s, _, err := LoadSettings(SettingsOptions{ConfigDir: dir})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.LuauDir != "from-env" {
		t.Errorf("LuauDir = %q, want from-env", s.LuauDir)
	}
	if s.Tools.Rojo != "env-rojo" {
		t.Errorf("Tools.Rojo = %q, want env-rojo", s.Tools.Rojo)
	}
}

func TestLoadSettingsExplicitFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, _, err := LoadSettings(SettingsOptions{ConfigFile: missing})
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("error = %v, want ErrSettingsNotFound", err)
	}
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "registry: [unterminated\n")

	if _, _, err := LoadSettings(SettingsOptions{ConfigDir: dir}); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := SettingsPath(SettingsOptions{})
	if err != nil {
		t.Fatalf("SettingsPath: %v", err)
	}
	if path != filepath.Join("/xdg", "rbxts-luau", "config.yaml") {
		t.Errorf("path = %q", path)
	}

	path, err = SettingsPath(SettingsOptions{ConfigFile: "/etc/custom.yaml"})
	if err != nil {
		t.Fatalf("SettingsPath: %v", err)
	}
	if path != "/etc/custom.yaml" {
		t.Errorf("path = %q", path)
	}
}
