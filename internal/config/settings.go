package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rbxts-luau/rbxts-luau/internal/defs"
)

// EnvPrefix is the environment variable prefix for tool settings.
const EnvPrefix = "RBXTS_LUAU"

// Settings are the user-level tool settings.
type Settings struct {
	Registry string        `mapstructure:"registry" yaml:"registry"`
	LuauDir  string        `mapstructure:"luau_dir" yaml:"luau_dir"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
	Tools    ToolsSettings `mapstructure:"tools" yaml:"tools"`
}

// ToolsSettings name the external executables. Each may be a bare name
// resolved through PATH or an absolute path.
type ToolsSettings struct {
	Compiler string `mapstructure:"compiler" yaml:"compiler"`
	Wally    string `mapstructure:"wally" yaml:"wally"`
	Rojo     string `mapstructure:"rojo" yaml:"rojo"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Registry: defs.DefaultRegistry,
		LuauDir:  defs.DefaultLuauDir,
		LogLevel: "warn",
		Tools: ToolsSettings{
			Compiler: "rbxtsc",
			Wally:    "wally",
			Rojo:     "rojo",
		},
	}
}

// SettingsOptions control where settings are read from.
type SettingsOptions struct {
	// ConfigFile is an explicit settings file. It must exist when set.
	ConfigFile string
	// ConfigDir overrides the settings directory; empty means SettingsDir().
	ConfigDir string
}

// SettingsDir returns the settings directory:
// $XDG_CONFIG_HOME/rbxts-luau, or the platform user config directory.
func SettingsDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, defs.AppDir), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, defs.AppDir), nil
}

// SettingsPath returns the settings file that LoadSettings would read.
func SettingsPath(opts SettingsOptions) (string, error) {
	if opts.ConfigFile != "" {
		return opts.ConfigFile, nil
	}
	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = SettingsDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, defs.SettingsYAML), nil
}

// LoadSettings layers defaults, the YAML settings file and RBXTS_LUAU_*
// environment variables, in increasing precedence. A missing default
// settings file is not an error. Returns the file actually read, or "".
func LoadSettings(opts SettingsOptions) (*Settings, string, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("registry", defaults.Registry)
	v.SetDefault("luau_dir", defaults.LuauDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("tools.compiler", defaults.Tools.Compiler)
	v.SetDefault("tools.wally", defaults.Tools.Wally)
	v.SetDefault("tools.rojo", defaults.Tools.Rojo)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := SettingsPath(opts)
	if err != nil {
		return nil, "", err
	}

	resolved := ""
	switch {
	case fileExists(path):
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read settings %s: %w", path, err)
		}
		resolved = path
	case opts.ConfigFile != "":
		return nil, "", fmt.Errorf("%w: %s", ErrSettingsNotFound, opts.ConfigFile)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, "", fmt.Errorf("parse settings: %w", err)
	}
	return &s, resolved, nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
