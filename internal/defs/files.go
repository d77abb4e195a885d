package defs

// Input file names, relative to the project root.
const (
	// LuauConfigJSON is the rbxts-luau project configuration file.
	LuauConfigJSON = "luau-config.json"

	// PackageJSON is the npm package manifest.
	PackageJSON = "package.json"

	// TSConfigJSON is the roblox-ts compiler manifest.
	TSConfigJSON = "tsconfig.json"
)

// File names under the Luau directory.
const (
	// BuildProjectJSON is the Rojo project used to compile and build the model.
	BuildProjectJSON = "build.project.json"

	// DefaultProjectJSON is the Rojo project shipped inside the package.
	DefaultProjectJSON = "default.project.json"

	// WallyToml is the wally package manifest.
	WallyToml = "wally.toml"

	// SettingsYAML is the tool settings file under the user config directory.
	SettingsYAML = "config.yaml"
)

// Directory names.
const (
	DefaultLuauDir = "luau"
	DistDir        = "dist"
	OutDir         = "out"
	ArtefactsDir   = "artefacts"
	LibDir         = "lib"
	RuntimeLibDir  = "TS"
	IncludeDir     = "include"
	NodeModulesDir = "node_modules"
	AppDir         = "rbxts-luau"
)

// DefaultRegistry is the wally index used when none is configured.
const DefaultRegistry = "https://github.com/upliftgames/wally-index"
