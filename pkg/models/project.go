package models

// Realm is the wally package realm.
type Realm string

const (
	// RealmShared is the only realm produced by rbxts-luau.
	RealmShared Realm = "shared"
	RealmServer Realm = "server"
	RealmDev    Realm = "dev"
)

// IsValid checks if the realm is one the wally registry accepts.
func (r Realm) IsValid() bool {
	switch r {
	case RealmShared, RealmServer, RealmDev:
		return true
	}
	return false
}

// ProjectConfig represents the content of luau-config.json.
type ProjectConfig struct {
	Wally ProjectWallyConfig `json:"wally"`
	Build BuildConfig        `json:"build"`
}

// ProjectWallyConfig holds the package metadata published to the registry.
// Field order matches the serialized key order of luau-config.json.
type ProjectWallyConfig struct {
	Username    string   `json:"username"`
	PackageName string   `json:"packageName"`
	License     string   `json:"license"`
	Registry    string   `json:"registry"`
	Authors     []string `json:"authors"`
	Realm       Realm    `json:"realm"`
	Description string   `json:"description"`
}

// PackageID returns the "{username}/{packageName}" identifier.
func (c ProjectWallyConfig) PackageID() string {
	return c.Username + "/" + c.PackageName
}

// BuildConfig holds compiler output settings.
type BuildConfig struct {
	// OutDir is the compiler output directory, relative to the project root.
	OutDir string `json:"outDir"`
}
