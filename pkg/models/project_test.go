package models_test

import (
	"encoding/json"
	"testing"

	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

func TestRealmIsValid(t *testing.T) {
	tests := []struct {
		name  string
		realm models.Realm
		valid bool
	}{
		{"shared", models.RealmShared, true},
		{"server", models.RealmServer, true},
		{"dev", models.RealmDev, true},
		{"empty", models.Realm(""), false},
		{"uppercase", models.Realm("SHARED"), false},
		{"client", models.Realm("client"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.realm.IsValid(); got != tt.valid {
				t.Errorf("Realm(%q).IsValid() = %v, want %v", tt.realm, got, tt.valid)
			}
		})
	}
}

func TestPackageID(t *testing.T) {
	cfg := models.ProjectWallyConfig{Username: "alice", PackageName: "signal"}
	if got := cfg.PackageID(); got != "alice/signal" {
		t.Errorf("PackageID() = %q, want %q", got, "alice/signal")
	}

	// No trimming or validation.
	cfg = models.ProjectWallyConfig{Username: " a ", PackageName: ""}
	if got := cfg.PackageID(); got != " a /" {
		t.Errorf("PackageID() = %q, want %q", got, " a /")
	}
}

func TestProjectConfigKeyOrder(t *testing.T) {
	cfg := models.ProjectConfig{
		Wally: models.ProjectWallyConfig{
			Username:    "alice",
			PackageName: "signal",
			License:     "MIT",
			Registry:    "https://github.com/upliftgames/wally-index",
			Authors:     []string{"alice"},
			Realm:       models.RealmShared,
			Description: "d",
		},
		Build: models.BuildConfig{OutDir: "out"},
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"wally":{"username":"alice","packageName":"signal","license":"MIT",` +
		`"registry":"https://github.com/upliftgames/wally-index","authors":["alice"],` +
		`"realm":"shared","description":"d"},"build":{"outDir":"out"}}`
	if string(data) != want {
		t.Errorf("Marshal:\n got %s\nwant %s", data, want)
	}
}
