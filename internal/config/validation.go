package config

import (
	"net/url"
	"strings"

	"github.com/rbxts-luau/rbxts-luau/pkg/models"
)

// ValidateProjectConfig checks luau-config.json content.
// The result is advisory: callers log it and continue, so malformed values
// still reach the generated manifests unchanged.
func ValidateProjectConfig(cfg models.ProjectConfig) error {
	var errs []ValidationError

	errs = append(errs, validateRequired(cfg)...)
	errs = append(errs, validatePackageName(cfg.Wally.PackageName)...)
	errs = append(errs, validateRealm(cfg.Wally.Realm)...)
	errs = append(errs, validateRegistry(cfg.Wally.Registry)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateRequired checks fields that must be non-empty.
func validateRequired(cfg models.ProjectConfig) []ValidationError {
	var errs []ValidationError

	required := []struct {
		field string
		value string
	}{
		{"wally.username", cfg.Wally.Username},
		{"wally.packageName", cfg.Wally.PackageName},
		{"wally.registry", cfg.Wally.Registry},
		{"build.outDir", cfg.Build.OutDir},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, ValidationError{
				Field:   r.field,
				Message: "required field is empty; set it in luau-config.json or rerun init",
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	return errs
}

// ValidatePackageName reports whether name is usable as a wally package name.
func ValidatePackageName(name string) error {
	if strings.ContainsAny(name, "@/") {
		return ErrInvalidPackageName
	}
	return nil
}

func validatePackageName(name string) []ValidationError {
	if err := ValidatePackageName(name); err != nil {
		return []ValidationError{{
			Field:   "wally.packageName",
			Message: "must not contain '@' or '/'",
			Value:   name,
			Wrapped: err,
		}}
	}
	return nil
}

// validateRealm accepts only "shared": the package is a plain library, so the
// other wally realms are known but rejected.
func validateRealm(realm models.Realm) []ValidationError {
	var msg string
	switch {
	case !realm.IsValid():
		msg = "unknown realm, must be \"shared\""
	case realm != models.RealmShared:
		msg = "must be \"shared\""
	default:
		return nil
	}
	return []ValidationError{{
		Field:   "wally.realm",
		Message: msg,
		Value:   string(realm),
		Wrapped: ErrInvalidRealm,
	}}
}

func validateRegistry(registry string) []ValidationError {
	if registry == "" {
		return nil // reported by validateRequired
	}
	u, err := url.Parse(registry)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []ValidationError{{
			Field:   "wally.registry",
			Message: "must be an absolute URL",
			Value:   registry,
			Wrapped: ErrInvalidConfig,
		}}
	}
	return nil
}
