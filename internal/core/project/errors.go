// Package project implements the init and build flows of rbxts-luau: it
// reads the roblox-ts project, writes the package manifests, runs the
// toolchain and stages the Luau output.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrUsernameRequired indicates no username was given and prompting is not possible.
	ErrUsernameRequired = errors.New("project: username is required in non-interactive mode")

	// ErrPackageNameRequired indicates no package name could be determined.
	ErrPackageNameRequired = errors.New("project: package name is required")

	// ErrPackageJSONRequired indicates package.json is missing during build.
	ErrPackageJSONRequired = errors.New("project: package.json not found")
)
