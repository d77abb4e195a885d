// Package models provides the data model shared by the rbxts-luau packaging
// pipeline.
//
// # Project Configuration
//
// [ProjectConfig] is the content of luau-config.json. It holds the package
// metadata published to the wally registry ([ProjectWallyConfig]) and the
// compiler output location ([BuildConfig]). The externally visible package
// identifier is "{username}/{packageName}":
//
//	cfg.Wally.PackageID() // "alice/signal"
//
// # Rojo Project Tree
//
// [RojoFile] models a Rojo project file. Its tree is a recursive sum type,
// [RojoTree], implemented by exactly two node kinds:
//   - [RojoMetadata]: a node carrying "$"-prefixed keys ($className, $path, ...)
//   - [RojoMembers]: a node mapping child names to further nodes
//
// A JSON object is decoded as a metadata node when any of its keys starts
// with "$", and as a members node otherwise.
package models
