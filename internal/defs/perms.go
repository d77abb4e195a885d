package defs

import "os"

// Permissions for files and directories created by rbxts-luau.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)
