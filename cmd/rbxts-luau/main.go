package main

import (
	"os"

	"github.com/rbxts-luau/rbxts-luau/internal/cli"
	"github.com/rbxts-luau/rbxts-luau/internal/toolchain"
)

func main() {
	if err := cli.Execute(); err != nil {
		// A failing tool's exit status becomes ours.
		if code, ok := toolchain.ExitCode(err); ok && code > 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
