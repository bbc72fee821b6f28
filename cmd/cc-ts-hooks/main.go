// Package main implements cc-ts-hooks, the umbrella CLI for the TypeScript agent hooks.
package main

import (
	"fmt"
	"runtime"
)

// Version information, set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

// versionString returns the version string.
func versionString() string {
	return fmt.Sprintf("cc-ts-hooks %s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
}
