// Package version exposes build metadata stamped in via ldflags.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/probeworks/lanscope/internal/version.Version=v0.2.0"
var (
	Version = "dev"
	Commit  = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a human-readable version line.
func Info() string {
	return fmt.Sprintf("lanscope %s (%s)", Version, Commit)
}
