// Package cmd holds build metadata injected at link time.
package cmd

// Set with -ldflags "-X github.com/thoreinstein/zappi/cmd.Version=...".
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
