// Package version holds build-time identification, set via -ldflags.
package version

var (
	// Version is the release version, e.g. "1.2.0".
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = "unknown"
)
