// Package version carries build identification, stamped via -ldflags.
package version

var (
	// Version is the release version, "dev" for local builds
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
