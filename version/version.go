package version

import "fmt"

// Set via -ldflags "-X github.com/philipparndt/envelope/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the release version
func GetVersion() string {
	return Version
}

// GetFullVersion adds commit and build date when they were stamped in
func GetFullVersion() string {
	if GitCommit == "unknown" && BuildDate == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
