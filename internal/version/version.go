package version

import "fmt"

// Build metadata, stamped at release time via -ldflags "-X".
var (
	Version   = "0.1.0"
	Commit    = "dev"
	BuildDate = "unknown"
)

// Full renders version, commit, and build date on one line for version output.
func Full() string {
	return fmt.Sprintf("%s (commit:%s, built:%s)", Version, Commit, BuildDate)
}
