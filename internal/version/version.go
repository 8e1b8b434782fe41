// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X region-zoom/internal/version.Version=...".
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line description for logs and the About dialog.
func String() string {
	if GitCommit == "unknown" {
		return "v" + Version
	}
	return fmt.Sprintf("v%s (%s, built %s)", Version, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
