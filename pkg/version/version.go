// Package version carries build metadata injected with -ldflags -X.
package version

import "fmt"

// Build metadata, overridden at link time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for display.
func String() string {
	return fmt.Sprintf("rbt %s (commit %s, built %s)", Version, Commit, Date)
}
