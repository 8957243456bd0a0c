// Package version holds build information set with -ldflags.
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the version with commit and build date.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + BuildDate + ")"
}
