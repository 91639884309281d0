// Package version provides build version information.
package version

// Build-time variables, set via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = "unknown"

	// Date is the build date.
	Date = "unknown"
)

// Info contains version details.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}
}
