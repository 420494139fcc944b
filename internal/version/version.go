// Package version holds build information for the styleguide binary.
// The variables are set via ldflags, e.g.
// -ldflags "-X github.com/tydukes/coding-style-guide-sub009/internal/version.Version=1.4.0".
package version

// Version is the release version. It is also reported as the SARIF tool
// driver version.
var Version = "dev"

// GitCommit is the commit the binary was built from.
var GitCommit = "unknown"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

// String returns a one-line version string.
func String() string {
	if Version == "dev" {
		return "styleguide development version"
	}
	return "styleguide " + Version
}

// Info returns all build information as a map.
func Info() map[string]string {
	return map[string]string{
		"version":   Version,
		"gitCommit": GitCommit,
		"buildDate": BuildDate,
	}
}
