// Package version reports the build version of shady-css.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags "-X bennypowers.dev/shadycss/internal/version.Version=v1.2.3".
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// readBuildInfo is replaced in tests
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, else the module version from the
// build info, else "dev".
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

// GetFullVersion appends the commit when it is known.
func GetFullVersion() string {
	if GitCommit == "unknown" {
		return GetVersion()
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (commit: %s)", GetVersion(), commit)
}
