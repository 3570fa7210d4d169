// Package streamkit provides version and build information.
package streamkit

import (
	"fmt"
	"os"
)

const (
	// VersionMajor represents the current major version of streamkit.
	VersionMajor = 0
	// VersionMinor represents the current minor version of streamkit.
	VersionMinor = 3
	// VersionPatch represents the current patch version of streamkit.
	VersionPatch = 0
	// VersionTag represents a tag to be appended to the version string. It
	// must not contain spaces. If empty, no tag is appended to the version
	// string.
	VersionTag = ""
)

// Version provides a stringified version of the current streamkit version.
var Version string

// DebugEnabled controls whether or not debugging is enabled. It is set
// automatically based on the STREAMKIT_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Compute the stringified version.
	if VersionTag != "" {
		Version = fmt.Sprintf("%d.%d.%d-%s", VersionMajor, VersionMinor, VersionPatch, VersionTag)
	} else {
		Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
	}

	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("STREAMKIT_DEBUG") == "1"
}
