//go:build !linux

package filesystem

import (
	"os"
)

// adviseSequential is a no-op on platforms without posix_fadvise support.
func adviseSequential(_ *os.File) {}
