package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential informs the kernel that file will be read sequentially,
// allowing more aggressive read-ahead.
func adviseSequential(file *os.File) {
	unix.Fadvise(int(file.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
