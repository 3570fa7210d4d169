package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal returns whether or not file refers to an interactive terminal,
// including Cygwin and MSYS2 pseudo-terminals.
func IsTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
