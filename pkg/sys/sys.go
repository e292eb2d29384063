// Package sys provides system utilities: terminal detection, terminal size
// and inspection of the descriptor table of the current process.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the size cannot be determined.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// OpenFDs returns the open descriptors of the current process in ascending
// order.
func OpenFDs() ([]int, error) { return openFDs() }
