//go:build !windows && !plan9

package sys

import (
	"os"
	"sort"
	"strconv"

	"golang.org/x/sys/unix"
)

// Directories listing the descriptors of the current process.
var fdDirs = []string{"/proc/self/fd", "/dev/fd"}

// Upper bound of descriptors probed when no descriptor directory exists.
const maxProbedFD = 1024

func openFDs() ([]int, error) {
	for _, dir := range fdDirs {
		fds, err := readFDDir(dir)
		if err == nil {
			return fds, nil
		}
	}
	return probeFDs(), nil
}

func readFDDir(dir string) ([]int, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	// The descriptor of the directory itself shows up in the listing.
	self := int(f.Fd())
	names, err := f.Readdirnames(-1)
	f.Close()
	if err != nil {
		return nil, err
	}
	var fds []int
	for _, name := range names {
		fd, err := strconv.Atoi(name)
		if err != nil || fd == self {
			continue
		}
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0); err != nil {
			continue
		}
		fds = append(fds, fd)
	}
	sort.Ints(fds)
	return fds, nil
}

func probeFDs() []int {
	var fds []int
	for fd := 0; fd < maxProbedFD; fd++ {
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0); err == nil {
			fds = append(fds, fd)
		}
	}
	return fds
}
