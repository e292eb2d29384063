//go:build !windows && !plan9

package shell

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Signals the interactive shell survives. They still reach the children in
// the foreground process group, which get the default dispositions back when
// they exec.
var survivedSignals = []os.Signal{syscall.SIGINT, syscall.SIGQUIT}

func signalName(sig os.Signal) string {
	return unix.SignalName(sig.(syscall.Signal))
}
