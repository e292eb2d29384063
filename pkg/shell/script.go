package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"src.nfsh.sh/pkg/parse"
)

// ScriptConfig keeps configuration for the script mode.
type ScriptConfig struct {
	// Run the argument as code instead of as the path of a script.
	Cmd bool
}

// Script runs a script, or the code from -c, one line at a time. It stops at
// the first line that does not parse, or at the exit builtin, and returns the
// status of the last line run.
func Script(fds [3]*os.File, arg string, cfg *ScriptConfig) int {
	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg
	} else {
		var err error
		name, err = filepath.Abs(arg)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	ev := &evaler{fds: fds}
	for i, line := range strings.Split(code, "\n") {
		src := parse.Source{Name: fmt.Sprintf("%s:%d", name, i+1), Code: line}
		if err := ev.eval(src); err != nil {
			return statusParseError
		}
		if ev.exited {
			break
		}
	}
	return ev.status
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}
