package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"src.nfsh.sh/pkg/diag"
	"src.nfsh.sh/pkg/errutil"
	"src.nfsh.sh/pkg/exec"
	"src.nfsh.sh/pkg/ir"
	"src.nfsh.sh/pkg/parse"
)

// Status of a line that failed to parse.
const statusParseError = 2

// Status of a line that could not be run at all.
const statusFailure = 1

// Status of an input line that exceeds edit.MaxLineSize. It is not run.
const statusLineTooLong = 2

// evaler evaluates lines one at a time and keeps the status of the last one.
type evaler struct {
	fds    [3]*os.File
	status int
	// Set by the exit builtin.
	exited bool
}

// Evaluates one line. It returns the parse error if the line could not be
// parsed, after showing it.
func (ev *evaler) eval(src parse.Source) error {
	code := strings.TrimSpace(src.Code)
	if code == "" {
		return nil
	}
	logger.Printf("%s: %s", src.Name, code)

	if rest, ok := cutWord(code, "debug"); ok {
		p, err := parse.Parse(parse.Source{Name: src.Name, Code: rest})
		if err != nil {
			return ev.parseError(err)
		}
		ir.Dump(ev.fds[1], p)
		ev.status = 0
		return nil
	}

	p, err := parse.Parse(parse.Source{Name: src.Name, Code: code})
	if err != nil {
		return ev.parseError(err)
	}
	if isExit(p) {
		ev.exit(p.Stages[0].Args[1:])
		return nil
	}

	res, err := exec.Run(p, exec.Config{Stdio: ev.fds})
	for _, e := range errutil.Errors(err) {
		diag.Complain(ev.fds[2], e.Error())
	}
	if res == nil {
		ev.status = statusFailure
	} else {
		ev.status = res.ExitCode()
	}
	logger.Printf("%s: status %d", src.Name, ev.status)
	return nil
}

func (ev *evaler) parseError(err error) error {
	diag.ShowError(ev.fds[2], err)
	ev.status = statusParseError
	return err
}

var errBadExitArgs = errors.New("exit: expect at most one numeric argument")

// The exit builtin. Without an argument the status of the previous line is
// kept.
func (ev *evaler) exit(args []string) {
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			diag.Complain(ev.fds[2], errBadExitArgs.Error())
			ev.status = statusParseError
			return
		}
		ev.status = n
	default:
		diag.Complain(ev.fds[2], errBadExitArgs.Error())
		ev.status = statusParseError
		return
	}
	ev.exited = true
}

func isExit(p ir.Pipeline) bool {
	return len(p.Stages) == 1 && p.Stages[0].Args[0] == "exit"
}

// Reports whether code starts with the given word, and returns the rest.
func cutWord(code, word string) (string, bool) {
	if !strings.HasPrefix(code, word) {
		return "", false
	}
	rest := code[len(word):]
	if rest == "" {
		return "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func sourceName(prefix string, n int) string {
	return fmt.Sprintf("[%s %d]", prefix, n)
}
