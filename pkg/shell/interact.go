package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"src.nfsh.sh/pkg/diag"
	"src.nfsh.sh/pkg/edit"
	"src.nfsh.sh/pkg/parse"
	"src.nfsh.sh/pkg/store/storedefs"
	"src.nfsh.sh/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Prompt string
	// Where lines are recorded and recalled from. It may be nil.
	Store storedefs.Store
	// How many of the most recent commands the editor walks through.
	MaxRecall int
}

// Interact runs an interactive shell session until the input ends or the exit
// builtin is run, and returns the status of the last line.
func Interact(fds [3]*os.File, cfg *InteractConfig) int {
	var ed editor
	if sys.IsATTY(fds[0].Fd()) {
		ed = newEditor(fds, cfg)
	} else {
		ed = newMinEditor(fds[0])
	}

	ev := &evaler{fds: fds}
	for cmdNum := 1; !ev.exited; {
		line, err := ed.ReadLine()
		if err == io.EOF {
			break
		} else if errors.Is(err, edit.ErrInterrupted) {
			continue
		} else if err == errLineTooLong {
			diag.Complain(fds[2], err.Error())
			ev.status = statusLineTooLong
			continue
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				break
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			ed = newMinEditor(fds[0])
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if cfg.Store != nil {
			if _, err := cfg.Store.AddCmd(line); err != nil {
				logger.Println("adding to history:", err)
			}
		}
		ev.eval(parse.Source{Name: sourceName("tty", cmdNum), Code: line})
		cmdNum++
	}
	return ev.status
}

func newEditor(fds [3]*os.File, cfg *InteractConfig) *edit.Editor {
	ed := edit.New(fds[0], fds[2])
	ed.Prompt = cfg.Prompt
	ed.MaxRecall = cfg.MaxRecall
	if cfg.Store != nil {
		ed.History = cfg.Store
	}
	return ed
}
