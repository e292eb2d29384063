package edit

import (
	"errors"

	"src.nfsh.sh/pkg/store/storedefs"
)

// History is the part of the command history the editor uses.
type History interface {
	NextCmdSeq() (int, error)
	PrevCmd(upto int, prefix string) (storedefs.Cmd, error)
	NextCmd(from int, prefix string) (storedefs.Cmd, error)
}

var errEndOfHistory = errors.New("end of history")

// Walks the commands starting with a prefix, with the view of the history
// frozen when the walk starts. The walker sits either on a command or on the
// upper end, which stands for the line typed before the walk.
type histWalker struct {
	db     History
	prefix string
	// Commands at or after upper are not visited.
	upper int
	// Commands before lower are not visited.
	lower int
	// Sequence number of the current command; upper at the upper end.
	seq  int
	text string
}

// Starts a walk. maxRecall limits how far back the walk goes; 0 means no
// limit.
func newHistWalker(db History, prefix string, maxRecall int) (*histWalker, error) {
	upper, err := db.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	lower := 0
	if maxRecall > 0 && upper-maxRecall > 0 {
		lower = upper - maxRecall
	}
	return &histWalker{db: db, prefix: prefix, upper: upper, lower: lower,
		seq: upper, text: prefix}, nil
}

// Moves to the previous command with the prefix, skipping those with the same
// text as the current one.
func (w *histWalker) prev() error {
	seq := w.seq
	for {
		cmd, err := w.db.PrevCmd(seq, w.prefix)
		if err != nil {
			if errors.Is(err, storedefs.ErrNoMatchingCmd) {
				return errEndOfHistory
			}
			return err
		}
		if cmd.Seq < w.lower {
			return errEndOfHistory
		}
		if cmd.Text != w.text {
			w.seq, w.text = cmd.Seq, cmd.Text
			return nil
		}
		seq = cmd.Seq
	}
}

// Moves to the next command with the prefix, skipping those with the same
// text as the current one. Moving past the last command reaches the upper
// end.
func (w *histWalker) next() error {
	if w.seq >= w.upper {
		return errEndOfHistory
	}
	seq := w.seq + 1
	for {
		cmd, err := w.db.NextCmd(seq, w.prefix)
		if err != nil && !errors.Is(err, storedefs.ErrNoMatchingCmd) {
			return err
		}
		if err != nil || cmd.Seq >= w.upper {
			w.seq, w.text = w.upper, w.prefix
			return nil
		}
		if cmd.Text != w.text {
			w.seq, w.text = cmd.Seq, cmd.Text
			return nil
		}
		seq = cmd.Seq + 1
	}
}

func (w *histWalker) atUpperEnd() bool { return w.seq == w.upper }
