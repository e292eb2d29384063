// Package edit implements the line editor of the interactive shell.
//
// The editor puts the terminal in raw mode while reading a line, and
// interprets keys through a table of bindings: cursor movement, deletion and
// a walk through the command history. Any other printable key is inserted.
package edit

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
	"src.nfsh.sh/pkg/logutil"
	"src.nfsh.sh/pkg/sys"
)

var logger = logutil.GetLogger("[edit] ")

// ErrInterrupted is returned by ReadLine when the line is abandoned with
// Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// Editor reads lines from a terminal.
type Editor struct {
	in  io.Reader
	out io.Writer
	// Descriptors of in and out if they are terminals, otherwise -1.
	inFD, outFD int

	// Prompt shown before the line.
	Prompt string
	// History walked with Up and Down. It may be nil.
	History History
	// How many of the most recent commands Up goes through; 0 means all.
	MaxRecall int

	keys keymap

	// State of the current ReadLine call.
	buf    buffer
	walker *histWalker
	// The line as it was when the history walk started.
	saved string
	done  bool
	err   error
}

// New creates an Editor reading from in and writing to out. Raw mode is
// entered only when in is a terminal.
func New(in io.Reader, out io.Writer) *Editor {
	return &Editor{in: in, out: out, inFD: termFD(in), outFD: termFD(out),
		keys: defaultKeymap()}
}

func termFD(f any) int {
	if file, ok := f.(*os.File); ok && sys.IsATTY(file.Fd()) {
		return int(file.Fd())
	}
	return -1
}

// ReadLine reads one line. It returns io.EOF on Ctrl-D on an empty line, and
// ErrInterrupted on Ctrl-C. The terminal state is restored before it returns.
func (ed *Editor) ReadLine() (line string, err error) {
	if ed.inFD >= 0 {
		state, err := term.MakeRaw(ed.inFD)
		if err != nil {
			return "", err
		}
		defer func() {
			if err := term.Restore(ed.inFD, state); err != nil {
				logger.Println("restore terminal:", err)
			}
		}()
	}

	ed.buf.set("")
	ed.walker, ed.saved, ed.done, ed.err = nil, "", false, nil
	for !ed.done {
		ed.redraw()
		k, err := ed.keys.readKey(ed.in)
		if err != nil {
			ed.finish(err)
			break
		}
		ed.handle(k)
	}
	// Raw mode does not translate \n.
	io.WriteString(ed.out, "\r\n")
	if ed.err != nil {
		return "", ed.err
	}
	return ed.buf.String(), nil
}

func (ed *Editor) handle(k key) {
	switch {
	case k.binding.fn != nil:
		if !k.binding.walk {
			ed.walker = nil
		}
		k.binding.fn(ed)
	case k.text != 0:
		ed.walker = nil
		if !ed.buf.insert(k.text) {
			ed.bell()
		}
	default:
		logger.Printf("unbound key %q", k.seq)
	}
}

func (ed *Editor) finish(err error) {
	ed.done, ed.err = true, err
}

func (ed *Editor) width() int {
	if ed.outFD < 0 {
		return 0
	}
	_, col := sys.WinSize(ed.out.(*os.File))
	return col
}

func (ed *Editor) redraw() {
	line, col := layout(ed.Prompt, ed.buf.runes, ed.buf.dot, ed.width())
	if err := render(ed.out, line, col); err != nil {
		logger.Println("render:", err)
	}
}

func (ed *Editor) bell() { io.WriteString(ed.out, "\a") }

const clearScreenSeq = "\033[H\033[2J"

// Actions.

func (ed *Editor) acceptLine() { ed.finish(nil) }

func (ed *Editor) interrupt() { ed.finish(ErrInterrupted) }

func (ed *Editor) backspace() { ed.check(ed.buf.backspace()) }

func (ed *Editor) deleteForward() { ed.check(ed.buf.deleteForward()) }

// Ctrl-D ends input on an empty line, and deletes forward otherwise.
func (ed *Editor) deleteForwardOrEOF() {
	if len(ed.buf.runes) == 0 {
		ed.finish(io.EOF)
		return
	}
	ed.deleteForward()
}

func (ed *Editor) left() { ed.check(ed.buf.left()) }

func (ed *Editor) right() { ed.check(ed.buf.right()) }

func (ed *Editor) home() { ed.buf.home() }

func (ed *Editor) end() { ed.buf.end() }

func (ed *Editor) killToStart() { ed.buf.killToStart() }

func (ed *Editor) killToEnd() { ed.buf.killToEnd() }

func (ed *Editor) killWordLeft() { ed.buf.killWordLeft() }

// The line is redrawn after every key.
func (ed *Editor) clearScreen() { io.WriteString(ed.out, clearScreenSeq) }

func (ed *Editor) historyPrev() {
	if ed.walker == nil {
		if ed.History == nil {
			ed.bell()
			return
		}
		w, err := newHistWalker(ed.History, ed.buf.String(), ed.MaxRecall)
		if err != nil {
			logger.Println("start history walk:", err)
			ed.bell()
			return
		}
		ed.walker, ed.saved = w, ed.buf.String()
	}
	if err := ed.walker.prev(); err != nil {
		if err != errEndOfHistory {
			logger.Println("history:", err)
		}
		ed.bell()
		return
	}
	ed.buf.set(ed.walker.text)
}

func (ed *Editor) historyNext() {
	if ed.walker == nil {
		ed.bell()
		return
	}
	if err := ed.walker.next(); err != nil {
		if err != errEndOfHistory {
			logger.Println("history:", err)
		}
		ed.bell()
		return
	}
	if ed.walker.atUpperEnd() {
		ed.buf.set(ed.saved)
		ed.walker = nil
		return
	}
	ed.buf.set(ed.walker.text)
}

func (ed *Editor) check(ok bool) {
	if !ok {
		ed.bell()
	}
}
