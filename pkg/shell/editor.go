package shell

import (
	"fmt"
	"io"

	"src.nfsh.sh/pkg/edit"
)

// The interface the line editor has to satisfy.
type editor interface {
	ReadLine() (string, error)
}

// minEditor reads lines when the input is not a terminal. It prints no
// prompt, and reads one byte at a time so that input after the current line
// is left for the commands it runs.
type minEditor struct {
	in io.Reader
}

var errLineTooLong = fmt.Errorf("line longer than %d bytes", edit.MaxLineSize)

func newMinEditor(in io.Reader) *minEditor {
	return &minEditor{in}
}

// ReadLine returns the next line without its newline. A final line without a
// newline is returned with a nil error; io.EOF is returned only when there is
// no more input. A line longer than edit.MaxLineSize is consumed up to its
// newline and reported as errLineTooLong.
func (ed *minEditor) ReadLine() (string, error) {
	var line []byte
	tooLong := false
	var b [1]byte
	for {
		n, err := ed.in.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				return lineOrTooLong(line, tooLong)
			}
			if len(line) < edit.MaxLineSize {
				line = append(line, b[0])
			} else {
				tooLong = true
			}
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return lineOrTooLong(line, tooLong)
			}
			return "", err
		}
	}
}

func lineOrTooLong(line []byte, tooLong bool) (string, error) {
	if tooLong {
		return "", errLineTooLong
	}
	return string(line), nil
}
