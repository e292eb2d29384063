package edit

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const clearToEOL = "\033[K"

// Computes what to show on the line: the prompt followed by the part of the
// buffer that fits in width columns, and the column of the cursor. When the
// line is too wide, leading runes are hidden so that the cursor stays
// visible. A width <= 0 means unlimited.
func layout(prompt string, runes []rune, dot, width int) (string, int) {
	promptWidth := runewidth.StringWidth(prompt)
	col := promptWidth + runesWidth(runes[:dot])
	first := 0
	if width > 0 {
		// Leave the last column free for the cursor.
		for first < dot && col >= width {
			col -= runewidth.RuneWidth(runes[first])
			first++
		}
	}
	var sb strings.Builder
	sb.WriteString(prompt)
	w := promptWidth
	for _, r := range runes[first:] {
		rw := runewidth.RuneWidth(r)
		if width > 0 && w+rw > width {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String(), col
}

func runesWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// Redraws the line from the first column and moves the cursor to col.
func render(w io.Writer, line string, col int) error {
	var sb strings.Builder
	sb.WriteString("\r")
	sb.WriteString(line)
	sb.WriteString(clearToEOL)
	sb.WriteString("\r")
	if col > 0 {
		fmt.Fprintf(&sb, "\033[%dC", col)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
