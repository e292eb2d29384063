package edit

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// An editing action triggered by a key.
type action func(ed *Editor)

type binding struct {
	fn action
	// Whether the action takes part in a history walk. Any other action ends
	// the walk.
	walk bool
}

// A key binding table. Keys are byte sequences as sent by the terminal.
type keymap map[string]binding

func bind(m keymap, fn action, seqs ...string) {
	for _, seq := range seqs {
		m[seq] = binding{fn: fn}
	}
}

func bindWalk(m keymap, fn action, seqs ...string) {
	for _, seq := range seqs {
		m[seq] = binding{fn: fn, walk: true}
	}
}

func defaultKeymap() keymap {
	m := keymap{}
	bind(m, (*Editor).acceptLine, "\r", "\n")
	bind(m, (*Editor).backspace, "\x7f", "\x08")
	bind(m, (*Editor).deleteForwardOrEOF, "\x04")
	bind(m, (*Editor).deleteForward, "\x1b[3~")
	bind(m, (*Editor).left, "\x02", "\x1b[D", "\x1bOD")
	bind(m, (*Editor).right, "\x06", "\x1b[C", "\x1bOC")
	bind(m, (*Editor).home, "\x01", "\x1b[H", "\x1bOH", "\x1b[1~", "\x1b[7~")
	bind(m, (*Editor).end, "\x05", "\x1b[F", "\x1bOF", "\x1b[4~", "\x1b[8~")
	bind(m, (*Editor).killToStart, "\x15")
	bind(m, (*Editor).killToEnd, "\x0b")
	bind(m, (*Editor).killWordLeft, "\x17")
	bind(m, (*Editor).interrupt, "\x03")
	bindWalk(m, (*Editor).historyPrev, "\x10", "\x1b[A", "\x1bOA")
	bindWalk(m, (*Editor).historyNext, "\x0e", "\x1b[B", "\x1bOB")
	bindWalk(m, (*Editor).clearScreen, "\x0c")
	return m
}

// Returns the sorted keys of m that start with prefix.
func (m keymap) candidates(prefix string) []string {
	var seqs []string
	for seq := range m {
		if strings.HasPrefix(seq, prefix) {
			seqs = append(seqs, seq)
		}
	}
	sort.Strings(seqs)
	return seqs
}

// A key read from the terminal: either a binding, or text to insert. Both
// are zero for unbound sequences.
type key struct {
	seq     string
	binding binding
	text    rune
}

// Reads one key from r. Bytes are read one at a time, narrowing the set of
// candidate bindings by prefix, until the sequence read so far is the only
// candidate left, or no candidate is left. No binding may be a prefix of
// another one.
func (m keymap) readKey(r io.Reader) (key, error) {
	var seq []byte
	var buf [1]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return key{}, err
		}
		seq = append(seq, buf[0])
		s := string(seq)
		cands := m.candidates(s)
		if len(cands) == 1 && cands[0] == s {
			return key{seq: s, binding: m[s]}, nil
		}
		if len(cands) == 0 {
			break
		}
	}

	switch {
	case seq[0] == '\x1b':
		if len(seq) >= 2 && seq[1] == '[' {
			if err := skipCSI(r, seq[len(seq)-1]); err != nil {
				return key{}, err
			}
		}
		return key{seq: string(seq)}, nil
	case seq[0] < 0x20 || seq[0] == 0x7f:
		return key{seq: string(seq)}, nil
	}
	return readRune(r, seq)
}

// Consumes the rest of an unrecognized CSI sequence, up to and including its
// final byte.
func skipCSI(r io.Reader, last byte) error {
	var buf [1]byte
	for !isCSIFinal(last) {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return err
		}
		last = buf[0]
	}
	return nil
}

func isCSIFinal(b byte) bool { return 0x40 <= b && b <= 0x7e && b != '[' }

// Reads the remaining bytes of a UTF-8 encoded rune whose first bytes are in
// seq. An invalid encoding yields a key with no text.
func readRune(r io.Reader, seq []byte) (key, error) {
	var buf [1]byte
	for !utf8.FullRune(seq) {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return key{}, err
		}
		seq = append(seq, buf[0])
	}
	c, size := utf8.DecodeRune(seq)
	if c == utf8.RuneError && size <= 1 {
		return key{seq: string(seq)}, nil
	}
	return key{seq: string(seq), text: c}, nil
}
