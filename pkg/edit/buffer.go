package edit

import (
	"unicode"
	"unicode/utf8"
)

// MaxLineSize is the maximum size of a line, in bytes of UTF-8.
const MaxLineSize = 4096

// The line being edited. Dot is the cursor position, as an index into runes.
type buffer struct {
	runes []rune
	dot   int
	// Size of runes in UTF-8.
	size int
}

func (b *buffer) String() string { return string(b.runes) }

// Replaces the content and puts the cursor at the end. Content beyond
// MaxLineSize is dropped.
func (b *buffer) set(s string) {
	b.runes, b.dot, b.size = b.runes[:0], 0, 0
	for _, r := range s {
		if !b.insert(r) {
			break
		}
	}
}

// Inserts a rune at the cursor. It returns false and does nothing if the
// line would exceed MaxLineSize.
func (b *buffer) insert(r rune) bool {
	n := utf8.RuneLen(r)
	if n < 0 || b.size+n > MaxLineSize {
		return false
	}
	b.runes = append(b.runes, 0)
	copy(b.runes[b.dot+1:], b.runes[b.dot:])
	b.runes[b.dot] = r
	b.dot++
	b.size += n
	return true
}

// Deletes the runes in [from, to) and puts the cursor at from.
func (b *buffer) delete(from, to int) {
	for _, r := range b.runes[from:to] {
		b.size -= utf8.RuneLen(r)
	}
	b.runes = append(b.runes[:from], b.runes[to:]...)
	b.dot = from
}

func (b *buffer) backspace() bool {
	if b.dot == 0 {
		return false
	}
	b.delete(b.dot-1, b.dot)
	return true
}

func (b *buffer) deleteForward() bool {
	if b.dot == len(b.runes) {
		return false
	}
	b.delete(b.dot, b.dot+1)
	return true
}

func (b *buffer) left() bool {
	if b.dot == 0 {
		return false
	}
	b.dot--
	return true
}

func (b *buffer) right() bool {
	if b.dot == len(b.runes) {
		return false
	}
	b.dot++
	return true
}

func (b *buffer) home() { b.dot = 0 }

func (b *buffer) end() { b.dot = len(b.runes) }

func (b *buffer) killToStart() { b.delete(0, b.dot) }

func (b *buffer) killToEnd() { b.delete(b.dot, len(b.runes)) }

// Deletes the word before the cursor along with the spaces after it.
func (b *buffer) killWordLeft() {
	i := b.dot
	for i > 0 && unicode.IsSpace(b.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.runes[i-1]) {
		i--
	}
	b.delete(i, b.dot)
}
