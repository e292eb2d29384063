package edit

import (
	"strings"
	"testing"

	"src.nfsh.sh/pkg/tt"
)

// Applies an operation to a buffer described as text with "|" at the cursor,
// and returns the resulting buffer in the same notation.
func applyOp(op func(*buffer), s string) string {
	i := strings.IndexByte(s, '|')
	b := buffer{}
	b.set(s[:i] + s[i+1:])
	b.dot = len([]rune(s[:i]))
	op(&b)
	return string(b.runes[:b.dot]) + "|" + string(b.runes[b.dot:])
}

func opFn(f func(*buffer)) func(string) string {
	return func(s string) string { return applyOp(f, s) }
}

func TestBufferOps(t *testing.T) {
	insertX := func(b *buffer) { b.insert('x') }
	tt.Test(t, tt.Fn("insert", opFn(insertX)), tt.Table{
		tt.Args("|").Rets("x|"),
		tt.Args("ab|cd").Rets("abx|cd"),
		tt.Args("世|界").Rets("世x|界"),
	})
	tt.Test(t, tt.Fn("backspace", opFn(func(b *buffer) { b.backspace() })), tt.Table{
		tt.Args("|abc").Rets("|abc"),
		tt.Args("ab|c").Rets("a|c"),
		tt.Args("世界|").Rets("世|"),
	})
	tt.Test(t, tt.Fn("deleteForward", opFn(func(b *buffer) { b.deleteForward() })), tt.Table{
		tt.Args("abc|").Rets("abc|"),
		tt.Args("a|bc").Rets("a|c"),
	})
	tt.Test(t, tt.Fn("left", opFn(func(b *buffer) { b.left() })), tt.Table{
		tt.Args("|ab").Rets("|ab"),
		tt.Args("a|b").Rets("|ab"),
	})
	tt.Test(t, tt.Fn("right", opFn(func(b *buffer) { b.right() })), tt.Table{
		tt.Args("ab|").Rets("ab|"),
		tt.Args("a|b").Rets("ab|"),
	})
	tt.Test(t, tt.Fn("home", opFn((*buffer).home)), tt.Table{
		tt.Args("ab|c").Rets("|abc"),
	})
	tt.Test(t, tt.Fn("end", opFn((*buffer).end)), tt.Table{
		tt.Args("a|bc").Rets("abc|"),
	})
	tt.Test(t, tt.Fn("killToStart", opFn((*buffer).killToStart)), tt.Table{
		tt.Args("ab|cd").Rets("|cd"),
		tt.Args("|cd").Rets("|cd"),
	})
	tt.Test(t, tt.Fn("killToEnd", opFn((*buffer).killToEnd)), tt.Table{
		tt.Args("ab|cd").Rets("ab|"),
	})
	tt.Test(t, tt.Fn("killWordLeft", opFn((*buffer).killWordLeft)), tt.Table{
		tt.Args("echo foo|").Rets("echo |"),
		tt.Args("echo foo  |").Rets("echo |"),
		tt.Args("echo fo|o").Rets("echo |o"),
		tt.Args("|echo").Rets("|echo"),
	})
}

func TestBuffer_SizeLimit(t *testing.T) {
	b := buffer{}
	b.set(strings.Repeat("a", MaxLineSize-2))
	if !b.insert('b') {
		t.Errorf("insert within limit failed")
	}
	// '世' takes 3 bytes, 1 more than left.
	if b.insert('世') {
		t.Errorf("insert beyond limit succeeded")
	}
	if !b.insert('c') {
		t.Errorf("insert up to limit failed")
	}
	if b.size != MaxLineSize || len(b.String()) != MaxLineSize {
		t.Errorf("size = %d, len = %d, want %d", b.size, len(b.String()), MaxLineSize)
	}
	b.killToStart()
	if b.size != 0 {
		t.Errorf("size after kill = %d, want 0", b.size)
	}
}

func TestBuffer_SetTruncates(t *testing.T) {
	b := buffer{}
	b.set(strings.Repeat("x", MaxLineSize+100))
	if b.size != MaxLineSize || b.dot != MaxLineSize {
		t.Errorf("size = %d, dot = %d, want %d", b.size, b.dot, MaxLineSize)
	}
}
