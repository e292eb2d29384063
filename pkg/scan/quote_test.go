package scan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.nfsh.sh/pkg/tt"
)

func TestQuote(t *testing.T) {
	tt.Test(t, tt.Fn("Quote", Quote), tt.Table{
		tt.Args("ls").Rets("ls", true),
		tt.Args("").Rets("''", true),
		tt.Args("a b").Rets("'a b'", true),
		tt.Args("<|>").Rets("'<|>'", true),
		tt.Args("a@b").Rets("'a@b'", true),
		tt.Args("it's").Rets("it's", false),
	})
}

func TestFormat_RoundTrips(t *testing.T) {
	tokens, err := Scan("[test]", "a  'b c' <1|@>   ''")
	if err != nil {
		t.Fatal(err)
	}
	src, formatted := Format(tokens)
	if want := "a 'b c' < 1 | @ > ''"; src != want {
		t.Errorf("Format -> %q, want %q", src, want)
	}
	rescanned, err := Scan("[test]", src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(formatted, rescanned); diff != "" {
		t.Errorf("rescanned tokens differ (-formatted +rescanned):\n%s", diff)
	}
}
