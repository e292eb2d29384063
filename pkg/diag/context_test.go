package diag

import (
	"testing"

	"src.nfsh.sh/pkg/tt"
)

func TestContext_Describe(t *testing.T) {
	tt.Test(t, tt.Fn("Describe", (*Context).Describe), tt.Table{
		tt.Args(NewContext("[test]", "cat", Ranging{0, 3})).Rets("[test]:1:1"),
		tt.Args(NewContext("[test]", "cat <|> wc", Ranging{4, 5})).Rets("[test]:1:5"),
		// Columns are counted in codepoints.
		tt.Args(NewContext("[test]", "é x", Ranging{3, 4})).Rets("[test]:1:3"),
		tt.Args(NewContext("[test]", "a\nb", Ranging{2, 3})).Rets("[test]:2:1"),
		tt.Args(NewContext("[test]", "a", Ranging{0, 5})).Rets("[test], invalid position 0-5"),
	})
}

func TestContext_Show(t *testing.T) {
	setCulpritMarkers(t, "<", ">")

	tt.Test(t, tt.Fn("Show", (*Context).Show), tt.Table{
		tt.Args(NewContext("[test]", "cat <3|x> b", Ranging{7, 8}), "").
			Rets("[test]:1:8: cat <3|<x>> b"),
		// Empty culprit is shown as a placeholder.
		tt.Args(NewContext("[test]", "cat", Ranging{3, 3}), "").
			Rets("[test]:1:4: cat<^>"),
		// Trailing newline in culprit is removed.
		tt.Args(NewContext("[test]", "cat x\n", Ranging{4, 6}), "").
			Rets("[test]:1:5: cat <x>"),
		tt.Args(NewContext("[test]", "a (b\nc) d", Ranging{2, 7}), "_").
			Rets("[test]:1:3: a <(b>\n_<c)> d"),
	})
}
