// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.nfsh.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"echo foo", "put bar", "put lorem", "echo bar"}
	searches = []struct {
		next      bool
		seq       int
		prefix    string
		wantedSeq int
		wantedCmd string
		wantedErr error
	}{
		{false, 5, "echo", 4, "echo bar", nil},
		{false, 5, "put", 3, "put lorem", nil},
		{false, 4, "echo", 1, "echo foo", nil},
		{false, 3, "f", 0, "", ErrNoMatchingCmd},
		{false, 1, "", 0, "", ErrNoMatchingCmd},
		{false, 100, "", 4, "echo bar", nil},

		{true, 1, "echo", 1, "echo foo", nil},
		{true, 1, "put", 2, "put bar", nil},
		{true, 2, "echo", 4, "echo bar", nil},
		{true, 4, "put", 0, "", ErrNoMatchingCmd},
		{true, 5, "", 0, "", ErrNoMatchingCmd},
	}
)

// TestCmd tests the command history functionality of a Store. The store must
// be empty.
func TestCmd(t *testing.T, store Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (1, nil)",
			startSeq, err)
	}
	if _, err := store.PrevCmd(1, ""); err != ErrNoMatchingCmd {
		t.Errorf("store.PrevCmd on empty store -> %v, want %v", err, ErrNoMatchingCmd)
	}
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) -> (%v, %v), want (%v, nil)",
				cmd, seq, err, wantSeq)
		}
	}
	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> (%v, %v), want (%v, nil)",
			endSeq, err, wantedEndSeq)
	}
	for i, wantedCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantedCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> (%v, %v), want (%v, nil)",
				seq, cmd, err, wantedCmd)
		}
	}

	for _, tt := range searches {
		f := store.PrevCmd
		fname := "store.PrevCmd"
		if tt.next {
			f = store.NextCmd
			fname = "store.NextCmd"
		}
		cmd, err := f(tt.seq, tt.prefix)
		wantedCmd := Cmd{Text: tt.wantedCmd, Seq: tt.wantedSeq}
		if cmd != wantedCmd || err != tt.wantedErr {
			t.Errorf("%s(%v, %v) -> (%v, %v), want (%v, %v)",
				fname, tt.seq, tt.prefix, cmd, err, wantedCmd, tt.wantedErr)
		}
	}

	got, err := store.Cmds(2, 4)
	want := []Cmd{{Text: "put bar", Seq: 2}, {Text: "put lorem", Seq: 3}}
	if diff := cmp.Diff(want, got); diff != "" || err != nil {
		t.Errorf("store.Cmds(2, 4) -> error %v, (-want +got):\n%s", err, diff)
	}

	if err := store.DelCmd(1); err != nil {
		t.Errorf("store.DelCmd(1) -> %v, want nil", err)
	}
	if _, err := store.Cmd(1); err != ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) after DelCmd -> %v, want %v", err, ErrNoMatchingCmd)
	}
	// Sequence numbers are not reused.
	if seq, _ := store.NextCmdSeq(); seq != wantedEndSeq {
		t.Errorf("store.NextCmdSeq() after DelCmd -> %v, want %v", seq, wantedEndSeq)
	}
}
