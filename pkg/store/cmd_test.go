package store_test

import (
	"path/filepath"
	"testing"

	"src.nfsh.sh/pkg/store"
	"src.nfsh.sh/pkg/store/storetest"
	"src.nfsh.sh/pkg/testutil"
)

func TestCmd(t *testing.T) {
	storetest.TestCmd(t, store.MustTempStore(t))
}

func TestCmd_Persistent(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "db")
	st, err := store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	st.AddCmd("echo foo")
	st.AddCmd("echo bar")
	st.Close()

	st, err = store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if seq, _ := st.NextCmdSeq(); seq != 3 {
		t.Errorf("NextCmdSeq() after reopening -> %v, want 3", seq)
	}
	if text, _ := st.Cmd(2); text != "echo bar" {
		t.Errorf("Cmd(2) after reopening -> %q, want %q", text, "echo bar")
	}
}

func TestNewStore_BadPath(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "no-such-dir", "db")
	if _, err := store.NewStore(path); err == nil {
		t.Errorf("NewStore(%q) -> nil error, want error", path)
	}
}
