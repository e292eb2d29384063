package exec

import (
	"os"
	"testing"

	"src.nfsh.sh/pkg/ir"
)

func stage(name string, links ...ir.Link) ir.Stage {
	return ir.Stage{Args: []string{name}, Links: links}
}

func TestPipeSet_Plan(t *testing.T) {
	p := ir.Pipeline{Stages: []ir.Stage{
		stage("a", ir.Link{Source: 1, Dest: 0}, ir.Link{Source: 2, Dest: 1},
			ir.Link{Source: ir.Unattached, Dest: 4}),
		stage("b", ir.Link{Source: 1, Dest: 0}, ir.Link{Source: 3, Dest: ir.Unattached}),
		stage("c"),
	}}
	ps, err := newPipeSet(p)
	if err != nil {
		t.Fatal(err)
	}
	defer ps.closeAll()
	stdio := [3]*os.File{os.Stdin, os.Stdout, os.Stderr}
	pp := ps.pipes

	tests := []struct {
		stage int
		want  []*os.File
	}{
		{0, []*os.File{os.Stdin, pp[0][0].w, pp[0][1].w}},
		// The write end placed on 1 wins over the read end placed before.
		{1, []*os.File{pp[0][0].r, pp[1][0].w, os.Stderr, pp[1][1].w, pp[0][2].r}},
		{2, []*os.File{pp[1][0].r, os.Stdout, os.Stderr}},
	}
	for _, test := range tests {
		got := ps.plan(p, test.stage, stdio)
		if !sameFiles(got, test.want) {
			t.Errorf("plan(%d) = %v, want %v", test.stage, names(got), names(test.want))
		}
	}
}

func TestPipeSet_PlanFillsGaps(t *testing.T) {
	p := ir.Pipeline{Stages: []ir.Stage{
		stage("a", ir.Link{Source: 1, Dest: 6}), stage("b")}}
	ps, err := newPipeSet(p)
	if err != nil {
		t.Fatal(err)
	}
	defer ps.closeAll()
	got := ps.plan(p, 1, [3]*os.File{os.Stdin, os.Stdout, os.Stderr})
	want := []*os.File{os.Stdin, os.Stdout, os.Stderr, nil, nil, nil, ps.pipes[0][0].r}
	if !sameFiles(got, want) {
		t.Errorf("plan(1) = %v, want %v", names(got), names(want))
	}
}

func TestPipeSet_CloseIsIdempotent(t *testing.T) {
	p := ir.Pipeline{Stages: []ir.Stage{
		stage("a", ir.Link{Source: 1, Dest: 0}), stage("b")}}
	ps, err := newPipeSet(p)
	if err != nil {
		t.Fatal(err)
	}
	r := ps.pipes[0][0].r
	ps.closeStage(0)
	if ps.pipes[0][0].r != nil || ps.pipes[0][0].w != nil {
		t.Errorf("closed ends not cleared")
	}
	ps.closeStage(0)
	ps.closeAll()
	if _, err := r.Read(make([]byte, 1)); err == nil {
		t.Errorf("read end still open")
	}
}

func sameFiles(a, b []*os.File) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func names(files []*os.File) []string {
	s := make([]string, len(files))
	for i, f := range files {
		if f != nil {
			s[i] = f.Name()
		}
	}
	return s
}
