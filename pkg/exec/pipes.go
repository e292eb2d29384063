package exec

import (
	"os"

	"src.nfsh.sh/pkg/ir"
)

// Creates a pipe. Tests replace it to inject failures.
var osPipe = os.Pipe

// One pipe. A nil end has been closed.
type pipe struct {
	r, w *os.File
}

// All pipes of a pipeline. pipes[i][j] realizes link j of stage i.
type pipeSet struct {
	pipes [][]pipe
}

// Creates the pipes of all links. On failure, the pipes created so far are
// closed and a *DescriptorError is returned.
func newPipeSet(p ir.Pipeline) (*pipeSet, error) {
	ps := &pipeSet{pipes: make([][]pipe, len(p.Stages))}
	for i, st := range p.Stages {
		ps.pipes[i] = make([]pipe, len(st.Links))
		for j := range st.Links {
			r, w, err := osPipe()
			if err != nil {
				ps.closeAll()
				return nil, &DescriptorError{Stage: i, Err: err}
			}
			ps.pipes[i][j] = pipe{r, w}
		}
		logger.Printf("stage %d: created %d pipes", i, len(st.Links))
	}
	return ps, nil
}

// Builds the descriptor table of the process of stage i: the stdio files,
// then the read ends of the pipes of stage i-1 on their Dest descriptors,
// then the write ends of the pipes of stage i on their Source descriptors.
// A later placement on the same descriptor wins over an earlier one.
func (ps *pipeSet) plan(p ir.Pipeline, i int, stdio [3]*os.File) []*os.File {
	files := append([]*os.File(nil), stdio[:]...)
	place := func(fd int, f *os.File) {
		if fd == ir.Unattached {
			return
		}
		for len(files) <= fd {
			files = append(files, nil)
		}
		files[fd] = f
	}
	if i > 0 {
		for j, l := range p.Stages[i-1].Links {
			place(l.Dest, ps.pipes[i-1][j].r)
		}
	}
	for j, l := range p.Stages[i].Links {
		place(l.Source, ps.pipes[i][j].w)
	}
	return files
}

// Closes both ends of all pipes owned by stage i.
func (ps *pipeSet) closeStage(i int) {
	for j := range ps.pipes[i] {
		closeEnd(&ps.pipes[i][j].r)
		closeEnd(&ps.pipes[i][j].w)
	}
}

// Closes every end still open. It can be called any number of times.
func (ps *pipeSet) closeAll() {
	for i := range ps.pipes {
		ps.closeStage(i)
	}
}

func closeEnd(f **os.File) {
	if *f == nil {
		return
	}
	if err := (*f).Close(); err != nil {
		logger.Println("closing pipe:", err)
	}
	*f = nil
}
