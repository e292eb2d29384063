// Package exec runs a pipeline as a graph of processes.
//
// Every link of a stage becomes one pipe. The write end of the pipe is placed
// on the link's Source descriptor in the process of the stage, and the read
// end on the link's Dest descriptor in the process of the next stage. All
// processes inherit the descriptors of Config.Stdio on 0, 1 and 2 unless a
// link overrides them.
package exec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"src.nfsh.sh/pkg/errutil"
	"src.nfsh.sh/pkg/ir"
	"src.nfsh.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[exec] ")

// Exit codes of stages that could not be spawned.
const (
	ExitNotFound       = 127
	ExitCannotExecute  = 126
	exitWaitFailed     = -1
	exitSignaledOffset = 128
)

// Config is the environment shared by all stages of a pipeline.
type Config struct {
	// Descriptors 0, 1 and 2 of every stage before links are applied. Nil
	// entries default to os.Stdin, os.Stdout and os.Stderr.
	Stdio [3]*os.File
	// Environment of the processes. Defaults to os.Environ().
	Env []string
	// Working directory of the processes. Defaults to that of the current
	// process.
	Dir string
}

func (cfg Config) withDefaults() Config {
	for i, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		if cfg.Stdio[i] == nil {
			cfg.Stdio[i] = f
		}
	}
	if cfg.Env == nil {
		cfg.Env = os.Environ()
	}
	return cfg
}

// StageResult is the outcome of one stage.
type StageResult struct {
	Args []string
	// Pid of the process, or 0 if it was not spawned.
	Pid     int
	Spawned bool
	// Exit status of the process. A process killed by a signal has 128 plus
	// the signal number. A stage that could not be spawned has ExitNotFound or
	// ExitCannotExecute.
	ExitCode int
	// A *SpawnError if the stage could not be spawned, or the error from
	// waiting for the process.
	Err error
}

// Result is the outcome of running a pipeline, one entry per stage.
type Result struct {
	Stages []StageResult
}

// Err combines the errors of all stages, or returns nil if there is none.
func (r *Result) Err() error {
	var errs []error
	for _, st := range r.Stages {
		errs = append(errs, st.Err)
	}
	return errutil.Multi(errs...)
}

// ExitCode returns the exit code of the last stage.
func (r *Result) ExitCode() int {
	if len(r.Stages) == 0 {
		return 0
	}
	return r.Stages[len(r.Stages)-1].ExitCode
}

// Run spawns the processes of a pipeline and waits for all of them.
//
// If the pipeline is invalid, it returns an error wrapping ir.ErrInvalid. If
// a pipe cannot be created, it returns a *DescriptorError and no process is
// spawned. Otherwise it returns the result of every stage, along with the
// error of Result.Err. A stage that cannot be spawned does not stop the other
// stages.
func Run(p ir.Pipeline, cfg Config) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	pipes, err := newPipeSet(p)
	if err != nil {
		logger.Println("creating pipes:", err)
		return nil, err
	}
	defer pipes.closeAll()

	res := &Result{Stages: make([]StageResult, len(p.Stages))}
	procs := make([]*os.Process, len(p.Stages))
	for i, st := range p.Stages {
		res.Stages[i].Args = st.Args
		files := pipes.plan(p, i, cfg.Stdio)
		proc, err := spawn(st.Args, files, cfg)
		if err != nil {
			logger.Printf("stage %d: spawning %s: %v", i, st.Args[0], err)
			res.Stages[i].ExitCode = spawnExitCode(err)
			res.Stages[i].Err = &SpawnError{Stage: i, Args: st.Args, Err: err}
		} else {
			logger.Printf("stage %d: spawned %s as %d", i, st.Args[0], proc.Pid)
			procs[i] = proc
			res.Stages[i].Pid = proc.Pid
			res.Stages[i].Spawned = true
		}
		if i > 0 {
			pipes.closeStage(i - 1)
		}
	}
	// Nothing may keep a write end open in the parent while waiting, or a
	// reader downstream never sees EOF.
	pipes.closeAll()

	var wg sync.WaitGroup
	for i, proc := range procs {
		if proc == nil {
			continue
		}
		wg.Add(1)
		go func(i int, proc *os.Process) {
			defer wg.Done()
			state, err := proc.Wait()
			if err != nil {
				logger.Printf("stage %d: waiting for %d: %v", i, proc.Pid, err)
				res.Stages[i].ExitCode = exitWaitFailed
				res.Stages[i].Err = fmt.Errorf("waiting for %s: %w", res.Stages[i].Args[0], err)
				return
			}
			res.Stages[i].ExitCode = exitCode(state)
			logger.Printf("stage %d: %d exited with %d", i, proc.Pid, res.Stages[i].ExitCode)
		}(i, proc)
	}
	wg.Wait()
	return res, res.Err()
}

// Looks up and starts the program of a stage.
func spawn(args []string, files []*os.File, cfg Config) (*os.Process, error) {
	path, err := lookPath(args[0], cfg.Dir)
	if err != nil {
		return nil, err
	}
	// argv[0] is kept as written.
	return os.StartProcess(path, args, &os.ProcAttr{
		Dir: cfg.Dir, Env: cfg.Env, Files: files})
}

// Like exec.LookPath, but resolves a relative name containing a slash against
// dir instead of the working directory of the current process.
func lookPath(name, dir string) (string, error) {
	if dir != "" && strings.Contains(name, "/") && !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return osexec.LookPath(name)
}

func spawnExitCode(err error) int {
	if errors.Is(err, osexec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	return ExitCannotExecute
}

func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return exitSignaledOffset + int(ws.Signal())
	}
	return state.ExitCode()
}
