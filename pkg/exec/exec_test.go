//go:build !windows && !plan9

package exec

import (
	"errors"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.nfsh.sh/pkg/errutil"
	"src.nfsh.sh/pkg/ir"
	"src.nfsh.sh/pkg/parse"
	"src.nfsh.sh/pkg/sys"
	"src.nfsh.sh/pkg/testutil"
)

func mustParse(t *testing.T, code string) ir.Pipeline {
	t.Helper()
	p, err := parse.Parse(parse.Source{Name: "[test]", Code: code})
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	return p
}

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := osexec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

// A test fixture with stdin from /dev/null, and stdout and stderr to a file.
type fixture struct {
	dir string
	cfg Config
	out *os.File
}

func setup(t *testing.T) *fixture {
	requireSh(t)
	dir := testutil.TempDir(t)
	in, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { in.Close() })
	out, err := os.Create(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { out.Close() })
	return &fixture{dir, Config{Stdio: [3]*os.File{in, out, out}}, out}
}

func (f *fixture) run(t *testing.T, code string) (*Result, error) {
	t.Helper()
	return Run(mustParse(t, code), f.cfg)
}

func (f *fixture) output(t *testing.T) string {
	t.Helper()
	bs, err := os.ReadFile(f.out.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(bs)
}

var runTests = []struct {
	name string
	code string
	want string
}{
	{"single stage", "echo hello", "hello\n"},
	{"default link", "echo hello <|> cat", "hello\n"},
	{"three stages", "echo a b c <|> tr ' ' '\n' <|> sort -r", "c\nb\na\n"},
	{"stderr carried on a second pipe",
		"sh -c 'echo out; echo err >&2' <1|0 2|3> sh -c 'cat; cat <&3'",
		"out\nerr\n"},
	{"dest remapped", "echo hi <1|5> sh -c 'cat <&5'", "hi\n"},
	{"source remapped", "sh -c 'echo three >&3' <3|0> cat", "three\n"},
	{"both remapped", "sh -c 'echo x >&4' <4|6> sh -c 'cat <&6'", "x\n"},
	{"unattached source keeps stdout", "echo hi <@|0> cat", "hi\n"},
	{"unattached dest keeps stdin", "echo hi <1|@> cat", ""},
}

func TestRun(t *testing.T) {
	for _, test := range runTests {
		t.Run(test.name, func(t *testing.T) {
			f := setup(t)
			res, err := f.run(t, test.code)
			if err != nil {
				t.Fatalf("Run(%q) -> error %v", test.code, err)
			}
			if code := res.ExitCode(); code != 0 {
				t.Errorf("Run(%q) -> exit code %d", test.code, code)
			}
			if got := f.output(t); got != test.want {
				t.Errorf("Run(%q) outputs %q, want %q", test.code, got, test.want)
			}
		})
	}
}

func TestRun_StageResults(t *testing.T) {
	f := setup(t)
	res, err := f.run(t, "echo a <|> cat")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Stages) != 2 {
		t.Fatalf("got %d stage results, want 2", len(res.Stages))
	}
	for i, st := range res.Stages {
		if !st.Spawned || st.Pid <= 0 || st.Err != nil {
			t.Errorf("stage %d: got %+v, want spawned without error", i, st)
		}
	}
	if diff := cmp.Diff([]string{"cat"}, res.Stages[1].Args); diff != "" {
		t.Errorf("Args (-want +got):\n%s", diff)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	f := setup(t)
	res, _ := f.run(t, "sh -c 'exit 3' <|> sh -c 'cat; exit 5'")
	if got := []int{res.Stages[0].ExitCode, res.Stages[1].ExitCode}; !cmp.Equal(got, []int{3, 5}) {
		t.Errorf("exit codes %v, want [3 5]", got)
	}
	if res.ExitCode() != 5 {
		t.Errorf("ExitCode() = %d, want 5", res.ExitCode())
	}

	res, _ = f.run(t, "sh -c 'kill -9 $$'")
	if res.ExitCode() != 128+9 {
		t.Errorf("ExitCode() of killed process = %d, want %d", res.ExitCode(), 128+9)
	}
}

func TestRun_WaitsForAllStages(t *testing.T) {
	f := setup(t)
	_, err := f.run(t, "sh -c 'sleep 0.1; echo late' <@|@> true")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.output(t); got != "late\n" {
		t.Errorf("output %q, want %q", got, "late\n")
	}
}

func TestRun_EnvAndDir(t *testing.T) {
	f := setup(t)
	f.cfg.Env = []string{"FOO=bar"}
	f.cfg.Dir = f.dir
	_, err := f.run(t, "sh -c 'echo $FOO; pwd'")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.output(t), "bar\n"+f.dir+"\n"; got != want {
		t.Errorf("output %q, want %q", got, want)
	}
}

func TestRun_RelativeProgramResolvedInDir(t *testing.T) {
	f := setup(t)
	testutil.ApplyDirIn(testutil.Dir{
		"script": testutil.File{Perm: 0755, Content: "#!/bin/sh\necho ran\n"},
	}, f.dir)
	f.cfg.Dir = f.dir
	_, err := f.run(t, "./script")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.output(t); got != "ran\n" {
		t.Errorf("output %q, want %q", got, "ran\n")
	}
}

func TestRun_SpawnFailureDoesNotStopOtherStages(t *testing.T) {
	f := setup(t)
	res, err := f.run(t, "echo hi <|> nfsh-no-such-program <|> sh -c 'cat; echo done'")

	if !errors.Is(err, ErrSpawnFailure) {
		t.Fatalf("got error %v, want spawn failure", err)
	}
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) || spawnErr.Stage != 1 {
		t.Errorf("got error %#v, want *SpawnError of stage 1", err)
	}
	st := res.Stages[1]
	if st.Spawned || st.ExitCode != ExitNotFound {
		t.Errorf("failed stage: got %+v, want not spawned with %d", st, ExitNotFound)
	}
	if !res.Stages[0].Spawned || !res.Stages[2].Spawned {
		t.Errorf("other stages not spawned: %+v", res.Stages)
	}
	if res.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", res.ExitCode())
	}
	// The last stage sees EOF because nothing holds the pipe from stage 1.
	if got := f.output(t); got != "done\n" {
		t.Errorf("output %q, want %q", got, "done\n")
	}
}

func TestRun_NotExecutable(t *testing.T) {
	f := setup(t)
	testutil.ApplyDirIn(testutil.Dir{
		"data": testutil.File{Perm: 0644, Content: "not a program"},
	}, f.dir)
	f.cfg.Dir = f.dir
	res, err := f.run(t, "./data")
	if !errors.Is(err, ErrSpawnFailure) {
		t.Errorf("got error %v, want spawn failure", err)
	}
	if res.ExitCode() != ExitCannotExecute {
		t.Errorf("ExitCode() = %d, want %d", res.ExitCode(), ExitCannotExecute)
	}
}

func TestRun_MultipleSpawnFailures(t *testing.T) {
	f := setup(t)
	_, err := f.run(t, "nfsh-no-such-1 <|> nfsh-no-such-2")
	if errs := errutil.Errors(err); len(errs) != 2 {
		t.Errorf("got errors %v, want 2", errs)
	}
}

func TestRun_InvalidPipeline(t *testing.T) {
	res, err := Run(ir.Pipeline{}, Config{})
	if !errors.Is(err, ir.ErrInvalid) {
		t.Errorf("got error %v, want ir.ErrInvalid", err)
	}
	if res != nil {
		t.Errorf("got result %v, want nil", res)
	}
}

func TestRun_PipeFailureSpawnsNothing(t *testing.T) {
	f := setup(t)
	var created []*os.File
	calls := 0
	testutil.Set(t, &osPipe, func() (*os.File, *os.File, error) {
		calls++
		if calls == 3 {
			return nil, nil, errors.New("too many open files")
		}
		r, w, err := os.Pipe()
		created = append(created, r, w)
		return r, w, err
	})
	f.cfg.Dir = f.dir

	res, err := f.run(t, "touch marker <1|0 2|3> cat <|> cat")

	if res != nil {
		t.Errorf("got result %v, want nil", res)
	}
	var descErr *DescriptorError
	if !errors.As(err, &descErr) || !errors.Is(err, ErrDescriptor) {
		t.Fatalf("got error %v, want *DescriptorError", err)
	}
	if descErr.Stage != 1 {
		t.Errorf("got error for stage %d, want 1", descErr.Stage)
	}
	if _, err := os.Stat(filepath.Join(f.dir, "marker")); err == nil {
		t.Errorf("a stage was spawned")
	}
	for _, file := range created {
		if _, err := file.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
			t.Errorf("pipe end %s left open", file.Name())
		}
	}
}

func TestRun_ClosesAllPipes(t *testing.T) {
	f := setup(t)
	codes := []string{
		"echo hi <1|0 2|3 @|4> sh -c 'cat; cat <&3' <|> cat",
		"echo hi <|> nfsh-no-such-program <1|0 1|7> cat",
	}
	// Warm up so that descriptors opened lazily by the runtime are not
	// counted.
	f.run(t, codes[0])
	before, err := sys.OpenFDs()
	if err != nil {
		t.Skip("cannot list descriptors:", err)
	}
	for _, code := range codes {
		f.run(t, code)
		after, _ := sys.OpenFDs()
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("descriptors after Run(%q) (-before +after):\n%s", code, diff)
		}
	}
}

func TestResult_Err(t *testing.T) {
	res := &Result{Stages: []StageResult{{Args: []string{"a"}}}}
	if err := res.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	spawnErr := &SpawnError{Stage: 0, Args: []string{"a"}, Err: osexec.ErrNotFound}
	res.Stages[0].Err = spawnErr
	if err := res.Err(); err != spawnErr {
		t.Errorf("Err() = %v, want %v", err, spawnErr)
	}
	if msg := spawnErr.Error(); !strings.Contains(msg, "cannot run a") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestResult_ExitCodeOfEmptyResult(t *testing.T) {
	if code := (&Result{}).ExitCode(); code != 0 {
		t.Errorf("ExitCode() = %d, want 0", code)
	}
}
