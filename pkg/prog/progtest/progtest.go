// Package progtest provides a framework for testing subprograms.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"src.nfsh.sh/pkg/prog"
	"src.nfsh.sh/pkg/testutil"
)

// Case is a test case for Test, created by ThatNfsh.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatNfsh returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "nfsh -c hello" writes "hello\n" to
// stdout reads:
//
//	ThatNfsh("-c", "echo hello").WritesStdout("hello\n")
func ThatNfsh(args ...string) Case {
	return Case{args: append([]string{"nfsh"}, args...)}
}

// WithStdin returns an altered Case that feeds s to the program as stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatNfsh("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to return with
// the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{s, false}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{s, true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{s, false}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{s, true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exitCode != c.want.exitCode {
				t.Errorf("got exit code %v, want %v", r.exitCode, c.want.exitCode)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments. It returns the Program's exit
// code and output to stdout and stderr.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"nfsh"}, args...), "")
	return r.exitCode, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := testutil.MustPipe()
	// Write stdin in a goroutine so that a large stdin does not block.
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	r1, w1 := testutil.MustPipe()
	r2, w2 := testutil.MustPipe()
	// Drain stdout and stderr concurrently so that a program producing more
	// output than a pipe can buffer does not deadlock.
	stdoutCh := readAllAsync(r1)
	stderrCh := readAllAsync(r2)

	exitCode := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	r0.Close()
	w1.Close()
	w2.Close()
	return result{exitCode, output{<-stdoutCh, false}, output{<-stderrCh, false}}
}

func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(testutil.MustReadAllAndClose(r))
	}()
	return ch
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
