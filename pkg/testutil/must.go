package testutil

import (
	"io"
	"os"
)

// MustPipe calls os.Pipe and panics if an error is returned.
func MustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}

// MustReadAllAndClose reads everything from r, closes it, and panics if the
// read fails.
func MustReadAllAndClose(r io.ReadCloser) []byte {
	bs, err := io.ReadAll(r)
	if err != nil {
		panic(err)
	}
	r.Close()
	return bs
}

// Must panics if the error value is not nil. It is typically used like this:
//
//	testutil.Must(a_function())
//
// Where `a_function` returns a single error value.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
