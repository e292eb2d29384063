// Package storedefs contains definitions of the history store API.
//
// It is a separate package so that packages that only depend on the API do
// not need to depend on the bbolt implementation.
package storedefs

import "errors"

// ErrNoMatchingCmd is the error returned when a Cmd, PrevCmd or NextCmd query
// completes with no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Store is the command history. Commands are numbered with increasing
// sequence numbers starting from 1.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	DelCmd(seq int) error
	Cmd(seq int) (string, error)
	// Cmds returns the commands with sequence numbers in [from, upto).
	Cmds(from, upto int) ([]Cmd, error)
	// NextCmd returns the first command at or after from with the prefix.
	NextCmd(from int, prefix string) (Cmd, error)
	// PrevCmd returns the last command before upto with the prefix.
	PrevCmd(upto int, prefix string) (Cmd, error)
}

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}
