package exec

import (
	"errors"
	"fmt"
)

// Kinds of execution errors.
var (
	// ErrSpawnFailure is matched by every *SpawnError.
	ErrSpawnFailure = errors.New("spawn failure")
	// ErrDescriptor is matched by every *DescriptorError.
	ErrDescriptor = errors.New("descriptor error")
)

// SpawnError is the error of a stage whose program could not be found or
// started.
type SpawnError struct {
	Stage int
	Args  []string
	Err   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("stage %d: cannot run %s: %v", e.Stage, e.Args[0], e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSpawnFailure) true.
func (e *SpawnError) Is(target error) bool { return target == ErrSpawnFailure }

// DescriptorError is the error of a pipe that could not be created.
type DescriptorError struct {
	Stage int
	Err   error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("stage %d: cannot create pipe: %v", e.Stage, e.Err)
}

func (e *DescriptorError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDescriptor) true.
func (e *DescriptorError) Is(target error) bool { return target == ErrDescriptor }
