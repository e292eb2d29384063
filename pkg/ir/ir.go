// Package ir defines the intermediate representation of a pipeline, produced
// by the parser and consumed by the executor.
//
// A Pipeline is an ordered sequence of Stages. Each Stage is one command, and
// declares the Links that connect it to the next Stage. A Link is one pipe:
// its Source is the descriptor of the upstream process that writes into the
// pipe, and its Dest is the descriptor of the downstream process that reads
// from it.
package ir

import (
	"errors"
	"fmt"
)

// Bounds of a Stage.
const (
	// MaxArgs is the maximum number of arguments of a stage, including the
	// program name.
	MaxArgs = 32
	// MaxLinks is the maximum number of links from one stage to the next.
	MaxLinks = 32
)

// Default descriptors of a Link.
const (
	DefaultSource = 1
	DefaultDest   = 0
)

// Unattached is the descriptor value written as '@'. An Unattached end of a
// link is not placed in the descriptor table of its process.
const Unattached = -1

// MaxFD is the largest descriptor number a Link may name.
const MaxFD = 255

// Link is one pipe from a stage to the next.
type Link struct {
	Source int
	Dest   int
}

// Stage is one command of a pipeline. Args[0] is the program name.
type Stage struct {
	Args  []string
	Links []Link
}

// Pipeline is a sequence of stages. The order of Stages is both the order in
// which they are spawned and the order of the pipe topology.
type Pipeline struct {
	Stages []Stage
}

// ErrInvalid is wrapped by errors returned from Validate.
var ErrInvalid = errors.New("invalid pipeline")

// Validate checks the invariants of a pipeline: it has at least one stage;
// every stage has a non-empty program name and at most MaxArgs arguments;
// every stage has at most MaxLinks links whose descriptors are in range; and
// the last stage has no links.
func (p Pipeline) Validate() error {
	if len(p.Stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrInvalid)
	}
	for i, st := range p.Stages {
		switch {
		case len(st.Args) == 0 || st.Args[0] == "":
			return fmt.Errorf("%w: stage %d has no program name", ErrInvalid, i)
		case len(st.Args) > MaxArgs:
			return fmt.Errorf("%w: stage %d has %d arguments, more than %d",
				ErrInvalid, i, len(st.Args), MaxArgs)
		case len(st.Links) > MaxLinks:
			return fmt.Errorf("%w: stage %d has %d links, more than %d",
				ErrInvalid, i, len(st.Links), MaxLinks)
		case i == len(p.Stages)-1 && len(st.Links) > 0:
			return fmt.Errorf("%w: last stage has links", ErrInvalid)
		}
		for _, l := range st.Links {
			if !validFD(l.Source) || !validFD(l.Dest) {
				return fmt.Errorf("%w: stage %d has link %v with descriptor out of range",
					ErrInvalid, i, l)
			}
		}
	}
	return nil
}

func validFD(fd int) bool {
	return fd == Unattached || (0 <= fd && fd <= MaxFD)
}

// Equal reports whether two pipelines are structurally equal. A nil slice
// and an empty slice are considered equal.
func Equal(a, b Pipeline) bool {
	if len(a.Stages) != len(b.Stages) {
		return false
	}
	for i := range a.Stages {
		sa, sb := a.Stages[i], b.Stages[i]
		if len(sa.Args) != len(sb.Args) || len(sa.Links) != len(sb.Links) {
			return false
		}
		for j := range sa.Args {
			if sa.Args[j] != sb.Args[j] {
				return false
			}
		}
		for j := range sa.Links {
			if sa.Links[j] != sb.Links[j] {
				return false
			}
		}
	}
	return true
}
