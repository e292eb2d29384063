// Package parse implements the nfsh parser.
//
// The parser turns a token stream into an [ir.Pipeline]. The grammar is:
//
//	pipeline   := STRING arg* (connector pipeline)?
//	arg        := STRING
//	connector  := '<' link (link)* '>'
//	link       := fd? '|' fd?
//	fd         := STRING | '@'
//
// Each link declares one pipe from the stage before the connector to the stage
// after it. The left fd is the upstream descriptor writing into the pipe and
// defaults to 1; the right fd is the downstream descriptor reading from it and
// defaults to 0. An '@' stands for [ir.Unattached].
package parse

import (
	"errors"

	"src.nfsh.sh/pkg/diag"
	"src.nfsh.sh/pkg/ir"
	"src.nfsh.sh/pkg/scan"
)

// Source describes a line of source code.
type Source struct {
	// Name is used in error messages, for example "[tty 3]".
	Name string
	Code string
}

// Error is a parse error. Its Kind is either ErrSyntax or ErrCapacity.
type Error = diag.Error

// Kinds of parse errors.
var (
	// ErrSyntax is the Kind of errors caused by a grammar mismatch.
	ErrSyntax = errors.New("syntax error")
	// ErrCapacity is the Kind of errors caused by a stage exceeding
	// ir.MaxArgs or ir.MaxLinks.
	ErrCapacity = errors.New("capacity exceeded")
)

// Error messages.
const (
	errShouldBeCommand = "expected command or file"
	errShouldBeLess    = "expected '<'"
	errShouldBeGreater = "expected '>'"
	errShouldBePipe    = "expected '|'"
	errShouldBeFD      = "expected file descriptor"
	errFDOutOfRange    = "file descriptor out of range"
	errUnexpectedToken = "unexpected token"
	errOutOfArgs       = "out of arguments"
	errOutOfPipes      = "out of pipes"
)

// Parse scans and parses a line. The returned error is always a *diag.Error;
// its Kind is scan.ErrScan, ErrSyntax or ErrCapacity.
func Parse(src Source) (ir.Pipeline, error) {
	tokens, err := scan.Scan(src.Name, src.Code)
	if err != nil {
		return ir.Pipeline{}, err
	}
	return ParseTokens(src, tokens)
}

// ParseTokens parses a token stream. The ranges of the tokens must point into
// src.Code; if src.Code is empty, a source is reconstructed from the tokens
// with scan.Format so that errors can still be shown in context.
//
// On success the whole token stream has been consumed. On failure the zero
// Pipeline is returned along with an *Error.
func ParseTokens(src Source, tokens []scan.Token) (ir.Pipeline, error) {
	if src.Code == "" && len(tokens) > 0 {
		src.Code, tokens = scan.Format(tokens)
	}
	ps := &parser{src: src, tokens: tokens}
	if !ps.pipeline() || ps.pos != len(ps.tokens) {
		if ps.err == nil {
			ps.error(ErrSyntax, errUnexpectedToken)
		}
		logger.Println("parse failed:", ps.err)
		return ir.Pipeline{}, ps.err
	}
	return ir.Pipeline{Stages: ps.stages}, nil
}
