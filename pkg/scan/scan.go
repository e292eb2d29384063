// Package scan implements the lexical scanner of nfsh.
//
// The scanner turns one line of input into a stream of tokens drawn from a
// small, fixed vocabulary: the four punctuation tokens '<', '>', '|' and '@',
// and strings. A string is either a run of bytes up to the next delimiter, or
// a single-quoted run of bytes that may contain delimiters.
package scan

import (
	"errors"
	"fmt"

	"src.nfsh.sh/pkg/diag"
)

// Kind is the kind of a Token.
type Kind int

// Token kinds.
const (
	Less Kind = iota
	Greater
	Pipe
	At
	String
)

var kindNames = [...]string{
	Less:    "'<'",
	Greater: "'>'",
	Pipe:    "'|'",
	At:      "'@'",
	String:  "string",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical unit. Ranging is the position of the token in the source
// line, including any quotes.
type Token struct {
	Kind Kind
	Text string
	diag.Ranging
}

// MaxTokenSize is the maximum size of the text of a token, in bytes.
const MaxTokenSize = 1024

// ErrScan is the Kind of all errors returned by Scan.
var ErrScan = errors.New("scan error")

var (
	errUnterminated = "string not terminated"
	errTooLong      = fmt.Sprintf("token longer than %d bytes", MaxTokenSize)
)

// Scan scans a line. The name is used in error messages. The returned error,
// if not nil, is always a *diag.Error.
func Scan(name, src string) ([]Token, error) {
	sc := &scanner{name: name, src: src}
	tokens := sc.scan()
	if sc.err != nil {
		return nil, sc.err
	}
	return tokens, nil
}

type scanner struct {
	name string
	src  string
	pos  int
	err  error
}

func (sc *scanner) scan() []Token {
	var tokens []Token
	for sc.pos < len(sc.src) {
		begin := sc.pos
		b := sc.src[sc.pos]
		switch {
		case isSpace(b):
			sc.pos++
		case punctuation(b) >= 0:
			sc.pos++
			tokens = append(tokens,
				Token{punctuation(b), sc.src[begin:sc.pos], diag.Ranging{From: begin, To: sc.pos}})
		case b == '\'':
			text, ok := sc.quoted()
			if !ok {
				return nil
			}
			tokens = append(tokens,
				Token{String, text, diag.Ranging{From: begin, To: sc.pos}})
		default:
			for sc.pos < len(sc.src) && !isDelimiter(sc.src[sc.pos]) {
				sc.pos++
			}
			if sc.pos-begin > MaxTokenSize {
				sc.error(begin, sc.pos, errTooLong)
				return nil
			}
			tokens = append(tokens,
				Token{String, sc.src[begin:sc.pos], diag.Ranging{From: begin, To: sc.pos}})
		}
	}
	return tokens
}

// Scans a single-quoted string. The opening quote is at sc.pos.
func (sc *scanner) quoted() (string, bool) {
	begin := sc.pos
	sc.pos++
	for sc.pos < len(sc.src) && sc.src[sc.pos] != '\'' {
		sc.pos++
	}
	if sc.pos == len(sc.src) {
		sc.error(begin, sc.pos, errUnterminated)
		return "", false
	}
	text := sc.src[begin+1 : sc.pos]
	sc.pos++
	if len(text) > MaxTokenSize {
		sc.error(begin, sc.pos, errTooLong)
		return "", false
	}
	return text, true
}

func (sc *scanner) error(from, to int, msg string) {
	sc.err = &diag.Error{
		Type:    "scan error",
		Message: msg,
		Context: *diag.NewContext(sc.name, sc.src, diag.Ranging{From: from, To: to}),
		Kind:    ErrScan,
	}
}

// Returns the kind of the punctuation token b, or -1 if b is not one.
func punctuation(b byte) Kind {
	switch b {
	case '<':
		return Less
	case '>':
		return Greater
	case '|':
		return Pipe
	case '@':
		return At
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDelimiter(b byte) bool {
	return isSpace(b) || b == '\'' || punctuation(b) >= 0
}
