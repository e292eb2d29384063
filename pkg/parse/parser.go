package parse

import (
	"strconv"

	"src.nfsh.sh/pkg/diag"
	"src.nfsh.sh/pkg/ir"
	"src.nfsh.sh/pkg/logutil"
	"src.nfsh.sh/pkg/scan"
)

var logger = logutil.GetLogger("[parse] ")

// parser maintains the mutable states of parsing.
//
// Every rule saves the state on entry with save and restores it with restore
// when it fails, so a failed alternative leaves neither the cursor nor the
// stages under construction changed.
type parser struct {
	src    Source
	tokens []scan.Token
	pos    int
	stages []ir.Stage
	// The most recent failure.
	err *Error
	// Set when err must not be backtracked over.
	fatal bool
}

// A saved parser state.
type mark struct {
	pos     int
	nstages int
	nlinks  int
}

func (ps *parser) save() mark {
	m := mark{pos: ps.pos, nstages: len(ps.stages)}
	if m.nstages > 0 {
		m.nlinks = len(ps.stages[m.nstages-1].Links)
	}
	return m
}

func (ps *parser) restore(m mark) {
	ps.pos = m.pos
	ps.stages = ps.stages[:m.nstages]
	if m.nstages > 0 {
		last := &ps.stages[m.nstages-1]
		if m.nlinks == 0 {
			last.Links = nil
		} else {
			last.Links = last.Links[:m.nlinks]
		}
	}
}

// Returns the current token, or nil at the end of the stream.
func (ps *parser) peek() *scan.Token {
	if ps.pos == len(ps.tokens) {
		return nil
	}
	return &ps.tokens[ps.pos]
}

// Consumes the current token if it has the given kind.
func (ps *parser) match(k scan.Kind) (*scan.Token, bool) {
	token := ps.peek()
	if token == nil || token.Kind != k {
		return nil, false
	}
	ps.pos++
	return token, true
}

// Records a failure at the current token. Capacity errors are fatal.
func (ps *parser) error(kind error, msg string) {
	r := diag.PointRanging(len(ps.src.Code))
	if token := ps.peek(); token != nil {
		r = token.Range()
	}
	ps.errorp(r, kind, msg)
}

func (ps *parser) errorp(r diag.Ranger, kind error, msg string) {
	ps.err = &Error{
		Type:    "parse error",
		Message: msg,
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, r),
		Kind:    kind,
	}
	ps.fatal = kind == ErrCapacity
}

// pipeline := STRING arg* (connector pipeline)?
func (ps *parser) pipeline() bool {
	m := ps.save()
	head, ok := ps.match(scan.String)
	if !ok || head.Text == "" {
		ps.restore(m)
		ps.error(ErrSyntax, errShouldBeCommand)
		return false
	}
	ps.stages = append(ps.stages, ir.Stage{Args: []string{head.Text}})
	for {
		arg, ok := ps.match(scan.String)
		if !ok {
			break
		}
		if !ps.addArg(arg) {
			ps.restore(m)
			return false
		}
	}

	cont := ps.save()
	if ps.connector() && ps.pipeline() {
		return true
	}
	if ps.fatal {
		ps.restore(m)
		return false
	}
	// A bare pipeline end.
	ps.restore(cont)
	return true
}

func (ps *parser) addArg(arg *scan.Token) bool {
	st := &ps.stages[len(ps.stages)-1]
	if len(st.Args) == ir.MaxArgs {
		ps.errorp(arg, ErrCapacity, errOutOfArgs)
		return false
	}
	st.Args = append(st.Args, arg.Text)
	return true
}

// connector := '<' link (link)* '>'
//
// The links are added to the last stage, which is the upstream stage.
func (ps *parser) connector() bool {
	m := ps.save()
	if _, ok := ps.match(scan.Less); !ok {
		ps.error(ErrSyntax, errShouldBeLess)
		return false
	}
	if !ps.link() {
		ps.restore(m)
		return false
	}
	for {
		lm := ps.save()
		if !ps.link() {
			if ps.fatal {
				ps.restore(m)
				return false
			}
			ps.restore(lm)
			break
		}
	}
	if _, ok := ps.match(scan.Greater); !ok {
		ps.error(ErrSyntax, errShouldBeGreater)
		ps.restore(m)
		return false
	}
	return true
}

// link := fd? '|' fd?
func (ps *parser) link() bool {
	m := ps.save()
	begin := ps.peek()
	src, ok := ps.fd()
	if !ok {
		if ps.fatal {
			return false
		}
		src = ir.DefaultSource
	}
	if _, ok := ps.match(scan.Pipe); !ok {
		ps.error(ErrSyntax, errShouldBePipe)
		ps.restore(m)
		return false
	}
	dst, ok := ps.fd()
	if !ok {
		if ps.fatal {
			ps.restore(m)
			return false
		}
		dst = ir.DefaultDest
	}

	st := &ps.stages[len(ps.stages)-1]
	if len(st.Links) == ir.MaxLinks {
		ps.errorp(diag.MixedRanging(begin, &ps.tokens[ps.pos-1]), ErrCapacity, errOutOfPipes)
		ps.restore(m)
		return false
	}
	st.Links = append(st.Links, ir.Link{Source: src, Dest: dst})
	return true
}

// fd := STRING | '@'
//
// A STRING is a file descriptor only if it is a decimal number. A number
// larger than ir.MaxFD is a fatal error. The cursor is not moved on failure.
func (ps *parser) fd() (int, bool) {
	token := ps.peek()
	if token != nil {
		switch token.Kind {
		case scan.At:
			ps.pos++
			return ir.Unattached, true
		case scan.String:
			if isDecimal(token.Text) {
				n, err := strconv.Atoi(token.Text)
				if err != nil || n > ir.MaxFD {
					ps.fatalError(token, errFDOutOfRange)
					return 0, false
				}
				ps.pos++
				return n, true
			}
		}
	}
	ps.error(ErrSyntax, errShouldBeFD)
	return 0, false
}

// Records a syntax error that must not be backtracked over.
func (ps *parser) fatalError(r diag.Ranger, msg string) {
	ps.errorp(r, ErrSyntax, msg)
	ps.fatal = true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || '9' < s[i] {
			return false
		}
	}
	return true
}
