package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is a range of text in a source line. It is attached to errors that
// can be associated with a part of the input, like scan and parse errors.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Describe returns "name:line:col", where line and col are 1-based and col is
// counted in codepoints.
func (c *Context) Describe() string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	before := c.Source[:c.From]
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(lastLine(before)) + 1
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the Context on a single line, with the culprit highlighted. Any
// following line of a multi-line culprit is indented with indent.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	before := c.Source[:c.From]
	culprit := strings.TrimSuffix(c.Source[c.From:c.To], "\n")
	after := c.Source[c.To:]
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(c.Describe() + ": ")
	sb.WriteString(lastLine(before))
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteString("\n" + indent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	sb.WriteString(firstLine(after))
	return sb.String()
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
