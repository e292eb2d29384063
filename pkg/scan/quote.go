package scan

import (
	"strings"

	"src.nfsh.sh/pkg/diag"
)

// Quote returns a representation of s that scans back to a single String
// token with text s. A bare string is returned as is; anything else is
// single-quoted. The second return value is false when s contains a single
// quote, which no token can represent; s is then returned unchanged.
func Quote(s string) (string, bool) {
	if strings.IndexByte(s, '\'') >= 0 {
		return s, false
	}
	if s == "" {
		return "''", true
	}
	for i := 0; i < len(s); i++ {
		if isDelimiter(s[i]) {
			return "'" + s + "'", true
		}
	}
	return s, true
}

// Format writes tokens back as source code, separating them with spaces. It
// returns the source code and a copy of the tokens with ranges pointing into
// it. The tokens passed in are not modified.
func Format(tokens []Token) (string, []Token) {
	var sb strings.Builder
	formatted := make([]Token, len(tokens))
	for i, token := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		text := token.Text
		if token.Kind == String {
			text, _ = Quote(text)
		}
		from := sb.Len()
		sb.WriteString(text)
		formatted[i] = Token{token.Kind, token.Text, diag.Ranging{From: from, To: sb.Len()}}
	}
	return sb.String(), formatted
}
