package services

import (
	"regexp"
	"strings"
)

// entityRegexp matches an already-escaped entity at the start of a string,
// e.g. "&amp;", "&#39;" or "&#x27;".
var entityRegexp = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`)

// Sanitize escapes markup-significant characters in externally-sourced text
// so it can never be interpreted as executable markup downstream. It is
// idempotent: existing entities are left untouched, so sanitizing twice
// changes nothing.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '&':
			if entity := entityRegexp.FindString(text[i:]); entity != "" {
				b.WriteString(entity)
				i += len(entity) - 1
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
