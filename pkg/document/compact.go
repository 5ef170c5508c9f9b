package document

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// compactWhitespace collapses whitespace runs to single spaces and trims
// the result. Applied before JSON wrapping and compression to shrink
// transport payloads without changing how browsers render the markup.
func compactWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}
