package validation

import (
	"strings"
	"unicode"
)

// Collapse trims s and replaces every internal whitespace run with a single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripSpaces removes all whitespace, e.g. "+591 7654 3210" -> "+59176543210".
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
