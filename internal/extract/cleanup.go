package extract

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// MinSnippetLength is the shortest cleaned snippet that is kept, in runes.
const MinSnippetLength = 10

var (
	whitespaceRun    = regexp.MustCompile(space + `+`)
	spaceBeforePunct = regexp.MustCompile(` ([.,;:])`)
)

// CleanSnippet normalizes a captured span: whitespace runs collapse to one
// space, whitespace before . , ; : is removed, the result is trimmed and its
// first rune upper-cased. Results shorter than MinSnippetLength runes are
// rejected. Applying it to its own output is a no-op.
func CleanSnippet(s string) (string, bool) {
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = trimSpace(s)

	if utf8.RuneCountInString(s) > 1 {
		r, size := utf8.DecodeRuneInString(s)
		s = string(unicode.ToUpper(r)) + s[size:]
	}

	if utf8.RuneCountInString(s) < MinSnippetLength {
		return "", false
	}
	return s, true
}
