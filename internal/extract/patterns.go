package extract

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// space matches any Unicode whitespace rune, including the no-break
	// spaces and information separators that PDF text tools emit.
	space = `[\s\v\x1c-\x1f\x{85}\p{Z}]`
	// digit matches any Unicode decimal digit.
	digit = `\p{Nd}`
)

var widen = strings.NewReplacer(`\s`, space, `\d`, digit)

// compile builds a rule pattern with \s and \d widened to their Unicode
// classes. Patterns must not use \s inside a bracket expression.
func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(widen.Replace(pattern))
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// asciiDigit maps a Unicode decimal digit to its ASCII form. Decimal digits
// are encoded as contiguous runs starting at zero, so the offset from the
// start of the run gives the value.
func asciiDigit(r rune) (rune, bool) {
	if r >= '0' && r <= '9' {
		return r, true
	}
	if !unicode.Is(unicode.Nd, r) {
		return r, false
	}
	start := r
	for unicode.Is(unicode.Nd, start-1) {
		start--
	}
	return '0' + (r-start)%10, true
}
