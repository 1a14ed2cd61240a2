package styles

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// KebabCase converts identifiers like "fontSize", "h1" or "x-large" into CSS
// friendly "font-size", "h-1", "x-large". Word boundaries are case changes,
// letter/digit changes and any non alphanumeric run. Ordinals ("2nd") stay
// together.
func KebabCase(s string) string {
	// first apostrophe is dropped, "it's" is a single word
	if i := strings.IndexAny(s, "'’"); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		s = s[:i] + s[i+size:]
	}
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	joined := strings.ToLower(strings.Join(words, "-"))
	if isASCII(joined) {
		return joined
	}
	// transliterate whatever is left
	return slug.Make(joined)
}

func splitWords(s string) []string {
	rs := []rune(s)
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if !isAlnum(r) {
			flush()
			continue
		}
		if len(cur) > 0 && boundary(rs, i) {
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// boundary reports whether a new word starts at rs[i], rs[i-1] being part of
// the current word.
func boundary(rs []rune, i int) bool {
	prev, r := rs[i-1], rs[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		// fooBar
		return true
	case unicode.IsDigit(prev) && unicode.IsUpper(r):
		// foo2Bar, but not 1ST, 2ND
		return !ordinalAt(rs, i, true)
	case unicode.IsDigit(prev) && unicode.IsLower(r):
		// 2xl, but not 1st, 2nd, 3rd, 4th
		return !ordinalAt(rs, i, false)
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		// h1
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
		// FOOBar
		return true
	}
	return false
}

// ordinalAt reports whether rs[i-1:i+2] is an ordinal like "1st" or, with
// upper, "1ST", not followed by a lower case letter.
func ordinalAt(rs []rune, i int, upper bool) bool {
	if i+1 >= len(rs) {
		return false
	}
	suffix := string(rs[i : i+2])
	if upper {
		if suffix != strings.ToUpper(suffix) {
			return false
		}
		suffix = strings.ToLower(suffix)
	}
	if i+2 < len(rs) && unicode.IsLower(rs[i+2]) {
		return false
	}
	switch rs[i-1] {
	case '1':
		return suffix == "st"
	case '2':
		return suffix == "nd"
	case '3':
		return suffix == "rd"
	default:
		return suffix == "th" && rs[i-1] >= '4'
	}
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
