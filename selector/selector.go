// Package selector manipulates CSS selector lists as plain text.
package selector

import "strings"

// Split breaks selector list on top level commas. Commas inside parentheses,
// brackets and quoted strings do not split. Parts are returned untrimmed.
func Split(sel string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, sel[start:i])
			start = i + 1
		}
	}
	return append(parts, sel[start:])
}

// Scope prefixes every selector in inner with every selector in scope
// (descendant combinator), producing cartesian product joined by ", ". When
// either side is empty inner is returned unchanged.
func Scope(scope, inner string) string {
	if scope == "" || inner == "" {
		return inner
	}
	outers := Split(scope)
	inners := Split(inner)

	out := make([]string, 0, len(outers)*len(inners))
	for _, o := range outers {
		o = strings.TrimSpace(o)
		for _, i := range inners {
			out = append(out, o+" "+strings.TrimSpace(i))
		}
	}
	return strings.Join(out, ", ")
}

// Append adds suffix to every selector in the list. Parts keep their original
// spacing and are joined by ",".
func Append(sel, suffix string) string {
	parts := Split(sel)
	for i := range parts {
		parts[i] += suffix
	}
	return strings.Join(parts, ",")
}

// Variation returns selector matching the named block style variation: class
// "is-style-<name>" is added to the first compound selector of each branch.
func Variation(name, sel string) string {
	return InsertClass("is-style-"+name, sel)
}

// InsertClass adds class to the first compound selector of each branch of the
// selector list, before any pseudo class, attribute selector or combinator. A
// branch made entirely of one :where() gets the class inside the :where().
func InsertClass(class, sel string) string {
	if strings.TrimSpace(sel) == "" {
		return "." + class
	}
	parts := Split(sel)
	for i, p := range parts {
		parts[i] = insertIntoBranch(class, p)
	}
	return strings.Join(parts, ",")
}

func insertIntoBranch(class, branch string) string {
	body := strings.TrimLeft(branch, " \t\r\n\f")
	lead := branch[:len(branch)-len(body)]
	trimmed := strings.TrimRight(body, " \t\r\n\f")
	if trimmed == "" {
		return branch
	}
	trail := body[len(trimmed):]

	const where = ":where("
	if strings.HasPrefix(trimmed, where) && closingParen(trimmed, len(where)-1) == len(trimmed)-1 {
		inner := trimmed[len(where) : len(trimmed)-1]
		return lead + where + InsertClass(class, inner) + ")" + trail
	}

	end := compoundHead(trimmed)
	return lead + trimmed[:end] + "." + class + trimmed[end:] + trail
}

// compoundHead returns position at which class should be inserted into the
// first compound selector of s.
func compoundHead(s string) int {
	simple := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
		case ' ', '\t', '\r', '\n', '\f', '>', '+', '~', ',':
			return i
		case '[':
			if simple {
				return i
			}
			i = closingParen(s, i)
			simple = true
		case ':':
			if simple {
				return i
			}
			// leading pseudo class, keep it with its arguments
			j := i + 1
			if j < len(s) && s[j] == ':' {
				j++
			}
			for j < len(s) && isNameChar(s[j]) {
				j++
			}
			if j < len(s) && s[j] == '(' {
				j = closingParen(s, j) + 1
			}
			i = j - 1
		default:
			simple = true
		}
	}
	return len(s)
}

// closingParen returns index of bracket closing the one at open or last index
// of s when unbalanced.
func closingParen(s string, open int) int {
	var (
		depth int
		quote byte
	)
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s) - 1
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
