package styles

import (
	"strings"

	"gsc/selector"
)

// ProcessCSSNesting expands custom CSS of a block. Text is split on "&": a
// part without braces is a list of declarations for wrappedSelector, "& .x{}"
// scopes .x under wrappedSelector and "&.x{}" or "&:hover{}" appends to it.
// Malformed parts are dropped.
func ProcessCSSNesting(css, wrappedSelector string) string {
	var b strings.Builder
	for _, part := range strings.Split(css, "&") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if !strings.Contains(part, "{") {
			b.WriteString(wrappedSelector + "{" + strings.TrimSpace(part) + "}")
			continue
		}
		pieces := strings.Split(strings.Replace(part, "}", "", 1), "{")
		if len(pieces) != 2 {
			continue
		}
		nested, value := pieces[0], pieces[1]
		var combined string
		if strings.HasPrefix(nested, " ") {
			combined = selector.Scope(wrappedSelector, nested)
		} else {
			combined = selector.Append(wrappedSelector, strings.TrimRight(nested, " \t\r\n"))
		}
		b.WriteString(combined + "{" + strings.TrimSpace(value) + "}")
	}
	return b.String()
}
