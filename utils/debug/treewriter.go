// Package debug renders style trees and compiler nodes as indented text for
// troubleshooting.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"gsc/tree"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Value writes style tree value under label. Maps keep their key order, list
// items are labelled by index. Nil values are skipped.
func (tw TreeWriter) Value(depth int, label string, v any) {
	switch v := v.(type) {
	case nil:
	case *tree.Map:
		if v == nil {
			return
		}
		tw.Line(depth, "%s", label)
		for k, item := range v.All() {
			tw.Value(depth+1, k, item)
		}
	case []any:
		tw.Line(depth, "%s [%d]", label, len(v))
		for i, item := range v {
			tw.Value(depth+1, strconv.Itoa(i), item)
		}
	case string:
		tw.TextBlock(depth, label, v)
	default:
		tw.Line(depth, "%s: %s", label, tree.String(v))
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
