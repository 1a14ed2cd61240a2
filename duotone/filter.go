// Package duotone builds SVG duotone filters and helper stylesheets.
package duotone

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"gsc/tree"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"

	hiddenStyle = "visibility: hidden; position: absolute; left: -9999px; overflow: hidden;"
	grayscale   = " .299 .587 .114 0 0 .299 .587 .114 0 0 .299 .587 .114 0 0 .299 .587 .114 0 0 "
)

// Filter returns hidden inline SVG defining filter id which maps luminance
// onto the colours.
func Filter(id string, colors []string, log *zap.Logger) (string, error) {
	if id == "" {
		return "", fmt.Errorf("empty filter id")
	}
	if len(colors) == 0 {
		return "", fmt.Errorf("no colors for filter %q", id)
	}
	ch := ChannelValues(colors, log)

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNS)
	svg.CreateAttr("xmlns:xlink", xlinkNS)
	svg.CreateAttr("viewBox", "0 0 0 0")
	svg.CreateAttr("width", "0")
	svg.CreateAttr("height", "0")
	svg.CreateAttr("focusable", "false")
	svg.CreateAttr("role", "none")
	svg.CreateAttr("aria-hidden", "true")
	svg.CreateAttr("style", hiddenStyle)

	filter := svg.CreateElement("defs").CreateElement("filter")
	filter.CreateAttr("id", id)

	matrix := filter.CreateElement("feColorMatrix")
	matrix.CreateAttr("color-interpolation-filters", "sRGB")
	matrix.CreateAttr("type", "matrix")
	matrix.CreateAttr("values", grayscale)

	transfer := filter.CreateElement("feComponentTransfer")
	transfer.CreateAttr("color-interpolation-filters", "sRGB")
	for _, f := range []struct {
		name   string
		values []float64
	}{
		{"feFuncR", ch.R},
		{"feFuncG", ch.G},
		{"feFuncB", ch.B},
		{"feFuncA", ch.A},
	} {
		fn := transfer.CreateElement(f.name)
		fn.CreateAttr("type", "table")
		fn.CreateAttr("tableValues", joinNumbers(f.values))
	}

	composite := filter.CreateElement("feComposite")
	composite.CreateAttr("in2", "SourceGraphic")
	composite.CreateAttr("operator", "in")

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to write filter %q: %w", id, err)
	}
	return out, nil
}

func joinNumbers(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, tree.FormatNumber(v))
	}
	return strings.Join(parts, " ")
}

// Indent re-formats SVG markup with the given number of spaces per level,
// zero leaves markup as is.
func Indent(svg string, spaces int) (string, error) {
	if spaces <= 0 {
		return svg, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(svg); err != nil {
		return "", fmt.Errorf("unable to read svg: %w", err)
	}
	doc.Indent(spaces)
	return doc.WriteToString()
}

// Document combines filters produced by Filter into a single standalone SVG
// document. No filters give empty document.
func Document(filters []string, spaces int) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNS)
	root.CreateAttr("xmlns:xlink", xlinkNS)

	for i, f := range filters {
		part := etree.NewDocument()
		if err := part.ReadFromString(f); err != nil {
			return "", fmt.Errorf("unable to read filter #%d: %w", i, err)
		}
		if part.Root() == nil {
			return "", fmt.Errorf("filter #%d has no markup", i)
		}
		root.AddChild(part.Root())
	}
	if spaces > 0 {
		doc.Indent(spaces)
	}
	return doc.WriteToString()
}

// Stylesheet applies filter id to elements matching selector.
func Stylesheet(selector, id string) string {
	return selector + "{filter:url(#" + id + ")}"
}

// UnsetStylesheet removes any filter from elements matching selector.
func UnsetStylesheet(selector string) string {
	return selector + "{filter:none}"
}
