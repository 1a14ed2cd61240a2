package styles

import (
	"strings"

	"gsc/tree"
)

// rule is a single CSS declaration produced from style data.
type rule struct {
	property string
	value    any
}

// staticProperty is a style property handled outside of the engine
// definitions.
type staticProperty struct {
	property string
	path     []string
	// per-side values, e.g. --wp--style--root--padding-top
	sides    []string
	rootOnly bool
}

var staticProperties = []staticProperty{
	{property: "filter", path: []string{"filter", "duotone"}},
	{property: "text-align", path: []string{"typography", "textAlign"}},
	{
		property: "--wp--style--root--padding",
		path:     []string{"spacing", "padding"},
		sides:    []string{"top", "right", "bottom", "left"},
		rootOnly: true,
	},
}

type generator func(style *tree.Map) []rule

// simpleRule emits property when value at path is set.
func simpleRule(property string, path ...string) generator {
	return func(style *tree.Map) []rule {
		v := tree.Lookup(style, path...)
		if !tree.Truthy(v) {
			return nil
		}
		return []rule{{property: property, value: cssValueFromRawStyle(v)}}
	}
}

// boxRules handles shorthand string or per-side object values.
func boxRules(property string, individual func(side string) string, sides []string, path ...string) generator {
	return func(style *tree.Map) []rule {
		box := tree.Lookup(style, path...)
		if !tree.Truthy(box) {
			return nil
		}
		m, ok := box.(*tree.Map)
		if !ok {
			return []rule{{property: property, value: box}}
		}
		var out []rule
		for _, side := range sides {
			v := cssValueFromRawStyle(m.Value(side))
			if tree.Truthy(v) {
				out = append(out, rule{property: individual(side), value: v})
			}
		}
		return out
	}
}

// borderSideRules emits color, style and width of one border side.
func borderSideRules(side string) generator {
	return func(style *tree.Map) []rule {
		var out []rule
		for _, key := range []string{"color", "style", "width"} {
			v := tree.Lookup(style, "border", side, key)
			if !tree.Truthy(v) {
				continue
			}
			out = append(out, rule{property: "border-" + side + "-" + key, value: cssValueFromRawStyle(v)})
		}
		return out
	}
}

// backgroundImage renders {url} objects as url(), anything else as is.
func backgroundImage(style *tree.Map) []rule {
	img := tree.Lookup(style, "background", "backgroundImage")
	if m, ok := img.(*tree.Map); ok {
		if u, ok := m.Value("url").(string); ok && u != "" {
			return []rule{{property: "background-image", value: "url( '" + encodeURI(u) + "' )"}}
		}
	}
	return simpleRule("background-image", "background", "backgroundImage")(style)
}

var (
	sides   = []string{"top", "right", "bottom", "left"}
	corners = []string{"topLeft", "topRight", "bottomLeft", "bottomRight"}
)

func sideProperty(prefix string) func(string) string {
	return func(side string) string { return prefix + "-" + side }
}

// engineGenerators are applied in order, their order defines declaration
// order.
var engineGenerators = []generator{
	// border
	simpleRule("border-color", "border", "color"),
	simpleRule("border-style", "border", "style"),
	simpleRule("border-width", "border", "width"),
	boxRules("border-radius", func(corner string) string {
		return KebabCase("border" + strings.ToUpper(corner[:1]) + corner[1:] + "Radius")
	}, corners, "border", "radius"),
	borderSideRules("top"),
	borderSideRules("right"),
	borderSideRules("bottom"),
	borderSideRules("left"),
	// color
	simpleRule("color", "color", "text"),
	simpleRule("background", "color", "gradient"),
	simpleRule("background-color", "color", "background"),
	// dimensions
	simpleRule("min-height", "dimensions", "minHeight"),
	simpleRule("aspect-ratio", "dimensions", "aspectRatio"),
	// outline
	simpleRule("outline-color", "outline", "color"),
	simpleRule("outline-offset", "outline", "offset"),
	simpleRule("outline-style", "outline", "style"),
	simpleRule("outline-width", "outline", "width"),
	// spacing
	boxRules("margin", sideProperty("margin"), sides, "spacing", "margin"),
	boxRules("padding", sideProperty("padding"), sides, "spacing", "padding"),
	// typography
	simpleRule("font-family", "typography", "fontFamily"),
	simpleRule("font-size", "typography", "fontSize"),
	simpleRule("font-style", "typography", "fontStyle"),
	simpleRule("font-weight", "typography", "fontWeight"),
	simpleRule("letter-spacing", "typography", "letterSpacing"),
	simpleRule("line-height", "typography", "lineHeight"),
	simpleRule("column-count", "typography", "textColumns"),
	simpleRule("text-decoration", "typography", "textDecoration"),
	simpleRule("text-transform", "typography", "textTransform"),
	simpleRule("writing-mode", "typography", "writingMode"),
	// shadow
	simpleRule("box-shadow", "shadow"),
	// background
	backgroundImage,
	simpleRule("background-position", "background", "backgroundPosition"),
	simpleRule("background-repeat", "background", "backgroundRepeat"),
	simpleRule("background-size", "background", "backgroundSize"),
	simpleRule("background-attachment", "background", "backgroundAttachment"),
}

// engineRules returns declarations of all engine definitions for style.
func engineRules(style *tree.Map) []rule {
	var out []rule
	for _, g := range engineGenerators {
		out = append(out, g(style)...)
	}
	return out
}
