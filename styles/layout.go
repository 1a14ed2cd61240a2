package styles

import (
	"regexp"
	"strings"

	"gsc/tree"
)

// Declaration is a CSS property and value. Gap declarations take their value
// from the computed block gap.
type Declaration struct {
	Property string
	Value    string
	Gap      bool
}

// LayoutRule is a set of declarations applied to the layout class with a
// selector suffix.
type LayoutRule struct {
	Selector     string
	Declarations []Declaration
}

// LayoutDefinition describes one layout type.
type LayoutDefinition struct {
	Name          string
	Slug          string
	ClassName     string
	DisplayMode   string
	BaseStyles    []LayoutRule
	SpacingStyles []LayoutRule
}

var alignmentRules = []LayoutRule{
	{Selector: " > .alignleft", Declarations: []Declaration{
		{Property: "float", Value: "left"},
		{Property: "margin-inline-start", Value: "0"},
		{Property: "margin-inline-end", Value: "2em"},
	}},
	{Selector: " > .alignright", Declarations: []Declaration{
		{Property: "float", Value: "right"},
		{Property: "margin-inline-start", Value: "2em"},
		{Property: "margin-inline-end", Value: "0"},
	}},
	{Selector: " > .aligncenter", Declarations: []Declaration{
		{Property: "margin-left", Value: "auto !important"},
		{Property: "margin-right", Value: "auto !important"},
	}},
}

var flowSpacing = []LayoutRule{
	{Selector: " > :first-child", Declarations: []Declaration{{Property: "margin-block-start", Value: "0"}}},
	{Selector: " > :last-child", Declarations: []Declaration{{Property: "margin-block-end", Value: "0"}}},
	{Selector: " > *", Declarations: []Declaration{
		{Property: "margin-block-start", Gap: true},
		{Property: "margin-block-end", Value: "0"},
	}},
}

// LayoutDefinitions are the layout types known to the compiler, in output
// order.
var LayoutDefinitions = []LayoutDefinition{
	{
		Name:          "default",
		Slug:          "flow",
		ClassName:     "is-layout-flow",
		BaseStyles:    alignmentRules,
		SpacingStyles: flowSpacing,
	},
	{
		Name:      "constrained",
		Slug:      "constrained",
		ClassName: "is-layout-constrained",
		BaseStyles: append(append([]LayoutRule{}, alignmentRules...),
			LayoutRule{Selector: " > :where(:not(.alignleft):not(.alignright):not(.alignfull))", Declarations: []Declaration{
				{Property: "max-width", Value: "var(--wp--style--global--content-size)"},
				{Property: "margin-left", Value: "auto !important"},
				{Property: "margin-right", Value: "auto !important"},
			}},
			LayoutRule{Selector: " > .alignwide", Declarations: []Declaration{
				{Property: "max-width", Value: "var(--wp--style--global--wide-size)"},
			}},
		),
		SpacingStyles: flowSpacing,
	},
	{
		Name:        "flex",
		Slug:        "flex",
		ClassName:   "is-layout-flex",
		DisplayMode: "flex",
		BaseStyles: []LayoutRule{
			{Declarations: []Declaration{
				{Property: "flex-wrap", Value: "wrap"},
				{Property: "align-items", Value: "center"},
			}},
			{Selector: " > :is(*, div)", Declarations: []Declaration{{Property: "margin", Value: "0"}}},
		},
		SpacingStyles: []LayoutRule{{Declarations: []Declaration{{Property: "gap", Gap: true}}}},
	},
	{
		Name:        "grid",
		Slug:        "grid",
		ClassName:   "is-layout-grid",
		DisplayMode: "grid",
		BaseStyles: []LayoutRule{
			{Selector: " > :is(*, div)", Declarations: []Declaration{{Property: "margin", Value: "0"}}},
		},
		SpacingStyles: []LayoutRule{{Declarations: []Declaration{{Property: "gap", Gap: true}}}},
	},
}

// LayoutArgs are inputs of LayoutStyles.
type LayoutArgs struct {
	Definitions           []LayoutDefinition
	Style                 *tree.Map
	Selector              string
	HasBlockGapSupport    bool
	HasFallbackGapSupport bool
	FallbackGapValue      string
}

// LayoutStyles generates gap rules of every layout type for the selector and,
// for the root selector, layout base styles.
func LayoutStyles(args LayoutArgs) string {
	var (
		b      strings.Builder
		isRoot = args.Selector == RootBlockSelector
		gap    string
	)
	if args.HasBlockGapSupport {
		gap = GapCSSValue(tree.Lookup(args.Style, "spacing", "blockGap"), "0")
	}
	if args.HasFallbackGapSupport {
		switch {
		case isRoot && gap == "":
			gap = "0.5em"
		case !isRoot && !args.HasBlockGapSupport && args.FallbackGapValue != "":
			gap = args.FallbackGapValue
		}
	}

	if gap != "" && len(args.Definitions) > 0 {
		for _, def := range args.Definitions {
			// without block gap support only flex and grid get fallback gap
			if !args.HasBlockGapSupport && def.Name != "flex" && def.Name != "grid" {
				continue
			}
			for _, rule := range def.SpacingStyles {
				if len(rule.Declarations) == 0 {
					continue
				}
				var sel string
				switch {
				case !args.HasBlockGapSupport && isRoot:
					sel = ":where(." + def.ClassName + rule.Selector + ")"
				case !args.HasBlockGapSupport:
					sel = ":where(" + args.Selector + "." + def.ClassName + rule.Selector + ")"
				case isRoot:
					sel = ":root :where(." + def.ClassName + ")" + rule.Selector
				default:
					sel = ":root :where(" + args.Selector + "-" + def.ClassName + ")" + rule.Selector
				}
				writeLayoutRule(&b, sel, rule.Declarations, gap)
			}
		}
		if isRoot && args.HasBlockGapSupport {
			b.WriteString(RootCSSPropertiesSelector + " { --wp--style--block-gap: " + gap + "; }")
		}
	}

	if isRoot {
		for _, def := range args.Definitions {
			switch def.DisplayMode {
			case "block", "flex", "grid":
				b.WriteString(args.Selector + " ." + def.ClassName + " { display:" + def.DisplayMode + "; }")
			}
			for _, rule := range def.BaseStyles {
				if len(rule.Declarations) == 0 {
					continue
				}
				writeLayoutRule(&b, "."+def.ClassName+rule.Selector, rule.Declarations, "")
			}
		}
	}
	return b.String()
}

func writeLayoutRule(b *strings.Builder, sel string, decls []Declaration, gap string) {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		v := d.Value
		if d.Gap {
			v = gap
		}
		parts = append(parts, d.Property+": "+v)
	}
	b.WriteString(sel + " { " + strings.Join(parts, "; ") + "; }")
}

var reSpacingPreset = regexp.MustCompile(`var:preset\|spacing\|(.+)`)

func spacingPresetCSSVar(v any) string {
	s := tree.String(v)
	if s == "" {
		return ""
	}
	m := reSpacingPreset.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return "var(--wp--preset--spacing--" + m[1] + ")"
}

// GapCSSValue converts block gap style (string or {top, left}) into the value
// of CSS gap: "row" or "row column". Missing sides use def. Empty string is
// returned when there is no gap.
func GapCSSValue(blockGap any, def string) string {
	if !tree.Truthy(blockGap) {
		return ""
	}
	var top, left any
	if m, ok := blockGap.(*tree.Map); ok {
		top, left = m.Value("top"), m.Value("left")
	} else {
		top, left = blockGap, blockGap
	}
	row := spacingPresetCSSVar(top)
	if row == "" {
		row = def
	}
	column := spacingPresetCSSVar(left)
	if column == "" {
		column = def
	}
	if row == column {
		return row
	}
	return row + " " + column
}
