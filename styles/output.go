package styles

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gsc/blocks"
	"gsc/duotone"
	"gsc/selector"
	"gsc/tree"
)

const rootPaddingStyles = "padding-right: 0; padding-left: 0; padding-top: var(--wp--style--root--padding-top); padding-bottom: var(--wp--style--root--padding-bottom) }" +
	".has-global-padding { padding-right: var(--wp--style--root--padding-right); padding-left: var(--wp--style--root--padding-left); }" +
	".has-global-padding > .alignfull { margin-right: calc(var(--wp--style--root--padding-right) * -1); margin-left: calc(var(--wp--style--root--padding-left) * -1); }" +
	".has-global-padding :where(:not(.alignfull.is-layout-flow) > .has-global-padding:not(.wp-block-block, .alignfull)) { padding-right: 0; padding-left: 0; }" +
	".has-global-padding :where(:not(.alignfull.is-layout-flow) > .has-global-padding:not(.wp-block-block, .alignfull)) > .alignfull { margin-left: 0; margin-right: 0; "

// compilation carries inputs of a single compile call.
type compilation struct {
	tree *tree.Map
	reg  blocks.Registry
	opts CompileOptions
	log  *zap.Logger
}

// ToStyles generates the main stylesheet.
func ToStyles(root *tree.Map, reg blocks.Registry, opts CompileOptions) string {
	c := compilation{tree: root, reg: reg, opts: opts, log: zap.NewNop()}
	return c.toStyles()
}

// ToCustomProperties generates custom properties of presets and custom
// settings.
func ToCustomProperties(root *tree.Map, reg blocks.Registry) string {
	c := compilation{tree: root, reg: reg, log: zap.NewNop()}
	return c.toCustomProperties()
}

// ToSVGFilters generates SVG duotone filters of default and theme presets.
func ToSVGFilters(root *tree.Map, reg blocks.Registry) []string {
	c := compilation{tree: root, reg: reg, log: zap.NewNop()}
	return c.toSVGFilters()
}

func (c *compilation) toStyles() string {
	var (
		b        strings.Builder
		opts     = c.opts.Styles
		settings = c.tree.Map("settings")
		layout   = settings.Map("layout")

		useRootPaddingAlign = tree.Truthy(settings.Value("useRootPaddingAwareAlignments"))
	)

	contentSize, wideSize := layout.Value("contentSize"), layout.Value("wideSize")
	if opts.Presets && (tree.Truthy(contentSize) || tree.Truthy(wideSize)) {
		b.WriteString(RootCSSPropertiesSelector + " {")
		if tree.Truthy(contentSize) {
			b.WriteString(" --wp--style--global--content-size: " + tree.String(contentSize) + ";")
		}
		if tree.Truthy(wideSize) {
			b.WriteString(" --wp--style--global--wide-size: " + tree.String(wideSize) + ";")
		}
		b.WriteString(" }")
	}

	if opts.MarginReset || opts.RootPadding || opts.LayoutStyles {
		b.WriteString(":where(body) {margin: 0;")
		if opts.RootPadding && useRootPaddingAlign {
			b.WriteString(rootPaddingStyles)
		}
		b.WriteString("}")
	}

	if opts.BlockStyles {
		for _, node := range nodesWithStyles(c.tree, c.reg, c.log) {
			c.writeNode(&b, node, useRootPaddingAlign)
		}
	}

	if opts.LayoutStyles {
		b.WriteString(".wp-site-blocks > .alignleft { float: left; margin-right: 2em; }")
		b.WriteString(".wp-site-blocks > .alignright { float: right; margin-left: 2em; }")
		b.WriteString(".wp-site-blocks > .aligncenter { justify-content: center; margin-left: auto; margin-right: auto; }")
	}

	if opts.BlockGap && c.opts.HasBlockGapSupport {
		gap := GapCSSValue(tree.Lookup(c.tree, "styles", "spacing", "blockGap"), "0")
		if gap == "" {
			gap = "0.5em"
		}
		b.WriteString(":root :where(.wp-site-blocks) > * { margin-block-start: " + gap + "; margin-block-end: 0; }")
		b.WriteString(":root :where(.wp-site-blocks) > :first-child { margin-block-start: 0; }")
		b.WriteString(":root :where(.wp-site-blocks) > :last-child { margin-block-end: 0; }")
	}

	if opts.Presets {
		for _, node := range nodesWithSettings(c.tree, c.reg, c.log) {
			sel := node.Selector
			if sel == RootBlockSelector || sel == RootCSSPropertiesSelector {
				// top level classes need no extra specificity
				sel = ""
			}
			b.WriteString(PresetsClasses(sel, node.Presets))
		}
	}
	return b.String()
}

func (c *compilation) writeNode(b *strings.Builder, node StyleNode, useRootPaddingAlign bool) {
	styles := node.Styles

	if node.FeatureSelectors != nil {
		var (
			order []string
			decls map[string][]string
		)
		order, decls, styles = featureDeclarations(node.FeatureSelectors, styles, c.tree)
		for _, sel := range order {
			if len(decls[sel]) > 0 {
				b.WriteString(":root :where(" + sel + "){" + strings.Join(decls[sel], ";") + ";}")
			}
		}
	}

	if node.DuotoneSelector != "" {
		duotoneStyles := tree.New(1)
		if f := styles.Value("filter"); tree.Truthy(f) {
			duotoneStyles = duotoneStyles.With("filter", f)
			styles = styles.Without("filter")
		}
		if d := StylesDeclarations(duotoneStyles, "", false, nil, false); len(d) > 0 {
			b.WriteString(node.DuotoneSelector + "{" + strings.Join(d, ";") + ";}")
		}
	}

	if c.opts.Styles.LayoutStyles && !c.opts.DisableLayoutStyles && (node.Selector == RootBlockSelector || node.HasLayoutSupport) {
		b.WriteString(LayoutStyles(LayoutArgs{
			Definitions:           LayoutDefinitions,
			Style:                 styles,
			Selector:              node.Selector,
			HasBlockGapSupport:    c.opts.HasBlockGapSupport,
			HasFallbackGapSupport: c.opts.HasFallbackGapSupport,
			FallbackGapValue:      node.FallbackGapValue,
		}))
	}

	if d := StylesDeclarations(styles, node.Selector, useRootPaddingAlign, c.tree, c.opts.DisableRootPadding); len(d) > 0 {
		sel := ":root :where(" + node.Selector + ")"
		if node.SkipSelectorWrapper {
			sel = node.Selector
		}
		b.WriteString(sel + "{" + strings.Join(d, ";") + ";}")
	}

	if css := styles.String("css"); css != "" {
		b.WriteString(ProcessCSSNesting(css, ":root :where("+node.Selector+")"))
	}

	if c.opts.Styles.VariationStyles {
		for _, v := range node.VariationSelectors {
			c.writeVariation(b, node, v, useRootPaddingAlign)
		}
	}

	for pseudo, v := range styles.All() {
		pseudoStyles, ok := v.(*tree.Map)
		if !strings.HasPrefix(pseudo, ":") || !ok {
			continue
		}
		d := StylesDeclarations(pseudoStyles, "", false, c.tree, false)
		if len(d) == 0 {
			continue
		}
		b.WriteString(":root :where(" + selector.Append(node.Selector, pseudo) + "){" + strings.Join(d, ";") + ";}")
	}
}

func (c *compilation) writeVariation(b *strings.Builder, node StyleNode, v blocks.Variation, useRootPaddingAlign bool) {
	styles := node.Variations.Map(v.Name)
	if styles == nil {
		return
	}

	if node.FeatureSelectors != nil {
		var (
			order []string
			decls map[string][]string
		)
		order, decls, styles = featureDeclarations(node.FeatureSelectors, styles, c.tree)
		for _, sel := range order {
			if len(decls[sel]) > 0 {
				b.WriteString(":root :where(" + selector.Variation(v.Name, sel) + "){" + strings.Join(decls[sel], ";") + ";}")
			}
		}
	}

	if d := StylesDeclarations(styles, v.Selector, useRootPaddingAlign, c.tree, false); len(d) > 0 {
		b.WriteString(":root :where(" + v.Selector + "){" + strings.Join(d, ";") + ";}")
	}
	if css := styles.String("css"); css != "" {
		b.WriteString(ProcessCSSNesting(css, ":root :where("+v.Selector+")"))
	}
}

func (c *compilation) toCustomProperties() string {
	var b strings.Builder
	settings := c.tree.Map("settings")
	for _, node := range nodesWithSettings(c.tree, c.reg, c.log) {
		decls := PresetsDeclarations(node.Presets, settings)
		decls = append(decls, flattenTree(node.Custom, "--wp--custom--", "--")...)
		if len(decls) > 0 {
			b.WriteString(node.Selector + "{" + strings.Join(decls, ";") + ";}")
		}
	}
	return b.String()
}

// PresetsDeclarations returns custom property declarations of every preset
// in the node, origins in emission order.
func PresetsDeclarations(presets *tree.Map, settings *tree.Map) []string {
	var decls []string
	for _, meta := range PresetsMetadata {
		for _, op := range presetsByOrigin(presets, meta, EmitOrder) {
			for _, p := range op.presets {
				decls = append(decls, "--wp--preset--"+meta.CSSVarInfix+"--"+KebabCase(tree.String(p.Value("slug")))+": "+presetValue(meta, p, settings))
			}
		}
	}
	return decls
}

// PresetsClasses returns utility class rules of presets in the node. Every
// class is prefixed by each selector in sel, empty sel gives top level
// classes.
func PresetsClasses(sel string, presets *tree.Map) string {
	var b strings.Builder
	for _, meta := range PresetsMetadata {
		if len(meta.Classes) == 0 {
			continue
		}
		for _, op := range presetsByOrigin(presets, meta, EmitOrder) {
			for _, p := range op.presets {
				slug := KebabCase(tree.String(p.Value("slug")))
				value := "var(--wp--preset--" + meta.CSSVarInfix + "--" + slug + ")"
				for _, class := range meta.Classes {
					b.WriteString(selector.Append(sel, ".has-"+slug+"-"+class.Suffix))
					b.WriteString("{" + class.Property + ": " + value + " !important;}")
				}
			}
		}
	}
	return b.String()
}

// flattenTree turns nested custom values into custom property declarations.
func flattenTree(v any, prefix, token string) []string {
	var out []string
	emit := func(key string, leaf any) {
		name := prefix + KebabCase(strings.Replace(key, "/", "-", 1))
		switch leaf.(type) {
		case *tree.Map, []any:
			out = append(out, flattenTree(leaf, name+token, token)...)
		default:
			out = append(out, name+": "+tree.String(leaf))
		}
	}
	switch v := v.(type) {
	case *tree.Map:
		for k, leaf := range v.All() {
			emit(k, leaf)
		}
	case []any:
		for i, leaf := range v {
			emit(strconv.Itoa(i), leaf)
		}
	}
	return out
}

func (c *compilation) toSVGFilters() []string {
	meta, _ := presetMetadataByInfix("duotone")
	var out []string
	for _, node := range nodesWithSettings(c.tree, c.reg, c.log) {
		for _, op := range presetsByOrigin(node.Presets, meta, EmitOrder) {
			if op.origin == OriginCustom {
				continue
			}
			for _, p := range op.presets {
				colors := stringList(p.Value("colors"))
				svg, err := duotone.Filter("wp-duotone-"+tree.String(p.Value("slug")), colors, c.log)
				if err != nil {
					c.log.Debug("Unable to build duotone filter", zap.Any("preset", p), zap.Error(err))
					continue
				}
				out = append(out, svg)
			}
		}
	}
	return out
}

func stringList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, tree.String(item))
	}
	return out
}
