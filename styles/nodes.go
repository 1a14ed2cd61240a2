package styles

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"gsc/blocks"
	"gsc/selector"
	"gsc/tree"
)

// Element is a named HTML element with a fixed selector which may be styled
// globally or within a block.
type Element struct {
	Name     string
	Selector string
	// elements with a dedicated class keep the :where() wrapper
	ClassName string
}

// Elements lists styleable elements in output order.
var Elements = []Element{
	{Name: "link", Selector: "a:where(:not(.wp-element-button))"},
	{Name: "heading", Selector: "h1, h2, h3, h4, h5, h6"},
	{Name: "h1", Selector: "h1"},
	{Name: "h2", Selector: "h2"},
	{Name: "h3", Selector: "h3"},
	{Name: "h4", Selector: "h4"},
	{Name: "h5", Selector: "h5"},
	{Name: "h6", Selector: "h6"},
	{Name: "button", Selector: ".wp-element-button, .wp-block-button__link", ClassName: "wp-element-button"},
	{Name: "caption", Selector: ".wp-element-caption, .wp-block-audio figcaption, .wp-block-embed figcaption, .wp-block-gallery figcaption, .wp-block-image figcaption, .wp-block-table figcaption, .wp-block-video figcaption", ClassName: "wp-element-caption"},
	{Name: "cite", Selector: "cite"},
}

func elementSelector(name string) (string, bool) {
	for _, e := range Elements {
		if e.Name == name {
			return e.Selector, true
		}
	}
	return "", false
}

// styleKeys are the keys of style objects which generate declarations.
var styleKeys = []string{
	"background", "border", "color", "css", "dimensions", "filter", "outline", "shadow", "spacing", "typography",
}

// pickStyleKeys keeps style keys and pseudo states (keys starting with ":"),
// dropping nested elements, blocks and variations.
func pickStyleKeys(m *tree.Map, withCSS bool) *tree.Map {
	return m.Filter(func(k string, v any) bool {
		if k == "css" {
			return withCSS && tree.Truthy(v)
		}
		return slices.Contains(styleKeys, k) || strings.HasPrefix(k, ":")
	})
}

// StyleNode is a selector with the styles applied to it.
type StyleNode struct {
	Selector            string
	Styles              *tree.Map
	DuotoneSelector     string
	FeatureSelectors    *tree.Map
	FallbackGapValue    string
	HasLayoutSupport    bool
	VariationSelectors  []blocks.Variation
	SkipSelectorWrapper bool
	// block style variations keyed by name, rendered after the block itself
	Variations *tree.Map
}

// SettingNode is a selector with presets and custom values defined for it.
type SettingNode struct {
	Selector string
	Presets  *tree.Map
	Custom   any
}

// NodesWithStyles flattens style tree into nodes in output order: root,
// elements, then for every block its style variation inner nodes, the block
// itself and its elements.
func NodesWithStyles(root *tree.Map, reg blocks.Registry) []StyleNode {
	return nodesWithStyles(root, reg, zap.NewNop())
}

func nodesWithStyles(root *tree.Map, reg blocks.Registry, log *zap.Logger) []StyleNode {
	styles := root.Map("styles")
	if styles == nil {
		return nil
	}

	// root styles, css is emitted separately as custom stylesheet
	nodes := []StyleNode{{
		Selector:            RootBlockSelector,
		Styles:              pickStyleKeys(styles, false),
		SkipSelectorWrapper: true,
	}}

	elements := styles.Map("elements")
	for _, e := range Elements {
		if v := elements.Map(e.Name); v != nil {
			nodes = append(nodes, StyleNode{
				Selector:            e.Selector,
				Styles:              v,
				SkipSelectorWrapper: e.ClassName == "",
			})
		}
	}

	for name, v := range styles.Map("blocks").All() {
		block, ok := v.(*tree.Map)
		if !ok {
			continue
		}
		entry := reg[name]
		blockStyles := pickStyleKeys(block, true)

		var variations *tree.Map
		if vs := block.Map("variations"); vs != nil {
			variations = tree.New(vs.Len())
			for vname, vv := range vs.All() {
				variation, ok := vv.(*tree.Map)
				if !ok {
					continue
				}
				variations = variations.With(vname, pickStyleKeys(variation, true))
				variationSelector, ok := entry.VariationSelector(vname)
				if !ok {
					log.Debug("Block style variation has no selector", zap.String("block", name), zap.String("variation", vname))
					continue
				}
				nodes = append(nodes, variationNodes(variationSelector, variation, reg, log)...)
			}
		}

		if entry == nil || entry.Selector == "" {
			log.Debug("Block has no selector, styles ignored", zap.String("block", name))
			continue
		}
		nodes = append(nodes, StyleNode{
			Selector:           entry.Selector,
			Styles:             blockStyles,
			DuotoneSelector:    entry.DuotoneSelector,
			FeatureSelectors:   entry.FeatureSelectors,
			FallbackGapValue:   entry.FallbackGapValue,
			HasLayoutSupport:   entry.HasLayoutSupport,
			VariationSelectors: entry.Variations,
			Variations:         variations,
		})

		for ename, ev := range block.Map("elements").All() {
			elementStyles, ok := ev.(*tree.Map)
			esel, known := elementSelector(ename)
			if !ok || !known {
				continue
			}
			nodes = append(nodes, StyleNode{
				Selector: blockElementSelector(entry.Selector, esel),
				Styles:   elementStyles,
			})
		}
	}
	return nodes
}

// variationNodes returns nodes of elements and inner blocks styled by a block
// style variation.
func variationNodes(variationSelector string, variation *tree.Map, reg blocks.Registry, log *zap.Logger) []StyleNode {
	var nodes []StyleNode

	for ename, ev := range variation.Map("elements").All() {
		elementStyles, ok := ev.(*tree.Map)
		esel, known := elementSelector(ename)
		if !ok || !known {
			continue
		}
		nodes = append(nodes, StyleNode{
			Selector: selector.Scope(variationSelector, esel),
			Styles:   elementStyles,
		})
	}

	for name, bv := range variation.Map("blocks").All() {
		blockStyles, ok := bv.(*tree.Map)
		if !ok {
			continue
		}
		entry := reg[name]
		if entry == nil || entry.Selector == "" {
			log.Debug("Variation inner block has no selector, styles ignored", zap.String("block", name))
			continue
		}
		blockSelector := selector.Scope(variationSelector, entry.Selector)
		nodes = append(nodes, StyleNode{
			Selector:         blockSelector,
			Styles:           pickStyleKeys(blockStyles, true),
			DuotoneSelector:  selector.Scope(variationSelector, entry.DuotoneSelector),
			FeatureSelectors: scopeFeatureSelectors(variationSelector, entry.FeatureSelectors),
			FallbackGapValue: entry.FallbackGapValue,
			HasLayoutSupport: entry.HasLayoutSupport,
		})

		for ename, ev := range blockStyles.Map("elements").All() {
			elementStyles, ok := ev.(*tree.Map)
			esel, known := elementSelector(ename)
			if !ok || !known {
				continue
			}
			nodes = append(nodes, StyleNode{
				Selector: selector.Scope(blockSelector, esel),
				Styles:   elementStyles,
			})
		}
	}
	return nodes
}

// blockElementSelector combines every block selector with every element
// selector.
func blockElementSelector(blockSelector, elementSelector string) string {
	var parts []string
	for _, b := range strings.Split(blockSelector, ",") {
		for _, e := range strings.Split(elementSelector, ",") {
			parts = append(parts, b+" "+e)
		}
	}
	return strings.Join(parts, ",")
}

// scopeFeatureSelectors scopes every feature and subfeature selector.
func scopeFeatureSelectors(scope string, features *tree.Map) *tree.Map {
	if scope == "" || features == nil {
		return features
	}
	out := tree.New(features.Len())
	for feature, v := range features.All() {
		switch v := v.(type) {
		case string:
			out = out.With(feature, selector.Scope(scope, v))
		case *tree.Map:
			sub := tree.New(v.Len())
			for k, sv := range v.All() {
				if s, ok := sv.(string); ok {
					sub = sub.With(k, selector.Scope(scope, s))
				}
			}
			out = out.With(feature, sub)
		}
	}
	return out
}

// NodesWithSettings returns root and block setting nodes holding presets or
// custom values. Blocks without a selector are skipped.
func NodesWithSettings(root *tree.Map, reg blocks.Registry) []SettingNode {
	return nodesWithSettings(root, reg, zap.NewNop())
}

func nodesWithSettings(root *tree.Map, reg blocks.Registry, log *zap.Logger) []SettingNode {
	settings := root.Map("settings")
	if settings == nil {
		return nil
	}

	var nodes []SettingNode
	if presets, custom := pickPresets(settings), settings.Value("custom"); presets.Len() > 0 || tree.Truthy(custom) {
		nodes = append(nodes, SettingNode{Selector: RootCSSPropertiesSelector, Presets: presets, Custom: custom})
	}

	for name, v := range settings.Map("blocks").All() {
		node, ok := v.(*tree.Map)
		if !ok {
			continue
		}
		presets, custom := pickPresets(node), node.Value("custom")
		if presets.Len() == 0 && !tree.Truthy(custom) {
			continue
		}
		sel := reg.Selector(name)
		if sel == "" {
			log.Debug("Block has no selector, settings ignored", zap.String("block", name))
			continue
		}
		nodes = append(nodes, SettingNode{Selector: sel, Presets: presets, Custom: custom})
	}
	return nodes
}

// pickPresets copies preset lists and their default origin switches.
func pickPresets(node *tree.Map) *tree.Map {
	presets := tree.New(0)
	for _, meta := range PresetsMetadata {
		if v := tree.Lookup(node, meta.Path...); v != nil {
			presets = tree.SetIn(presets, meta.Path, v)
			if len(meta.DefaultToggle) > 0 {
				if t := tree.Lookup(node, meta.DefaultToggle...); t != nil {
					presets = tree.SetIn(presets, meta.DefaultToggle, t)
				}
			}
		}
	}
	return presets
}
