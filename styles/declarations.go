package styles

import (
	"strings"

	"gsc/tree"
)

const (
	// RootBlockSelector is the selector of root styles.
	RootBlockSelector = "body"
	// RootCSSPropertiesSelector holds root custom properties.
	RootCSSPropertiesSelector = ":root"
)

// StylesDeclarations generates "property: value" declarations for a style
// subtree applied at selector. Static properties come first, engine
// definitions next, in definition order. root is the whole style tree used to
// resolve refs, theme file links and fluid typography settings, it may be nil.
func StylesDeclarations(styles *tree.Map, sel string, useRootPaddingAlign bool, root *tree.Map, disableRootPadding bool) []string {
	isRoot := sel == RootBlockSelector
	var out []string

	for _, sp := range staticProperties {
		if sp.rootOnly && !isRoot {
			continue
		}
		value := tree.Lookup(styles, sp.path...)
		if sp.property == "--wp--style--root--padding" {
			// shorthand strings are not supported here
			if _, isString := value.(string); isString || !useRootPaddingAlign {
				continue
			}
		}
		if len(sp.sides) > 0 {
			m, ok := value.(*tree.Map)
			if !ok {
				continue
			}
			for _, side := range sp.sides {
				v := m.Value(side)
				if !tree.Truthy(v) {
					continue
				}
				out = append(out, sp.property+"-"+side+": "+tree.String(compileStyleValue(v)))
			}
			continue
		}
		if tree.Truthy(value) {
			out = append(out, sp.property+": "+tree.String(compileStyleValue(value)))
		}
	}

	styles = withBackgroundDefaults(styles, isRoot, root)

	for _, r := range engineRules(styles) {
		if isRoot && (useRootPaddingAlign || disableRootPadding) && strings.HasPrefix(r.property, "padding") {
			continue
		}
		value := resolvedValue(r.value, root)
		if r.property == "font-size" {
			value = TypographyFontSizeValue(tree.Of("size", value), root.Map("settings"))
		}
		if r.property == "aspect-ratio" {
			out = append(out, "min-height: unset")
		}
		out = append(out, r.property+": "+tree.String(value))
	}
	return out
}

// withBackgroundDefaults resolves background image and, for blocks with an
// uploaded image, adds default size and position.
func withBackgroundDefaults(styles *tree.Map, isRoot bool, root *tree.Map) *tree.Map {
	bg := styles.Map("background")
	if bg == nil {
		return styles
	}
	if img := bg.Value("backgroundImage"); tree.Truthy(img) {
		bg = bg.With("backgroundImage", resolvedValue(img, root))
	}
	img := bg.Map("backgroundImage")
	if !isRoot && tree.Truthy(img.Value("id")) && tree.Truthy(img.Value("url")) {
		size := bg.Value("backgroundSize")
		switch {
		case !tree.Truthy(size):
			bg = bg.With("backgroundSize", "cover")
		case size == "contain" && !tree.Truthy(bg.Value("backgroundPosition")):
			bg = bg.With("backgroundPosition", "center")
		}
	}
	return styles.With("background", bg)
}

// featureDeclarations groups declarations of features which have their own
// selectors. It returns selectors in first-seen order, declarations keyed by
// selector and the styles left for the block selector.
func featureDeclarations(featureSelectors *tree.Map, styles *tree.Map, root *tree.Map) ([]string, map[string][]string, *tree.Map) {
	var order []string
	decls := make(map[string][]string)
	add := func(sel string, d []string) {
		if _, seen := decls[sel]; !seen {
			order = append(order, sel)
		}
		decls[sel] = append(decls[sel], d...)
	}

	remaining := styles
	for feature, sel := range featureSelectors.All() {
		if feature == "root" || !tree.Truthy(remaining.Value(feature)) {
			continue
		}
		shorthand, isShorthand := sel.(string)
		if !isShorthand {
			subSelectors, ok := sel.(*tree.Map)
			if !ok {
				continue
			}
			for sub, subSel := range subSelectors.All() {
				featureStyles := remaining.Map(feature)
				subSelector, ok := subSel.(string)
				if sub == "root" || !ok || !tree.Truthy(featureStyles.Value(sub)) {
					continue
				}
				subStyles := tree.Of(feature, tree.Of(sub, featureStyles.Value(sub)))
				add(subSelector, StylesDeclarations(subStyles, "", false, root, false))
				remaining = remaining.With(feature, featureStyles.Without(sub))
			}
			shorthand = subSelectors.String("root")
		}
		if shorthand != "" {
			featureStyles := tree.Of(feature, remaining.Value(feature))
			add(shorthand, StylesDeclarations(featureStyles, "", false, root, false))
			remaining = remaining.Without(feature)
		}
	}
	return order, decls, remaining
}
