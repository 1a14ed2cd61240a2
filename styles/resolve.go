package styles

import (
	"strings"

	"gsc/tree"
)

// stylePathToCSSVarInfix lists style paths whose values may be encoded as
// preset references.
var stylePathToCSSVarInfix = func() map[string]string {
	m := map[string]string{
		"color.background":                       "color",
		"color.text":                             "color",
		"color.gradient":                         "gradient",
		"filter.duotone":                         "duotone",
		"shadow":                                 "shadow",
		"typography.fontSize":                    "font-size",
		"typography.fontFamily":                  "font-family",
		"elements.link.color.text":               "color",
		"elements.link.:hover.color.text":        "color",
		"elements.link.typography.fontFamily":    "font-family",
		"elements.link.typography.fontSize":      "font-size",
		"elements.button.color.text":             "color",
		"elements.button.color.background":       "color",
		"elements.button.typography.fontFamily":  "font-family",
		"elements.button.typography.fontSize":    "font-size",
		"elements.caption.color.text":            "color",
		"elements.heading.color":                 "color",
		"elements.heading.color.background":      "color",
		"elements.heading.typography.fontFamily": "font-family",
		"elements.heading.gradient":              "gradient",
		"elements.heading.color.gradient":        "gradient",
	}
	for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		p := "elements." + h + "."
		m[p+"color"] = "color"
		m[p+"background"] = "color"
		m[p+"typography.fontFamily"] = "font-family"
		m[p+"color.gradient"] = "gradient"
	}
	return m
}()

// ValueFromVariable resolves value found in styles of the block (empty name
// for root styles) to the concrete value: {"ref"} objects are followed once,
// preset references "var:preset|<infix>|<slug>" and
// "var(--wp--preset--<infix>--<slug>)" are looked up in settings, custom
// references in settings.custom. Anything that cannot be resolved is
// returned as is.
func ValueFromVariable(root *tree.Map, blockName string, v any) any {
	r := resolver{root: root, block: blockName, seen: make(map[string]bool)}
	return r.resolve(v)
}

type resolver struct {
	root  *tree.Map
	block string
	seen  map[string]bool
}

func (r *resolver) resolve(v any) any {
	if ref, ok := isRef(v); ok {
		target := tree.Lookup(r.root, tree.Path(ref)...)
		if !tree.Truthy(target) {
			return v
		}
		if _, chained := isRef(target); chained {
			return v
		}
		v = target
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return v
	}

	var parsed []string
	switch {
	case strings.HasPrefix(s, varPrefix):
		parsed = strings.Split(s[len(varPrefix):], "|")
	case strings.HasPrefix(s, "var(--wp--") && strings.HasSuffix(s, ")"):
		parsed = strings.Split(s[len("var(--wp--"):len(s)-1], "--")
	default:
		return s
	}

	// references going in circles resolve to themselves
	if r.seen[s] {
		return s
	}
	r.seen[s] = true
	defer delete(r.seen, s)

	switch parsed[0] {
	case "preset":
		return r.preset(s, parsed[1:])
	case "custom":
		return r.custom(s, parsed[1:])
	}
	return s
}

func (r *resolver) preset(variable string, path []string) any {
	if len(path) < 2 {
		return variable
	}
	meta, ok := presetMetadataByInfix(path[0])
	if !ok {
		return variable
	}
	settings := r.root.Map("settings")
	preset := findInPresetsBy(settings, r.block, meta, "slug", path[1])
	if preset == nil {
		return variable
	}
	return r.resolve(preset.Value(meta.ValueKey))
}

func (r *resolver) custom(variable string, path []string) any {
	settings := r.root.Map("settings")
	result := lookupKebab(tree.LookupMap(settings, "blocks", r.block, "custom"), path)
	if result == nil {
		result = lookupKebab(settings.Map("custom"), path)
	}
	if !tree.Truthy(result) {
		return variable
	}
	return r.resolve(result)
}

// lookupKebab follows path where each segment matches a key either exactly or
// by its kebab-cased form, as custom properties are named.
func lookupKebab(m *tree.Map, path []string) any {
	var v any = m
	for _, seg := range path {
		cur, ok := v.(*tree.Map)
		if !ok {
			return nil
		}
		if next, ok := cur.Get(seg); ok {
			v = next
			continue
		}
		v = nil
		for k, val := range cur.All() {
			if KebabCase(k) == seg {
				v = val
				break
			}
		}
		if v == nil {
			return nil
		}
	}
	return v
}

// findInPresetsBy looks preset up by property value, block settings first,
// root settings next, origins in resolution order. When searching by anything
// but slug, a preset shadowed by a higher priority preset with the same slug
// and a different value is not a match.
func findInPresetsBy(settings *tree.Map, blockName string, meta PresetMetadata, property string, value any) *tree.Map {
	nodes := []*tree.Map{tree.LookupMap(settings, "blocks", blockName), settings}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		for _, op := range presetsByOrigin(node, meta, ResolveOrder) {
			for _, p := range op.presets {
				if !presetPropertyMatches(p, property, value) {
					continue
				}
				if property == "slug" {
					return p
				}
				top := findInPresetsBy(settings, blockName, meta, "slug", p.Value("slug"))
				if top != nil && sameValue(top.Value(property), p.Value(property)) {
					return p
				}
				return nil
			}
		}
	}
	return nil
}

func presetPropertyMatches(p *tree.Map, property string, value any) bool {
	pv := p.Value(property)
	if sameValue(pv, value) {
		return true
	}
	// references carry kebab-cased slugs
	if property == "slug" {
		ps, ok1 := pv.(string)
		vs, ok2 := value.(string)
		return ok1 && ok2 && KebabCase(ps) == vs
	}
	return false
}

// sameValue compares scalars by value and containers by identity.
func sameValue(a, b any) bool {
	switch a := a.(type) {
	case string:
		s, ok := b.(string)
		return ok && a == s
	case float64:
		f, ok := b.(float64)
		return ok && a == f
	case bool:
		v, ok := b.(bool)
		return ok && a == v
	case nil:
		return b == nil
	case *tree.Map:
		m, ok := b.(*tree.Map)
		return ok && a == m
	}
	return false
}

// PresetVariableFromValue encodes concrete value found at style path as
// "var:preset|<infix>|<slug>" when it equals the value of the effective preset
// of the block (or root for empty name). Other values are returned as is.
func PresetVariableFromValue(settings *tree.Map, blockName, stylePath string, value any) any {
	if !tree.Truthy(value) {
		return value
	}
	infix, ok := stylePathToCSSVarInfix[stylePath]
	if !ok {
		return value
	}
	meta, ok := presetMetadataByInfix(infix)
	if !ok {
		return value
	}
	preset := findInPresetsBy(settings, blockName, meta, meta.ValueKey, value)
	if preset == nil {
		return value
	}
	return "var:preset|" + infix + "|" + tree.String(preset.Value("slug"))
}
