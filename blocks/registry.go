package blocks

import (
	"slices"
	"strings"

	"github.com/maruel/natural"

	"gsc/selector"
	"gsc/tree"
)

// featureLevelSelectors maps block supports keys to style features which may
// carry their own selectors when block has no selectors config.
var featureLevelSelectors = []struct{ support, feature string }{
	{"__experimentalBorder", "border"},
	{"color", "color"},
	{"spacing", "spacing"},
	{"typography", "typography"},
}

// Variation is a registered block style variation and its selector.
type Variation struct {
	Name     string
	Selector string
}

// Entry is everything the compiler needs to know about a block type.
type Entry struct {
	Name             string
	Selector         string
	DuotoneSelector  string
	FallbackGapValue string
	HasLayoutSupport bool
	// feature (or feature.subfeature) to selector, string or *tree.Map values
	FeatureSelectors *tree.Map
	Variations       []Variation
}

// VariationSelector returns selector of named style variation.
func (e *Entry) VariationSelector(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, v := range e.Variations {
		if v.Name == name {
			return v.Selector, true
		}
	}
	return "", false
}

// Registry maps block names to their selector entries.
type Registry map[string]*Entry

// Selector returns root selector of the block or empty string.
func (r Registry) Selector(name string) string {
	if e, ok := r[name]; ok && e != nil {
		return e.Selector
	}
	return ""
}

// Names returns block names in natural order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case natural.Less(a, b):
			return -1
		default:
			return 1
		}
	})
	return names
}

// NewRegistry builds registry for block types. When variationInstanceID is not
// empty it is appended to every style variation name.
func NewRegistry(types []Type, variationInstanceID string) Registry {
	r := make(Registry, len(types))
	for _, bt := range types {
		r[bt.Name] = newEntry(bt, variationInstanceID)
	}
	return r
}

func newEntry(bt Type, variationInstanceID string) *Entry {
	e := &Entry{
		Name:     bt.Name,
		Selector: BlockSelector(bt, "root", false),
	}

	e.DuotoneSelector = BlockSelector(bt, "filter.duotone", false)
	if e.DuotoneSelector == "" {
		// older blocks declare duotone target in color supports
		if support, ok := tree.Lookup(bt.Supports, "color", "__experimentalDuotone").(string); ok && support != "" {
			e.DuotoneSelector = selector.Scope(e.Selector, support)
		}
	}

	e.HasLayoutSupport = tree.Truthy(bt.Supports.Value("layout")) || tree.Truthy(bt.Supports.Value("__experimentalLayout"))
	if v := tree.Lookup(bt.Supports, "spacing", "blockGap", "__experimentalDefault"); v != nil {
		e.FallbackGapValue = tree.String(v)
	}

	for _, name := range bt.Styles {
		if variationInstanceID != "" {
			name += "-" + variationInstanceID
		}
		e.Variations = append(e.Variations, Variation{Name: name, Selector: selector.Variation(name, e.Selector)})
	}

	if bt.Selectors.Len() > 0 {
		e.FeatureSelectors = bt.Selectors
	} else {
		fs := tree.Of("root", e.Selector)
		for _, f := range featureLevelSelectors {
			if sel := BlockSelector(bt, f.support, false); sel != "" {
				fs = fs.With(f.feature, sel)
			}
		}
		e.FeatureSelectors = fs
	}
	return e
}

// BlockSelector returns selector for the block itself ("root"), one of its
// features ("color") or subfeatures ("color.text"). With fallback feature
// falls back to the root and subfeature to its feature. Empty string means
// there is no selector.
func BlockSelector(bt Type, target string, fallback bool) string {
	if target == "" {
		return ""
	}
	hasSelectors := bt.Selectors.Len() > 0

	var root string
	switch {
	case hasSelectors && bt.Selectors.String("root") != "":
		root = bt.Selectors.String("root")
	case bt.Supports.String("__experimentalSelector") != "":
		root = bt.Supports.String("__experimentalSelector")
	default:
		name := strings.Replace(bt.Name, "core/", "", 1)
		root = ".wp-block-" + strings.Replace(name, "/", "-", 1)
	}
	if target == "root" {
		return root
	}

	path := tree.Path(target)
	if len(path) == 1 {
		var fallbackSelector string
		if fallback {
			fallbackSelector = root
		}
		if hasSelectors {
			if sel := stringAt(bt.Selectors, path[0], "root"); sel != "" {
				return sel
			}
			if sel := stringAt(bt.Selectors, path[0]); sel != "" {
				return sel
			}
			return fallbackSelector
		}
		sel := stringAt(bt.Supports, path[0], "__experimentalSelector")
		if sel == "" {
			return fallbackSelector
		}
		return selector.Scope(root, sel)
	}

	if hasSelectors {
		if sel := stringAt(bt.Selectors, path...); sel != "" {
			return sel
		}
	}
	if fallback {
		return BlockSelector(bt, path[0], true)
	}
	return ""
}

func stringAt(m *tree.Map, path ...string) string {
	s, _ := tree.Lookup(m, path...).(string)
	return s
}
