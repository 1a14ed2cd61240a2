package styles

import (
	"gsc/tree"
)

// Origin is the provenance of a preset list.
type Origin string

const (
	OriginDefault Origin = "default"
	OriginTheme   Origin = "theme"
	OriginCustom  Origin = "custom"
)

// OriginOrder is an explicit ordering of origins.
type OriginOrder []Origin

var (
	// EmitOrder is used when generating output, later origins win in CSS.
	EmitOrder = OriginOrder{OriginDefault, OriginTheme, OriginCustom}
	// ResolveOrder is used when looking presets up, first match wins.
	ResolveOrder = OriginOrder{OriginCustom, OriginTheme, OriginDefault}
)

// PresetClass is a utility class generated for every preset.
type PresetClass struct {
	Suffix   string
	Property string
}

// PresetMetadata describes one kind of preset list kept in settings.
type PresetMetadata struct {
	// settings path of the list, keyed by origin
	Path []string
	// key of preset entry holding the value
	ValueKey string
	// computes the value instead of ValueKey
	ValueFunc func(preset *tree.Map, settings *tree.Map) string
	// custom property infix: --wp--preset--<infix>--<slug>
	CSSVarInfix string
	Classes     []PresetClass
	// setting which disables default origin when false
	DefaultToggle []string
}

// PresetsMetadata lists preset kinds in output order.
var PresetsMetadata = []PresetMetadata{
	{
		Path:        []string{"color", "palette"},
		ValueKey:    "color",
		CSSVarInfix: "color",
		Classes: []PresetClass{
			{Suffix: "color", Property: "color"},
			{Suffix: "background-color", Property: "background-color"},
			{Suffix: "border-color", Property: "border-color"},
		},
		DefaultToggle: []string{"color", "defaultPalette"},
	},
	{
		Path:        []string{"color", "gradients"},
		ValueKey:    "gradient",
		CSSVarInfix: "gradient",
		Classes: []PresetClass{
			{Suffix: "gradient-background", Property: "background"},
		},
		DefaultToggle: []string{"color", "defaultGradients"},
	},
	{
		Path:     []string{"color", "duotone"},
		ValueKey: "colors",
		ValueFunc: func(preset *tree.Map, _ *tree.Map) string {
			return "url( '#wp-duotone-" + tree.String(preset.Value("slug")) + "' )"
		},
		CSSVarInfix:   "duotone",
		DefaultToggle: []string{"color", "defaultDuotone"},
	},
	{
		Path:          []string{"shadow", "presets"},
		ValueKey:      "shadow",
		CSSVarInfix:   "shadow",
		DefaultToggle: []string{"shadow", "defaultPresets"},
	},
	{
		Path:     []string{"typography", "fontSizes"},
		ValueKey: "size",
		ValueFunc: func(preset *tree.Map, settings *tree.Map) string {
			return tree.String(TypographyFontSizeValue(preset, settings))
		},
		CSSVarInfix: "font-size",
		Classes: []PresetClass{
			{Suffix: "font-size", Property: "font-size"},
		},
		DefaultToggle: []string{"typography", "defaultFontSizes"},
	},
	{
		Path:        []string{"typography", "fontFamilies"},
		ValueKey:    "fontFamily",
		CSSVarInfix: "font-family",
		Classes: []PresetClass{
			{Suffix: "font-family", Property: "font-family"},
		},
	},
	{
		Path:          []string{"spacing", "spacingSizes"},
		ValueKey:      "size",
		CSSVarInfix:   "spacing",
		DefaultToggle: []string{"spacing", "defaultSpacingSizes"},
	},
}

// presetMetadataByInfix finds metadata by custom property infix.
func presetMetadataByInfix(infix string) (PresetMetadata, bool) {
	for _, m := range PresetsMetadata {
		if m.CSSVarInfix == infix {
			return m, true
		}
	}
	return PresetMetadata{}, false
}

// presetsByOrigin returns preset lists of the kind found in settings node, in
// requested origin order. Default origin is skipped when switched off.
func presetsByOrigin(node *tree.Map, meta PresetMetadata, order OriginOrder) []originPresets {
	lists := tree.LookupMap(node, meta.Path...)
	if lists == nil {
		return nil
	}
	disabledDefault := false
	if len(meta.DefaultToggle) > 0 {
		v := tree.Lookup(node, meta.DefaultToggle...)
		disabledDefault = v == false
	}

	var out []originPresets
	for _, origin := range order {
		if origin == OriginDefault && disabledDefault {
			continue
		}
		list, ok := lists.Value(string(origin)).([]any)
		if !ok {
			continue
		}
		presets := make([]*tree.Map, 0, len(list))
		for _, item := range list {
			if p, ok := item.(*tree.Map); ok {
				presets = append(presets, p)
			}
		}
		out = append(out, originPresets{origin: origin, presets: presets})
	}
	return out
}

type originPresets struct {
	origin  Origin
	presets []*tree.Map
}

// presetValue returns rendered value of a preset entry.
func presetValue(meta PresetMetadata, preset *tree.Map, settings *tree.Map) string {
	if meta.ValueFunc != nil {
		return meta.ValueFunc(preset, settings)
	}
	return tree.String(preset.Value(meta.ValueKey))
}
