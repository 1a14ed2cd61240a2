package styles

import (
	"errors"
	"fmt"

	"gsc/tree"
)

// Source selects which configuration is consulted.
type Source string

const (
	SourceAll  Source = "all"
	SourceUser Source = "user"
	SourceBase Source = "base"
)

// ErrInvalidSource is returned for unknown configuration sources.
var ErrInvalidSource = errors.New("invalid source")

// validSettings are the settings reported when no particular one is asked
// for.
var validSettings = []string{
	"appearanceTools",
	"useRootPaddingAwareAlignments",
	"background.backgroundImage",
	"background.backgroundRepeat",
	"background.backgroundSize",
	"background.backgroundPosition",
	"border.color",
	"border.radius",
	"border.style",
	"border.width",
	"shadow.presets",
	"shadow.defaultPresets",
	"color.background",
	"color.button",
	"color.caption",
	"color.custom",
	"color.customDuotone",
	"color.customGradient",
	"color.defaultDuotone",
	"color.defaultGradients",
	"color.defaultPalette",
	"color.duotone",
	"color.gradients",
	"color.heading",
	"color.link",
	"color.palette",
	"color.text",
	"custom",
	"dimensions.aspectRatio",
	"dimensions.minHeight",
	"layout.contentSize",
	"layout.definitions",
	"layout.wideSize",
	"lightbox.enabled",
	"lightbox.allowEditing",
	"position.fixed",
	"position.sticky",
	"spacing.customSpacingSize",
	"spacing.defaultSpacingSizes",
	"spacing.spacingSizes",
	"spacing.spacingScale",
	"spacing.blockGap",
	"spacing.margin",
	"spacing.padding",
	"spacing.units",
	"typography.fluid",
	"typography.customFontSize",
	"typography.defaultFontSizes",
	"typography.dropCap",
	"typography.fontFamilies",
	"typography.fontSizes",
	"typography.fontStyle",
	"typography.fontWeight",
	"typography.letterSpacing",
	"typography.lineHeight",
	"typography.textAlign",
	"typography.textColumns",
	"typography.textDecoration",
	"typography.textTransform",
	"typography.writingMode",
}

// Config is a pair of global styles trees: base (core and theme) and user
// customizations. It is a value, all changes produce new Config.
type Config struct {
	Base *tree.Map
	User *tree.Map
}

// Merged returns user tree merged over the base one.
func (c Config) Merged() *tree.Map {
	return tree.Merge(c.Base, c.User)
}

func (c Config) source(src Source) (*tree.Map, error) {
	switch src {
	case SourceAll:
		return c.Merged(), nil
	case SourceUser:
		return c.User, nil
	case SourceBase:
		return c.Base, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidSource, src)
}

// Setting returns setting at dotted path for the block, falling back to the
// top level setting. Empty path returns all known settings.
func (c Config) Setting(path, blockName string, src Source) (any, error) {
	root, err := c.source(src)
	if err != nil {
		return nil, err
	}
	settings := root.Map("settings")
	block := tree.LookupMap(settings, "blocks", blockName)
	if blockName == "" {
		block = settings
	}

	lookup := func(p []string) any {
		if v := tree.Lookup(block, p...); v != nil {
			return v
		}
		return tree.Lookup(settings, p...)
	}

	if path != "" {
		return lookup(tree.Path(path)), nil
	}
	result := tree.New(0)
	for _, s := range validSettings {
		p := tree.Path(s)
		if v := lookup(p); v != nil {
			result = tree.SetIn(result, p, v)
		}
	}
	return result, nil
}

// Style returns style value at dotted path of the block (empty name for
// top level styles). With decode references are resolved against the merged
// tree, or the base tree for SourceBase.
func (c Config) Style(path, blockName string, src Source, decode bool) (any, error) {
	root, err := c.source(src)
	if err != nil {
		return nil, err
	}
	raw := tree.Lookup(root, stylePath(path, blockName)...)
	if !decode {
		return raw, nil
	}
	scope := root
	if src == SourceUser {
		scope = c.Merged()
	}
	return ValueFromVariable(scope, blockName, raw), nil
}

// WithStyle returns new Config with user style at dotted path of the block
// set to value. Values equal to presets are stored as preset references.
func (c Config) WithStyle(path, blockName string, value any, encode bool) Config {
	if encode {
		value = PresetVariableFromValue(c.Merged().Map("settings"), blockName, path, value)
	}
	return Config{Base: c.Base, User: tree.SetIn(c.User, stylePath(path, blockName), value)}
}

func stylePath(path, blockName string) []string {
	p := []string{"styles"}
	if blockName != "" {
		p = append(p, "blocks", blockName)
	}
	return append(p, tree.Path(path)...)
}
