package styles

import (
	"testing"

	"gsc/tree"
)

const resolveTree = `{
	"settings": {
		"color": {
			"palette": {
				"default": [{"slug": "red", "color": "#f00"}, {"slug": "black", "color": "#000"}],
				"theme": [{"slug": "red", "color": "#e00"}, {"slug": "primary", "color": "#123456"}]
			}
		},
		"typography": {"fontSizes": {"theme": [{"slug": "xLarge", "size": "42px"}]}},
		"custom": {
			"lineHeight": {"body": 1.7},
			"loopA": "var:custom|loop-b",
			"loopB": "var:custom|loop-a",
			"alias": "var:preset|color|primary"
		},
		"blocks": {
			"core/button": {
				"color": {"palette": {"theme": [{"slug": "red", "color": "#d00"}]}},
				"custom": {"lineHeight": {"body": 1.2}}
			}
		}
	},
	"styles": {
		"color": {"background": "blue", "text": {"ref": "styles.color.background"}},
		"typography": {"fontSize": {"ref": "styles.color.text"}}
	}
}`

func TestValueFromVariable(t *testing.T) {
	root := mustParse(t, resolveTree)

	tests := []struct {
		name  string
		block string
		in    any
		want  any
	}{
		{"theme over default", "", "var:preset|color|red", "#e00"},
		{"css var form", "", "var(--wp--preset--color--red)", "#e00"},
		{"default only", "", "var:preset|color|black", "#000"},
		{"block settings first", "core/button", "var:preset|color|red", "#d00"},
		{"block falls back to root", "core/button", "var:preset|color|primary", "#123456"},
		{"kebab slug", "", "var:preset|font-size|x-large", "42px"},
		{"unknown slug", "", "var:preset|color|nope", "var:preset|color|nope"},
		{"unknown kind", "", "var:preset|nope|red", "var:preset|nope|red"},
		{"custom", "", "var:custom|line-height|body", 1.7},
		{"block custom", "core/button", "var(--wp--custom--line-height--body)", 1.2},
		{"custom to preset", "", "var:custom|alias", "#123456"},
		{"cycle", "", "var:custom|loop-a", "var:custom|loop-a"},
		{"plain", "", "10px", "10px"},
		{"number", "", 3.0, 3.0},
		{"nil", "", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueFromVariable(root, tt.block, tt.in); got != tt.want {
				t.Errorf("ValueFromVariable(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValueFromVariableRefs(t *testing.T) {
	root := mustParse(t, resolveTree)

	text := tree.Lookup(root, "styles", "color", "text")
	if got := ValueFromVariable(root, "", text); got != "blue" {
		t.Errorf("ValueFromVariable(ref) = %v, want blue", got)
	}

	// refs are followed once only
	chained := tree.Lookup(root, "styles", "typography", "fontSize")
	if got := ValueFromVariable(root, "", chained); got != chained {
		t.Errorf("ValueFromVariable(chained ref) = %v, want the ref itself", got)
	}

	missing := tree.Of("ref", "styles.nothing.here")
	if got := ValueFromVariable(root, "", missing); got != missing {
		t.Errorf("ValueFromVariable(missing ref) = %v, want the ref itself", got)
	}
}

func TestPresetVariableFromValue(t *testing.T) {
	settings := mustParse(t, resolveTree).Map("settings")

	tests := []struct {
		name  string
		block string
		path  string
		in    any
		want  any
	}{
		{"theme preset", "", "color.text", "#123456", "var:preset|color|primary"},
		{"element path", "", "elements.link.color.text", "#e00", "var:preset|color|red"},
		{"shadowed default", "", "color.background", "#f00", "#f00"},
		{"default", "", "color.background", "#000", "var:preset|color|black"},
		{"block preset", "core/button", "color.text", "#d00", "var:preset|color|red"},
		{"shadowed by block", "core/button", "color.text", "#e00", "#e00"},
		{"font size", "", "typography.fontSize", "42px", "var:preset|font-size|xLarge"},
		{"no preset", "", "color.text", "#abcdef", "#abcdef"},
		{"unmapped path", "", "spacing.margin", "#123456", "#123456"},
		{"empty", "", "color.text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PresetVariableFromValue(settings, tt.block, tt.path, tt.in); got != tt.want {
				t.Errorf("PresetVariableFromValue(%q, %v) = %v, want %v", tt.path, tt.in, got, tt.want)
			}
		})
	}
}
