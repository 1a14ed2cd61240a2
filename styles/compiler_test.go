package styles

import (
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"gsc/blocks"
	"gsc/tree"
)

func mustParse(t *testing.T, data string) *tree.Map {
	t.Helper()
	m, err := tree.Parse([]byte(data))
	if err != nil {
		t.Fatalf("tree.Parse() error: %v", err)
	}
	return m
}

const themeTree = `{
	"settings": {
		"color": {
			"palette": {
				"default": [
					{"slug": "white", "color": "white"},
					{"slug": "black", "color": "black"}
				]
			}
		}
	},
	"styles": {
		"color": {"background": "red"},
		"spacing": {"margin": "10px", "padding": "10px"},
		"elements": {
			"h1": {"typography": {"fontSize": "42px"}},
			"link": {
				"color": {"text": "blue"},
				":hover": {"color": {"text": "orange"}},
				":focus": {"color": {"text": "orange"}}
			}
		},
		"blocks": {
			"core/group": {
				"spacing": {
					"margin": {"top": "10px", "right": "20px", "left": "30px", "bottom": "40px"},
					"padding": {"top": "11px", "right": "22px", "left": "33px", "bottom": "44px"}
				}
			},
			"core/heading": {
				"color": {"text": "orange"},
				"elements": {
					"link": {
						"color": {"text": "hotpink"},
						":hover": {"color": {"text": "red"}},
						":focus": {"color": {"text": "red"}}
					}
				}
			},
			"core/image": {"border": {"radius": "9999px"}}
		}
	}
}`

func testRegistry() blocks.Registry {
	return blocks.Registry{
		"core/group":   {Name: "core/group", Selector: ".wp-block-group"},
		"core/heading": {Name: "core/heading", Selector: "h1,h2,h3,h4,h5,h6"},
		"core/image": {
			Name:             "core/image",
			Selector:         ".wp-block-image",
			DuotoneSelector:  ".wp-block-image img",
			FeatureSelectors: tree.Of("border", ".wp-block-image img, .wp-block-image .wp-crop-area"),
		},
	}
}

func TestToStyles(t *testing.T) {
	root := mustParse(t, themeTree)
	opts := CompileOptions{Styles: DefaultStyleOptions()}

	link := "a:where(:not(.wp-element-button))"
	headingLinks := func(suffix string) string {
		parts := make([]string, 0, 6)
		for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
			parts = append(parts, h+" "+link+suffix)
		}
		return strings.Join(parts, ",")
	}
	alignments := func(class string) string {
		return "." + class + " > .alignleft { float: left; margin-inline-start: 0; margin-inline-end: 2em; }" +
			"." + class + " > .alignright { float: right; margin-inline-start: 2em; margin-inline-end: 0; }" +
			"." + class + " > .aligncenter { margin-left: auto !important; margin-right: auto !important; }"
	}

	want := ":where(body) {margin: 0;}" +
		alignments("is-layout-flow") +
		alignments("is-layout-constrained") +
		".is-layout-constrained > :where(:not(.alignleft):not(.alignright):not(.alignfull)) { max-width: var(--wp--style--global--content-size); margin-left: auto !important; margin-right: auto !important; }" +
		".is-layout-constrained > .alignwide { max-width: var(--wp--style--global--wide-size); }" +
		"body .is-layout-flex { display:flex; }" +
		".is-layout-flex { flex-wrap: wrap; align-items: center; }" +
		".is-layout-flex > :is(*, div) { margin: 0; }" +
		"body .is-layout-grid { display:grid; }" +
		".is-layout-grid > :is(*, div) { margin: 0; }" +
		"body{background-color: red;margin: 10px;padding: 10px;}" +
		link + "{color: blue;}" +
		":root :where(" + link + ":hover){color: orange;}" +
		":root :where(" + link + ":focus){color: orange;}" +
		"h1{font-size: 42px;}" +
		":root :where(.wp-block-group){margin-top: 10px;margin-right: 20px;margin-bottom: 40px;margin-left: 30px;padding-top: 11px;padding-right: 22px;padding-bottom: 44px;padding-left: 33px;}" +
		":root :where(h1,h2,h3,h4,h5,h6){color: orange;}" +
		":root :where(" + headingLinks("") + "){color: hotpink;}" +
		":root :where(" + headingLinks(":hover") + "){color: red;}" +
		":root :where(" + headingLinks(":focus") + "){color: red;}" +
		":root :where(.wp-block-image img, .wp-block-image .wp-crop-area){border-radius: 9999px;}" +
		".wp-site-blocks > .alignleft { float: left; margin-right: 2em; }" +
		".wp-site-blocks > .alignright { float: right; margin-left: 2em; }" +
		".wp-site-blocks > .aligncenter { justify-content: center; margin-left: auto; margin-right: auto; }" +
		".has-white-color{color: var(--wp--preset--color--white) !important;}" +
		".has-white-background-color{background-color: var(--wp--preset--color--white) !important;}" +
		".has-white-border-color{border-color: var(--wp--preset--color--white) !important;}" +
		".has-black-color{color: var(--wp--preset--color--black) !important;}" +
		".has-black-background-color{background-color: var(--wp--preset--color--black) !important;}" +
		".has-black-border-color{border-color: var(--wp--preset--color--black) !important;}"

	if got := ToStyles(root, testRegistry(), opts); got != want {
		t.Errorf("ToStyles() =\n%s\nwant\n%s", got, want)
	}
}

func TestToStylesOptions(t *testing.T) {
	root := mustParse(t, themeTree)

	opts := CompileOptions{}
	if got := ToStyles(root, testRegistry(), opts); got != "" {
		t.Errorf("ToStyles() with everything off = %q, want empty", got)
	}

	opts.Styles.Presets = true
	got := ToStyles(root, testRegistry(), opts)
	if !strings.HasPrefix(got, ".has-white-color{") {
		t.Errorf("ToStyles() presets only = %q", got)
	}
	if strings.Contains(got, "body") {
		t.Errorf("ToStyles() presets only contains block styles: %q", got)
	}
}

func TestToStylesLayoutSizes(t *testing.T) {
	root := mustParse(t, `{"settings": {"layout": {"contentSize": "840px", "wideSize": "1100px"}}, "styles": {}}`)
	got := ToStyles(root, nil, CompileOptions{Styles: StyleOptions{Presets: true}})
	want := ":root { --wp--style--global--content-size: 840px; --wp--style--global--wide-size: 1100px; }"
	if got != want {
		t.Errorf("ToStyles() = %q, want %q", got, want)
	}
}

func TestToStylesBlockGap(t *testing.T) {
	root := mustParse(t, `{"styles": {"spacing": {"blockGap": "24px"}}}`)
	opts := CompileOptions{HasBlockGapSupport: true, Styles: StyleOptions{BlockGap: true}}
	want := ":root :where(.wp-site-blocks) > * { margin-block-start: 24px; margin-block-end: 0; }" +
		":root :where(.wp-site-blocks) > :first-child { margin-block-start: 0; }" +
		":root :where(.wp-site-blocks) > :last-child { margin-block-end: 0; }"
	if got := ToStyles(root, nil, opts); got != want {
		t.Errorf("ToStyles() = %q, want %q", got, want)
	}
}

func TestToStylesRootPadding(t *testing.T) {
	root := mustParse(t, `{
		"settings": {"useRootPaddingAwareAlignments": true},
		"styles": {"spacing": {"padding": {"top": "1px", "right": "2px", "bottom": "3px", "left": "4px"}}}
	}`)
	got := ToStyles(root, nil, CompileOptions{Styles: StyleOptions{RootPadding: true, BlockStyles: true}})
	for _, want := range []string{
		":where(body) {margin: 0;padding-right: 0; padding-left: 0;",
		".has-global-padding { padding-right: var(--wp--style--root--padding-right);",
		"body{--wp--style--root--padding-top: 1px;--wp--style--root--padding-right: 2px;--wp--style--root--padding-bottom: 3px;--wp--style--root--padding-left: 4px;}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToStyles() = %q\nmissing %q", got, want)
		}
	}
}

func TestToStylesVariations(t *testing.T) {
	root := mustParse(t, `{"styles": {"blocks": {"core/button": {
		"color": {"text": "white"},
		"variations": {"outline": {"color": {"background": "red"}, "css": "&:hover{opacity: .5}"}}
	}}}}`)
	reg := blocks.Registry{"core/button": {
		Name:       "core/button",
		Selector:   ".wp-block-button",
		Variations: []blocks.Variation{{Name: "outline", Selector: ".wp-block-button.is-style-outline"}},
	}}
	opts := CompileOptions{Styles: StyleOptions{BlockStyles: true}}

	without := ToStyles(root, reg, opts)
	if want := ":root :where(.wp-block-button){color: white;}"; without != want {
		t.Errorf("ToStyles() = %q, want %q", without, want)
	}

	opts.Styles.VariationStyles = true
	want := ":root :where(.wp-block-button){color: white;}" +
		":root :where(.wp-block-button.is-style-outline){background-color: red;}" +
		":root :where(.wp-block-button.is-style-outline):hover{opacity: .5}"
	if got := ToStyles(root, reg, opts); got != want {
		t.Errorf("ToStyles() with variations = %q, want %q", got, want)
	}
}

func TestToStylesPseudoOrder(t *testing.T) {
	root := mustParse(t, `{"styles": {"elements": {"link": {
		":focus": {"color": {"text": "red"}},
		":focus-within": {"color": {"text": "green"}},
		":hover": {"color": {"text": "blue"}}
	}}}}`)
	link := "a:where(:not(.wp-element-button))"
	want := ":root :where(" + link + ":focus){color: red;}" +
		":root :where(" + link + ":focus-within){color: green;}" +
		":root :where(" + link + ":hover){color: blue;}"
	if got := ToStyles(root, nil, CompileOptions{Styles: StyleOptions{BlockStyles: true}}); got != want {
		t.Errorf("ToStyles() = %q, want %q", got, want)
	}
}

func TestToStylesDuotone(t *testing.T) {
	root := mustParse(t, `{"styles": {"blocks": {"core/image": {
		"filter": {"duotone": "var:preset|duotone|dark"},
		"color": {"text": "red"}
	}}}}`)
	reg := blocks.Registry{"core/image": {Name: "core/image", Selector: ".wp-block-image", DuotoneSelector: ".wp-block-image img"}}
	want := ".wp-block-image img{filter: var(--wp--preset--duotone--dark);}" +
		":root :where(.wp-block-image){color: red;}"
	if got := ToStyles(root, reg, CompileOptions{Styles: StyleOptions{BlockStyles: true}}); got != want {
		t.Errorf("ToStyles() = %q, want %q", got, want)
	}
}

func TestToCustomProperties(t *testing.T) {
	root := mustParse(t, `{
		"settings": {
			"color": {
				"defaultPalette": false,
				"palette": {
					"default": [{"slug": "black", "color": "#000"}],
					"theme": [{"slug": "primary", "color": "#123456"}],
					"custom": [{"slug": "mySpecial", "color": "#abcdef"}]
				}
			},
			"custom": {"lineHeight": {"body": 1.7, "heading": 1.3}, "fontPrimary": "sans"},
			"blocks": {
				"core/group": {"custom": {"gap": "2px"}},
				"core/unknown": {"custom": {"gap": "3px"}}
			}
		}
	}`)
	want := ":root{--wp--preset--color--primary: #123456;--wp--preset--color--my-special: #abcdef;" +
		"--wp--custom--line-height--body: 1.7;--wp--custom--line-height--heading: 1.3;--wp--custom--font-primary: sans;}" +
		".wp-block-group{--wp--custom--gap: 2px;}"
	if got := ToCustomProperties(root, testRegistry()); got != want {
		t.Errorf("ToCustomProperties() = %q, want %q", got, want)
	}
}

func TestToCustomPropertiesFluid(t *testing.T) {
	root := mustParse(t, `{"settings": {"typography": {
		"fluid": true,
		"fontSizes": {"theme": [{"slug": "small", "size": "15px"}, {"slug": "fixed", "size": "20px", "fluid": false}]}
	}}}`)
	want := ":root{--wp--preset--font-size--small: clamp(14px, 0.875rem + ((1vw - 3.2px) * 0.078), 15px);--wp--preset--font-size--fixed: 20px;}"
	if got := ToCustomProperties(root, nil); got != want {
		t.Errorf("ToCustomProperties() = %q, want %q", got, want)
	}
}

func TestToSVGFilters(t *testing.T) {
	root := mustParse(t, `{"settings": {"color": {"duotone": {
		"default": [{"slug": "dark", "colors": ["#000", "#fff"]}],
		"theme": [{"slug": "sunset", "colors": ["#8c00b7", "#fcff41"]}],
		"custom": [{"slug": "mine", "colors": ["#111", "#eee"]}]
	}}}}`)
	filters := ToSVGFilters(root, nil)
	if len(filters) != 2 {
		t.Fatalf("ToSVGFilters() returned %d filters, want 2", len(filters))
	}
	for i, id := range []string{"wp-duotone-dark", "wp-duotone-sunset"} {
		if !strings.Contains(filters[i], `<filter id="`+id+`">`) {
			t.Errorf("filter %d = %s, want id %s", i, filters[i], id)
		}
	}

	props := ToCustomProperties(root, nil)
	if !strings.Contains(props, "--wp--preset--duotone--dark: url( '#wp-duotone-dark' )") {
		t.Errorf("ToCustomProperties() = %q, missing duotone property", props)
	}
}

func TestCompile(t *testing.T) {
	root := mustParse(t, `{"styles": {"css": ".x{color: red}", "color": {"text": "blue"}}}`)
	before, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}

	c := NewCompiler(zaptest.NewLogger(t))
	first := c.Compile(root, nil, DefaultCompileOptions())
	second := c.Compile(root, nil, DefaultCompileOptions())

	if first.CustomCSS != ".x{color: red}" {
		t.Errorf("Compile() CustomCSS = %q", first.CustomCSS)
	}
	if strings.Contains(first.Styles, ".x{") {
		t.Errorf("Compile() root css leaked into styles: %q", first.Styles)
	}
	if first.Styles != second.Styles || first.CustomProperties != second.CustomProperties || first.CustomCSS != second.CustomCSS {
		t.Error("Compile() is not deterministic")
	}

	after, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("Compile() modified tree:\n%s\n%s", before, after)
	}
}

func TestNodes(t *testing.T) {
	c := NewCompiler(nil)
	styles, settings := c.Nodes(mustParse(t, themeTree), testRegistry())

	link := "a:where(:not(.wp-element-button))"
	want := []string{
		"body",
		link,
		"h1",
		".wp-block-group",
		"h1,h2,h3,h4,h5,h6",
		"h1 " + link + ",h2 " + link + ",h3 " + link + ",h4 " + link + ",h5 " + link + ",h6 " + link,
		".wp-block-image",
	}
	if len(styles) != len(want) {
		t.Fatalf("Nodes() returned %d style nodes, want %d", len(styles), len(want))
	}
	for i, n := range styles {
		if n.Selector != want[i] {
			t.Errorf("style node %d selector = %q, want %q", i, n.Selector, want[i])
		}
	}
	if !styles[0].SkipSelectorWrapper || styles[3].SkipSelectorWrapper {
		t.Error("Nodes() wrong selector wrapping")
	}
	if len(settings) != 1 || settings[0].Selector != ":root" {
		t.Errorf("Nodes() settings = %+v, want single :root node", settings)
	}
}

func TestNodesVariationInnerBlocks(t *testing.T) {
	root := mustParse(t, `{"styles": {"blocks": {"core/group": {"variations": {"dark": {
		"elements": {"link": {"color": {"text": "white"}}},
		"blocks": {"core/heading": {"color": {"text": "yellow"}}, "core/missing": {"color": {"text": "red"}}}
	}}}}}}`)
	reg := testRegistry()
	reg["core/group"] = &blocks.Entry{
		Name:       "core/group",
		Selector:   ".wp-block-group",
		Variations: []blocks.Variation{{Name: "dark", Selector: ".is-style-dark"}},
	}
	nodes := NodesWithStyles(root, reg)
	want := []string{
		"body",
		".is-style-dark a:where(:not(.wp-element-button))",
		".is-style-dark h1, .is-style-dark h2, .is-style-dark h3, .is-style-dark h4, .is-style-dark h5, .is-style-dark h6",
		".wp-block-group",
	}
	if len(nodes) != len(want) {
		t.Fatalf("NodesWithStyles() returned %d nodes, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Selector != want[i] {
			t.Errorf("node %d selector = %q, want %q", i, n.Selector, want[i])
		}
	}
}

func TestPresetsClasses(t *testing.T) {
	presets := mustParse(t, `{"color": {"palette": {"theme": [{"slug": "accent", "color": "red"}]}}}`)
	want := ".wp-block-a.has-accent-color{color: var(--wp--preset--color--accent) !important;}" +
		".wp-block-a.has-accent-background-color{background-color: var(--wp--preset--color--accent) !important;}" +
		".wp-block-a.has-accent-border-color{border-color: var(--wp--preset--color--accent) !important;}"
	if got := PresetsClasses(".wp-block-a", presets); got != want {
		t.Errorf("PresetsClasses() = %q, want %q", got, want)
	}
}

func TestNodesUnregisteredVariation(t *testing.T) {
	root := mustParse(t, `{"styles": {"blocks": {"core/group": {"variations": {"dark": {
		"elements": {"link": {"color": {"text": "white"}}},
		"blocks": {"core/heading": {"color": {"text": "yellow"}}}
	}}}}}}`)
	nodes := NodesWithStyles(root, testRegistry())
	want := []string{"body", ".wp-block-group"}
	if len(nodes) != len(want) {
		t.Fatalf("NodesWithStyles() returned %d nodes, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Selector != want[i] {
			t.Errorf("node %d selector = %q, want %q", i, n.Selector, want[i])
		}
	}
}
