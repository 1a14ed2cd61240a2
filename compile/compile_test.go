package compile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"gsc/blocks"
	"gsc/config"
	"gsc/css"
	"gsc/state"
	"gsc/styles"
	"gsc/tree"
)

const testTheme = `{
	"version": 3,
	"settings": {
		"color": {
			"palette": {"theme": [{"slug": "accent", "color": "#f00", "name": "Accent"}]},
			"duotone": {"theme": [{"slug": "dark", "colors": ["#000", "#fff"]}]}
		}
	},
	"styles": {
		"color": {"text": "var:preset|color|accent"},
		"css": "a{color:red}",
		"blocks": {
			"core/group": {
				"css": "&:hover{color:green}",
				"variations": {"outlined": {"css": "border:1px solid"}}
			}
		}
	}
}`

const testBlocks = `[
	{"name": "core/group", "supports": {"layout": true}, "styles": ["outlined"]}
]`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return &state.LocalEnv{
		Cfg:   cfg,
		Log:   zaptest.NewLogger(t),
		RunID: uuid.New(),
	}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected output %s: %v", filepath.Base(path), err)
	}
	return string(data)
}

func TestProcess(t *testing.T) {
	in, dst := t.TempDir(), t.TempDir()
	src := sources{
		theme:  writeFile(t, in, "theme.json", testTheme),
		blocks: writeFile(t, in, "blocks.json", testBlocks),
	}
	env := testEnv(t)

	if err := process(context.Background(), src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	props := readOutput(t, filepath.Join(dst, "theme-custom-properties.css"))
	if !strings.Contains(props, "--wp--preset--color--accent: #f00") {
		t.Errorf("custom properties = %s, want accent preset", props)
	}

	out := readOutput(t, filepath.Join(dst, "theme-global-styles.css"))
	for _, want := range []string{
		"body{color: var(--wp--preset--color--accent);}",
		".has-accent-color{color: var(--wp--preset--color--accent) !important;}",
		":root :where(.wp-block-group):hover{color:green}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("styles = %s\nmissing %s", out, want)
		}
	}
	// variations are off by default
	if strings.Contains(out, "is-style-outlined") {
		t.Errorf("styles = %s, want no variation styles", out)
	}

	if got := readOutput(t, filepath.Join(dst, "theme-custom.css")); got != "a{color:red}" {
		t.Errorf("custom css = %q, want %q", got, "a{color:red}")
	}

	svg := readOutput(t, filepath.Join(dst, "theme-duotone.svg"))
	if !strings.Contains(svg, `<filter id="wp-duotone-dark">`) {
		t.Errorf("svg = %s, want dark filter", svg)
	}
}

func TestProcess_UserAndVariations(t *testing.T) {
	in, dst := t.TempDir(), t.TempDir()
	src := sources{
		theme:  writeFile(t, in, "theme.json", testTheme),
		user:   writeFile(t, in, "user.json", `{"styles": {"color": {"text": "blue"}}}`),
		blocks: writeFile(t, in, "blocks.json", testBlocks),
	}
	env := testEnv(t)
	env.Variations = true

	if err := process(context.Background(), src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out := readOutput(t, filepath.Join(dst, "theme-global-styles.css"))
	if !strings.Contains(out, "body{color: blue;}") {
		t.Errorf("styles = %s, want user color", out)
	}
	if !strings.Contains(out, ".wp-block-group.is-style-outlined") {
		t.Errorf("styles = %s, want variation styles", out)
	}
}

func TestProcess_Overwrite(t *testing.T) {
	in, dst := t.TempDir(), t.TempDir()
	src := sources{theme: writeFile(t, in, "theme.json", testTheme)}
	existing := writeFile(t, dst, "theme-custom.css", "old")

	env := testEnv(t)
	env.Cfg.Output.Overwrite = false
	err := process(context.Background(), src, dst, env, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("process() error = %v, want existing file error", err)
	}

	env.Cfg.Output.Overwrite = true
	if err := process(context.Background(), src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got := readOutput(t, existing); got != "a{color:red}" {
		t.Errorf("overwritten file = %q, want new content", got)
	}
}

func TestProcess_Errors(t *testing.T) {
	in := t.TempDir()
	theme := writeFile(t, in, "theme.json", testTheme)

	tests := []struct {
		name string
		src  sources
	}{
		{"missing theme", sources{theme: filepath.Join(in, "nope.json")}},
		{"broken theme", sources{theme: writeFile(t, in, "broken.json", "[1, 2]")}},
		{"missing user", sources{theme: theme, user: filepath.Join(in, "nope.json")}},
		{"broken blocks", sources{theme: theme, blocks: writeFile(t, in, "blocks.json", `{"a": 1}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			if err := process(context.Background(), tt.src, t.TempDir(), env, env.Log); err == nil {
				t.Error("process() expected error")
			}
		})
	}
}

func TestProcess_Cancelled(t *testing.T) {
	in := t.TempDir()
	src := sources{theme: writeFile(t, in, "theme.json", testTheme)}
	env := testEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := process(ctx, src, t.TempDir(), env, env.Log); err != context.Canceled {
		t.Errorf("process() error = %v, want %v", err, context.Canceled)
	}
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		theme    string
		want     string
	}{
		{"default", "{{ .Theme }}-{{ .Artifact }}", "/in/theme.json", "theme-global-styles.css"},
		{"slugged theme", "{{ .Theme }}-{{ .Artifact }}", "/in/My Theme.json", "my-theme-global-styles.css"},
		{"sprig function", "{{ .Artifact | upper }}", "/in/theme.json", "GLOBAL-STYLES.CSS"},
		{"no directories", "sub/{{ .Artifact }}", "/in/theme.json", "subglobal-styles.css"},
		{"empty template", "", "/in/theme.json", "global-styles.css"},
		{"empty expansion", "{{ if false }}x{{ end }}", "/in/theme.json", "global-styles.css"},
		{"broken template", "{{ .Theme", "/in/theme.json", "global-styles.css"},
		{"unknown field", "{{ .Title }}", "/in/theme.json", "global-styles.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			env.Cfg.Output.NameTemplate = tt.template
			dst := t.TempDir()

			got := buildOutputPath(dst, tt.theme, "global-styles.css", env)
			if want := filepath.Join(dst, tt.want); got != want {
				t.Errorf("buildOutputPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestBuildOutputPath_RunID(t *testing.T) {
	env := testEnv(t)
	env.Cfg.Output.NameTemplate = "{{ .RunID }}.css"

	got := buildOutputPath("out", "theme.json", "styles.css", env)
	if want := filepath.Join("out", env.RunID.String()+".css"); got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestCollectCustomCSS(t *testing.T) {
	root, err := tree.Parse([]byte(testTheme))
	if err != nil {
		t.Fatalf("tree.Parse() error: %v", err)
	}

	got := collectCustomCSS("theme.json", root)
	want := []customCSS{
		{"theme.json#styles", "a{color:red}"},
		{"theme.json#blocks/core/group", ":root:hover{color:green}"},
		{"theme.json#blocks/core/group/outlined", ":root{border:1px solid}"},
	}
	if len(got) != len(want) {
		t.Fatalf("collectCustomCSS() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collectCustomCSS()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLintFile(t *testing.T) {
	in := t.TempDir()
	log := zaptest.NewLogger(t)

	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"theme", writeFile(t, in, "theme.json", testTheme), false},
		{"no custom css", writeFile(t, in, "plain.json", `{"styles": {}}`), false},
		{"clean css", writeFile(t, in, "clean.css", "a{color:red}"), false},
		{"broken css", writeFile(t, in, "broken.css", "a{color red}"), true},
		{"broken theme css", writeFile(t, in, "broken.json", `{"styles": {"css": "a{color red}"}}`), true},
		{"missing", filepath.Join(in, "missing.css"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lintFile(css.NewLinter(log), tt.file, log)
			if (err != nil) != tt.wantErr {
				t.Errorf("lintFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDumpNodes(t *testing.T) {
	root, err := tree.Parse([]byte(testTheme))
	if err != nil {
		t.Fatalf("tree.Parse() error: %v", err)
	}
	types, err := blocks.ParseTypes([]byte(testBlocks))
	if err != nil {
		t.Fatalf("ParseTypes() error: %v", err)
	}
	env := testEnv(t)
	reg := blocks.NewRegistry(types, "")

	got := dumpNodes(styles.NewCompiler(env.Log).Nodes(root, reg))
	for _, want := range []string{
		"styles [",
		"    selector: \"body\"\n",
		"    selector: \".wp-block-group\"\n",
		"    layout\n",
		"settings [",
		"      color\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dumpNodes() =\n%s\nmissing %q", got, want)
		}
	}
}

func TestDumpRegistry(t *testing.T) {
	types, err := blocks.ParseTypes([]byte(`[
		{"name": "core/heading10"},
		{"name": "core/heading2", "styles": ["plain"]}
	]`))
	if err != nil {
		t.Fatalf("ParseTypes() error: %v", err)
	}

	got := dumpRegistry(blocks.NewRegistry(types, ""))
	first, second := strings.Index(got, "core/heading2\n"), strings.Index(got, "core/heading10\n")
	if first < 0 || second < 0 || first > second {
		t.Errorf("dumpRegistry() =\n%s\nwant natural order", got)
	}
	if !strings.Contains(got, "  variation plain: \".wp-block-heading2.is-style-plain\"\n") {
		t.Errorf("dumpRegistry() =\n%s\nmissing variation", got)
	}
}
