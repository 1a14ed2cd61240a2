package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gsc/css"
	"gsc/state"
	"gsc/styles"
	"gsc/tree"
)

// customCSS is a piece of pass-through CSS found in a theme file.
type customCSS struct {
	source string
	data   string
}

// collectCustomCSS returns custom CSS of top level styles, every block and
// block style variation in document order. Block level CSS is nested under
// a placeholder selector the way compiler expands it.
func collectCustomCSS(file string, root *tree.Map) []customCSS {
	var out []customCSS
	add := func(where string, m *tree.Map, nested bool) {
		s := m.String("css")
		if strings.TrimSpace(s) == "" {
			return
		}
		if nested {
			s = styles.ProcessCSSNesting(s, ":root")
		}
		out = append(out, customCSS{source: file + "#" + where, data: s})
	}

	top := root.Map("styles")
	add("styles", top, false)
	for name, v := range top.Map("blocks").All() {
		block, _ := v.(*tree.Map)
		add("blocks/"+name, block, true)
		for variation, v := range block.Map("variations").All() {
			vs, _ := v.(*tree.Map)
			add("blocks/"+name+"/"+variation, vs, true)
		}
	}
	return out
}

// Lint is the lint command action. Files with .css extension are checked as
// is, anything else is treated as theme styles.
func Lint(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("lint")

	if cmd.Args().Len() == 0 {
		return errors.New("nothing to lint")
	}

	l := css.NewLinter(log)
	for _, file := range cmd.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = multierr.Append(err, lintFile(l, file, log))
	}
	return err
}

func lintFile(l *css.Linter, file string, log *zap.Logger) error {
	var parts []customCSS
	if strings.EqualFold(filepath.Ext(file), ".css") {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("unable to read css: %w", err)
		}
		parts = append(parts, customCSS{source: file, data: string(data)})
	} else {
		root, err := readTree(file)
		if err != nil {
			return err
		}
		parts = collectCustomCSS(file, root)
	}

	if len(parts) == 0 {
		log.Info("No custom CSS found", zap.String("file", file))
		return nil
	}

	var err error
	for _, p := range parts {
		rpt := l.Lint([]byte(p.data), p.source)
		log.Info("CSS checked",
			zap.String("source", p.source),
			zap.Int("rules", rpt.Rules),
			zap.Int("declarations", rpt.Declarations),
			zap.Int("issues", len(rpt.Issues)))
		err = multierr.Append(err, rpt.Err())
	}
	return err
}
