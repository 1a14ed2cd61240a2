package compile

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"gsc/state"
	"gsc/styles"
	"gsc/utils/debug"
)

// Nodes is the nodes command action, it writes flattened style and setting
// nodes of the theme as indented tree.
func Nodes(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("nodes")

	src, err := sourcesFromCommand(cmd, env)
	if err != nil {
		return err
	}
	sc, err := loadStyles(src.theme, src.user)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(src.blocks, env.Cfg.Compiler.VariationInstanceID, log)
	if err != nil {
		return err
	}

	styleNodes, settingNodes := styles.NewCompiler(log).Nodes(sc.Merged(), reg)
	out := dumpNodes(styleNodes, settingNodes)

	fname := cmd.Args().Get(1)
	if len(fname) == 0 {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	if err := os.WriteFile(fname, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write nodes: %w", err)
	}
	log.Info("Nodes written", zap.String("file", fname), zap.Int("styles", len(styleNodes)), zap.Int("settings", len(settingNodes)))
	return nil
}

func dumpNodes(styleNodes []styles.StyleNode, settingNodes []styles.SettingNode) string {
	tw := debug.NewTreeWriter()

	tw.Line(0, "styles [%d]", len(styleNodes))
	for i, n := range styleNodes {
		tw.Line(1, "node %d", i)
		tw.TextBlock(2, "selector", n.Selector)
		if n.DuotoneSelector != "" {
			tw.TextBlock(2, "duotone", n.DuotoneSelector)
		}
		if n.FallbackGapValue != "" {
			tw.TextBlock(2, "fallback gap", n.FallbackGapValue)
		}
		if n.HasLayoutSupport {
			tw.Line(2, "layout")
		}
		if n.SkipSelectorWrapper {
			tw.Line(2, "unwrapped")
		}
		tw.Value(2, "features", n.FeatureSelectors)
		tw.Value(2, "styles", n.Styles)
		for _, v := range n.VariationSelectors {
			tw.TextBlock(2, "variation "+v.Name, v.Selector)
		}
	}

	tw.Line(0, "settings [%d]", len(settingNodes))
	for i, n := range settingNodes {
		tw.Line(1, "node %d", i)
		tw.TextBlock(2, "selector", n.Selector)
		tw.Value(2, "presets", n.Presets)
		tw.Value(2, "custom", n.Custom)
	}
	return tw.String()
}
