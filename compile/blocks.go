package compile

import (
	"context"
	"errors"
	"os"

	cli "github.com/urfave/cli/v3"

	"gsc/blocks"
	"gsc/state"
	"gsc/utils/debug"
)

// Blocks is the blocks command action, it lists selectors of block types in
// natural name order.
func Blocks(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("blocks")

	file := cmd.Args().Get(0)
	if len(file) == 0 {
		file = env.Cfg.Compiler.BlockTypesPath
	}
	if len(file) == 0 {
		return errors.New("no block types have been specified")
	}

	reg, err := loadRegistry(file, env.Cfg.Compiler.VariationInstanceID, log)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(dumpRegistry(reg))
	return err
}

func dumpRegistry(reg blocks.Registry) string {
	tw := debug.NewTreeWriter()
	for _, name := range reg.Names() {
		e := reg[name]
		tw.Line(0, "%s", name)
		tw.TextBlock(1, "selector", e.Selector)
		if e.DuotoneSelector != "" {
			tw.TextBlock(1, "duotone", e.DuotoneSelector)
		}
		tw.Value(1, "features", e.FeatureSelectors)
		for _, v := range e.Variations {
			tw.TextBlock(1, "variation "+v.Name, v.Selector)
		}
	}
	return tw.String()
}
