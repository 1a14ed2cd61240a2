// Package compile implements program commands: compiling theme styles into
// artifacts and inspecting inputs.
package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"gsc/css"
	"gsc/duotone"
	"gsc/state"
	"gsc/styles"
)

// sources are input files of a single compilation.
type sources struct {
	theme  string
	user   string
	blocks string
}

func sourcesFromCommand(cmd *cli.Command, env *state.LocalEnv) (sources, error) {
	src := sources{
		theme:  cmd.Args().Get(0),
		user:   cmd.String("user"),
		blocks: cmd.String("blocks"),
	}
	if len(src.theme) == 0 {
		return src, errors.New("no theme styles have been specified")
	}
	if len(src.blocks) == 0 {
		src.blocks = env.Cfg.Compiler.BlockTypesPath
	}
	return src, nil
}

// Run is the compile command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src, err := sourcesFromCommand(cmd, env)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Variations = env.Cfg.Compiler.Styles.VariationStyles
	if cmd.IsSet("variations") {
		env.Variations = cmd.Bool("variations")
	}

	log.Info("Processing starting", zap.String("theme", src.theme), zap.String("user", src.user), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

type artifact struct {
	name string
	data string
}

// process handles compilation independently of CLI framework.
func process(ctx context.Context, src sources, dst string, env *state.LocalEnv, log *zap.Logger) error {
	storeInputs(src, env, log)

	sc, err := loadStyles(src.theme, src.user)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(src.blocks, env.Cfg.Compiler.VariationInstanceID, log)
	if err != nil {
		return err
	}

	opts := env.Cfg.Compiler.CompileOptions()
	opts.Styles.VariationStyles = env.Variations

	res := styles.NewCompiler(log).Compile(sc.Merged(), reg, opts)

	if env.Cfg.Output.Lint {
		lintResult(res, src.theme, log)
	}

	svg, err := duotone.Document(res.SVGFilters, env.Cfg.Output.SVGIndent)
	if err != nil {
		return fmt.Errorf("unable to prepare duotone filters: %w", err)
	}

	names := env.Cfg.Output.Artifacts
	for _, a := range []artifact{
		{names.CustomProperties, res.CustomProperties},
		{names.Styles, res.Styles},
		{names.CustomCSS, res.CustomCSS},
		{names.SVGFilters, svg},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(a.data) == 0 {
			log.Debug("Nothing to write", zap.String("artifact", a.name))
			continue
		}
		outputName := buildOutputPath(dst, src.theme, a.name, env)
		if err := writeArtifact(outputName, []byte(a.data), env.Cfg.Output.Overwrite, log); err != nil {
			return fmt.Errorf("unable to write %s: %w", a.name, err)
		}
		log.Debug("Artifact written", zap.String("artifact", a.name), zap.String("file", outputName), zap.Int("size", len(a.data)))
		env.Rpt.Store("result/"+filepath.Base(outputName), outputName)
	}
	return nil
}

func storeInputs(src sources, env *state.LocalEnv, log *zap.Logger) {
	if env.Rpt == nil {
		return
	}
	for name, path := range map[string]string{"theme": src.theme, "user": src.user, "blocks": src.blocks} {
		if len(path) == 0 {
			continue
		}
		if err := env.Rpt.StoreCopy("input/"+name+filepath.Ext(path), path); err != nil {
			log.Warn("Unable to store input in report", zap.String("file", path), zap.Error(err))
		}
	}
}

// lintResult reports problems in generated and pass-through CSS, it never
// fails compilation.
func lintResult(res styles.Result, theme string, log *zap.Logger) {
	l := css.NewLinter(log)
	for _, part := range []struct{ name, data string }{
		{"styles", res.Styles},
		{"custom css", res.CustomCSS},
	} {
		rpt := l.Lint([]byte(part.data), theme+"#"+part.name)
		if err := rpt.Err(); err != nil {
			log.Warn("CSS problems found", zap.String("part", part.name), zap.Int("issues", len(rpt.Issues)), zap.Error(err))
		}
	}
}

func writeArtifact(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.WriteFile(name, data, 0644)
}
