package compile

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"gsc/blocks"
	"gsc/styles"
	"gsc/tree"
)

func readTree(path string) (*tree.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read styles: %w", err)
	}
	m, err := tree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse styles from '%s': %w", path, err)
	}
	return m, nil
}

// loadStyles reads theme styles and optional user customizations.
func loadStyles(theme, user string) (styles.Config, error) {
	var (
		cfg styles.Config
		err error
	)
	if cfg.Base, err = readTree(theme); err != nil {
		return cfg, err
	}
	if user == "" {
		return cfg, nil
	}
	if cfg.User, err = readTree(user); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadRegistry builds block registry, without block types only top level
// styles are compiled.
func loadRegistry(path, variationInstanceID string, log *zap.Logger) (blocks.Registry, error) {
	if path == "" {
		log.Debug("No block types, compiling top level styles only")
		return blocks.NewRegistry(nil, variationInstanceID), nil
	}
	types, err := blocks.LoadTypes(path)
	if err != nil {
		return nil, err
	}
	log.Debug("Block types loaded", zap.String("file", path), zap.Int("count", len(types)))
	return blocks.NewRegistry(types, variationInstanceID), nil
}
