// Package styles compiles global styles tree into stylesheets, custom
// properties and SVG duotone filters.
package styles

import (
	"go.uber.org/zap"

	"gsc/blocks"
	"gsc/tree"
)

// Result holds everything produced by a single compilation.
type Result struct {
	CustomProperties string
	Styles           string
	// user custom CSS passed through as is
	CustomCSS  string
	SVGFilters []string
}

// Compiler turns style trees into CSS. It keeps no state between calls and
// may be used concurrently.
type Compiler struct {
	log *zap.Logger
}

// NewCompiler returns compiler logging through log, nil disables logging.
func NewCompiler(log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{log: log.Named("styles")}
}

// Compile produces all artifacts of the merged style tree. Tree is never
// modified.
func (c *Compiler) Compile(root *tree.Map, reg blocks.Registry, opts CompileOptions) Result {
	cmp := compilation{tree: root, reg: reg, opts: opts, log: c.log}

	res := Result{
		CustomProperties: cmp.toCustomProperties(),
		Styles:           cmp.toStyles(),
		CustomCSS:        tree.String(tree.Lookup(root, "styles", "css")),
		SVGFilters:       cmp.toSVGFilters(),
	}

	c.log.Debug("Styles compiled",
		zap.Int("custom properties", len(res.CustomProperties)),
		zap.Int("styles", len(res.Styles)),
		zap.Int("custom css", len(res.CustomCSS)),
		zap.Int("svg filters", len(res.SVGFilters)),
	)
	return res
}

// Nodes returns flattened style and setting nodes, as they are used by
// Compile.
func (c *Compiler) Nodes(root *tree.Map, reg blocks.Registry) ([]StyleNode, []SettingNode) {
	return nodesWithStyles(root, reg, c.log), nodesWithSettings(root, reg, c.log)
}
