package styles

// StyleOptions selects which parts of the main stylesheet are generated.
type StyleOptions struct {
	BlockGap        bool
	BlockStyles     bool
	LayoutStyles    bool
	MarginReset     bool
	Presets         bool
	RootPadding     bool
	VariationStyles bool
}

// DefaultStyleOptions enables everything except block style variations.
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		BlockGap:     true,
		BlockStyles:  true,
		LayoutStyles: true,
		MarginReset:  true,
		Presets:      true,
		RootPadding:  true,
	}
}

// CompileOptions is the complete set of switches for a single compilation.
// It is a plain value, copies never affect each other.
type CompileOptions struct {
	HasBlockGapSupport    bool
	HasFallbackGapSupport bool
	DisableLayoutStyles   bool
	DisableRootPadding    bool
	Styles                StyleOptions
}

// DefaultCompileOptions returns options of a theme without block gap support,
// with fallback gap and default style options.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		HasFallbackGapSupport: true,
		Styles:                DefaultStyleOptions(),
	}
}
