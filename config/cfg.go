package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"gsc/styles"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	StyleOptionsConfig struct {
		BlockGap        bool `yaml:"block_gap"`
		BlockStyles     bool `yaml:"block_styles"`
		LayoutStyles    bool `yaml:"layout_styles"`
		MarginReset     bool `yaml:"margin_reset"`
		Presets         bool `yaml:"presets"`
		RootPadding     bool `yaml:"root_padding"`
		VariationStyles bool `yaml:"variation_styles"`
	}

	CompilerConfig struct {
		BlockGapSupport     bool               `yaml:"block_gap_support"`
		FallbackGapSupport  bool               `yaml:"fallback_gap_support"`
		DisableLayoutStyles bool               `yaml:"disable_layout_styles"`
		DisableRootPadding  bool               `yaml:"disable_root_padding"`
		VariationInstanceID string             `yaml:"variation_instance_id" validate:"omitempty,alphanum"`
		BlockTypesPath      string             `yaml:"block_types,omitempty"`
		Styles              StyleOptionsConfig `yaml:"styles"`
	}

	ArtifactsConfig struct {
		CustomProperties string `yaml:"custom_properties" validate:"required"`
		Styles           string `yaml:"styles" validate:"required"`
		CustomCSS        string `yaml:"custom_css" validate:"required"`
		SVGFilters       string `yaml:"svg_filters" validate:"required"`
	}

	OutputConfig struct {
		NameTemplate string          `yaml:"name_template" validate:"required"`
		Artifacts    ArtifactsConfig `yaml:"artifacts"`
		SVGIndent    int             `yaml:"svg_indent" validate:"min=0,max=8"`
		Lint         bool            `yaml:"lint"`
		Overwrite    bool            `yaml:"overwrite"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Compiler  CompilerConfig `yaml:"compiler"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, templates are expanded at
	// run time for every artifact, not when configuration is loaded
	NameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(NameTemplateFieldName)),
)

// CompileOptions converts compiler configuration to options of a single
// compilation.
func (conf *CompilerConfig) CompileOptions() styles.CompileOptions {
	return styles.CompileOptions{
		HasBlockGapSupport:    conf.BlockGapSupport,
		HasFallbackGapSupport: conf.FallbackGapSupport,
		DisableLayoutStyles:   conf.DisableLayoutStyles,
		DisableRootPadding:    conf.DisableRootPadding,
		Styles: styles.StyleOptions{
			BlockGap:        conf.Styles.BlockGap,
			BlockStyles:     conf.Styles.BlockStyles,
			LayoutStyles:    conf.Styles.LayoutStyles,
			MarginReset:     conf.Styles.MarginReset,
			Presets:         conf.Styles.Presets,
			RootPadding:     conf.Styles.RootPadding,
			VariationStyles: conf.Styles.VariationStyles,
		},
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump returns configuration as yaml.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
