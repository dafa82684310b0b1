// Package config loads and persists the jsongen configuration file.
//
// Configuration comes from four layers, lowest precedence first:
// system file (/etc/jsongen/config.toml), user file
// (~/.config/jsongen/config.toml), project file (jsongen.toml found
// by walking up from the working directory), and JSONGEN_* environment
// variables. Command-line flags sit above all of them and are applied
// by the cmd layer.
package config

import (
	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/internal/casing"

	"github.com/teranos/jsongen/errors"
)

// Config is the on-disk jsongen configuration. Every value is
// optional; missing keys fall back to the defaults in SetDefaults.
type Config struct {
	Generate  GenerateConfig            `mapstructure:"generate"`
	Languages map[string]map[string]any `mapstructure:"languages"`
	Log       LogConfig                 `mapstructure:"log"`
}

// GenerateConfig holds the language-agnostic generation settings,
// mirrored by the flags of the generate command.
type GenerateConfig struct {
	Languages   []string `mapstructure:"languages"`    // target languages (registry names or aliases)
	OutputDir   string   `mapstructure:"output_dir"`   // where generated files are written
	RootName    string   `mapstructure:"root_name"`    // name of the top-level type
	PackageName string   `mapstructure:"package_name"` // package clause / module header (empty = backend default)
	Comments    *bool    `mapstructure:"comments"`     // emit analysis notes as comments: nil = default (on)
	StructCase  string   `mapstructure:"struct_case"`  // original, snake, camel, pascal (empty = backend default)
	FieldCase   string   `mapstructure:"field_case"`
}

// LogConfig configures console log rendering.
type LogConfig struct {
	Theme string `mapstructure:"theme"` // color theme: gruvbox, everforest
}

// Validate checks the values a config file can get wrong. Backend
// option tables are validated later by each generator's own decoder.
func (c *Config) Validate() error {
	if cs := c.Generate.StructCase; cs != "" && !casing.Valid(cs) {
		return errors.Newf("invalid struct_case %q, expected one of %v", cs, casing.Styles())
	}
	if fc := c.Generate.FieldCase; fc != "" && !casing.Valid(fc) {
		return errors.Newf("invalid field_case %q, expected one of %v", fc, casing.Styles())
	}
	for _, lang := range c.Generate.Languages {
		if lang == "" {
			return errors.New("generate.languages contains an empty entry")
		}
	}
	return nil
}

// CodegenConfig builds the generation options for one language by
// merging the [generate] section with that language's option table.
// The language must be a canonical registry name, not an alias, since
// config tables are keyed by the name generators register under.
func (c *Config) CodegenConfig(language string) *codegen.Config {
	cfg := codegen.DefaultConfig()
	if c.Generate.RootName != "" {
		cfg.RootName = c.Generate.RootName
	}
	cfg.PackageName = c.Generate.PackageName
	if c.Generate.Comments != nil {
		cfg.AddComments = *c.Generate.Comments
	}
	cfg.StructCase = c.Generate.StructCase
	cfg.FieldCase = c.Generate.FieldCase
	for key, value := range c.Languages[language] {
		cfg.SetOption(key, value)
	}
	return cfg
}
