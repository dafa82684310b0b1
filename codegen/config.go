package codegen

import (
	"fmt"

	"github.com/teranos/jsongen/internal/casing"
)

// Config carries the language-agnostic generation options. Backend
// specific options travel in LanguageOpts and are decoded eagerly by
// the selected generator before any code is emitted, so a typo in an
// option key fails the whole generation instead of being ignored.
type Config struct {
	// RootName names the top-level schema. Empty means "Root".
	RootName string

	// PackageName sets the Go package clause or the Python module
	// header. Empty means the backend default.
	PackageName string

	// AddComments controls whether attention notes from analysis are
	// emitted as comments alongside the generated declarations.
	AddComments bool

	// StructCase and FieldCase pick the identifier casing for type
	// and field names. Empty means the backend default.
	StructCase string
	FieldCase  string

	// LanguageOpts holds backend-declared options, for example
	// "style" for Python or "int_type" for Go.
	LanguageOpts map[string]any
}

// DefaultConfig returns the options used when the caller specifies
// nothing.
func DefaultConfig() *Config {
	return &Config{
		RootName:    "Root",
		AddComments: true,
	}
}

// Validate checks the language-agnostic options. LanguageOpts are
// validated separately by each backend's option decoder.
func (c *Config) Validate() error {
	if c.StructCase != "" && !casing.Valid(c.StructCase) {
		return badOptionValue("struct_case", c.StructCase, casing.Styles()...)
	}
	if c.FieldCase != "" && !casing.Valid(c.FieldCase) {
		return badOptionValue("field_case", c.FieldCase, casing.Styles()...)
	}
	return nil
}

// Option returns the raw LanguageOpts value for key.
func (c *Config) Option(key string) (any, bool) {
	if c.LanguageOpts == nil {
		return nil, false
	}
	v, ok := c.LanguageOpts[key]
	return v, ok
}

// SetOption stores a backend option, allocating the map on first use.
func (c *Config) SetOption(key string, value any) {
	if c.LanguageOpts == nil {
		c.LanguageOpts = make(map[string]any)
	}
	c.LanguageOpts[key] = value
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{root=%s, package=%s, struct_case=%s, field_case=%s, opts=%d}",
		c.RootName, c.PackageName, c.StructCase, c.FieldCase, len(c.LanguageOpts))
}
