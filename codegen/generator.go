// Package codegen turns analyzed schema sets into source text through
// pluggable per-language generators. Backends register themselves in
// the default registry from their init functions; callers resolve a
// language name (or alias) and run the generator through Generate,
// which guarantees a Result comes back even if a backend panics.
package codegen

import (
	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/schema"
)

// Generator renders a schema set into one target language.
type Generator interface {
	// Language is the canonical registry name, e.g. "go" or
	// "python-pydantic".
	Language() string

	// FileExtension is the output file suffix without the dot.
	FileExtension() string

	// Generate renders the whole set. Implementations validate their
	// LanguageOpts before emitting anything and return a failed
	// Result rather than partial code.
	Generate(set *schema.Set, cfg *Config) *Result
}

// Generate resolves language against the default registry and runs the
// matching generator under the panic guard.
func Generate(language string, set *schema.Set, cfg *Config) *Result {
	gen, err := Lookup(language)
	if err != nil {
		return Failed(language, err)
	}
	return Run(gen, set, cfg)
}

// Run executes gen with a recover guard so a backend bug surfaces as a
// failed Result instead of crashing the caller.
func Run(gen Generator, set *schema.Set, cfg *Config) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failed(gen.Language(), &GeneratorError{
				Language: gen.Language(),
				Cause:    errors.Newf("panic: %v", r),
			})
		}
	}()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return Failed(gen.Language(), err)
	}
	if set == nil {
		return Failed(gen.Language(), errors.New("no schema set to generate from"))
	}

	res = gen.Generate(set, cfg)
	if res == nil {
		res = Failed(gen.Language(), &GeneratorError{
			Language: gen.Language(),
			Cause:    errors.New("generator returned no result"),
		})
	}
	return res
}
