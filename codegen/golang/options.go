package golang

import (
	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/internal/casing"
)

// Option keys the Go backend declares in language_config.
const (
	optIntType   = "int_type"
	optFloatType = "float_type"
	optPointers  = "use_pointers_for_optional"
	optJSONTags  = "generate_json_tags"
	optOmitempty = "json_tag_omitempty"
	optTagCase   = "json_tag_case"
	optTimeType  = "time_type"
)

const (
	timeAsString = "string"
	timeAsNative = "time"
)

// Options are the Go-specific generation knobs.
type Options struct {
	IntType   string // int, int32 or int64
	FloatType string // float32 or float64
	Pointers  bool   // pointer-wrap optional scalar and object fields
	JSONTags  bool
	Omitempty bool
	TagCase   string // original, snake or camel applied to the JSON key
	TimeType  string // render timestamps as string or time.Time
}

// decodeOptions validates every language_config entry before any code
// is emitted, so a bad or misspelled option fails the generation
// outright.
func decodeOptions(cfg *codegen.Config) (Options, error) {
	d := codegen.NewOptionDecoder(cfg)
	var (
		opts Options
		err  error
	)
	if opts.IntType, err = d.Enum(optIntType, "int64", "int", "int32", "int64"); err != nil {
		return opts, err
	}
	if opts.FloatType, err = d.Enum(optFloatType, "float64", "float32", "float64"); err != nil {
		return opts, err
	}
	if opts.Pointers, err = d.Bool(optPointers, true); err != nil {
		return opts, err
	}
	if opts.JSONTags, err = d.Bool(optJSONTags, true); err != nil {
		return opts, err
	}
	if opts.Omitempty, err = d.Bool(optOmitempty, true); err != nil {
		return opts, err
	}
	if opts.TagCase, err = d.Enum(optTagCase, casing.Original, casing.Original, casing.Snake, casing.Camel); err != nil {
		return opts, err
	}
	if opts.TimeType, err = d.Enum(optTimeType, timeAsString, timeAsString, timeAsNative); err != nil {
		return opts, err
	}
	return opts, d.Finish()
}
