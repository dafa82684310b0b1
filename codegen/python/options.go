package python

import (
	"github.com/teranos/jsongen/codegen"
)

// Generation styles the Python backend can emit.
const (
	StyleDataclass = "dataclass"
	StylePydantic  = "pydantic"
	StyleTypedDict = "typeddict"
)

// Option keys the Python backend declares in language_config. Style
// scoped options are always accepted so a config can switch styles
// without re-validating; entries for an inactive style are ignored.
const (
	optStyle       = "style"
	optTimeType    = "time_type"
	optSlots       = "dataclass_slots"
	optFrozen      = "dataclass_frozen"
	optKwOnly      = "dataclass_kw_only"
	optUseField    = "pydantic_use_field"
	optUseAlias    = "pydantic_use_alias"
	optConfigDict  = "pydantic_config_dict"
	optExtraForbid = "pydantic_extra_forbid"
	optTotal       = "typeddict_total"
)

const (
	timeAsStr      = "str"
	timeAsDatetime = "datetime"
)

// Options are the Python-specific generation knobs.
type Options struct {
	Style    string // dataclass, pydantic or typeddict
	TimeType string // render timestamps as str or datetime

	Slots  bool // @dataclass(slots=True), Python 3.10+
	Frozen bool
	KwOnly bool

	UseField    bool // emit pydantic Field() when it carries content
	UseAlias    bool // alias renamed fields back to their JSON key
	ConfigDict  bool // emit model_config = ConfigDict(...)
	ExtraForbid bool

	Total bool // omit total=False and mark optionals NotRequired
}

// decodeOptions validates every language_config entry before any code
// is emitted, so a bad or misspelled option fails the generation
// outright. The style defaults to the registered variant's style and a
// config entry overrides it.
func decodeOptions(cfg *codegen.Config, defaultStyle string) (Options, error) {
	d := codegen.NewOptionDecoder(cfg)
	var (
		opts Options
		err  error
	)
	if opts.Style, err = d.Enum(optStyle, defaultStyle, StyleDataclass, StylePydantic, StyleTypedDict); err != nil {
		return opts, err
	}
	if opts.TimeType, err = d.Enum(optTimeType, timeAsStr, timeAsStr, timeAsDatetime); err != nil {
		return opts, err
	}
	if opts.Slots, err = d.Bool(optSlots, true); err != nil {
		return opts, err
	}
	if opts.Frozen, err = d.Bool(optFrozen, false); err != nil {
		return opts, err
	}
	if opts.KwOnly, err = d.Bool(optKwOnly, false); err != nil {
		return opts, err
	}
	if opts.UseField, err = d.Bool(optUseField, true); err != nil {
		return opts, err
	}
	if opts.UseAlias, err = d.Bool(optUseAlias, true); err != nil {
		return opts, err
	}
	if opts.ConfigDict, err = d.Bool(optConfigDict, true); err != nil {
		return opts, err
	}
	if opts.ExtraForbid, err = d.Bool(optExtraForbid, false); err != nil {
		return opts, err
	}
	if opts.Total, err = d.Bool(optTotal, true); err != nil {
		return opts, err
	}
	return opts, d.Finish()
}
