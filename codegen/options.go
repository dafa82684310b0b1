package codegen

import (
	"sort"
	"strconv"
)

// OptionDecoder reads typed values out of a Config's LanguageOpts map
// and remembers which keys it consumed. Finish rejects anything left
// over, which is what turns a misspelled option into a ConfigError
// instead of silence.
type OptionDecoder struct {
	opts map[string]any
	seen map[string]bool
}

// NewOptionDecoder wraps cfg's LanguageOpts for decoding. A nil config
// or nil map decodes as all-defaults.
func NewOptionDecoder(cfg *Config) *OptionDecoder {
	d := &OptionDecoder{seen: make(map[string]bool)}
	if cfg != nil {
		d.opts = cfg.LanguageOpts
	}
	return d
}

// Bool consumes key as a boolean. String values are accepted so
// options can arrive from command-line key=value pairs.
func (d *OptionDecoder) Bool(key string, def bool) (bool, error) {
	raw, ok := d.take(key)
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return def, wrongOptionType(key, raw, "bool")
		}
		return parsed, nil
	}
	return def, wrongOptionType(key, raw, "bool")
}

// String consumes key as a string value.
func (d *OptionDecoder) String(key, def string) (string, error) {
	raw, ok := d.take(key)
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return def, wrongOptionType(key, raw, "string")
	}
	return s, nil
}

// Enum consumes key as a string restricted to the allowed set.
func (d *OptionDecoder) Enum(key, def string, allowed ...string) (string, error) {
	s, err := d.String(key, def)
	if err != nil {
		return def, err
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return def, badOptionValue(key, s, allowed...)
}

// Finish fails on the first unconsumed key, in sorted order so the
// error is deterministic.
func (d *OptionDecoder) Finish() error {
	var unknown []string
	for key := range d.opts {
		if !d.seen[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return unknownOption(unknown[0])
}

func (d *OptionDecoder) take(key string) (any, bool) {
	d.seen[key] = true
	if d.opts == nil {
		return nil, false
	}
	v, ok := d.opts[key]
	return v, ok
}
