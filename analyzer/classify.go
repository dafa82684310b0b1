package analyzer

import (
	"encoding/json"
	"math"
	"time"
)

// ValueType is the classification of a single observed JSON value.
type ValueType int

const (
	TypeUnknown ValueType = iota
	TypeNull
	TypeBool
	TypeInteger
	TypeFloat
	TypeString
	TypeTimestamp
	TypeObject
	TypeArray
)

var valueTypeNames = map[ValueType]string{
	TypeUnknown:   "unknown",
	TypeNull:      "null",
	TypeBool:      "bool",
	TypeInteger:   "integer",
	TypeFloat:     "float",
	TypeString:    "string",
	TypeTimestamp: "timestamp",
	TypeObject:    "object",
	TypeArray:     "array",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsComposite reports whether the type is an object or array.
func (t ValueType) IsComposite() bool {
	return t == TypeObject || t == TypeArray
}

// maxExactInt is the largest float64 magnitude whose integer values are
// all exactly representable. Beyond it a whole-number float may be a
// rounded non-integer, so it classifies as float.
const maxExactInt = float64(1 << 53)

// minTimestampLen guards against short strings like "1" or "abc"
// accidentally matching a date layout.
const minTimestampLen = 4

// timestampLayouts are the formats a string must match to classify as a
// timestamp. Detection is deterministic: a fixed layout list, tried in
// order, rather than natural-language date parsing.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123,
	time.RFC822,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ClassifyScalar maps a decoded JSON value to its scalar classification.
// Objects and arrays classify as TypeObject/TypeArray; values of types
// that cannot come from a JSON decode classify as TypeUnknown.
func ClassifyScalar(v any) ValueType {
	switch val := v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case string:
		if IsTimestamp(val) {
			return TypeTimestamp
		}
		return TypeString
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return TypeInteger
		}
		return TypeFloat
	case float64:
		return classifyFloat(val)
	case float32:
		return classifyFloat(float64(val))
	case int:
		return TypeInteger
	case int32:
		return TypeInteger
	case int64:
		return TypeInteger
	case *Object:
		return TypeObject
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	}
	return TypeUnknown
}

// classifyFloat distinguishes whole-number floats (which decode from
// JSON integers when callers skip json.Number) from true fractions.
func classifyFloat(v float64) ValueType {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return TypeFloat
	}
	if v == math.Trunc(v) && math.Abs(v) <= maxExactInt {
		return TypeInteger
	}
	return TypeFloat
}

// IsTimestamp reports whether s parses under one of the supported
// timestamp layouts.
func IsTimestamp(s string) bool {
	if len(s) < minTimestampLen {
		return false
	}
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
