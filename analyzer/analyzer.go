// Package analyzer infers the merged structure of a set of JSON
// documents. Each document is one instance; instances are merged
// path-by-path into a Node tree recording observed types, optionality
// and array element shapes. The result feeds the schema builder.
package analyzer

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"github.com/teranos/jsongen/errors"
)

// ArraySampleLimit caps how many non-empty leading elements of each
// array instance are merged into the element summary. Large arrays
// rarely change shape after the first few elements, and the cap keeps
// analysis time proportional to structure rather than data volume.
const ArraySampleLimit = 20

// Object is a JSON object decoded with its key order preserved.
// encoding/json maps lose ordering, and first-seen field order must
// survive all the way into generated code.
type Object struct {
	Keys   []string
	Values map[string]any
}

// Analyze merges the given instances into a single Node tree.
// Instances should come from DecodeOrdered (or AnalyzeBytes) so that
// object key order is preserved; plain map[string]any instances fall
// back to sorted key order.
func Analyze(instances []any) (*Node, error) {
	if len(instances) == 0 {
		return nil, errors.ErrEmptyInput
	}

	root := newNode()
	for _, inst := range instances {
		root.observe(inst)
	}
	root.Optional = root.Nulls > 0
	root.finalize()
	return root, nil
}

// AnalyzeBytes decodes each blob and merges every decoded document into
// one analysis. A blob may hold a single document or a stream of
// concatenated documents (NDJSON).
func AnalyzeBytes(blobs [][]byte) (*Node, error) {
	var instances []any
	for i, blob := range blobs {
		dec := json.NewDecoder(bytes.NewReader(blob))
		dec.UseNumber()
		for {
			v, err := DecodeOrdered(dec)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, errors.WrapInvalidJSON(err, describeDecodeError(err, i))
			}
			instances = append(instances, v)
		}
	}
	return Analyze(instances)
}

func describeDecodeError(err error, blobIndex int) string {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return errors.Newf("input %d at offset %d", blobIndex+1, syn.Offset).Error()
	}
	return errors.Newf("input %d", blobIndex+1).Error()
}

// DecodeOrdered decodes the next JSON value from dec, preserving object
// key order via *Object. Numbers should be decoded as json.Number
// (dec.UseNumber) so integers and floats stay distinct.
func DecodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &Object{Values: make(map[string]any)}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, errors.AssertionFailedf("object key token %T is not a string", keyTok)
			}
			val, err := DecodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			if _, exists := obj.Values[key]; !exists {
				obj.Keys = append(obj.Keys, key)
			}
			obj.Values[key] = val
		}
		// consume closing brace
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := DecodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		// consume closing bracket
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, errors.AssertionFailedf("unexpected delimiter %q", delim.String())
}

// observe merges one value into the node's summary.
func (n *Node) observe(v any) {
	n.Seen++

	switch val := v.(type) {
	case nil:
		n.Nulls++
	case *Object:
		if val == nil {
			n.Nulls++
			return
		}
		n.observeObject(val.Keys, val.Values)
	case map[string]any:
		// Unordered input: sorted keys keep the analysis deterministic.
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		n.observeObject(keys, val)
	case []any:
		n.registerType(TypeArray)
		n.ArrayCount++
		if len(val) == 0 {
			n.Empties++
			return
		}
		sampled := 0
		for _, elem := range val {
			if sampled == ArraySampleLimit {
				break
			}
			if isEmptyValue(elem) {
				continue
			}
			if n.Child == nil {
				n.Child = newNode()
			}
			n.Child.observe(elem)
			sampled++
		}
	case string:
		if val == "" {
			n.Empties++
		}
		n.registerType(ClassifyScalar(val))
	default:
		t := ClassifyScalar(v)
		if t == TypeUnknown || t == TypeNull {
			// Values no JSON decode produces contribute no type.
			return
		}
		n.registerType(t)
	}
}

// observeObject merges one object instance. Empty objects still carry
// the object type; their ObjectCount contribution makes every key known
// from other instances optional.
func (n *Node) observeObject(keys []string, values map[string]any) {
	n.registerType(TypeObject)
	n.ObjectCount++
	if len(keys) == 0 {
		n.Empties++
		return
	}
	for _, key := range keys {
		n.child(key).observe(values[key])
	}
}

// isEmptyValue reports whether an array element is skipped during
// sampling: null, "", {} and []. Skipped elements do not consume the
// sample cap.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case *Object:
		return val == nil || len(val.Keys) == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}
