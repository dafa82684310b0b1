package schema

import (
	"fmt"
	"strings"

	"github.com/teranos/jsongen/analyzer"
	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/internal/casing"
)

// DefaultRootName names the root schema when the caller provides none.
const DefaultRootName = "Root"

// Build converts an analyzer tree into a deduplicated schema set.
// Nested object schemas derive their names from the path to them
// (RootProfile, RootUsersItem); collisions between distinct structures
// get a numeric suffix.
func Build(root *analyzer.Node, rootName string) (*Set, error) {
	if root == nil {
		return nil, errors.AssertionFailedf("nil analysis")
	}
	if rootName == "" {
		rootName = DefaultRootName
	}

	b := &builder{
		byStructure: make(map[string]string),
		used:        make(map[string]bool),
		index:       make(map[string]*Schema),
	}

	var name string
	if root.SoleType() == analyzer.TypeObject {
		name = b.buildObject(root, casing.ToPascal(rootName))
	} else {
		name = b.buildSyntheticRoot(root, casing.ToPascal(rootName))
	}

	set := &Set{
		Root:    name,
		Schemas: b.schemas,
		index:   b.index,
	}
	return set, nil
}

type builder struct {
	schemas     []*Schema
	index       map[string]*Schema
	byStructure map[string]string
	used        map[string]bool
}

// buildObject converts one object node, returning the name of the
// schema that represents it. Structurally identical objects reuse the
// first schema built for that shape.
func (b *builder) buildObject(node *analyzer.Node, wantName string) string {
	fields := make([]Field, 0, len(node.Order))
	for _, key := range node.Order {
		fields = append(fields, b.buildField(wantName, key, node.Children[key]))
	}

	key := structureKey(fields)
	if existing, ok := b.byStructure[key]; ok {
		return existing
	}

	name := b.uniqueName(wantName)
	sch := &Schema{Name: name, Fields: fields}
	sch.Description = b.schemaAttention(sch)

	b.schemas = append(b.schemas, sch)
	b.index[name] = sch
	b.byStructure[key] = name
	return name
}

// buildSyntheticRoot wraps a non-object root in a schema with a single
// "value" field carrying the root's type.
func (b *builder) buildSyntheticRoot(node *analyzer.Node, wantName string) string {
	f := b.buildField(wantName, "value", node)
	fields := []Field{f}

	name := b.uniqueName(wantName)
	sch := &Schema{Name: name, Fields: fields}
	sch.Description = b.schemaAttention(sch)

	b.schemas = append(b.schemas, sch)
	b.index[name] = sch
	return name
}

// buildField converts one child node into a field, recursing into
// nested objects and array element objects first so their schemas are
// registered before the field references them.
func (b *builder) buildField(parentName, key string, node *analyzer.Node) Field {
	f := Field{
		Name:     key,
		Optional: node.Optional,
	}

	switch {
	case node.Conflicted():
		f.Type = FieldConflict
		f.ConflictTypes = conflictTypes(node)
	case len(node.Types) == 0:
		f.Type = FieldUnknown
	case node.SoleType() == analyzer.TypeObject:
		f.Type = FieldObject
		f.Ref = b.buildObject(node, parentName+casing.ToPascal(key))
	case node.SoleType() == analyzer.TypeArray:
		f.Type = FieldArray
		b.resolveElement(&f, parentName, key, node)
	default:
		f.Type = mapValueType(node.SoleType())
	}

	f.Description = b.fieldAttention(&f)
	return f
}

// resolveElement fills the element classification of an array field
// from the node's element summary.
func (b *builder) resolveElement(f *Field, parentName, key string, node *analyzer.Node) {
	ct := node.ChildType
	switch {
	case strings.Contains(ct, "mixed"):
		f.ElementType = FieldConflict
	case ct == "" || ct == "unknown":
		f.ElementType = FieldUnknown
	case ct == "object":
		f.ElementType = FieldObject
		f.ElementRef = b.buildObject(node.Child, parentName+casing.ToPascal(key)+"Item")
	case ct == "array":
		f.ElementType = FieldArray
	default:
		f.ElementType = mapValueTypeName(ct)
	}
}

// uniqueName reserves a schema name, suffixing a counter when distinct
// structures want the same derived name.
func (b *builder) uniqueName(want string) string {
	if want == "" {
		want = DefaultRootName
	}
	if !b.used[want] {
		b.used[want] = true
		return want
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", want, i)
		if !b.used[candidate] {
			b.used[candidate] = true
			return candidate
		}
	}
}

func conflictTypes(node *analyzer.Node) []FieldType {
	types := make([]FieldType, 0, len(node.Types))
	for _, name := range node.TypeNames() {
		types = append(types, mapValueTypeName(name))
	}
	return types
}

func mapValueType(t analyzer.ValueType) FieldType {
	switch t {
	case analyzer.TypeString:
		return FieldString
	case analyzer.TypeInteger:
		return FieldInteger
	case analyzer.TypeFloat:
		return FieldFloat
	case analyzer.TypeBool:
		return FieldBoolean
	case analyzer.TypeTimestamp:
		return FieldTimestamp
	case analyzer.TypeObject:
		return FieldObject
	case analyzer.TypeArray:
		return FieldArray
	}
	return FieldUnknown
}

func mapValueTypeName(name string) FieldType {
	switch name {
	case "string":
		return FieldString
	case "integer":
		return FieldInteger
	case "float":
		return FieldFloat
	case "bool":
		return FieldBoolean
	case "timestamp":
		return FieldTimestamp
	case "object":
		return FieldObject
	case "array":
		return FieldArray
	}
	return FieldUnknown
}
