// Package schema turns an analyzer tree into a flat, named set of
// schemas ready for code generation. Structurally identical objects
// collapse into one schema; fields keep their first-seen order and
// carry attention descriptions for anything a reader should double
// check.
package schema

import (
	"sort"
	"strings"
)

// FieldType is the language-neutral classification of a field.
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldString
	FieldInteger
	FieldFloat
	FieldBoolean
	FieldTimestamp
	FieldObject
	FieldArray
	FieldConflict
)

var fieldTypeNames = map[FieldType]string{
	FieldUnknown:   "unknown",
	FieldString:    "string",
	FieldInteger:   "integer",
	FieldFloat:     "float",
	FieldBoolean:   "boolean",
	FieldTimestamp: "timestamp",
	FieldObject:    "object",
	FieldArray:     "array",
	FieldConflict:  "conflict",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Field is one named member of a schema.
type Field struct {
	// Name is the raw JSON key. Generators sanitize and re-case it per
	// language and keep the raw form for tags and aliases.
	Name     string
	Type     FieldType
	Optional bool

	// Description carries the attention annotation, when any.
	Description string

	// Ref names the referenced schema for object fields.
	Ref string

	// ElementType classifies array elements; ElementRef names the
	// element schema when elements are objects.
	ElementType FieldType
	ElementRef  string

	// ConflictTypes lists the colliding classifications for conflict
	// fields, sorted by name.
	ConflictTypes []FieldType
}

// ConflictTypeNames returns the colliding type names in sorted order.
func (f *Field) ConflictTypeNames() []string {
	names := make([]string, 0, len(f.ConflictTypes))
	for _, t := range f.ConflictTypes {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Describe renders the field's classification for text reports, e.g.
// "array of string" or "conflict (integer, string)". Optional fields
// get an ", optional" suffix.
func (f *Field) Describe() string {
	var desc string
	switch f.Type {
	case FieldObject:
		desc = f.Ref
	case FieldArray:
		if f.ElementRef != "" {
			desc = "array of " + f.ElementRef
		} else {
			desc = "array of " + f.ElementType.String()
		}
	case FieldConflict:
		desc = "conflict (" + strings.Join(f.ConflictTypeNames(), ", ") + ")"
	default:
		desc = f.Type.String()
	}
	if f.Optional {
		desc += ", optional"
	}
	return desc
}

// Schema is a named object structure.
type Schema struct {
	Name        string
	Description string
	Fields      []Field
}

// Field returns the field with the given raw name, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Set is the complete, deduplicated schema graph for one analysis.
// Schemas are in dependency order: every referenced schema precedes its
// referrer, and the root schema comes last.
type Set struct {
	Root    string
	Schemas []*Schema

	index map[string]*Schema
}

// Lookup resolves a schema by name.
func (s *Set) Lookup(name string) (*Schema, bool) {
	sch, ok := s.index[name]
	return sch, ok
}

// RootSchema returns the root schema.
func (s *Set) RootSchema() *Schema {
	sch := s.index[s.Root]
	return sch
}

// Len returns the number of schemas in the set.
func (s *Set) Len() int {
	return len(s.Schemas)
}

// Names returns all schema names in dependency order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Schemas))
	for _, sch := range s.Schemas {
		names = append(names, sch.Name)
	}
	return names
}

// structureKey canonicalizes a field list for structural deduplication.
// Field order does not contribute to identity, so objects whose keys
// arrived in different orders still collapse.
func structureKey(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		var b strings.Builder
		b.WriteString(f.Name)
		b.WriteByte('|')
		b.WriteString(f.Type.String())
		if f.Optional {
			b.WriteString("|opt")
		}
		if f.Ref != "" {
			b.WriteString("|ref=")
			b.WriteString(f.Ref)
		}
		if f.Type == FieldArray {
			b.WriteString("|elem=")
			b.WriteString(f.ElementType.String())
			if f.ElementRef != "" {
				b.WriteString("|eref=")
				b.WriteString(f.ElementRef)
			}
		}
		if len(f.ConflictTypes) > 0 {
			b.WriteString("|conflict=")
			b.WriteString(strings.Join(f.ConflictTypeNames(), ","))
		}
		parts = append(parts, b.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}
