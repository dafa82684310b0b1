package schema

import (
	"fmt"
	"strings"
)

// Attention descriptions flag the places where inference had to guess
// or where the structure deserves a human look. They surface as code
// comments and in the analyze report.

const (
	complexArrayFieldCount  = 5  // array element schemas above this are "complex"
	complexNestedFieldCount = 3  // optional nested objects above this are "complex"
	manyIssuesCount         = 3  // conflicts/unknowns at or above this get a schema note
	largeSchemaFieldCount   = 15 // field count at or above this is a "large structure"
	deepNestingDepth        = 3  // schema depth at or above this is "deeply nested"
)

// fieldAttention builds the attention description for a field, or ""
// for fields with nothing noteworthy.
func (b *builder) fieldAttention(f *Field) string {
	switch f.Type {
	case FieldConflict:
		if len(f.ConflictTypes) > 0 {
			return "⚠️ Mixed types: " + strings.Join(f.ConflictTypeNames(), ", ")
		}
		return "⚠️ Mixed types detected"
	case FieldUnknown:
		return "❓ Type unknown"
	case FieldArray:
		switch {
		case f.ElementType == FieldConflict:
			return "📋 Array with mixed types"
		case f.ElementType == FieldUnknown:
			return "📋 Array with unknown element type"
		case f.ElementRef != "" && b.isComplexArray(f):
			return "📋 Array of complex objects"
		}
	case FieldObject:
		if f.Optional && f.Ref != "" && b.isComplexNested(f) {
			return "🔗 Optional complex structure"
		}
	}
	return ""
}

// schemaAttention builds the attention description for a schema, or ""
// for unremarkable ones.
func (b *builder) schemaAttention(s *Schema) string {
	if len(s.Fields) == 0 {
		return "⚠️ No fields detected"
	}

	conflicts, unknowns := 0, 0
	for i := range s.Fields {
		switch s.Fields[i].Type {
		case FieldConflict:
			conflicts++
		case FieldUnknown:
			unknowns++
		}
	}

	switch {
	case conflicts >= manyIssuesCount:
		return fmt.Sprintf("⚠️ Multiple type conflicts (%d fields)", conflicts)
	case unknowns >= manyIssuesCount:
		return fmt.Sprintf("❓ Multiple unknown types (%d fields)", unknowns)
	case len(s.Fields) >= largeSchemaFieldCount:
		return fmt.Sprintf("📊 Large structure (%d fields)", len(s.Fields))
	case b.maxDepth(s) >= deepNestingDepth:
		return "🏗️ Deeply nested structure"
	case conflicts > 0 && unknowns > 0:
		return fmt.Sprintf("⚠️ Mixed issues: %d conflicts, %d unknowns", conflicts, unknowns)
	}
	return ""
}

func (b *builder) isComplexArray(f *Field) bool {
	elem, ok := b.index[f.ElementRef]
	return ok && len(elem.Fields) > complexArrayFieldCount
}

func (b *builder) isComplexNested(f *Field) bool {
	nested, ok := b.index[f.Ref]
	if !ok {
		return false
	}
	if len(nested.Fields) > complexNestedFieldCount {
		return true
	}
	// One more level of structure below the nested object counts as deep.
	for i := range nested.Fields {
		child := &nested.Fields[i]
		if child.Type == FieldObject && child.Ref != "" {
			return true
		}
		if child.Type == FieldArray && child.ElementRef != "" {
			return true
		}
	}
	return false
}

// maxDepth measures nesting depth from s through schema references.
func (b *builder) maxDepth(s *Schema) int {
	return schemaDepth(s, b.index, make(map[string]bool))
}

func schemaDepth(s *Schema, index map[string]*Schema, visiting map[string]bool) int {
	if visiting[s.Name] {
		return 1
	}
	visiting[s.Name] = true
	defer delete(visiting, s.Name)

	depth := 1
	for i := range s.Fields {
		f := &s.Fields[i]
		ref := ""
		switch {
		case f.Type == FieldObject && f.Ref != "":
			ref = f.Ref
		case f.Type == FieldArray && f.ElementRef != "":
			ref = f.ElementRef
		}
		if ref == "" {
			continue
		}
		if nested, ok := index[ref]; ok {
			if d := 1 + schemaDepth(nested, index, visiting); d > depth {
				depth = d
			}
		}
	}
	return depth
}

// Summary aggregates attention-worthy findings across a schema set.
type Summary struct {
	Conflicts     int `json:"conflicts"`
	Unknowns      int `json:"unknowns"`
	EmptySchemas  int `json:"empty_schemas"`
	ComplexArrays int `json:"complex_arrays"`
	MaxDepth      int `json:"max_depth"`
	TotalFields   int `json:"total_fields"`
}

// AttentionSummary walks every schema in the set and counts the issues
// the analyze report surfaces.
func (s *Set) AttentionSummary() Summary {
	sum := Summary{MaxDepth: 1}

	for _, sch := range s.Schemas {
		if len(sch.Fields) == 0 {
			sum.EmptySchemas++
		}
		sum.TotalFields += len(sch.Fields)
		for i := range sch.Fields {
			f := &sch.Fields[i]
			switch f.Type {
			case FieldConflict:
				sum.Conflicts++
			case FieldUnknown:
				sum.Unknowns++
			case FieldArray:
				if f.ElementRef != "" {
					if elem, ok := s.index[f.ElementRef]; ok && len(elem.Fields) > complexArrayFieldCount {
						sum.ComplexArrays++
					}
				}
			}
		}
	}

	if root := s.RootSchema(); root != nil {
		sum.MaxDepth = schemaDepth(root, s.index, make(map[string]bool))
	}
	return sum
}
