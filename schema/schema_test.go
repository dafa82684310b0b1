package schema

import "testing"

func TestFieldDescribe(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"scalar", Field{Type: FieldInteger}, "integer"},
		{"optional scalar", Field{Type: FieldString, Optional: true}, "string, optional"},
		{"timestamp", Field{Type: FieldTimestamp}, "timestamp"},
		{"object", Field{Type: FieldObject, Ref: "RootMeta"}, "RootMeta"},
		{"array of scalars", Field{Type: FieldArray, ElementType: FieldFloat}, "array of float"},
		{"array of objects", Field{Type: FieldArray, ElementType: FieldObject, ElementRef: "RootItem"}, "array of RootItem"},
		{"optional array", Field{Type: FieldArray, ElementType: FieldString, Optional: true}, "array of string, optional"},
		{"conflict", Field{Type: FieldConflict, ConflictTypes: []FieldType{FieldString, FieldInteger}}, "conflict (integer, string)"},
		{"unknown", Field{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
