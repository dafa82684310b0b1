// Package golang renders schema sets as Go struct declarations with
// JSON tags. Output is passed through go/format, so a rendering bug
// that produces invalid Go fails the generation instead of emitting a
// file that will not compile.
package golang

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/internal/casing"
	"github.com/teranos/jsongen/schema"
)

const header = "// Code generated by jsongen. DO NOT EDIT."

// Generator implements codegen.Generator for Go.
type Generator struct{}

// New creates a Go generator.
func New() *Generator {
	return &Generator{}
}

func init() {
	codegen.MustRegister(New(), "golang")
}

// Language returns "go".
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns "go".
func (g *Generator) FileExtension() string {
	return "go"
}

// Generate renders every schema in the set as one Go source file.
func (g *Generator) Generate(set *schema.Set, cfg *codegen.Config) *codegen.Result {
	if cfg == nil {
		cfg = codegen.DefaultConfig()
	}
	opts, err := decodeOptions(cfg)
	if err != nil {
		return codegen.Failed(g.Language(), err)
	}

	pkg := cfg.PackageName
	if pkg == "" {
		pkg = "main"
	}
	if err := validatePackageName(pkg); err != nil {
		return codegen.Failed(g.Language(), err)
	}

	e := &emitter{
		set:         set,
		opts:        opts,
		pkg:         pkg,
		structCase:  valueOr(cfg.StructCase, casing.Pascal),
		fieldCase:   valueOr(cfg.FieldCase, casing.Pascal),
		addComments: cfg.AddComments,
	}

	code, err := e.emit()
	if err != nil {
		return codegen.Failed(g.Language(), &codegen.GeneratorError{Language: g.Language(), Cause: err})
	}
	return &codegen.Result{
		Success:  true,
		Code:     code,
		Language: g.Language(),
		Warnings: e.warnings,
	}
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

type emitter struct {
	set         *schema.Set
	opts        Options
	pkg         string
	structCase  string
	fieldCase   string
	addComments bool

	names     map[string]string // schema name → Go type name
	warnings  codegen.Warnings
	needsTime bool
}

func (e *emitter) emit() (string, error) {
	// Type names first: field types reference them, and a non-pascal
	// struct case can introduce collisions the schema names did not
	// have.
	e.names = make(map[string]string, e.set.Len())
	structNames := newSanitizer()
	for _, s := range e.set.Schemas {
		id, changed := structNames.ident(s.Name, e.structCase)
		e.names[s.Name] = id
		if changed {
			e.warnings.Addf("type %s renamed to %s to avoid Go naming conflicts", s.Name, id)
		}
	}

	decls := make([]string, 0, e.set.Len())
	for _, s := range e.set.Schemas {
		decls = append(decls, e.structDecl(s))
	}

	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	sb.WriteString("package " + e.pkg + "\n\n")
	if e.needsTime {
		sb.WriteString("import \"time\"\n\n")
	}
	sb.WriteString(strings.Join(decls, "\n\n"))
	sb.WriteString("\n")

	formatted, err := format.Source([]byte(sb.String()))
	if err != nil {
		return "", errors.Wrap(err, "formatting generated Go source")
	}
	return string(formatted), nil
}

func (e *emitter) structDecl(s *schema.Schema) string {
	if len(s.Fields) == 0 {
		e.warnings.Addf("schema %s has no fields, generating an empty struct", s.Name)
	}

	var sb strings.Builder
	if e.addComments && s.Description != "" {
		sb.WriteString("// " + s.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("type %s struct {\n", e.names[s.Name]))

	fieldNames := newSanitizer()
	for i := range s.Fields {
		f := &s.Fields[i]
		id, changed := fieldNames.ident(f.Name, e.fieldCase)
		if changed {
			e.warnings.Addf("field %s.%s renamed to %s to avoid Go naming conflicts", s.Name, f.Name, id)
		}
		if e.addComments && f.Description != "" {
			sb.WriteString("\t// " + f.Description + "\n")
		}
		sb.WriteString("\t" + id + " " + e.fieldType(s, f))
		if e.opts.JSONTags {
			sb.WriteString(" " + e.jsonTag(f))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// fieldType maps a field to its Go type, applying the pointer rule:
// only optional scalar and object fields are pointer-wrapped, never
// slices and never any, both of which already encode absence.
func (e *emitter) fieldType(s *schema.Schema, f *schema.Field) string {
	path := s.Name + "." + f.Name

	var goType string
	switch f.Type {
	case schema.FieldString:
		goType = "string"
	case schema.FieldInteger:
		goType = e.opts.IntType
	case schema.FieldFloat:
		goType = e.opts.FloatType
	case schema.FieldBoolean:
		goType = "bool"
	case schema.FieldTimestamp:
		goType = e.timestampType(path)
	case schema.FieldObject:
		goType = e.refType(f.Ref, path)
	case schema.FieldArray:
		return "[]" + e.elementType(f, path)
	case schema.FieldConflict:
		e.warnings.Addf("field %s has mixed types (%s), using any",
			path, strings.Join(f.ConflictTypeNames(), ", "))
		return "any"
	default:
		e.warnings.Addf("field %s has unknown type, using any", path)
		return "any"
	}

	if f.Optional && e.opts.Pointers && goType != "any" {
		return "*" + goType
	}
	return goType
}

func (e *emitter) elementType(f *schema.Field, path string) string {
	switch f.ElementType {
	case schema.FieldString:
		return "string"
	case schema.FieldInteger:
		return e.opts.IntType
	case schema.FieldFloat:
		return e.opts.FloatType
	case schema.FieldBoolean:
		return "bool"
	case schema.FieldTimestamp:
		return e.timestampType(path)
	case schema.FieldObject:
		return e.refType(f.ElementRef, path)
	case schema.FieldArray:
		e.warnings.Addf("field %s nests arrays, using []any elements", path)
		return "[]any"
	case schema.FieldConflict:
		e.warnings.Addf("field %s is an array with mixed element types, using []any", path)
		return "any"
	default:
		e.warnings.Addf("field %s is an array with unknown element type, using []any", path)
		return "any"
	}
}

func (e *emitter) timestampType(path string) string {
	if e.opts.TimeType == timeAsNative {
		e.needsTime = true
		e.warnings.Addf("field %s holds timestamps, rendered as time.Time", path)
		return "time.Time"
	}
	e.warnings.Addf("field %s holds timestamps, rendered as string", path)
	return "string"
}

func (e *emitter) refType(ref, path string) string {
	if name, ok := e.names[ref]; ok {
		return name
	}
	e.warnings.Addf("field %s references no known schema, using any", path)
	return "any"
}

func (e *emitter) jsonTag(f *schema.Field) string {
	tag := f.Name
	switch e.opts.TagCase {
	case casing.Snake:
		tag = casing.ToSnake(tag)
	case casing.Camel:
		tag = casing.ToCamel(tag)
	}
	if f.Optional && e.opts.Omitempty {
		tag += ",omitempty"
	}
	return "`json:\"" + tag + "\"`"
}
