// Package python renders schema sets as Python classes in one of
// three styles: dataclasses, pydantic models or TypedDicts. The
// styles register as separate languages sharing one emitter, so
// "python-pydantic" is the same generator as "python" with a
// different default style.
//
// Output targets Python 3.11: PEP 604 unions for optional fields,
// NotRequired markers for TypedDicts and slotted dataclasses.
package python

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/internal/casing"
	"github.com/teranos/jsongen/schema"
)

const header = "# Code generated by jsongen. DO NOT EDIT."

// Generator implements codegen.Generator for Python.
type Generator struct {
	name  string
	style string
}

// New creates a Python generator defaulting to the given style.
func New(style string) *Generator {
	name := "python"
	if style != StyleDataclass {
		name = "python-" + style
	}
	return &Generator{name: name, style: style}
}

func init() {
	codegen.MustRegister(New(StyleDataclass), "py")
	codegen.MustRegister(New(StylePydantic), "pydantic")
	codegen.MustRegister(New(StyleTypedDict), "typeddict")
}

// Language returns the registered variant name, "python" for the
// dataclass default and "python-<style>" for the others.
func (g *Generator) Language() string {
	return g.name
}

// FileExtension returns "py".
func (g *Generator) FileExtension() string {
	return "py"
}

// Generate renders every schema in the set as one Python source file.
func (g *Generator) Generate(set *schema.Set, cfg *codegen.Config) *codegen.Result {
	if cfg == nil {
		cfg = codegen.DefaultConfig()
	}
	opts, err := decodeOptions(cfg, g.style)
	if err != nil {
		return codegen.Failed(g.name, err)
	}

	e := &emitter{
		set:         set,
		opts:        opts,
		structCase:  valueOr(cfg.StructCase, casing.Pascal),
		fieldCase:   valueOr(cfg.FieldCase, casing.Snake),
		addComments: cfg.AddComments,
		imports:     make(map[string]bool),
	}
	code := e.emit()
	if opts.Style == StyleTypedDict {
		e.warnings.Addf("TypedDict classes are type hints only - no runtime validation")
	}
	return &codegen.Result{
		Success:  true,
		Code:     code,
		Language: g.name,
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
	structCase  string
	fieldCase   string
	addComments bool

	names    map[string]string // schema name → Python class name
	warnings codegen.Warnings
	imports  map[string]bool

	usedField      bool
	usedConfigDict bool
}

func (e *emitter) emit() string {
	// Class names first: field annotations reference them, and a
	// non-pascal class case can introduce collisions the schema names
	// did not have.
	e.names = make(map[string]string, e.set.Len())
	classNames := newSanitizer()
	for _, s := range e.set.Schemas {
		id, changed := classNames.ident(s.Name, e.structCase)
		e.names[s.Name] = id
		if changed {
			e.warnings.Addf("class %s renamed to %s to avoid Python naming conflicts", s.Name, id)
		}
	}

	switch e.opts.Style {
	case StyleDataclass:
		e.imports["from dataclasses import dataclass"] = true
	case StyleTypedDict:
		e.imports["from typing import TypedDict"] = true
	}

	decls := make([]string, 0, e.set.Len())
	for _, s := range e.set.Schemas {
		decls = append(decls, e.classDecl(s))
	}

	// The pydantic import line is assembled last: Field and ConfigDict
	// only appear when a class used them.
	if e.opts.Style == StylePydantic {
		parts := []string{"BaseModel"}
		if e.usedField {
			parts = append(parts, "Field")
		}
		if e.usedConfigDict {
			parts = append(parts, "ConfigDict")
		}
		e.imports["from pydantic import "+strings.Join(parts, ", ")] = true
	}

	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	sb.WriteString(strings.Join(e.sortedImports(), "\n"))
	sb.WriteString("\n\n\n")
	sb.WriteString(strings.Join(decls, "\n\n\n"))
	sb.WriteString("\n")
	return sb.String()
}

// sortedImports orders the import block the way the generated file
// reads best: typing and datetime lines first, then third party,
// alphabetical within each group.
func (e *emitter) sortedImports() []string {
	lines := make([]string, 0, len(e.imports))
	for line := range e.imports {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		gi, gj := importGroup(lines[i]), importGroup(lines[j])
		if gi != gj {
			return gi < gj
		}
		return lines[i] < lines[j]
	})
	return lines
}

func importGroup(line string) int {
	if strings.HasPrefix(line, "from typing") || strings.HasPrefix(line, "from datetime") {
		return 0
	}
	return 1
}

func (e *emitter) classDecl(s *schema.Schema) string {
	if len(s.Fields) == 0 {
		e.warnings.Addf("schema %s has no fields, generating an empty class", s.Name)
	}

	name := e.names[s.Name]
	var head string
	switch e.opts.Style {
	case StylePydantic:
		head = "class " + name + "(BaseModel):"
	case StyleTypedDict:
		base := "TypedDict"
		if !e.opts.Total {
			base += ", total=False"
		}
		head = "class " + name + "(" + base + "):"
	default:
		head = e.dataclassDecorator() + "\nclass " + name + ":"
	}

	var body []string
	if e.addComments && s.Description != "" {
		body = append(body, `    """`+s.Description+`"""`)
	}
	if e.opts.Style == StylePydantic && e.opts.ConfigDict {
		if cfg := e.modelConfig(); cfg != "" {
			body = append(body, "    "+cfg)
		}
	}
	if fields := e.fieldLines(s); len(fields) > 0 {
		body = append(body, strings.Join(fields, "\n"))
	}
	if len(body) == 0 {
		body = append(body, "    pass")
	}
	return head + "\n" + strings.Join(body, "\n\n")
}

func (e *emitter) dataclassDecorator() string {
	var params []string
	if e.opts.Frozen {
		params = append(params, "frozen=True")
	}
	if e.opts.KwOnly {
		params = append(params, "kw_only=True")
	}
	if e.opts.Slots {
		params = append(params, "slots=True")
	}
	if len(params) == 0 {
		return "@dataclass"
	}
	return "@dataclass(" + strings.Join(params, ", ") + ")"
}

func (e *emitter) modelConfig() string {
	var params []string
	if e.opts.UseField && e.opts.UseAlias {
		params = append(params, "populate_by_name=True")
	}
	if e.opts.ExtraForbid {
		params = append(params, `extra="forbid"`)
	}
	if len(params) == 0 {
		return ""
	}
	e.usedConfigDict = true
	return "model_config = ConfigDict(" + strings.Join(params, ", ") + ")"
}

// fieldLines renders the field declarations of one class. Dataclass
// and pydantic styles sort required fields first; a dataclass field
// without a default cannot follow one with a default.
func (e *emitter) fieldLines(s *schema.Schema) []string {
	type fieldDecl struct {
		lines    []string
		optional bool
	}

	fieldNames := newSanitizer()
	decls := make([]fieldDecl, 0, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		name, changed := fieldNames.ident(f.Name, e.fieldCase)
		if changed {
			e.warnings.Addf("field %s.%s renamed to %s to avoid Python naming conflicts", s.Name, f.Name, name)
		}

		var lines []string
		if e.commentLine(f) {
			lines = append(lines, "    # "+f.Description)
		}
		lines = append(lines, "    "+name+": "+e.declType(s, f)+e.defaultSuffix(f, name))
		decls = append(decls, fieldDecl{lines: lines, optional: f.Optional})
	}

	if e.opts.Style != StyleTypedDict {
		sort.SliceStable(decls, func(i, j int) bool {
			return !decls[i].optional && decls[j].optional
		})
	}

	var out []string
	for _, d := range decls {
		out = append(out, d.lines...)
	}
	return out
}

// commentLine reports whether the field description renders as a
// comment. Pydantic carries it in Field(description=...) instead.
func (e *emitter) commentLine(f *schema.Field) bool {
	if !e.addComments || f.Description == "" {
		return false
	}
	return e.opts.Style != StylePydantic || !e.opts.UseField
}

// declType maps a field to its annotated Python type. Conflict and
// unknown fields already admit None through Any and are never union
// wrapped; TypedDicts mark requiredness instead of wrapping.
func (e *emitter) declType(s *schema.Schema, f *schema.Field) string {
	base := e.fieldType(s, f)
	if e.opts.Style == StyleTypedDict {
		switch {
		case e.opts.Total && f.Optional:
			e.imports["from typing import NotRequired"] = true
			return "NotRequired[" + base + "]"
		case !e.opts.Total && !f.Optional:
			e.imports["from typing import Required"] = true
			return "Required[" + base + "]"
		}
		return base
	}
	if f.Optional && base != "Any" {
		return base + " | None"
	}
	return base
}

func (e *emitter) defaultSuffix(f *schema.Field, sanitized string) string {
	switch e.opts.Style {
	case StyleDataclass:
		if f.Optional {
			return " = None"
		}
	case StylePydantic:
		return e.pydanticField(f, sanitized)
	}
	return ""
}

// pydanticField assembles a Field() call when it carries content: an
// alias back to the JSON key, a description, a None default.
func (e *emitter) pydanticField(f *schema.Field, sanitized string) string {
	if !e.opts.UseField {
		if f.Optional {
			return " = None"
		}
		return ""
	}
	var parts []string
	if e.opts.UseAlias && f.Name != sanitized {
		parts = append(parts, fmt.Sprintf("alias=%q", f.Name))
	}
	if e.addComments && f.Description != "" {
		parts = append(parts, fmt.Sprintf("description=%q", f.Description))
	}
	if f.Optional {
		parts = append(parts, "default=None")
	}
	if len(parts) == 0 {
		return ""
	}
	e.usedField = true
	return " = Field(" + strings.Join(parts, ", ") + ")"
}

func (e *emitter) fieldType(s *schema.Schema, f *schema.Field) string {
	path := s.Name + "." + f.Name

	switch f.Type {
	case schema.FieldString:
		return "str"
	case schema.FieldInteger:
		return "int"
	case schema.FieldFloat:
		return "float"
	case schema.FieldBoolean:
		return "bool"
	case schema.FieldTimestamp:
		return e.timestampType(path)
	case schema.FieldObject:
		return e.refType(f.Ref, path)
	case schema.FieldArray:
		return "list[" + e.elementType(f, path) + "]"
	case schema.FieldConflict:
		e.warnings.Addf("field %s has mixed types (%s), using Any",
			path, strings.Join(f.ConflictTypeNames(), ", "))
		return e.anyType()
	default:
		e.warnings.Addf("field %s has unknown type, using Any", path)
		return e.anyType()
	}
}

func (e *emitter) elementType(f *schema.Field, path string) string {
	switch f.ElementType {
	case schema.FieldString:
		return "str"
	case schema.FieldInteger:
		return "int"
	case schema.FieldFloat:
		return "float"
	case schema.FieldBoolean:
		return "bool"
	case schema.FieldTimestamp:
		return e.timestampType(path)
	case schema.FieldObject:
		return e.refType(f.ElementRef, path)
	case schema.FieldArray:
		e.warnings.Addf("field %s nests arrays, using list[Any] elements", path)
		return "list[" + e.anyType() + "]"
	case schema.FieldConflict:
		e.warnings.Addf("field %s is an array with mixed element types, using list[Any]", path)
		return e.anyType()
	default:
		e.warnings.Addf("field %s is an array with unknown element type, using list[Any]", path)
		return e.anyType()
	}
}

func (e *emitter) timestampType(path string) string {
	if e.opts.TimeType == timeAsDatetime {
		e.imports["from datetime import datetime"] = true
		e.warnings.Addf("field %s holds timestamps, rendered as datetime", path)
		return "datetime"
	}
	e.warnings.Addf("field %s holds timestamps, rendered as str", path)
	return "str"
}

func (e *emitter) refType(ref, path string) string {
	if name, ok := e.names[ref]; ok {
		return name
	}
	e.warnings.Addf("field %s references no known schema, using Any", path)
	return e.anyType()
}

func (e *emitter) anyType() string {
	e.imports["from typing import Any"] = true
	return "Any"
}
