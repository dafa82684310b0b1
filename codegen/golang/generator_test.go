package golang

import (
	"strings"
	"testing"

	"github.com/teranos/jsongen/analyzer"
	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/schema"
)

func generate(t *testing.T, cfg *codegen.Config, docs ...string) *codegen.Result {
	t.Helper()
	blobs := make([][]byte, len(docs))
	for i, doc := range docs {
		blobs[i] = []byte(doc)
	}
	node, err := analyzer.AnalyzeBytes(blobs)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	set, err := schema.Build(node, "Root")
	if err != nil {
		t.Fatalf("schema build failed: %v", err)
	}
	return New().Generate(set, cfg)
}

func mustGenerate(t *testing.T, cfg *codegen.Config, docs ...string) *codegen.Result {
	t.Helper()
	res := generate(t, cfg, docs...)
	if !res.Success {
		t.Fatalf("generation failed: %v", res.Err)
	}
	return res
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestGenerateBasicStruct(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"id": 1, "name": "Alice", "score": 1.5, "active": true}`)

	code := res.Code
	if !strings.HasPrefix(code, "// Code generated by jsongen. DO NOT EDIT.") {
		t.Errorf("missing generated-code header:\n%s", code)
	}
	if !strings.Contains(code, "package main") {
		t.Errorf("expected default package main:\n%s", code)
	}
	if !strings.Contains(code, "type Root struct {") {
		t.Errorf("expected Root struct:\n%s", code)
	}
	for _, want := range []string{"Id", "int64", "Name", "string", "Score", "float64", "Active", "bool"} {
		if !strings.Contains(code, want) {
			t.Errorf("expected %q in output:\n%s", want, code)
		}
	}
	if !strings.Contains(code, "`json:\"id\"`") {
		t.Errorf("expected json tag for id:\n%s", code)
	}
}

func TestGenerateOptionalPointer(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"id": 1, "name": "Alice", "email": null}`,
		`{"id": 2, "name": "Bob", "email": "b@x.com"}`,
	)

	code := res.Code
	if !strings.Contains(code, "*string") {
		t.Errorf("optional email should be a string pointer:\n%s", code)
	}
	if !strings.Contains(code, "`json:\"email,omitempty\"`") {
		t.Errorf("optional field should carry omitempty:\n%s", code)
	}
	if strings.Contains(code, "*int64") {
		t.Errorf("required id must not be a pointer:\n%s", code)
	}
}

func TestGeneratePointersDisabled(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("use_pointers_for_optional", false)

	res := mustGenerate(t, cfg,
		`{"email": "a@x.com"}`,
		`{}`,
	)

	if strings.Contains(res.Code, "*string") {
		t.Errorf("pointers disabled, none expected:\n%s", res.Code)
	}
}

func TestGenerateConflictNeverPointer(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"v": 1}`,
		`{"v": "one"}`,
		`{}`,
	)

	code := res.Code
	if !strings.Contains(code, "V any") {
		t.Errorf("conflict field should render as any:\n%s", code)
	}
	if strings.Contains(code, "*any") {
		t.Errorf("any must never be pointer-wrapped:\n%s", code)
	}
	if !hasWarning(res.Warnings, "mixed types (integer, string)") {
		t.Errorf("conflict warning missing, got %v", res.Warnings)
	}
}

func TestGenerateEmptyStringConflict(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"v": ""}`,
		`{"v": 1}`,
	)

	if !strings.Contains(res.Code, "V any") {
		t.Errorf("empty string + integer must conflict to any:\n%s", res.Code)
	}
	if strings.Contains(res.Code, "V int64") {
		t.Errorf("conflicted field must not collapse to the integer type:\n%s", res.Code)
	}
	if !hasWarning(res.Warnings, "mixed types (integer, string)") {
		t.Errorf("conflict warning missing, got %v", res.Warnings)
	}
}

func TestGenerateArrayNeverPointer(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"tags": ["a", "b"]}`,
		`{}`,
	)

	code := res.Code
	if !strings.Contains(code, "[]string") {
		t.Errorf("expected string slice:\n%s", code)
	}
	if strings.Contains(code, "*[]") {
		t.Errorf("slices must never be pointer-wrapped:\n%s", code)
	}
	if !strings.Contains(code, "`json:\"tags,omitempty\"`") {
		t.Errorf("optional array still gets omitempty:\n%s", code)
	}
}

func TestGenerateTimestampDefaultString(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(), `{"created_at": "2024-07-15T10:30:00Z"}`)

	if !strings.Contains(res.Code, "CreatedAt string") {
		t.Errorf("timestamps default to string:\n%s", res.Code)
	}
	if strings.Contains(res.Code, "time.Time") {
		t.Errorf("time.Time must be opt-in:\n%s", res.Code)
	}
	if !hasWarning(res.Warnings, "rendered as string") {
		t.Errorf("timestamp warning missing, got %v", res.Warnings)
	}
}

func TestGenerateTimestampNative(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("time_type", "time")

	res := mustGenerate(t, cfg, `{"created_at": "2024-07-15T10:30:00Z"}`)

	code := res.Code
	if !strings.Contains(code, "CreatedAt time.Time") {
		t.Errorf("expected time.Time field:\n%s", code)
	}
	if !strings.Contains(code, "import \"time\"") {
		t.Errorf("expected time import:\n%s", code)
	}
	if !hasWarning(res.Warnings, "rendered as time.Time") {
		t.Errorf("timestamp warning missing, got %v", res.Warnings)
	}
}

func TestGenerateNestedDependencyOrder(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"profile": {"age": 30}, "users": [{"id": 1}]}`)

	code := res.Code
	profileAt := strings.Index(code, "type RootProfile struct")
	itemAt := strings.Index(code, "type RootUsersItem struct")
	rootAt := strings.Index(code, "type Root struct")
	if profileAt < 0 || itemAt < 0 || rootAt < 0 {
		t.Fatalf("missing struct declarations:\n%s", code)
	}
	if profileAt > rootAt || itemAt > rootAt {
		t.Errorf("referenced structs must precede the root:\n%s", code)
	}
	if !strings.Contains(code, "Profile RootProfile") {
		t.Errorf("object field should reference nested struct:\n%s", code)
	}
	if !strings.Contains(code, "[]RootUsersItem") {
		t.Errorf("array field should reference element struct:\n%s", code)
	}
}

func TestGenerateNumericTypeOptions(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("int_type", "int32")
	cfg.SetOption("float_type", "float32")

	res := mustGenerate(t, cfg, `{"count": 3, "ratio": 0.5}`)

	if !strings.Contains(res.Code, "Count int32") {
		t.Errorf("expected int32:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "Ratio float32") {
		t.Errorf("expected float32:\n%s", res.Code)
	}
}

func TestGenerateTagCase(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("json_tag_case", "snake")

	res := mustGenerate(t, cfg, `{"userName": "x"}`)

	if !strings.Contains(res.Code, "`json:\"user_name\"`") {
		t.Errorf("expected snake_case tag:\n%s", res.Code)
	}
}

func TestGenerateNoJSONTags(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("generate_json_tags", false)

	res := mustGenerate(t, cfg, `{"id": 1}`)

	if strings.Contains(res.Code, "`json:") {
		t.Errorf("tags disabled, none expected:\n%s", res.Code)
	}
}

func TestGenerateFieldNameCollision(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(), `{"user_name": 1, "userName": "x"}`)

	code := res.Code
	if !strings.Contains(code, "UserName") || !strings.Contains(code, "UserName2") {
		t.Errorf("colliding field names should be suffixed:\n%s", code)
	}
	if !hasWarning(res.Warnings, "renamed") {
		t.Errorf("rename warning missing, got %v", res.Warnings)
	}
}

func TestGenerateInvalidRunesCleaned(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(), `{"user name!": 1}`)

	if !strings.Contains(res.Code, "UserName") {
		t.Errorf("invalid runes should be cleaned:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "`json:\"user name!\"`") {
		t.Errorf("tag keeps the original key:\n%s", res.Code)
	}
}

func TestGenerateOriginalCaseKeepsValidIdentifiers(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.FieldCase = "original"

	res := mustGenerate(t, cfg, `{"user name": 1, "geo.lat": 2.5}`)

	if !strings.Contains(res.Code, "User_name") {
		t.Errorf("expected separators replaced in original case:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "Geo_lat") {
		t.Errorf("expected dot replaced in original case:\n%s", res.Code)
	}
	if !hasWarning(res.Warnings, "renamed") {
		t.Errorf("expected rename warning, got %v", res.Warnings)
	}
}

func TestGenerateUnknownOptionRejected(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("intt_type", "int32")

	res := generate(t, cfg, `{"id": 1}`)
	if res.Success {
		t.Fatal("unknown option should fail generation")
	}
	if res.Code != "" {
		t.Error("failed generation must not emit code")
	}
	var cfgErr *codegen.ConfigError
	if !errors.As(res.Err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", res.Err)
	}
	if cfgErr.Key != "intt_type" {
		t.Errorf("error should name the bad key, got %q", cfgErr.Key)
	}
}

func TestGenerateBadEnumValueRejected(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.SetOption("int_type", "int16")

	res := generate(t, cfg, `{"id": 1}`)
	if res.Success {
		t.Fatal("out-of-enum value should fail generation")
	}
	var cfgErr *codegen.ConfigError
	if !errors.As(res.Err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", res.Err)
	}
	if cfgErr.Key != "int_type" {
		t.Errorf("error should name the key, got %q", cfgErr.Key)
	}
}

func TestGenerateInvalidPackageName(t *testing.T) {
	cfg := codegen.DefaultConfig()
	cfg.PackageName = "my-models"

	res := generate(t, cfg, `{"id": 1}`)
	if res.Success {
		t.Fatal("invalid package name should fail generation")
	}
	var cfgErr *codegen.ConfigError
	if !errors.As(res.Err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", res.Err)
	}
}

func TestGenerateComments(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(),
		`{"v": 1}`,
		`{"v": "one"}`,
	)
	if !strings.Contains(res.Code, "// ⚠️ Mixed types: integer, string") {
		t.Errorf("attention note should appear as comment:\n%s", res.Code)
	}

	cfg := codegen.DefaultConfig()
	cfg.AddComments = false
	res = mustGenerate(t, cfg,
		`{"v": 1}`,
		`{"v": "one"}`,
	)
	if strings.Contains(res.Code, "⚠️") {
		t.Errorf("comments disabled, none expected:\n%s", res.Code)
	}
}

func TestGenerateScalarRoot(t *testing.T) {
	res := mustGenerate(t, codegen.DefaultConfig(), `42`)

	if !strings.Contains(res.Code, "Value int64 `json:\"value\"`") {
		t.Errorf("scalar root should become a value wrapper:\n%s", res.Code)
	}
}

func TestRegisteredInDefaultRegistry(t *testing.T) {
	for _, name := range []string{"go", "golang", "GO"} {
		gen, err := codegen.Lookup(name)
		if err != nil {
			t.Fatalf("lookup %q failed: %v", name, err)
		}
		if gen.Language() != "go" {
			t.Errorf("lookup %q resolved to %q", name, gen.Language())
		}
	}
}
