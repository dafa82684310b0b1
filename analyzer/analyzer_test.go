package analyzer

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/jsongen/errors"
)

func analyze(t *testing.T, docs ...string) *Node {
	t.Helper()
	blobs := make([][]byte, len(docs))
	for i, doc := range docs {
		blobs[i] = []byte(doc)
	}
	root, err := AnalyzeBytes(blobs)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func TestAnalyzeSingleObject(t *testing.T) {
	root := analyze(t, `{"id": 1, "name": "Alice", "active": true, "score": 9.5}`)

	assert.Equal(t, TypeObject, root.SoleType())
	assert.Equal(t, []string{"id", "name", "active", "score"}, root.Order)

	assert.Equal(t, TypeInteger, root.Children["id"].SoleType())
	assert.Equal(t, TypeString, root.Children["name"].SoleType())
	assert.Equal(t, TypeBool, root.Children["active"].SoleType())
	assert.Equal(t, TypeFloat, root.Children["score"].SoleType())

	for _, key := range root.Order {
		assert.False(t, root.Children[key].Optional, "field %s should be required", key)
	}
}

func TestAnalyzeMissingFieldIsOptional(t *testing.T) {
	root := analyze(t,
		`{"id": 1, "email": "a@example.com"}`,
		`{"id": 2}`,
	)

	assert.False(t, root.Children["id"].Optional)
	assert.True(t, root.Children["email"].Optional)
	assert.Equal(t, TypeString, root.Children["email"].SoleType())
}

func TestAnalyzeNullMakesOptional(t *testing.T) {
	root := analyze(t,
		`{"nickname": "al"}`,
		`{"nickname": null}`,
	)

	nick := root.Children["nickname"]
	assert.True(t, nick.Optional)
	assert.Equal(t, TypeString, nick.SoleType(), "null must not disturb the observed type")
	assert.Equal(t, 1, nick.Nulls)
	assert.Equal(t, 2, nick.Seen)
}

func TestAnalyzeAllNullIsUnknown(t *testing.T) {
	root := analyze(t, `{"ghost": null}`, `{"ghost": null}`)

	ghost := root.Children["ghost"]
	assert.True(t, ghost.Optional)
	assert.Empty(t, ghost.Types)
	assert.Equal(t, TypeUnknown, ghost.SoleType())
}

func TestAnalyzeTypeConflict(t *testing.T) {
	root := analyze(t,
		`{"value": "text"}`,
		`{"value": 42}`,
	)

	v := root.Children["value"]
	assert.True(t, v.Conflicted())
	assert.Equal(t, []string{"integer", "string"}, v.TypeNames())
}

func TestAnalyzeStrictNumericConflict(t *testing.T) {
	// Integers and floats never widen into each other.
	root := analyze(t,
		`{"amount": 1}`,
		`{"amount": 1.5}`,
	)

	amount := root.Children["amount"]
	assert.True(t, amount.Conflicted(), "integer + float must conflict:\n%s", spew.Sdump(amount))
	assert.Equal(t, []string{"float", "integer"}, amount.TypeNames())
}

func TestAnalyzeTimestampVsStringConflict(t *testing.T) {
	root := analyze(t,
		`{"last_login": "2024-07-15T12:30:00Z"}`,
		`{"last_login": "not a date"}`,
	)

	login := root.Children["last_login"]
	assert.True(t, login.Conflicted())
	assert.Equal(t, []string{"string", "timestamp"}, login.TypeNames())
}

func TestAnalyzeUniformTimestamps(t *testing.T) {
	root := analyze(t,
		`{"created": "2024-07-15"}`,
		`{"created": "2023-01-02T10:00:00Z"}`,
	)

	assert.Equal(t, TypeTimestamp, root.Children["created"].SoleType())
}

func TestAnalyzeEmptyStringIsString(t *testing.T) {
	root := analyze(t, `{"note": ""}`)

	note := root.Children["note"]
	assert.Equal(t, TypeString, note.SoleType(), "an empty string is a string observation")
	assert.False(t, note.Optional, "empty string is a present value")
	assert.Equal(t, 0, note.Nulls)
}

func TestAnalyzeEmptyStringConflictsWithInteger(t *testing.T) {
	root := analyze(t,
		`{"v": ""}`,
		`{"v": 1}`,
	)

	v := root.Children["v"]
	assert.True(t, v.Conflicted(), "expected a conflict:\n%s", spew.Sdump(v))
	assert.Equal(t, []string{"integer", "string"}, v.TypeNames())
}

func TestAnalyzeEmptyCompositesKeepTheirKind(t *testing.T) {
	root := analyze(t, `{"items": [], "meta": {}}`)

	items := root.Children["items"]
	assert.Equal(t, TypeArray, items.SoleType())
	assert.Equal(t, "unknown", items.ChildType)

	meta := root.Children["meta"]
	assert.Equal(t, TypeObject, meta.SoleType())
	assert.Empty(t, meta.Order)
}

func TestAnalyzeEmptyObjectMakesChildrenOptional(t *testing.T) {
	root := analyze(t,
		`{"profile": {"age": 30}}`,
		`{"profile": {}}`,
	)

	profile := root.Children["profile"]
	assert.Equal(t, TypeObject, profile.SoleType())
	assert.True(t, profile.Children["age"].Optional)
}

func TestAnalyzeArrayUniform(t *testing.T) {
	root := analyze(t, `{"tags": ["a", "b", "c"]}`)

	tags := root.Children["tags"]
	assert.Equal(t, TypeArray, tags.SoleType())
	assert.Equal(t, "string", tags.ChildType)
	assert.Equal(t, 3, tags.Child.Seen)
}

func TestAnalyzeArrayMixedScalars(t *testing.T) {
	root := analyze(t, `{"values": [1, "two", 3]}`)

	values := root.Children["values"]
	assert.Equal(t, "mixed: integer, string", values.ChildType)
}

func TestAnalyzeArrayMixedComplex(t *testing.T) {
	root := analyze(t, `{"entries": [1, {"a": 2}]}`)

	assert.Equal(t, "mixed_complex", root.Children["entries"].ChildType)
}

func TestAnalyzeArrayObjectsAndArrays(t *testing.T) {
	root := analyze(t, `{"entries": [{"a": 1}, [2]]}`)

	assert.Equal(t, "mixed", root.Children["entries"].ChildType)
}

func TestAnalyzeArrayOfNulls(t *testing.T) {
	root := analyze(t, `{"slots": [null, null]}`)

	slots := root.Children["slots"]
	assert.Equal(t, TypeArray, slots.SoleType())
	assert.Equal(t, "unknown", slots.ChildType)
	assert.Nil(t, slots.Child, "null elements are skipped during sampling")
}

func TestAnalyzeArraySamplingSkipsEmpties(t *testing.T) {
	root := analyze(t, `{"values": [null, "", {}, [], 7, 8]}`)

	values := root.Children["values"]
	assert.Equal(t, "integer", values.ChildType)
	assert.Equal(t, 2, values.Child.Seen)
}

func TestAnalyzeArrayOfObjectsMergesElements(t *testing.T) {
	root := analyze(t, `{"users": [
		{"id": 1, "name": "Alice"},
		{"id": 2},
		{"id": 3, "name": "Charlie"}
	]}`)

	users := root.Children["users"]
	require.NotNil(t, users.Child)
	assert.Equal(t, "object", users.ChildType)

	elem := users.Child
	assert.Equal(t, 3, elem.ObjectCount)
	assert.False(t, elem.Children["id"].Optional)
	assert.True(t, elem.Children["name"].Optional)
}

func TestAnalyzeArraySamplingCap(t *testing.T) {
	doc := `{"big": [`
	for i := 0; i < 50; i++ {
		if i > 0 {
			doc += ","
		}
		doc += `1`
	}
	doc += `]}`

	root := analyze(t, doc)

	big := root.Children["big"]
	assert.Equal(t, ArraySampleLimit, big.Child.Seen,
		"only the first %d elements should be sampled", ArraySampleLimit)
}

func TestAnalyzeArraySampleCapCountsNonEmpty(t *testing.T) {
	doc := `{"big": [`
	for i := 0; i < 10; i++ {
		if i > 0 {
			doc += ","
		}
		doc += `""`
	}
	for i := 0; i < 25; i++ {
		doc += `,1`
	}
	doc += `]}`

	root := analyze(t, doc)

	big := root.Children["big"]
	assert.Equal(t, "integer", big.ChildType)
	assert.Equal(t, ArraySampleLimit, big.Child.Seen,
		"empty elements must not consume the sample budget")
}

func TestAnalyzeFirstSeenKeyOrder(t *testing.T) {
	root := analyze(t,
		`{"b": 1, "a": 2}`,
		`{"c": 3, "a": 4}`,
	)

	assert.Equal(t, []string{"b", "a", "c"}, root.Order)
}

func TestAnalyzeDuplicateKeysLastValueWins(t *testing.T) {
	root := analyze(t, `{"x": "first", "y": 1, "x": 2}`)

	assert.Equal(t, []string{"x", "y"}, root.Order)
	assert.Equal(t, TypeInteger, root.Children["x"].SoleType())
}

func TestAnalyzeStreamedDocuments(t *testing.T) {
	// One blob holding two concatenated documents (NDJSON style).
	root := analyze(t, `{"id": 1}
{"id": 2, "extra": true}`)

	assert.Equal(t, 2, root.ObjectCount)
	assert.True(t, root.Children["extra"].Optional)
}

func TestAnalyzeNestedObjects(t *testing.T) {
	root := analyze(t,
		`{"user": {"profile": {"age": 30, "city": "NYC"}}}`,
		`{"user": {"profile": {"age": 25}}}`,
	)

	profile := root.Children["user"].Children["profile"]
	assert.False(t, profile.Children["age"].Optional)
	assert.True(t, profile.Children["city"].Optional)
	assert.Equal(t, TypeInteger, profile.Children["age"].SoleType())
}

func TestAnalyzeScalarRoot(t *testing.T) {
	root := analyze(t, `42`, `17`)

	assert.Equal(t, TypeInteger, root.SoleType())
	assert.Equal(t, 2, root.Seen)
}

func TestAnalyzeArrayRoot(t *testing.T) {
	root := analyze(t, `[{"id": 1}, {"id": 2}]`)

	assert.Equal(t, TypeArray, root.SoleType())
	assert.Equal(t, "object", root.ChildType)
}

func TestAnalyzeMixedKindConflict(t *testing.T) {
	root := analyze(t,
		`{"payload": {"a": 1}}`,
		`{"payload": "raw"}`,
	)

	payload := root.Children["payload"]
	assert.True(t, payload.Conflicted())
	assert.Equal(t, []string{"object", "string"}, payload.TypeNames())
}

func TestAnalyzeEmptyInput(t *testing.T) {
	_, err := AnalyzeBytes(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyInput))

	_, err = Analyze(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyInput))
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	_, err := AnalyzeBytes([][]byte{[]byte(`{"broken": `)})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidJSONError(err))

	_, err = AnalyzeBytes([][]byte{[]byte(`{"bad": }`)})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidJSONError(err))
}

// TestAnalyzeReferenceDocument runs the full merge over a document
// exercising every rule at once: nested objects, optional fields,
// arrays of objects, empty arrays and a timestamp/string conflict.
func TestAnalyzeReferenceDocument(t *testing.T) {
	root := analyze(t, `{
		"users": [
			{"id": 1, "name": "Alice", "profile": {"age": 30, "city": "NYC"},
			 "tags": ["admin", "user"], "last_login": "2024-07-15T12:30:00Z"},
			{"id": 2, "name": "Bob", "profile": {"age": 25},
			 "tags": [], "last_login": "not a date"},
			{"id": 3, "name": "Charlie", "settings": {"theme": "dark"}}
		]
	}`)

	users := root.Children["users"]
	require.NotNil(t, users, "users field missing:\n%s", spew.Sdump(root))
	assert.Equal(t, TypeArray, users.SoleType())

	elem := users.Child
	require.NotNil(t, elem)
	assert.Equal(t, []string{"id", "name", "profile", "tags", "last_login", "settings"}, elem.Order)

	assert.False(t, elem.Children["id"].Optional)
	assert.False(t, elem.Children["name"].Optional)

	profile := elem.Children["profile"]
	assert.True(t, profile.Optional)
	assert.False(t, profile.Children["age"].Optional)
	assert.True(t, profile.Children["city"].Optional)

	tags := elem.Children["tags"]
	assert.True(t, tags.Optional)
	assert.Equal(t, TypeArray, tags.SoleType())
	assert.Equal(t, "string", tags.ChildType)

	login := elem.Children["last_login"]
	assert.True(t, login.Optional)
	assert.True(t, login.Conflicted())
	assert.Equal(t, []string{"string", "timestamp"}, login.TypeNames())

	settings := elem.Children["settings"]
	assert.True(t, settings.Optional)
	assert.Equal(t, TypeObject, settings.SoleType())
}
