package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/jsongen/internal/httpclient"
	"github.com/teranos/jsongen/loader"
	"github.com/teranos/jsongen/logger"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestAnalyzeJSONTool(t *testing.T) {
	s := New()

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"json": `{"id": 1, "profile": {"name": "Ada"}, "tags": ["a", "b"]}`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Found 2 type(s):")
	assert.Contains(t, text, "RootProfile")
	assert.Contains(t, text, "id: integer")
	assert.Contains(t, text, "profile: RootProfile")
	assert.Contains(t, text, "tags: array of string")
}

func TestAnalyzeJSONToolConflictAndOptional(t *testing.T) {
	s := New()

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"json":      `[{"v": 1, "extra": true}, {"v": "x"}]`,
		"root_name": "Record",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Record")
	assert.Contains(t, text, "v: conflict (integer, string)")
	assert.Contains(t, text, "extra: boolean, optional")
	assert.Contains(t, text, "Needs attention: 1 conflict(s)")
}

func TestAnalyzeJSONToolInputExclusivity(t *testing.T) {
	s := New()

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"json": `{}`,
		"url":  "https://example.com/data.json",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAnalyzeJSONToolBadInput(t *testing.T) {
	s := New()

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"json": `{"broken":`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Failed to analyze JSON")
}

func TestAnalyzeJSONToolFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "Ada"}`))
	}))
	defer server.Close()

	s := New()
	// httptest binds to loopback, which the strict loader refuses
	s.loader = loader.NewWithClient(httpclient.WrapClient(server.Client()), logger.ComponentLogger("mcp"))

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"url": server.URL,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "name: string")
}

func TestAnalyzeJSONToolBlocksPrivateURL(t *testing.T) {
	s := New()

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"url": "http://127.0.0.1:8080/data.json",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Failed to fetch")
}

func TestGenerateTypesToolGo(t *testing.T) {
	s := New()

	res, err := s.handleGenerateTypes(context.Background(), callRequest("generate_types", map[string]any{
		"json":     `{"id": 1, "name": "Ada"}`,
		"language": "go",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "package main")
	assert.Contains(t, text, "type Root struct {")
	assert.Contains(t, text, "`json:\"name\"`")
}

func TestGenerateTypesToolPydanticAlias(t *testing.T) {
	s := New()

	res, err := s.handleGenerateTypes(context.Background(), callRequest("generate_types", map[string]any{
		"json":      `{"id": 1}`,
		"language":  "pydantic",
		"root_name": "Payload",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "class Payload(BaseModel):")
}

func TestGenerateTypesToolWarningsAppended(t *testing.T) {
	s := New()

	res, err := s.handleGenerateTypes(context.Background(), callRequest("generate_types", map[string]any{
		"json":     `[{"v": 1}, {"v": "x"}]`,
		"language": "go",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "Warnings:\n")
	assert.Contains(t, text, "mixed types")
}

func TestGenerateTypesToolUnknownLanguage(t *testing.T) {
	s := New()

	res, err := s.handleGenerateTypes(context.Background(), callRequest("generate_types", map[string]any{
		"json":     `{}`,
		"language": "cobol",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, `Unknown language "cobol"`)
	assert.Contains(t, text, "go")
}

func TestGenerateTypesToolMissingArguments(t *testing.T) {
	s := New()

	res, err := s.handleGenerateTypes(context.Background(), callRequest("generate_types", map[string]any{
		"language": "go",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestToolsRejectOversizedJSON(t *testing.T) {
	s := New()
	s.maxSize = 16

	res, err := s.handleAnalyzeJSON(context.Background(), callRequest("analyze_json", map[string]any{
		"json": `{"note": "well past sixteen bytes"}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "document limit")

	res, err = s.handleGenerateTypes(context.Background(), callRequest("generate_types", map[string]any{
		"json":     `{"note": "well past sixteen bytes"}`,
		"language": "go",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "document limit")
}

func TestListLanguagesTool(t *testing.T) {
	s := New()

	res, err := s.handleListLanguages(context.Background(), callRequest("list_languages", nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "go (.go)")
	assert.Contains(t, text, "python (.py)")
	assert.Contains(t, text, "python-pydantic (.py)")
	assert.Contains(t, text, "aliases: pydantic")
}
