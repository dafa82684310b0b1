// Package mcpserver exposes jsongen analysis and generation over the
// Model Context Protocol, so agents can infer schemas and generate
// types without shelling out to the CLI.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/teranos/jsongen/analyzer"
	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/loader"
	"github.com/teranos/jsongen/logger"
	"github.com/teranos/jsongen/schema"
	"github.com/teranos/jsongen/version"

	_ "github.com/teranos/jsongen/codegen/golang"
	_ "github.com/teranos/jsongen/codegen/python"
)

// Server wraps the analyzer and generator registry behind MCP tools
type Server struct {
	loader  *loader.Loader
	server  *server.MCPServer
	maxSize int64
}

// New creates a new MCP server over the default generator registry
func New() *Server {
	s := &Server{
		// URL fetches requested by an agent stay locked down to
		// public addresses.
		loader:  loader.NewStrict(logger.ComponentLogger("mcp")),
		maxSize: loader.MaxDocumentSize,
	}

	// Create MCP server with tool capabilities
	s.server = server.NewMCPServer(
		"jsongen",
		version.Get().Version,
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// registerTools registers all MCP tools for jsongen operations
func (s *Server) registerTools() {
	// AnalyzeJSON tool
	analyzeTool := mcp.NewTool("analyze_json",
		mcp.WithDescription("Analyze a JSON document and report the inferred type structure"),
		mcp.WithString("json",
			mcp.Description("Raw JSON document to analyze"),
		),
		mcp.WithString("url",
			mcp.Description("HTTP(S) URL of a JSON document to fetch and analyze instead of 'json'"),
		),
		mcp.WithString("root_name",
			mcp.Description("Name for the top-level type (default: Root)"),
		),
	)
	s.server.AddTool(analyzeTool, s.handleAnalyzeJSON)

	// GenerateTypes tool
	generateTool := mcp.NewTool("generate_types",
		mcp.WithDescription("Generate type definitions in a target language from a JSON document"),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("Raw JSON document to generate types from"),
		),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Target language name or alias, e.g. go, python, pydantic"),
		),
		mcp.WithString("root_name",
			mcp.Description("Name for the top-level type (default: Root)"),
		),
		mcp.WithString("package_name",
			mcp.Description("Package or module name for the generated file"),
		),
	)
	s.server.AddTool(generateTool, s.handleGenerateTypes)

	// ListLanguages tool
	languagesTool := mcp.NewTool("list_languages",
		mcp.WithDescription("List the supported target languages with aliases and file extensions"),
	)
	s.server.AddTool(languagesTool, s.handleListLanguages)
}

// payloadTooLarge rejects an inline json argument larger than the
// document size cap. URL fetches hit the same cap inside the loader.
func (s *Server) payloadTooLarge(raw string) *mcp.CallToolResult {
	if int64(len(raw)) > s.maxSize {
		return mcp.NewToolResultError(fmt.Sprintf("json argument exceeds the %d MiB document limit", s.maxSize>>20))
	}
	return nil
}

// handleAnalyzeJSON handles analyze_json tool calls
func (s *Server) handleAnalyzeJSON(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("json", "")
	url := request.GetString("url", "")
	if (raw == "") == (url == "") {
		return mcp.NewToolResultError("provide exactly one of 'json' or 'url'"), nil
	}
	if res := s.payloadTooLarge(raw); res != nil {
		return res, nil
	}

	data := []byte(raw)
	if url != "" {
		doc, err := s.loader.FromURL(url)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch %s: %v", url, err)), nil
		}
		data = doc.Data
	}

	set, err := buildSchemas(data, request.GetString("root_name", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(renderSchemas(set)), nil
}

// handleGenerateTypes handles generate_types tool calls
func (s *Server) handleGenerateTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res := s.payloadTooLarge(raw); res != nil {
		return res, nil
	}

	language, err := request.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gen, err := codegen.Lookup(language)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown language %q, available: %s",
			language, strings.Join(codegen.Languages(), ", "))), nil
	}

	cfg := codegen.DefaultConfig()
	if rootName := request.GetString("root_name", ""); rootName != "" {
		cfg.RootName = rootName
	}
	cfg.PackageName = request.GetString("package_name", "")

	set, err := buildSchemas([]byte(raw), cfg.RootName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze JSON: %v", err)), nil
	}

	result := codegen.Run(gen, set, cfg)
	if result.Err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate %s: %v", result.Language, result.Err)), nil
	}

	text := result.Code
	if len(result.Warnings) > 0 {
		text += "\nWarnings:\n"
		for _, warning := range result.Warnings {
			text += fmt.Sprintf("- %s\n", warning)
		}
	}

	return mcp.NewToolResultText(text), nil
}

// handleListLanguages handles list_languages tool calls
func (s *Server) handleListLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	languages := codegen.Languages()

	result := fmt.Sprintf("Found %d language(s):\n", len(languages))
	for _, name := range languages {
		info, err := codegen.Describe(name)
		if err != nil {
			continue
		}
		result += fmt.Sprintf("%s (.%s)", info.Name, info.Extension)
		if len(info.Aliases) > 0 {
			result += fmt.Sprintf(" aliases: %s", strings.Join(info.Aliases, ", "))
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

// buildSchemas analyzes one document and names the resulting set.
func buildSchemas(data []byte, rootName string) (*schema.Set, error) {
	if rootName == "" {
		rootName = "Root"
	}
	node, err := analyzer.AnalyzeBytes([][]byte{data})
	if err != nil {
		return nil, err
	}
	return schema.Build(node, rootName)
}

// renderSchemas formats a schema set as an indented text report.
// Attention notes ride along so an agent sees where inference guessed.
func renderSchemas(set *schema.Set) string {
	result := fmt.Sprintf("Found %d type(s):\n", set.Len())
	for _, sch := range set.Schemas {
		result += fmt.Sprintf("\n%s\n", sch.Name)
		if len(sch.Fields) == 0 {
			result += "  (no fields)\n"
			continue
		}
		for i := range sch.Fields {
			field := &sch.Fields[i]
			result += fmt.Sprintf("  %s: %s", field.Name, field.Describe())
			if field.Description != "" {
				result += "  " + field.Description
			}
			result += "\n"
		}
	}

	sum := set.AttentionSummary()
	if sum.Conflicts > 0 || sum.Unknowns > 0 {
		result += fmt.Sprintf("\nNeeds attention: %d conflict(s), %d unknown type(s)\n",
			sum.Conflicts, sum.Unknowns)
	}
	return result
}

// Serve starts the MCP server using stdio transport
func (s *Server) Serve() error {
	return server.ServeStdio(s.server)
}
