package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/logger"
	"github.com/teranos/jsongen/mcpserver"
)

// McpCmd represents the mcp command
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Run a Model Context Protocol server over stdin/stdout, exposing the
analyze_json, generate_types and list_languages tools to MCP clients.

stdout carries the protocol, so diagnostics go to the log on stderr.

Example client registration (Claude Desktop, Cursor and similar):
  {"command": "jsongen", "args": ["mcp"]}`,
	RunE: runMcp,
}

func runMcp(cmd *cobra.Command, args []string) error {
	logger.Infow("starting MCP server", "transport", "stdio")
	return mcpserver.New().Serve()
}
