package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/cmd/jsongen/commands"
	"github.com/teranos/jsongen/config"
	"github.com/teranos/jsongen/display"
	"github.com/teranos/jsongen/logger"

	_ "github.com/teranos/jsongen/codegen/golang"
	_ "github.com/teranos/jsongen/codegen/python"
)

var rootCmd = &cobra.Command{
	Use:   "jsongen",
	Short: "jsongen - Generate type definitions from JSON",
	Long: `jsongen - Analyze JSON documents and generate type definitions.

jsongen infers the structure of one or more JSON documents and renders
it as source code for a target language. Multiple documents merge into
one schema, so fields missing from some samples come out optional.

Available commands:
  generate  - Generate type definitions from JSON
  analyze   - Analyze JSON structure without generating code
  languages - List supported target languages
  config    - Manage the jsongen configuration file
  watch     - Regenerate whenever a JSON file changes
  mcp       - Serve analysis and generation over MCP (stdio)

Examples:
  jsongen generate data.json                   # Go types to stdout
  jsongen generate -l python -o models/ *.json # Python dataclasses
  jsongen analyze --url https://api.example.com/user.json
  jsongen watch data.json -o types/`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs
		verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
		if err := logger.InitializeWithLevel(display.ShouldOutputJSON(cmd), logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if logger.ShouldOutput(verbosity, logger.OutputStartup) {
			logger.Infow("verbosity set",
				"level", logger.LevelName(verbosity),
				"showing", logger.VerbosityDescription(verbosity))
		}
		applyConfigTheme()
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a jsongen.toml config file")

	// Add commands
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.AnalyzeCmd)
	rootCmd.AddCommand(commands.LanguagesCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.McpCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

// applyConfigTheme picks up the configured log theme. The
// JSONGEN_LOG_THEME environment variable wins, and a broken config
// file never blocks a command here; the command's own config load
// reports it properly.
func applyConfigTheme() {
	if os.Getenv("JSONGEN_LOG_THEME") != "" {
		return
	}
	cfg, err := config.Load()
	if err != nil || cfg.Log.Theme == "" {
		return
	}
	logger.SetTheme(cfg.Log.Theme)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
