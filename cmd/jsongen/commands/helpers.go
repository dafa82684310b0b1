package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/analyzer"
	"github.com/teranos/jsongen/config"
	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/loader"
	"github.com/teranos/jsongen/logger"
	"github.com/teranos/jsongen/schema"
)

// warnPrinter keeps warnings on stderr so generated code piped from
// stdout stays clean.
var warnPrinter = pterm.Warning.WithWriter(os.Stderr)

// loadConfig resolves the effective configuration, honoring the
// --config override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := configFlag(cmd); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFlag returns the value of the persistent --config flag.
func configFlag(cmd *cobra.Command) string {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return path
}

// loadDocuments reads JSON from exactly one source kind: positional
// files, --url or --stdin.
func loadDocuments(cmd *cobra.Command, files []string, url string, stdin bool) ([]*loader.Document, error) {
	selected := 0
	if len(files) > 0 {
		selected++
	}
	if url != "" {
		selected++
	}
	if stdin {
		selected++
	}
	if selected == 0 {
		return nil, errors.WithHint(errors.ErrNoInput, "pass JSON files, --url or --stdin")
	}
	if selected > 1 {
		return nil, errors.New("choose one input source: files, --url or --stdin")
	}

	l := loader.New(logger.ComponentLogger("loader"))
	switch {
	case url != "":
		doc, err := l.FromURL(url)
		if err != nil {
			return nil, err
		}
		return []*loader.Document{doc}, nil
	case stdin:
		doc, err := l.FromReader("stdin", cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []*loader.Document{doc}, nil
	default:
		return l.LoadAll(files)
	}
}

// buildSchemaSet merges all documents into one analysis and names the
// resulting schemas.
func buildSchemaSet(docs []*loader.Document, rootName string) (*schema.Set, error) {
	blobs := make([][]byte, 0, len(docs))
	for _, doc := range docs {
		blobs = append(blobs, doc.Data)
	}

	node, err := analyzer.AnalyzeBytes(blobs)
	if err != nil {
		return nil, err
	}
	return schema.Build(node, rootName)
}
