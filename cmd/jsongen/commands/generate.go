package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/display"
	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/internal/casing"
	"github.com/teranos/jsongen/logger"
	"github.com/teranos/jsongen/schema"
)

var (
	generateLanguages   []string
	generateOutput      string
	generateRootName    string
	generatePackage     string
	generateNoComments  bool
	generateStructCase  string
	generateFieldCase   string
	generateURL         string
	generateStdin       bool
	generateNoPointers  bool
	generateNoJSONTags  bool
	generateNoOmitempty bool
	generateJSONTagCase string
	generateTimeType    string
	generatePythonStyle string
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate type definitions from JSON documents",
	Long: `Generate type definitions from one or more JSON documents.

All documents are merged into a single schema before generation, so
fields absent from some samples become optional. Without --output the
generated code goes to stdout; with --output it is written to the named
file (single language) or directory (multiple languages).

Examples:
  jsongen generate data.json                          # Go types to stdout
  jsongen generate -l python data.json                # Python dataclasses
  jsongen generate -l go -l python -o types/ *.json   # both, into a directory
  jsongen generate --url https://api.example.com/user.json
  cat data.json | jsongen generate --stdin -l pydantic`,
	RunE: runGenerate,
}

func init() {
	f := GenerateCmd.Flags()
	registerGenerateFlags(f)
	f.StringVar(&generateURL, "url", "", "Fetch the JSON document from a URL")
	f.BoolVar(&generateStdin, "stdin", false, "Read the JSON document from standard input")
}

// registerGenerateFlags wires the generation flags; the watch command
// registers the same set so both run the identical pipeline. Input
// selection flags stay out because watch always reads its file.
func registerGenerateFlags(f *pflag.FlagSet) {
	f.StringSliceVarP(&generateLanguages, "lang", "l", nil, "Target language, repeatable (default from config, else go)")
	f.StringVarP(&generateOutput, "output", "o", "", "Output file or directory (default: stdout)")
	f.StringVar(&generateRootName, "root-name", "", "Name for the top-level type (default: Root)")
	f.StringVar(&generatePackage, "package-name", "", "Package or module name for generated files")
	f.BoolVar(&generateNoComments, "no-comments", false, "Don't add comments to generated code")
	f.StringVar(&generateStructCase, "struct-case", "", "Naming case for structs/classes (original, snake, camel, pascal)")
	f.StringVar(&generateFieldCase, "field-case", "", "Naming case for fields (original, snake, camel, pascal)")
	f.BoolVar(&generateNoPointers, "no-pointers", false, "Go: don't use pointers for optional fields")
	f.BoolVar(&generateNoJSONTags, "no-json-tags", false, "Go: don't generate JSON struct tags")
	f.BoolVar(&generateNoOmitempty, "no-omitempty", false, "Go: don't add omitempty to JSON tags")
	f.StringVar(&generateJSONTagCase, "json-tag-case", "", "Go: case style for JSON tag names (original, snake, camel)")
	f.StringVar(&generateTimeType, "time-type", "", "Timestamp rendering (Go: string or time, Python: str or datetime)")
	f.StringVar(&generatePythonStyle, "python-style", "", "Python output style (dataclass, pydantic, typeddict)")
}

// generatedFile is one entry of the JSON output mode.
type generatedFile struct {
	Language string   `json:"language"`
	Path     string   `json:"path,omitempty"`
	Types    int      `json:"types"`
	Warnings []string `json:"warnings,omitempty"`
	Code     string   `json:"code,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return generateOnce(cmd, args)
}

// generateOnce runs the whole pipeline for one invocation: load,
// analyze, generate every requested language, then write. Nothing is
// written until every language has generated cleanly.
func generateOnce(cmd *cobra.Command, files []string) error {
	start := time.Now()
	verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")

	fileCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	languages := generateLanguages
	if len(languages) == 0 {
		languages = fileCfg.Generate.Languages
	}
	if len(languages) == 0 {
		languages = []string{"go"}
	}

	// Resolve every language up front so a typo in the second one
	// fails before any work happens.
	generators := make([]codegen.Generator, 0, len(languages))
	for _, lang := range languages {
		gen, err := codegen.Lookup(lang)
		if err != nil {
			return err
		}
		generators = append(generators, gen)
	}

	docs, err := loadDocuments(cmd, files, generateURL, generateStdin)
	if err != nil {
		return err
	}

	rootName := fileCfg.Generate.RootName
	if generateRootName != "" {
		rootName = generateRootName
	}
	if rootName == "" {
		rootName = schema.DefaultRootName
	}

	set, err := buildSchemaSet(docs, rootName)
	if err != nil {
		return err
	}

	if logger.ShouldOutput(verbosity, logger.OutputAnalysis) {
		logger.Debugw("schemas built",
			logger.FieldSchemas, set.Len(),
			"names", set.Names())
	}
	if logger.ShouldOutput(verbosity, logger.OutputDataDump) {
		for _, sch := range set.Schemas {
			descs := make([]string, 0, len(sch.Fields))
			for i := range sch.Fields {
				descs = append(descs, sch.Fields[i].Name+": "+sch.Fields[i].Describe())
			}
			logger.Debugw("schema detail",
				"schema", sch.Name,
				logger.FieldFields, descs)
		}
	}

	results := make([]*codegen.Result, 0, len(generators))
	for _, gen := range generators {
		cfg := fileCfg.CodegenConfig(gen.Language())
		cfg.RootName = rootName
		applyFlagOverrides(cfg, gen.Language())
		if err := cfg.Validate(); err != nil {
			return err
		}

		result := codegen.Run(gen, set, cfg)
		if result.Err != nil {
			return errors.Wrapf(result.Err, "generating %s", result.Language)
		}
		results = append(results, result)
	}

	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		logger.Debugw("generation finished",
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
			logger.FieldCount, len(results))
	}

	return writeResults(cmd, generators, results, set)
}

// applyFlagOverrides lays the command-line flags over the config-file
// settings. Language-specific flags only reach their own backend, so
// --no-pointers does not poison a Python option table.
func applyFlagOverrides(cfg *codegen.Config, language string) {
	if generatePackage != "" {
		cfg.PackageName = generatePackage
	}
	if generateNoComments {
		cfg.AddComments = false
	}
	if generateStructCase != "" {
		cfg.StructCase = generateStructCase
	}
	if generateFieldCase != "" {
		cfg.FieldCase = generateFieldCase
	}

	switch {
	case language == "go":
		if generateNoPointers {
			cfg.SetOption("use_pointers_for_optional", false)
		}
		if generateNoJSONTags {
			cfg.SetOption("generate_json_tags", false)
		}
		if generateNoOmitempty {
			cfg.SetOption("json_tag_omitempty", false)
		}
		if generateJSONTagCase != "" {
			cfg.SetOption("json_tag_case", generateJSONTagCase)
		}
	case strings.HasPrefix(language, "python"):
		if generatePythonStyle != "" {
			cfg.SetOption("style", generatePythonStyle)
		}
	}
	if generateTimeType != "" {
		cfg.SetOption("time_type", generateTimeType)
	}
}

// writeResults delivers generated code to stdout or files and reports
// warnings.
func writeResults(cmd *cobra.Command, generators []codegen.Generator, results []*codegen.Result, set *schema.Set) error {
	outputs := make([]generatedFile, 0, len(results))

	var paths []string
	if generateOutput != "" {
		paths = outputPaths(generateOutput, generators, set.Root)
	}

	for i, result := range results {
		entry := generatedFile{
			Language: result.Language,
			Types:    set.Len(),
			Warnings: result.Warnings,
		}

		if paths != nil {
			path := paths[i]
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return errors.Wrapf(err, "failed to create output directory %s", dir)
				}
			}
			if err := os.WriteFile(path, []byte(result.Code), 0644); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}
			entry.Path = path
		} else {
			entry.Code = result.Code
		}

		outputs = append(outputs, entry)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(struct {
			Generated []generatedFile `json:"generated"`
		}{outputs})
	}

	for _, entry := range outputs {
		for _, warning := range entry.Warnings {
			warnPrinter.Printf("%s: %s\n", entry.Language, warning)
		}
		if entry.Path != "" {
			fmt.Printf("✓ Generated %s (%d types)\n", entry.Path, entry.Types)
		} else {
			fmt.Println(entry.Code)
		}
	}

	return nil
}

// outputPaths maps every generator to its destination under the
// --output flag. A single language treats the flag as a file path
// unless it names an existing directory; multiple languages always
// treat it as a directory. Languages sharing an extension get a
// language-qualified file name so they cannot overwrite each other.
func outputPaths(out string, generators []codegen.Generator, rootName string) []string {
	info, err := os.Stat(out)
	isDir := (err == nil && info.IsDir()) || strings.HasSuffix(out, string(os.PathSeparator))

	if len(generators) == 1 && !isDir {
		return []string{out}
	}

	base := casing.ToSnake(rootName)
	paths := make([]string, 0, len(generators))
	used := make(map[string]bool)
	for _, gen := range generators {
		name := base + "." + gen.FileExtension()
		if used[name] {
			name = base + "_" + strings.ReplaceAll(gen.Language(), "-", "_") + "." + gen.FileExtension()
		}
		used[name] = true
		paths = append(paths, filepath.Join(out, name))
	}
	return paths
}
