package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/display"
	"github.com/teranos/jsongen/loader"
	"github.com/teranos/jsongen/schema"
)

var (
	analyzeURL      string
	analyzeStdin    bool
	analyzeRootName string
)

// AnalyzeCmd represents the analyze command
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Inspect the type structure inferred from JSON documents",
	Long: `Analyze JSON documents and show the inferred type structure without
generating any code. Useful for checking how fields classify, which
types merge, and where conflicts or optional fields come from before
committing to generated output.

Examples:
  jsongen analyze data.json
  jsongen analyze --url https://api.example.com/user.json
  cat data.json | jsongen analyze --stdin --root-name User`,
	RunE: runAnalyze,
}

func init() {
	AnalyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Fetch the JSON document from a URL")
	AnalyzeCmd.Flags().BoolVar(&analyzeStdin, "stdin", false, "Read the JSON document from standard input")
	AnalyzeCmd.Flags().StringVar(&analyzeRootName, "root-name", "", "Name for the top-level type (default: Root)")
}

type analyzedField struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Optional      bool     `json:"optional,omitempty"`
	Ref           string   `json:"ref,omitempty"`
	ElementType   string   `json:"element_type,omitempty"`
	ElementRef    string   `json:"element_ref,omitempty"`
	ConflictTypes []string `json:"conflict_types,omitempty"`
	Note          string   `json:"note,omitempty"`
}

type analyzedType struct {
	Name   string          `json:"name"`
	Note   string          `json:"note,omitempty"`
	Fields []analyzedField `json:"fields"`
}

type analysisReport struct {
	Sources []string       `json:"sources"`
	Root    string         `json:"root"`
	Types   []analyzedType `json:"types"`
	Summary schema.Summary `json:"summary"`
}

func runAnalyze(cmd *cobra.Command, files []string) error {
	docs, err := loadDocuments(cmd, files, analyzeURL, analyzeStdin)
	if err != nil {
		return err
	}

	rootName := analyzeRootName
	if rootName == "" {
		rootName = schema.DefaultRootName
	}

	set, err := buildSchemaSet(docs, rootName)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(buildReport(docs, set))
	}

	for _, doc := range docs {
		pterm.Info.Printf("Loaded %s\n", doc.Source)
	}

	if err := pterm.DefaultTree.WithRoot(schemaTree(set)).Render(); err != nil {
		return err
	}

	sum := set.AttentionSummary()
	fmt.Printf("%d types, %d fields, depth %d\n", set.Len(), sum.TotalFields, sum.MaxDepth)
	for _, finding := range summaryFindings(sum) {
		pterm.Warning.Println(finding)
	}
	return nil
}

// summaryFindings renders the attention counts as warning lines, one
// per kind of issue. An unremarkable set produces none.
func summaryFindings(sum schema.Summary) []string {
	var findings []string
	if sum.Conflicts > 0 {
		findings = append(findings, fmt.Sprintf("%d field(s) with conflicting types map to any", sum.Conflicts))
	}
	if sum.Unknowns > 0 {
		findings = append(findings, fmt.Sprintf("%d field(s) with no classifiable type", sum.Unknowns))
	}
	if sum.EmptySchemas > 0 {
		findings = append(findings, fmt.Sprintf("%d object(s) with no fields detected", sum.EmptySchemas))
	}
	if sum.ComplexArrays > 0 {
		findings = append(findings, fmt.Sprintf("%d array(s) of complex objects", sum.ComplexArrays))
	}
	return findings
}

func buildReport(docs []*loader.Document, set *schema.Set) analysisReport {
	report := analysisReport{Root: set.Root}
	for _, doc := range docs {
		report.Sources = append(report.Sources, doc.Source)
	}
	for _, sch := range set.Schemas {
		entry := analyzedType{Name: sch.Name, Note: sch.Description, Fields: []analyzedField{}}
		for i := range sch.Fields {
			f := &sch.Fields[i]
			af := analyzedField{
				Name:     f.Name,
				Type:     f.Type.String(),
				Optional: f.Optional,
				Ref:      f.Ref,
				Note:     f.Description,
			}
			if f.Type == schema.FieldArray {
				af.ElementType = f.ElementType.String()
				af.ElementRef = f.ElementRef
			}
			if f.Type == schema.FieldConflict {
				af.ConflictTypes = f.ConflictTypeNames()
			}
			entry.Fields = append(entry.Fields, af)
		}
		report.Types = append(report.Types, entry)
	}
	report.Summary = set.AttentionSummary()
	return report
}

// schemaTree renders the root schema as a tree, expanding referenced
// object types inline at every use site. Schemas are built bottom-up,
// so a schema can never reference itself and the expansion terminates.
func schemaTree(set *schema.Set) pterm.TreeNode {
	root := set.RootSchema()
	node := pterm.TreeNode{Text: root.Name}
	for i := range root.Fields {
		node.Children = append(node.Children, fieldTree(set, &root.Fields[i]))
	}
	return node
}

func fieldTree(set *schema.Set, f *schema.Field) pterm.TreeNode {
	node := pterm.TreeNode{Text: fmt.Sprintf("%s: %s", f.Name, f.Describe())}

	ref := f.Ref
	if f.Type == schema.FieldArray {
		ref = f.ElementRef
	}
	if ref == "" {
		return node
	}
	child, ok := set.Lookup(ref)
	if !ok {
		return node
	}
	for i := range child.Fields {
		node.Children = append(node.Children, fieldTree(set, &child.Fields[i]))
	}
	return node
}
