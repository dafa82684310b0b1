package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/display"
)

var languagesInfo string

// LanguagesCmd represents the languages command
var LanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported target languages",
	Long: `List every language the generator can produce, with the file
extension and accepted aliases for each. Use --info to show a single
language.

Examples:
  jsongen languages
  jsongen languages --info python
  jsongen languages --json`,
	RunE: runLanguages,
}

func init() {
	LanguagesCmd.Flags().StringVar(&languagesInfo, "info", "", "Show details for a single language")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	if languagesInfo != "" {
		return showLanguageInfo(cmd, languagesInfo)
	}

	infos := make([]codegen.LanguageInfo, 0)
	for _, name := range codegen.Languages() {
		info, err := codegen.Describe(name)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(struct {
			Languages []codegen.LanguageInfo `json:"languages"`
		}{infos})
	}

	fmt.Println("Supported languages:")
	fmt.Println()
	for _, info := range infos {
		fmt.Printf("  %s\n", info.Name)
		fmt.Printf("    Extension: .%s\n", info.Extension)
		if len(info.Aliases) > 0 {
			fmt.Printf("    Aliases: %s\n", strings.Join(info.Aliases, ", "))
		}
	}
	return nil
}

func showLanguageInfo(cmd *cobra.Command, language string) error {
	info, err := codegen.Describe(language)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(info)
	}

	fmt.Printf("Language: %s\n", info.Name)
	fmt.Printf("File extension: .%s\n", info.Extension)
	if len(info.Aliases) > 0 {
		fmt.Printf("Aliases: %s\n", strings.Join(info.Aliases, ", "))
	}
	return nil
}
