package commands

import (
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/teranos/jsongen/config"

	_ "github.com/teranos/jsongen/codegen/golang"
	_ "github.com/teranos/jsongen/codegen/python"
)

// newTestRoot builds a root command with the same persistent flags the
// real binary registers, so subcommands resolve --json and --config.
func newTestRoot(children ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{Use: "jsongen", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().CountP("verbose", "v", "")
	root.PersistentFlags().Bool("json", false, "")
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(children...)
	return root
}

func executeCommand(t *testing.T, child *cobra.Command, args ...string) error {
	t.Helper()
	root := newTestRoot(child)
	root.SetArgs(args)
	return root.Execute()
}

// captureStdout collects what fn writes through the fmt and display
// paths. pterm binds its writer at init, so its decorated lines bypass
// the swap; assertions must stick to plainly printed output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

// isolateConfig points the config cascade and output decisions at
// fresh directories so a developer's real files and environment cannot
// leak into assertions.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JSONGEN_CALLER", "")
	t.Chdir(t.TempDir())
	config.Reset()
	t.Cleanup(config.Reset)
}

// resetCommandFlags clears the package-level flag variables so one
// test's arguments cannot bleed into the next Execute.
func resetCommandFlags() {
	generateLanguages = nil
	generateOutput = ""
	generateRootName = ""
	generatePackage = ""
	generateNoComments = false
	generateStructCase = ""
	generateFieldCase = ""
	generateURL = ""
	generateStdin = false
	generateNoPointers = false
	generateNoJSONTags = false
	generateNoOmitempty = false
	generateJSONTagCase = ""
	generateTimeType = ""
	generatePythonStyle = ""
	analyzeURL = ""
	analyzeStdin = false
	analyzeRootName = ""
	languagesInfo = ""
	configInitUser = false
}
