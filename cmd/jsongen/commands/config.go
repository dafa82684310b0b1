package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/jsongen/config"
	"github.com/teranos/jsongen/display"
	"github.com/teranos/jsongen/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jsongen configuration",
	Long: `Display and manage jsongen configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (JSONGEN_* prefix)
3. Project config (./jsongen.toml, searches up directories)
4. User config (~/.config/jsongen/config.toml)
5. System config (/etc/jsongen/config.toml)
6. Default values

Examples:
  jsongen config show             # Show effective configuration
  jsongen config show --json      # Show configuration as JSON
  jsongen config init             # Write a starter ./jsongen.toml
  jsongen config init --user      # Write the per-user config file
  jsongen config where            # Show which files the cascade checked`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Display the merged configuration from all sources as TOML, or as JSON with --json",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented starter config file. Defaults to ./jsongen.toml;
--user targets the per-user file and --config any explicit path. An
existing file is rotated to .back1 first, keeping three backups.`,
	RunE: runConfigInit,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long:  "List the configuration cascade and which of its files exist on this machine",
	RunE:  runConfigWhere,
}

var configInitUser bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Write the per-user config file instead of ./jsongen.toml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := config.Settings(configFlag(cmd))
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(settings)
	}

	rendered, err := config.Render(settings)
	if err != nil {
		return err
	}
	fmt.Printf("# jsongen configuration\n%s", rendered)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFlag(cmd)
	if path == "" && configInitUser {
		path = config.UserConfigPath()
		if path == "" {
			return errors.New("cannot locate the user config directory")
		}
	}

	written, err := config.Init(path)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Wrote %s\n", written)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	fmt.Println("Configuration cascade (later overrides earlier):")
	fmt.Println("  1. [DEFAULT] Built-in defaults")
	printConfigLayer(2, "SYSTEM", config.SystemConfigPath)
	printConfigLayer(3, "USER", config.UserConfigPath())

	if project := config.ProjectConfigPath(); project != "" {
		fmt.Printf("  4. %-9s %s\n", "[PROJECT]", project)
	} else {
		fmt.Printf("  4. %-9s %s (not found, searched up from the working directory)\n", "[PROJECT]", config.ProjectFileName)
	}
	fmt.Println("  5. [ENV]     JSONGEN_* environment variables")
	return nil
}

func printConfigLayer(n int, name, path string) {
	if path == "" {
		fmt.Printf("  %d. %-9s (no home directory)\n", n, "["+name+"]")
		return
	}
	status := ""
	if _, err := os.Stat(path); err != nil {
		status = " (not found)"
	}
	fmt.Printf("  %d. %-9s %s%s\n", n, "["+name+"]", path, status)
}
