package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/jsongen/errors"
)

// ProjectFileName is the config file looked up by walking parent
// directories, so a repo can carry its own generation settings.
const ProjectFileName = "jsongen.toml"

// SystemConfigPath is the machine-wide config file, the lowest layer
// of the cascade.
const SystemConfigPath = "/etc/jsongen/config.toml"

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the effective configuration from the merged sources.
// The result is cached; call Reset to force a reload.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path,
// skipping the usual search. Backs the --config flag.
func LoadFromFile(configPath string) (*Config, error) {
	v, err := fileViper(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// Settings returns the effective merged settings as a plain map,
// keyed the way they appear in the TOML file. When path is non-empty
// only that file (plus defaults) contributes.
func Settings(path string) (map[string]any, error) {
	if path != "" {
		v, err := fileViper(path)
		if err != nil {
			return nil, err
		}
		return v.AllSettings(), nil
	}
	return initViper().AllSettings(), nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// fileViper builds a viper instance bound to a single explicit file.
// Defaults apply but environment variables do not, so the result
// reflects the file as written.
func fileViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return v, nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix("JSONGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults first
	SetDefaults(v)

	// Manually merge configs in precedence order: system -> user -> project -> env vars
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// ProjectConfigPath returns the project config file found by walking
// up from the working directory, or "" when none exists.
func ProjectConfigPath() string {
	return findProjectConfig()
}

// findProjectConfig searches for jsongen.toml by walking up the
// directory tree. Returns the first hit, or "" when none is found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles manually merges configuration files in the correct precedence order
// Precedence (lowest to highest): system < user < project < env vars
func mergeConfigFiles(v *viper.Viper) {
	configPaths := []string{
		SystemConfigPath, // System config (lowest precedence)
		UserConfigPath(), // Per-user config
	}

	// Add project config if found (highest file precedence, below env vars)
	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}

	for _, configPath := range configPaths {
		if configPath == "" {
			continue
		}
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}
		// Merge at config level so environment variables keep their
		// place above every file.
		v.MergeConfigMap(tempViper.AllSettings())
	}
}

// UserConfigPath returns the per-user config file location,
// ~/.config/jsongen/config.toml, or "" when the home directory is
// unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jsongen", "config.toml")
}
