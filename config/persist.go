package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/logger"
)

// defaultConfigTOML is what `jsongen config init` writes: every knob
// present, non-defaults commented out.
const defaultConfigTOML = `# jsongen configuration.
# Values here become the defaults for every run; command-line flags
# override them. Remove or comment out anything you want left at the
# built-in default.

[generate]
languages = ["go"]
output_dir = "."
root_name = "Root"
comments = true
# package_name = "models"
# Casing for generated type and field names: original, snake, camel, pascal.
# Empty picks each backend's convention.
# struct_case = "pascal"
# field_case = ""

[languages.go]
# int_type = "int64"                # int, int32, int64
# float_type = "float64"            # float32, float64
# use_pointers_for_optional = true
# generate_json_tags = true
# json_tag_omitempty = true
# json_tag_case = "original"        # original, snake, camel
# time_type = "string"              # string, time

[languages.python]
# style = "dataclass"               # dataclass, pydantic, typeddict
# time_type = "str"                 # str, datetime
# dataclass_slots = true
# dataclass_frozen = false
# dataclass_kw_only = false
# pydantic_use_field = true
# pydantic_use_alias = true
# pydantic_config_dict = true
# pydantic_extra_forbid = false
# typeddict_total = true

[log]
# theme = "everforest"              # gruvbox, everforest
`

// Init writes the default config template to path, rotating any
// existing file into the backup chain first. An empty path means the
// project file in the working directory.
func Init(path string) (string, error) {
	if path == "" {
		path = ProjectFileName
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", errors.Wrapf(err, "failed to create config directory %s", dir)
		}
	}

	if err := createBackup(path); err != nil {
		return "", errors.Wrap(err, "failed to back up existing config")
	}

	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write config file %s", path)
	}

	return path, nil
}

// Render marshals effective settings to TOML for `config show`.
func Render(settings map[string]any) (string, error) {
	data, err := toml.Marshal(settings)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config")
	}
	return string(data), nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Losing the oldest backup is not worth failing the save
		logger.Warnw("failed to delete old config backup",
			"path", back3,
			"error", err)
	}

	// Rotate .back2 to .back3
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	// Rotate .back1 to .back2
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, 0644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}
