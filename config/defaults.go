package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("generate.languages", []string{"go"})
	v.SetDefault("generate.output_dir", ".")
	v.SetDefault("generate.root_name", "Root")
	v.SetDefault("generate.package_name", "") // backend default ("main" for Go)
	v.SetDefault("generate.struct_case", "")  // backend default
	v.SetDefault("generate.field_case", "")

	// Console log defaults
	v.SetDefault("log.theme", "")
}
