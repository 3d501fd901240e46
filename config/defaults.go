package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "hscore.db")
	v.SetDefault("database.dialect", "sqlite")

	v.SetDefault("filter.max_expr_length", 4096)

	v.SetDefault("zinc.emit_version", "3.0")

	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.json", false)
}

// BindSensitiveEnvVars explicitly binds configuration likely to carry
// secrets or per-deployment overrides to environment variables, bypassing
// the usual dot-to-underscore key replacement so operators can set them
// without knowing the TOML key shape.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "HSCORE_DATABASE_PATH")
	v.BindEnv("database.dialect", "HSCORE_DATABASE_DIALECT")
}

// GetDatabasePath returns the configured database path, falling back to
// the default when unset.
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "hscore.db"
	}
	return c.Database.Path
}

// GetMaxFilterExprLength returns the configured filter-expression length
// limit, falling back to the default when unset.
func (c *Config) GetMaxFilterExprLength() int {
	if c.Filter.MaxExprLength <= 0 {
		return 4096
	}
	return c.Filter.MaxExprLength
}

// GetZincEmitVersion returns the configured default Zinc wire version.
func (c *Config) GetZincEmitVersion() string {
	if c.Zinc.EmitVersion == "" {
		return "3.0"
	}
	return c.Zinc.EmitVersion
}
