// Package config loads the ontology core's configuration through a layered
// Viper setup: system, user, and project TOML files merged in ascending
// precedence, then HSCORE_-prefixed environment variables on top.
package config

// Config holds the settings a Provider, the filter evaluator, and the Zinc
// emitter need at runtime.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Zinc     ZincConfig     `mapstructure:"zinc"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig configures the SQLite-backed Provider's connection.
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Dialect string `mapstructure:"dialect"` // "sqlite" or "postgres"
}

// FilterConfig bounds filter-expression parsing.
type FilterConfig struct {
	MaxExprLength int `mapstructure:"max_expr_length"` // reject filter strings longer than this
}

// ZincConfig configures the Zinc codec's default emitted wire version.
type ZincConfig struct {
	EmitVersion string `mapstructure:"emit_version"` // "2.0" or "3.0"
}

// LogConfig configures structured log output.
type LogConfig struct {
	Theme string `mapstructure:"theme"` // "gruvbox" or "everforest"
	JSON  bool   `mapstructure:"json"`
}

// File system permissions used when creating config directories/files.
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
