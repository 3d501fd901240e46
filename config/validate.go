package config

import "github.com/haystack-go/hscore/errors"

// Validate checks that the configuration holds sane values.
func (c *Config) Validate() error {
	if c.Filter.MaxExprLength < 0 {
		return errors.Newf("filter.max_expr_length must be >= 0, got %d", c.Filter.MaxExprLength)
	}

	switch c.Database.Dialect {
	case "", "sqlite", "postgres":
	default:
		return errors.Newf("database.dialect must be \"sqlite\" or \"postgres\", got %q", c.Database.Dialect)
	}

	switch c.Zinc.EmitVersion {
	case "", "2.0", "3.0":
	default:
		return errors.Newf("zinc.emit_version must be \"2.0\" or \"3.0\", got %q", c.Zinc.EmitVersion)
	}

	switch c.Log.Theme {
	case "", "gruvbox", "everforest":
	default:
		return errors.Newf("log.theme must be \"gruvbox\" or \"everforest\", got %q", c.Log.Theme)
	}

	return nil
}
