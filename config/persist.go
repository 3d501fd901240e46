package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/haystack-go/hscore/errors"
)

// createBackup rotates up to three prior copies of configPath
// (.back1, .back2, .back3) before it is overwritten.
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	os.Remove(back3)

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "write .back1")
	}
	return nil
}

// GetProjectConfigPath returns the project config path this package
// writes to when no explicit path is requested (./hscore.toml in the
// current working directory).
func GetProjectConfigPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "determine working directory")
	}
	return filepath.Join(dir, "hscore.toml"), nil
}

// Save writes cfg to configPath as TOML, rotating backups of any existing
// file first. Save does not touch the in-process cache; call Reset to pick
// up the new values on the next Load.
func Save(cfg *Config, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "write config file")
	}
	return nil
}

// SetDatabasePath persists a new database path to the project config file,
// creating it if it does not yet exist.
func SetDatabasePath(path string) error {
	configPath, err := GetProjectConfigPath()
	if err != nil {
		return err
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		v := viper.New()
		SetDefaults(v)
		cfg, err = LoadWithViper(v)
		if err != nil {
			return err
		}
	}
	cfg.Database.Path = path
	return Save(cfg, configPath)
}
