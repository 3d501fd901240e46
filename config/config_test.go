package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadWithViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Database.Path != "hscore.db" {
		t.Errorf("expected default database path %q, got %q", "hscore.db", cfg.Database.Path)
	}
	if cfg.Database.Dialect != "sqlite" {
		t.Errorf("expected default dialect %q, got %q", "sqlite", cfg.Database.Dialect)
	}
	if cfg.Filter.MaxExprLength != 4096 {
		t.Errorf("expected default max_expr_length 4096, got %d", cfg.Filter.MaxExprLength)
	}
	if cfg.Zinc.EmitVersion != "3.0" {
		t.Errorf("expected default zinc emit version %q, got %q", "3.0", cfg.Zinc.EmitVersion)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero max expr length is valid (use default)", Config{Filter: FilterConfig{MaxExprLength: 0}}, false},
		{"negative max expr length is invalid", Config{Filter: FilterConfig{MaxExprLength: -1}}, true},
		{"unknown dialect is invalid", Config{Database: DatabaseConfig{Dialect: "mysql"}}, true},
		{"postgres dialect is valid", Config{Database: DatabaseConfig{Dialect: "postgres"}}, false},
		{"unknown zinc version is invalid", Config{Zinc: ZincConfig{EmitVersion: "1.0"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindProjectConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("finds hscore.toml by walking up", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test1", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)
		os.WriteFile(filepath.Join(tmpDir, "test1", "hscore.toml"), []byte(""), DefaultFilePermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findProjectConfig()
		if result == "" {
			t.Fatal("expected to find config file")
		}
		if filepath.Base(result) != "hscore.toml" {
			t.Errorf("expected hscore.toml, got %s", filepath.Base(result))
		}
	})

	t.Run("no config found", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test2", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		if result := findProjectConfig(); result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hscore.toml")
	content := `
[database]
path = "custom.db"
dialect = "postgres"

[filter]
max_expr_length = 1024
`
	if err := os.WriteFile(configPath, []byte(content), DefaultFilePermissions); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Database.Path != "custom.db" {
		t.Errorf("expected database path %q, got %q", "custom.db", cfg.Database.Path)
	}
	if cfg.Database.Dialect != "postgres" {
		t.Errorf("expected dialect %q, got %q", "postgres", cfg.Database.Dialect)
	}
	if cfg.Filter.MaxExprLength != 1024 {
		t.Errorf("expected max_expr_length 1024, got %d", cfg.Filter.MaxExprLength)
	}
	// zinc.emit_version wasn't set in the file but defaults should apply.
	if cfg.Zinc.EmitVersion != "3.0" {
		t.Errorf("expected default zinc emit version %q, got %q", "3.0", cfg.Zinc.EmitVersion)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hscore.toml")

	cfg := &Config{Database: DatabaseConfig{Path: "a.db"}}
	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	reloaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() after Save failed: %v", err)
	}
	if reloaded.Database.Path != "a.db" {
		t.Errorf("expected database path %q, got %q", "a.db", reloaded.Database.Path)
	}

	cfg.Database.Path = "b.db"
	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}
	if _, err := os.Stat(configPath + ".back1"); err != nil {
		t.Error("expected .back1 backup to exist after second save")
	}
}
