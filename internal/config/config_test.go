package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DataBackend:  BackendSQLite,
		SQLiteDBPath: "./test.db",
		Cache:        CacheConfig{Size: 8, TTL: time.Minute},
		Log:          LogConfig{Level: "info", Format: "text"},
		Display:      DisplayConfig{Name: "User", Theme: ThemeLight},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "valid memory backend without db path",
			mutate: func(c *Config) {
				c.DataBackend = BackendMemory
				c.SQLiteDBPath = ""
			},
			wantErr: false,
		},
		{
			name:    "cache disabled needs no ttl",
			mutate:  func(c *Config) { c.Cache = CacheConfig{} },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "sqlite in memory rejected",
			mutate:      func(c *Config) { c.SQLiteDBPath = ":memory:" },
			wantErr:     true,
			errorString: "in-memory SQLite is not supported",
		},
		{
			name:        "negative cache size",
			mutate:      func(c *Config) { c.Cache.Size = -1 },
			wantErr:     true,
			errorString: "invalid cache size -1: must not be negative",
		},
		{
			name:        "cache enabled without ttl",
			mutate:      func(c *Config) { c.Cache.TTL = 0 },
			wantErr:     true,
			errorString: "invalid cache ttl 0s",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.Log.Level = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.Log.Format = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "invalid theme",
			mutate:      func(c *Config) { c.Display.Theme = "sepia" },
			wantErr:     true,
			errorString: "invalid theme 'sepia': must be light or dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("expected error to contain %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{DataBackend: "nope", Cache: CacheConfig{Size: -2}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 5 {
		t.Fatalf("expected 5 problems, got %d: %v", got, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != BackendSQLite {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.Cache.Size != 16 || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Display.Theme != ThemeLight || cfg.Display.Name != "User" {
		t.Errorf("Display = %+v", cfg.Display)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FINTRACK_DATA_BACKEND", "memory")
	t.Setenv("FINTRACK_CACHE_TTL", "30s")
	t.Setenv("FINTRACK_LOG_LEVEL", "debug")
	t.Setenv("FINTRACK_DISPLAY_THEME", "dark")

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != BackendMemory {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("Cache.TTL = %v", cfg.Cache.TTL)
	}
	if cfg.Log.Level != "debug" || cfg.Display.Theme != ThemeDark {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fintrack.yaml")
	content := "data_backend: memory\ncache:\n  size: 4\ndisplay:\n  name: Sam\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != BackendMemory || cfg.Cache.Size != 4 || cfg.Display.Name != "Sam" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("unset keys keep defaults, got ttl %v", cfg.Cache.TTL)
	}

	if _, err := Load(nil, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("explicit config file that does not exist must fail")
	}
}
