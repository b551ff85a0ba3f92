package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FINTRACK_DATA_BACKEND.
const EnvPrefix = "FINTRACK"

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Config struct {
	// Backend selection
	DataBackend string `mapstructure:"data_backend"`

	// Database
	SQLiteDBPath string `mapstructure:"sqlite_db_path"`

	// Memory backend seed files
	DataDirectory string `mapstructure:"data_directory"`

	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	Display DisplayConfig `mapstructure:"display"`
}

// CacheConfig sizes the read cache in front of the store. Size 0 disables it.
type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DisplayConfig holds the values used until the user saves their own.
type DisplayConfig struct {
	Name  string `mapstructure:"name"`
	Theme string `mapstructure:"theme"`
}

var defaults = map[string]any{
	"data_backend":   BackendSQLite,
	"sqlite_db_path": defaultDBPath(),
	"data_directory": "data",
	"cache.size":     16,
	"cache.ttl":      5 * time.Minute,
	"log.level":      "warn",
	"log.format":     "text",
	"display.name":   "User",
	"display.theme":  ThemeLight,
}

func defaultDBPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fintrack", "fintrack.db")
	}
	return filepath.Join(".", "data", "fintrack.db")
}

// NewViper returns a viper instance with defaults and FINTRACK_* environment
// overrides registered. Callers may bind flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile when given, otherwise an optional config.yaml from
// the user config directory or the working directory, and decodes the result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "fintrack"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	// Validate data backend
	validBackends := []string{BackendMemory, BackendSQLite}
	if !slices.Contains(validBackends, c.DataBackend) {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == BackendSQLite {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if c.SQLiteDBPath == ":memory:" || strings.HasPrefix(c.SQLiteDBPath, "file::memory:") {
			errs = append(errs, "in-memory SQLite is not supported, use the memory backend instead")
		}
	}

	if c.Cache.Size < 0 {
		errs = append(errs, fmt.Sprintf("invalid cache size %d: must not be negative", c.Cache.Size))
	}
	if c.Cache.Size > 0 && c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Sprintf("invalid cache ttl %v: must be positive when the cache is enabled", c.Cache.TTL))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of %v", c.Log.Level, validLevels))
	}
	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be one of %v", c.Log.Format, validFormats))
	}

	if c.Display.Theme != ThemeLight && c.Display.Theme != ThemeDark {
		errs = append(errs, fmt.Sprintf("invalid theme '%s': must be light or dark", c.Display.Theme))
	}

	// Return combined errors
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
