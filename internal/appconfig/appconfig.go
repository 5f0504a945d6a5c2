// Package appconfig provides configuration loading for the connectgrid
// service: defaults, an optional YAML file, and flag overrides layered on
// top by the CLI.
package appconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration.
type Config struct {
	// Listen is the address the HTTP API binds to.
	Listen string      `yaml:"listen"`
	Log    LogConfig   `yaml:"log"`
	Store  StoreConfig `yaml:"store"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// StoreConfig selects the tenant configuration store.
type StoreConfig struct {
	// Driver is "memory" or "postgres".
	Driver string `yaml:"driver"`
	// DSN is the Postgres connection string; ignored by the memory driver.
	DSN string `yaml:"dsn"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Driver: "memory",
		},
	}
}

// LoadFromFile reads a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Load returns the defaults merged with the optional config file at path.
// An empty path means defaults only; a missing file at an explicit path is
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	fileCfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(fileCfg)
	return cfg, nil
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Listen != "" {
		c.Listen = other.Listen
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
	if other.Store.Driver != "" {
		c.Store.Driver = other.Store.Driver
	}
	if other.Store.DSN != "" {
		c.Store.DSN = other.Store.DSN
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.Store.Driver {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be 'memory' or 'postgres', got %q", c.Store.Driver)
	}
	return nil
}
