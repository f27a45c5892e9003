// Package config loads the dashboard configuration from YAML with
// environment variable overrides. Every field has a usable default so the
// binary runs with no configuration at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the crossmarket dashboard.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Logging  Logging  `yaml:"logging"`
	Web      Web      `yaml:"web"`
}

// Server holds network listener configuration. The dashboard is a local
// single-user tool, so the default host binds loopback only.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Database points at the SQLite file. The file is opened read-only and is
// never created by the dashboard.
type Database struct {
	Path string `yaml:"path"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Web points at an optional directory of static frontend assets. When the
// directory does not exist the server simply serves the JSON API.
type Web struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Server:   Server{Host: "127.0.0.1", Port: 8080},
		Database: Database{Path: "crossmarket.db"},
		Logging:  Logging{Level: "info", Format: "json"},
		Web:      Web{Dir: "web"},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load builds the configuration: defaults first, then the YAML file at path
// if it exists, then environment variable overrides. A missing file is not
// an error so the dashboard starts with zero setup; a malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CROSSMARKET_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("WEB_DIR"); v != "" {
		cfg.Web.Dir = v
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Validate checks the configuration for values the server cannot start
// with. Errors name the offending field path.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d is outside 1-65535", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path: must not be empty")
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format: %q is not one of json, text", c.Logging.Format)
	}
	return nil
}

// Addr returns the host:port string the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
