// Package main provides the chatter server CLI.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server      ServerConfig `yaml:"server"`
	Store       StoreConfig  `yaml:"store"`
	Environment string       `yaml:"environment"`
	Verbose     bool         `yaml:"-"` // set via CLI flag
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address        string   `yaml:"address"`         // HTTP listen address (default: :8080)
	MetricsAddress string   `yaml:"metrics_address"` // Prometheus listen address (default: :9090)
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins (default: all)
}

// StoreConfig contains document store settings.
type StoreConfig struct {
	Path    string `yaml:"path"`     // Badger data directory (default: data/chatter)
	KeyFile string `yaml:"key_file"` // Optional encryption key file; CHATTER_MASTER_KEY takes precedence
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.MetricsAddress == "" {
		c.Server.MetricsAddress = ":9090"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/chatter"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.Address == c.Server.MetricsAddress {
		return fmt.Errorf("server.address and server.metrics_address must differ")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	return nil
}
