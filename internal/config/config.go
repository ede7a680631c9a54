// Package config provides configuration management for ThreatLens.
//
// Config file locations (priority order):
//  1. $THREATLENS_CONFIG
//  2. ./threatlens.yaml
//  3. ~/.config/threatlens/config.yaml
//  4. /etc/threatlens/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr         = ":8080"
	defaultDatabasePath = "./threatlens.db"
	defaultCanvasWidth  = 1600.0
	defaultCanvasHeight = 1200.0
	defaultPollInterval = 30 * time.Second
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Layout.Width <= 0 {
		c.Layout.Width = defaultCanvasWidth
	}
	if c.Layout.Height <= 0 {
		c.Layout.Height = defaultCanvasHeight
	}
	if c.Source.URL != "" && c.Source.PollInterval == nil {
		interval := Duration(defaultPollInterval)
		c.Source.PollInterval = &interval
	}
}

func (c *Config) validate() error {
	if c.Source.URL != "" && c.Source.File != "" {
		return fmt.Errorf("source.url and source.file are mutually exclusive")
	}
	if c.Source.PollInterval != nil && c.Source.PollInterval.Duration() <= 0 {
		return fmt.Errorf("source.poll_interval must be positive")
	}
	if c.Camera.ZoomMin < 0 || c.Camera.ZoomMax < 0 {
		return fmt.Errorf("camera zoom bounds must be non-negative")
	}
	if c.Camera.ZoomMax > 0 && c.Camera.ZoomMin > c.Camera.ZoomMax {
		return fmt.Errorf("camera.zoom_min exceeds camera.zoom_max")
	}
	return nil
}

// PollInterval returns the effective upstream poll interval
func (c *Config) PollInterval() time.Duration {
	if c.Source.PollInterval != nil {
		return c.Source.PollInterval.Duration()
	}
	return defaultPollInterval
}
