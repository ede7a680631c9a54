package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Source   SourceConfig   `yaml:"source"`
	Layout   LayoutConfig   `yaml:"layout"`
	Camera   CameraConfig   `yaml:"camera"`
	Filter   FilterConfig   `yaml:"filter,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds saved-view store settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SourceConfig selects where graph data comes from. URL and File are
// mutually exclusive; with neither set the server shows the built-in
// demo graph.
type SourceConfig struct {
	URL          string    `yaml:"url,omitempty"`
	PollInterval *Duration `yaml:"poll_interval,omitempty"`
	File         string    `yaml:"file,omitempty"`
}

// LayoutConfig holds force layout tunables
type LayoutConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Iterations int     `yaml:"iterations,omitempty"`
	Margin     float64 `yaml:"margin,omitempty"`
}

// CameraConfig holds zoom bounds handed to clients on startup
type CameraConfig struct {
	ZoomMin float64 `yaml:"zoom_min,omitempty"`
	ZoomMax float64 `yaml:"zoom_max,omitempty"`
}

// FilterConfig holds the default inbound filter applied before
// normalization
type FilterConfig struct {
	NodeTypes []string `yaml:"node_types,omitempty"`
	EdgeTypes []string `yaml:"edge_types,omitempty"`
	TimeRange string   `yaml:"time_range,omitempty"`
	Limit     int      `yaml:"limit,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
