package config

import (
	"fmt"
	"time"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "catalogi.yaml"

// Config represents a catalogi.yaml configuration file.
// All values are optional. CLI flags always override config values.
type Config struct {
	Plugin    string        `yaml:"plugin"`
	Resources string        `yaml:"resources"`
	Validate  *bool         `yaml:"validate,omitempty"`
	Service   ServiceConfig `yaml:"service"`
	Storage   StorageConfig `yaml:"storage"`
	Adapter   AdapterConfig `yaml:"adapter"`
	Server    ServerConfig  `yaml:"server"`
}

// ServiceConfig points at the gateway hosting the services.
type ServiceConfig struct {
	Endpoint string            `yaml:"endpoint"`
	Codec    string            `yaml:"codec"`
	Timeout  Duration          `yaml:"timeout,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`
}

// StorageConfig holds invocation journal settings.
// An empty Backend disables the journal.
type StorageConfig struct {
	Dataset     string `yaml:"dataset"`
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// AdapterConfig holds completion notification settings.
// An empty Type disables notifications.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// ServerConfig holds HTTP trigger surface settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// ShouldValidate reports whether configuration validation is enabled.
// Validation is on unless the file turns it off.
func (c *Config) ShouldValidate() bool {
	return c.Validate == nil || *c.Validate
}

// Check reports settings that can never work, before anything is wired.
func (c *Config) Check() error {
	switch c.Storage.Backend {
	case "", "fs", "s3":
	default:
		return fmt.Errorf("storage.backend must be fs, s3 or empty, got %q", c.Storage.Backend)
	}
	if c.Storage.Backend != "" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for backend %q", c.Storage.Backend)
	}

	switch c.Adapter.Type {
	case "", "webhook", "redis":
	default:
		return fmt.Errorf("adapter.type must be webhook, redis or empty, got %q", c.Adapter.Type)
	}
	if c.Adapter.Type != "" && c.Adapter.URL == "" {
		return fmt.Errorf("adapter.url is required for adapter %q", c.Adapter.Type)
	}
	if c.Adapter.Retries != nil && *c.Adapter.Retries < 0 {
		return fmt.Errorf("adapter.retries must be >= 0, got %d", *c.Adapter.Retries)
	}

	switch c.Service.Codec {
	case "", "json", "msgpack":
	default:
		return fmt.Errorf("service.codec must be json or msgpack, got %q", c.Service.Codec)
	}
	return nil
}
