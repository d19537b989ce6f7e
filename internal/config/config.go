// Package config loads certinfo settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Resolve.
const (
	EnvConfig   = "CERTINFO_CONFIG"
	EnvAuditLog = "CERTINFO_AUDIT_LOG"
)

// Config holds settings shared by the command line and the HTTP server.
type Config struct {
	// Timeout bounds connection plus handshake.
	Timeout time.Duration `yaml:"timeout"`

	// Port is used when the target does not name one.
	Port int `yaml:"port"`

	// CAFile is a PEM bundle of trust anchors. Empty selects system roots.
	CAFile string `yaml:"ca_file"`

	// AuditLog is the JSONL audit log path. Empty disables auditing.
	AuditLog string `yaml:"audit_log"`

	Color bool `yaml:"color"`

	Serve ServeConfig `yaml:"serve"`
}

// ServeConfig configures `certinfo serve`.
type ServeConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Timeout: 5 * time.Second,
		Port:    443,
		Color:   true,
		Serve: ServeConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults.
// Keys absent from the file keep their default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve returns the effective file-plus-environment configuration.
// path takes precedence over $CERTINFO_CONFIG; with neither set the defaults
// are used. $CERTINFO_AUDIT_LOG overrides audit_log from the file.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(EnvAuditLog); v != "" {
		cfg.AuditLog = v
	}
	return cfg, nil
}

// Validate checks timeouts are positive and ports are in range.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if err := validatePort("port", c.Port); err != nil {
		return err
	}
	if err := validatePort("serve.port", c.Serve.Port); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		d    time.Duration
	}{
		{"serve.read_timeout", c.Serve.ReadTimeout},
		{"serve.write_timeout", c.Serve.WriteTimeout},
		{"serve.idle_timeout", c.Serve.IdleTimeout},
		{"serve.shutdown_timeout", c.Serve.ShutdownTimeout},
	} {
		if f.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", f.name, f.d)
		}
	}

	return nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}
