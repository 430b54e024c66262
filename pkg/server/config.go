package server

import (
	"fmt"
	"os"

	"github.com/httpprobe/httpprobe/pkg/httptool"
	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	HTTP    HTTPConfig `yaml:"http"`
}

// HTTPConfig holds request tool settings.
type HTTPConfig struct {
	DefaultTimeoutSecs int    `yaml:"default_timeout_secs"`
	MaxBodyBytes       int64  `yaml:"max_body_bytes"`
	UserAgent          string `yaml:"user_agent"`
	BlockPrivateHosts  bool   `yaml:"block_private_hosts"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Name:    "httpprobe",
		Version: "1.0.0",
		HTTP: HTTPConfig{
			DefaultTimeoutSecs: httptool.DefaultTimeoutSecs,
			MaxBodyBytes:       httptool.DefaultMaxBodyBytes,
		},
	}
}

// LoadConfig reads a YAML file and returns a Config. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing, so
// secrets can live in the environment (e.g. loaded from a .env file) rather
// than being committed in the config. Fields left unset fall back to the
// defaults from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("server: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("server: parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("server: config: name is required")
	}

	if c.Version == "" {
		return fmt.Errorf("server: config: version is required")
	}

	if c.HTTP.DefaultTimeoutSecs < 0 {
		return fmt.Errorf("server: config: default_timeout_secs must not be negative")
	}

	if c.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("server: config: max_body_bytes must not be negative")
	}

	return nil
}
