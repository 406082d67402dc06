package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config represents the server configuration file structure.
type Config struct {
	// Addr is the TCP listen address.
	Addr string `yaml:"addr"`

	// Strict rejects spec updates that fail spec.Check.
	Strict bool `yaml:"strict"`

	// OutgoingBuffer is the per session response buffer size.
	OutgoingBuffer int `yaml:"outgoingBuffer"`

	// Projects maps project ids to spec files loaded at start. LoadConfig
	// resolves relative paths against the directory of the config file;
	// otherwise they are relative to the working directory.
	Projects map[string]string `yaml:"projects"`
}

// LoadConfig loads a configuration file in YAML format.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for id, p := range cfg.Projects {
		if !filepath.IsAbs(p) {
			cfg.Projects[id] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "localhost:9140",
		OutgoingBuffer: 100,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("invalid config: empty addr")
	}
	if c.OutgoingBuffer < 0 {
		return fmt.Errorf("invalid config: negative outgoingBuffer %d", c.OutgoingBuffer)
	}
	for id, path := range c.Projects {
		if id == "" || path == "" {
			return fmt.Errorf("invalid config: project %q with spec file %q", id, path)
		}
	}
	return nil
}
