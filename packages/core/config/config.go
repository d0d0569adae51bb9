// Package config loads library defaults from an optional project file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable defaults a checker is constructed with.
type Config struct {
	Timeout  int   `json:"timeout,omitempty" yaml:"timeout,omitempty"`   // milliseconds, async wait default
	MaxDepth int   `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"` // synthesizer recursion budget
	NoColor  *bool `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Verbose  *bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:  5000,
		MaxDepth: 32,
	}
}

// WaitTimeout is the Timeout field as a duration.
func (c *Config) WaitTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false.
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// ConfigFilenames contains the possible config file names.
var ConfigFilenames = []string{
	".checkspec.config.json",
	"checkspec.config.json",
	".checkspec.config.yaml",
	"checkspec.config.yaml",
	".checkspecrc",
}

// LoadConfig loads configuration from the specified path or searches
// the current directory when path is empty.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory,
// falling back to defaults when none exists.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	} else {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	}
	return config, nil
}

// Merge merges another config into this one, with other taking
// precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // copy

	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxDepth > 0 {
		result.MaxDepth = other.MaxDepth
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	return &result
}
