// Package config handles configuration loading for the fetchkit CLI.
//
// It provides functionality for:
//   - Loading configuration from .fetchkit.config.json and friends
//   - Default configuration values
//   - Merging file config with command-line overrides
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the fetchkit CLI configuration.
type Config struct {
	Host      string            `json:"host,omitempty"`
	Port      int               `json:"port,omitempty"`
	Scheme    string            `json:"scheme,omitempty"`
	Version   string            `json:"version,omitempty"`
	BasePath  *string           `json:"basePath,omitempty"`  // nil = default "/api", "" = gateway style
	Timeout   int               `json:"timeout,omitempty"`   // milliseconds
	RateLimit float64           `json:"rateLimit,omitempty"` // requests per second, 0 = unlimited
	Headers   map[string]string `json:"headers,omitempty"`   // Default headers for all requests
	Endpoints string            `json:"endpoints,omitempty"` // Path to the endpoints YAML file
	Verbose   *bool             `json:"verbose,omitempty"`
	NoColor   *bool             `json:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

// StringPtr returns a pointer to a string value.
func StringPtr(s string) *string {
	return &s
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetVerbose returns the verbose setting, defaulting to false.
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetBasePath returns the base-path setting, defaulting to "/api".
func (c *Config) GetBasePath() string {
	if c.BasePath == nil {
		return "/api"
	}
	return *c.BasePath
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Scheme:    "https",
		Timeout:   30000, // 30 seconds
		Endpoints: "endpoints.yaml",
	}
}

// ConfigFilenames contains the possible config file names.
var ConfigFilenames = []string{
	".fetchkit.config.json",
	"fetchkit.config.json",
	".fetchkitrc",
	".fetchkitrc.json",
}

// LoadConfig loads configuration from the specified path, or searches the
// current directory for a known config file name.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Host != "" {
		result.Host = other.Host
	}
	if other.Port > 0 {
		result.Port = other.Port
	}
	if other.Scheme != "" {
		result.Scheme = other.Scheme
	}
	if other.Version != "" {
		result.Version = other.Version
	}
	if other.BasePath != nil {
		result.BasePath = other.BasePath
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.Endpoints != "" {
		result.Endpoints = other.Endpoints
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge headers
	if len(other.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range other.Headers {
			result.Headers[k] = v
		}
	}

	return &result
}

// SaveConfig saves the configuration to a file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
