// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// EnvAPIURL overrides the configured API base URL when set.
const EnvAPIURL = "ACTA_API_URL"

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	APIURL         string `json:"api_url,omitempty"`         // Base URL of the generation API
	TokenPath      string `json:"token_path,omitempty"`      // Path to the bearer token file
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Timeout for non-streamed requests
	Strict         bool   `json:"strict,omitempty"`          // Schema-validate stream payloads
	Verbose        bool   `json:"verbose,omitempty"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	if c.APIURL != "" {
		parsed, err := url.Parse(c.APIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config error: 'api_url' is not a valid URL: %s", c.APIURL)
		}
	}

	if c.TokenPath != "" {
		if _, err := os.Stat(c.TokenPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: token file not found: %s", c.TokenPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags always win for booleans, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.TokenPath == "" {
		result.TokenPath = defaults.TokenPath
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return result
}

// ResolveAPIURL returns the effective base URL: environment override first,
// then the configured value.
func (c *Config) ResolveAPIURL() string {
	if env := os.Getenv(EnvAPIURL); env != "" {
		return env
	}
	return c.APIURL
}
