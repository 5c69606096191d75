// Package config loads client settings for the infermedica command.
//
// Settings come from an optional YAML file and are then overridden by
// INFERMEDICA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client settings.
type Config struct {
	AppID   string        `yaml:"appId"`
	AppKey  string        `yaml:"appKey"`
	BaseURL string        `yaml:"baseUrl"`
	Model   string        `yaml:"model"`
	DevMode bool          `yaml:"devMode"`
	Timeout time.Duration `yaml:"timeout"`
}

// ErrMissingCredentials is returned by Validate when the app id or key is empty.
var ErrMissingCredentials = errors.New("config: app id and app key are required")

// Load reads the YAML file at path, if path is non-empty, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.AppID = getenv("INFERMEDICA_APP_ID", c.AppID)
	c.AppKey = getenv("INFERMEDICA_APP_KEY", c.AppKey)
	c.BaseURL = getenv("INFERMEDICA_URL", c.BaseURL)
	c.Model = getenv("INFERMEDICA_MODEL", c.Model)

	if v := os.Getenv("INFERMEDICA_DEV_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("INFERMEDICA_DEV_MODE: %w", err)
		}
		c.DevMode = b
	}
	if v := os.Getenv("INFERMEDICA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INFERMEDICA_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks that credentials are present.
func (c *Config) Validate() error {
	if c.AppID == "" || c.AppKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
