// Package config loads the CLI's own YAML configuration file — a
// convenience layer entirely separate from the V3 safe format itself.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the CLI's on-disk settings file.
type Config struct {
	DefaultPath string        `yaml:"default_path"`
	Display     DisplayConfig `yaml:"display"`
}

// DisplayConfig controls terminal output formatting.
type DisplayConfig struct {
	NoColor bool `yaml:"no_color"`
}

// Load reads and validates the config file at path, resolving
// DefaultPath relative to the config file's directory if it is not
// already absolute.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	return &cfg, nil
}

func (c *Config) resolvePaths(configPath string) {
	dir := filepath.Dir(configPath)
	trimmed := strings.TrimSpace(c.DefaultPath)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		c.DefaultPath = trimmed
		return
	}
	c.DefaultPath = filepath.Clean(filepath.Join(dir, trimmed))
}
