// Package models defines the records and configuration shared across the dumper.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxLinks      = 15
	DefaultProgressEvery = 100000
)

// DefaultReservedPrefixes name the image and category namespaces of the German
// wiki the dumper was written for, plus the English image namespace.
var DefaultReservedPrefixes = []string{"Bild:", "Kategorie:", "Image:"}

// DumpConfig holds runtime configuration for a dump run.
// Values come from an optional YAML file; CLI flags override them.
type DumpConfig struct {
	Input            string   `yaml:"input"`
	Format           string   `yaml:"format"`
	Output           string   `yaml:"output"`
	Summary          string   `yaml:"summary"`
	MaxLinks         int      `yaml:"max_links"`
	ReservedPrefixes []string `yaml:"reserved_prefixes"`
	ProgressEvery    int      `yaml:"progress_every"`
	Quiet            bool     `yaml:"quiet"`
	Verbose          bool     `yaml:"verbose"`
}

// LoadConfig reads a YAML config file. A missing path yields an empty config.
func LoadConfig(path string) (*DumpConfig, error) {
	cfg := &DumpConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyDefaults fills every unset field with its default.
func (c *DumpConfig) ApplyDefaults() {
	if c.Format == "" {
		c.Format = OutputFormatSQL.String()
	}
	if c.MaxLinks <= 0 {
		c.MaxLinks = DefaultMaxLinks
	}
	if c.ReservedPrefixes == nil {
		c.ReservedPrefixes = append([]string(nil), DefaultReservedPrefixes...)
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = DefaultProgressEvery
	}
}

// Validate checks combinations the flags alone cannot express.
func (c *DumpConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input dump given")
	}
	format, err := ParseOutputFormat(c.Format)
	if err != nil {
		return err
	}
	if format == OutputFormatSQLite && c.Output == "" {
		return fmt.Errorf("sqlite output needs --output <file>")
	}
	return nil
}
