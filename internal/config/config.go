// Package config loads coolc's optional project-level configuration file,
// `.coolc.yaml`: a small yaml.v3-tagged struct, unmarshalled over the
// defaults, with any field left at its zero value defaulted again afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ColorMode controls when internal/diagnostics emits ANSI color.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the top-level `.coolc.yaml` shape.
type Config struct {
	// Color selects auto/always/never; auto defers to isatty on the output
	// stream (internal/diagnostics).
	Color ColorMode `yaml:"color,omitempty"`

	// MaxErrors stops `coolc build` from printing more than this many
	// diagnostics per run; 0 means unlimited.
	MaxErrors int `yaml:"maxErrors,omitempty"`

	// InferenceIterations bounds checker.Inferencer's fixed-point loop; fed
	// straight into checker.Config.MaxInferenceIterations.
	InferenceIterations int `yaml:"inferenceIterations,omitempty"`
}

// Default returns the configuration coolc uses when no `.coolc.yaml` is
// found, or when one is found but omits a field.
func Default() Config {
	return Config{
		Color:               ColorAuto,
		MaxErrors:           0,
		InferenceIterations: 10,
	}
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.InferenceIterations == 0 {
		c.InferenceIterations = 10
	}
}

// Load reads and parses a `.coolc.yaml` file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses `.coolc.yaml` content from bytes.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Find searches for `.coolc.yaml` starting at dir and walking up through
// parent directories. It returns "" with a nil error when no config file
// exists anywhere in the chain — that's not an error, it just means
// Default() applies.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ".coolc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadOrDefault loads `.coolc.yaml` starting the search at dir, falling
// back to Default() if none exists.
func LoadOrDefault(dir string) (Config, error) {
	path, err := Find(dir)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
