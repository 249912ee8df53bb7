// Package loader reads structlab configuration from files and the
// environment. Load resolves the three layers in order: built-in
// defaults, then the file, then STRUCTLAB_ environment variables.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/structlab/internal/config"
)

// Load returns the configuration with the file at path and the
// environment applied over the defaults. An empty path skips the file
// layer; a missing file at an explicit path is an error.
func Load(path string) (config.Config, error) {
	cfg := config.Default()

	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile decodes the file at path into cfg. The format follows the
// extension: .toml decodes as TOML, .yaml and .yml as YAML.
func LoadFile(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return &config.ParseError{Path: path, Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &config.ParseError{Path: path, Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", config.ErrUnknownFormat, filepath.Ext(path))
	}
	return nil
}
