package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file, ahead of the search locations.
const EnvConfig = "CYCLORAMA_CONFIG"

// Load builds the configuration from defaults, then the first config file
// found, then command-line flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// searchPaths lists where a config file may live, most specific first.
func searchPaths() []string {
	var paths []string
	if env := os.Getenv(EnvConfig); env != "" {
		paths = append(paths, env)
	}
	return append(paths,
		"cyclorama.yaml",
		"cyclorama.yml",
		UserConfigPath(),
	)
}

// findConfigFile returns the first existing search path, or "".
func findConfigFile() string {
	for _, path := range searchPaths() {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory. When the OS reports none,
// a dot directory in the working directory is used.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		abs, _ := filepath.Abs(".cyclorama")
		return abs
	}
	return filepath.Join(base, "cyclorama")
}

// UserConfigPath is where Save writes.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// loadFromFile merges a YAML file over the values already in cfg. An empty
// file leaves cfg unchanged.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
