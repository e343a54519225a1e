package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the user's home directory when no config path is given
const DefaultFile = ".vela.yaml"

// Config holds settings shared by every run mode. Command line flags override them.
type Config struct {
	Verbose     bool     `yaml:"verbose"`      // debug logging
	NoColor     bool     `yaml:"no_color"`     // plain terminal output
	SourceDirs  []string `yaml:"source_dirs"`  // VeLa code loaded at startup
	MaxSteps    int      `yaml:"max_steps"`    // evaluation step budget, 0 = unlimited
	HistoryFile string   `yaml:"history_file"` // REPL history
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{HistoryFile: ".vela_history"}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".vela_history")
	}
	return cfg
}

// DefaultPath returns the path of the config file in the home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFile
	}
	return filepath.Join(home, DefaultFile)
}

// Load reads a YAML config file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("config %s: max_steps must not be negative, found %d", path, cfg.MaxSteps)
	}

	return cfg, nil
}
