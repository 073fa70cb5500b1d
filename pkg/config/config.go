// Package config loads pdfjoin preferences from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coderforge/pdfjoin/pkg/pdf"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "PDFJOIN_CONFIG"

// Config holds preferences shared by the CLI and the interactive shell.
type Config struct {
	Validation    string   `yaml:"validation"`     // pdfcpu validation mode: relaxed or strict.
	LogLevel      string   `yaml:"log_level"`      // zap level: debug, info, warn, error.
	Debug         bool     `yaml:"debug"`          // Development logging.
	ExpandDirs    bool     `yaml:"expand_dirs"`    // Expand directory arguments into their PDF files.
	Recursive     bool     `yaml:"recursive"`      // Descend into subdirectories when expanding.
	Exclude       []string `yaml:"exclude"`        // Ignore rules for directory expansion.
	Workers       int      `yaml:"workers"`        // Page counting concurrency; 0 means one per CPU.
	DefaultOutput string   `yaml:"default_output"` // Suggested output path in the shell.
}

// Default returns the built-in preferences.
func Default() Config {
	return Config{
		Validation:    string(pdf.ModeRelaxed),
		LogLevel:      "warn",
		DefaultOutput: "merged.pdf",
	}
}

// Load resolves and reads the config file. An explicit path (argument or
// environment) must exist; the per-user default file is optional.
func Load(path string) (Config, string, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		explicit = false
		path = defaultPath()
	}
	if path == "" {
		return cfg, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, "", nil
		}
		return cfg, "", fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, path, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, path, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := pdf.ParseMode(c.Validation); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// ValidationMode returns the parsed validation mode.
func (c Config) ValidationMode() pdf.Mode {
	mode, err := pdf.ParseMode(c.Validation)
	if err != nil {
		return pdf.ModeRelaxed
	}
	return mode
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pdfjoin", "config.yaml")
}
