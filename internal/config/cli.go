package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/hbnb/internal/backend"
)

const cliConfigFile = "config.yaml"

// CLIConfig is hbnbctl's config file.
type CLIConfig struct {
	APIBase string `yaml:"api_base"`
}

// Dir returns the CLI config directory: $HBNB_HOME, or ~/.hbnb.
func Dir() (string, error) {
	if dir := os.Getenv("HBNB_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".hbnb"), nil
}

// ReadCLI reads config.yaml from dir. A missing file yields the defaults.
func ReadCLI(dir string) (*CLIConfig, error) {
	cfg := &CLIConfig{APIBase: backend.DefaultBaseURL}

	data, err := os.ReadFile(filepath.Join(dir, cliConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIBase == "" {
		cfg.APIBase = backend.DefaultBaseURL
	}
	return cfg, nil
}

// LoadCLI is ReadCLI with HBNB_API_BASE taking precedence over the file.
func LoadCLI(dir string) (*CLIConfig, error) {
	cfg, err := ReadCLI(dir)
	if err != nil {
		return nil, err
	}
	if base := os.Getenv("HBNB_API_BASE"); base != "" {
		cfg.APIBase = base
	}
	return cfg, nil
}

func (c *CLIConfig) Save(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cliConfigFile), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
