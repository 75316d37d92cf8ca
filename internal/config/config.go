// Package config handles loading and saving user configuration for cooljigate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.yaml"

const (
	defaultBaseURL = "http://cooljugator.com/ru"
	defaultTimeout = 30 * time.Second
)

// Config holds all user configuration.
type Config struct {
	BaseURL   string        `yaml:"base_url"`             // Conjugation site prefix
	CacheDir  string        `yaml:"cache_dir,omitempty"`  // Empty means the system temp dir
	Timeout   time.Duration `yaml:"timeout"`              // Per-request timeout, 0 disables it
	UserAgent string        `yaml:"user_agent,omitempty"` // Sent with every page request
	Postfix   string        `yaml:"postfix,omitempty"`    // Extra postfix tokens added to every line
	OutputDir string        `yaml:"output_dir,omitempty"` // Where --write puts its files
	Anki      AnkiConfig    `yaml:"anki"`
}

// AnkiConfig holds defaults for exporting into an Anki deck.
type AnkiConfig struct {
	Deck  string   `yaml:"deck,omitempty"`  // Deck name; empty picks the first deck
	Model string   `yaml:"model,omitempty"` // Note type name; empty picks the first basic type
	Tags  []string `yaml:"tags,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL:   defaultBaseURL,
		Timeout:   defaultTimeout,
		OutputDir: ".",
		Anki: AnkiConfig{
			Tags: []string{"russian", "conjugation"},
		},
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; fields left out of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Path returns the configuration file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cooljigate"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
