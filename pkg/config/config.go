// Package config loads the configuration file of nfsh.
//
// The file is YAML and lives at $NFSH_CONFIG, $XDG_CONFIG_HOME/nfsh/config.yaml
// or ~/.config/nfsh/config.yaml, whichever comes first. Fields absent from the
// file keep their default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"src.nfsh.sh/pkg/env"
)

// Config holds the nfsh configuration.
type Config struct {
	// Prompt printed before reading each interactive line.
	Prompt  string        `yaml:"prompt"`
	History HistoryConfig `yaml:"history"`
	// Path of the debug log; empty disables logging.
	Log string `yaml:"log"`
}

// HistoryConfig controls the command history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// How many of the most recent commands the editor walks through; 0 means
	// all.
	MaxRecall int `yaml:"max_recall"`
}

// DefaultPrompt is the prompt used when none is configured.
const DefaultPrompt = "nfsh> "

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prompt: DefaultPrompt,
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir(), "db"),
		},
	}
}

var errNegativeMaxRecall = errors.New("history.max_recall must not be negative")

// Load reads the config from the standard location. If the file doesn't
// exist, it returns the default config.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from the given path. If the file doesn't exist,
// it returns the default config.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.History.MaxRecall < 0 {
		return nil, fmt.Errorf("parse config %s: %w", path, errNegativeMaxRecall)
	}
	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Log = expandHome(cfg.Log)
	return cfg, nil
}

// Path returns the path of the config file.
func Path() string {
	if p := os.Getenv(env.NFSH_CONFIG); p != "" {
		return p
	}
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "nfsh", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nfsh", "config.yaml")
}

func dataDir() string {
	if dir := os.Getenv(env.XDG_DATA_HOME); dir != "" {
		return filepath.Join(dir, "nfsh")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nfsh")
}

// Expands a leading ~/ to the home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
