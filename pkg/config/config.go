// Package config loads interpreter settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the per-project configuration file name.
const ProjectFile = ".loxrc.yml"

// Config holds the interactive and runtime settings.
type Config struct {
	Prompt             string        `yaml:"prompt"`
	ContinuationPrompt string        `yaml:"continuation_prompt"`
	Color              bool          `yaml:"color"`
	History            HistoryConfig `yaml:"history"`
	// MaxCallDepth bounds nested calls; zero keeps the interpreter default.
	MaxCallDepth int `yaml:"max_call_depth"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `yaml:"-"`
}

// HistoryConfig configures the persistent REPL history. An empty Path
// disables history.
type HistoryConfig struct {
	Path  string `yaml:"path"`
	Limit int    `yaml:"limit"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config: invalid ")
	b.WriteString(e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		Color:              true,
		History:            HistoryConfig{Limit: 100},
	}
}

// Load reads the YAML file at path. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Source = path

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads settings with precedence: project (.loxrc.yml in
// projectDir) → user (~/.config/lox/config.yml) → defaults. A file that
// exists but cannot be parsed is an error.
func Discover(projectDir string) (*Config, error) {
	candidates := []string{filepath.Join(projectDir, ProjectFile)}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".config", "lox", "config.yml"))
	}

	for _, path := range candidates {
		cfg, err := Load(path)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return Default(), nil
}

// HistoryPath returns the history database path with a leading "~/"
// expanded to the home directory.
func (c *Config) HistoryPath() string {
	path := c.History.Path
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}

func (c *Config) validate() error {
	var issues []string
	if c.History.Limit < 0 {
		issues = append(issues, fmt.Sprintf("history.limit must be non-negative, got %d", c.History.Limit))
	}
	if c.MaxCallDepth < 0 {
		issues = append(issues, fmt.Sprintf("max_call_depth must be non-negative, got %d", c.MaxCallDepth))
	}
	if c.Prompt == "" {
		issues = append(issues, "prompt must not be empty")
	}
	if len(issues) > 0 {
		return &ValidationError{Path: c.Source, Issues: issues}
	}
	return nil
}
