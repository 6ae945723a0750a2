// Package testutil loads the YAML conformance scenarios shared by the
// package tests.
package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScenariosDir is the scenario directory relative to the module root.
const ScenariosDir = "testdata/scenarios"

// Modes a scenario can run in.
const (
	ModeRun    = "run"
	ModeChunks = "chunks"
	ModeCheck  = "check"
	ModeFormat = "format"
	ModeParens = "parens"
	ModeRPN    = "rpn"
)

// Scenario is one program plus its expected observable behavior.
type Scenario struct {
	Name   string   `yaml:"name"`
	Mode   string   `yaml:"mode"`
	Source string   `yaml:"source"`
	Chunks []string `yaml:"chunks"`
	Tags   []string `yaml:"tags"`
	Expect Expected `yaml:"expect"`

	// Path is the file the scenario was loaded from.
	Path string `yaml:"-"`
}

// Expected describes the outcome. Exact text fields are compared only
// when Contains fields are empty.
type Expected struct {
	Status         string `yaml:"status"`
	Stdout         string `yaml:"stdout"`
	Stderr         string `yaml:"stderr"`
	StdoutContains string `yaml:"stdout_contains"`
	StderrContains string `yaml:"stderr_contains"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if s.Mode == "" {
		s.Mode = ModeRun
	}
	if s.Expect.Status == "" {
		s.Expect.Status = "ok"
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	switch s.Mode {
	case ModeRun, ModeCheck, ModeFormat, ModeParens, ModeRPN:
		if len(s.Chunks) > 0 {
			return errors.New("chunks are only allowed in chunks mode")
		}
	case ModeChunks:
		if len(s.Chunks) == 0 {
			return errors.New("chunks mode needs at least one chunk")
		}
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	switch s.Expect.Status {
	case "ok", "syntax", "runtime":
	default:
		return fmt.Errorf("unknown status %q", s.Expect.Status)
	}
	return nil
}

// ListScenarios returns the scenario files under root in name order.
func ListScenarios(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yml" || ext == ".yaml" {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// HasTag reports whether the scenario carries tag.
func (s *Scenario) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
