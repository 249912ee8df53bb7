package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a named command sequence loaded from a YAML file.
type Scenario struct {
	Name     string   `yaml:"name"`
	Commands []string `yaml:"commands"`
}

// ParseScenario decodes a scenario from YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario has no name")
	}
	if len(sc.Commands) == 0 {
		return nil, fmt.Errorf("scenario %q has no commands", sc.Name)
	}
	return &sc, nil
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	return ParseScenario(data)
}

// IsScenarioFile reports whether the path looks like a YAML scenario.
func IsScenarioFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// RunScenario executes the scenario's commands in order. Each entry may
// itself hold several semicolon-separated commands; outcome line numbers
// refer to entry positions.
func (s *Sequencer) RunScenario(sc *Scenario) Report {
	return s.Run(strings.Join(sc.Commands, "\n"))
}

// RunScenarioFile loads a scenario file and runs it.
func (s *Sequencer) RunScenarioFile(path string) (*Scenario, Report, error) {
	sc, err := LoadScenario(path)
	if err != nil {
		return nil, Report{}, err
	}
	return sc, s.RunScenario(sc), nil
}
