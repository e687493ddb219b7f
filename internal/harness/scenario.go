// Package harness runs YAML conformance scenarios against the analysis
// engine and compares their traces against golden files.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a graph, a fixed run token
// for reproducible traces, and the expected converged input set per
// node.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Graph holds the graph description in the line-oriented text format.
	Graph string `yaml:"graph"`

	// RunToken is the fixed token the run is executed under. If empty,
	// "test-run-default" keeps golden comparisons deterministic.
	RunToken string `yaml:"run_token,omitempty"`

	// MaxPasses optionally overrides the engine's pass budget.
	MaxPasses int `yaml:"max_passes,omitempty"`

	// Expect maps node IDs to the expected converged input set, as
	// ascending flow-value identifiers. Nodes not listed are unchecked.
	Expect map[int][]int `yaml:"expect"`
}

// DefaultRunToken is used when a scenario does not fix its own token.
const DefaultRunToken = "test-run-default"

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Graph == "" {
		return fmt.Errorf("graph is required")
	}
	if len(s.Expect) == 0 {
		return fmt.Errorf("expect map is required and must be non-empty")
	}
	if s.MaxPasses < 0 {
		return fmt.Errorf("max_passes must be non-negative")
	}
	return nil
}
