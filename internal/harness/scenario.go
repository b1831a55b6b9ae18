package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one scripted terminal session.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Data is an optional CUE table path. Empty means the embedded table.
	Data string `yaml:"data,omitempty"`

	// Inputs are the lines typed at the prompt, in order.
	Inputs []string `yaml:"inputs"`

	// Assertions validate the transcript and the resolved outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates part of a session.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Text is used by output_contains and output_lacks.
	Text string `yaml:"text,omitempty"`

	// Count is used by reprompt_count.
	Count int `yaml:"count,omitempty"`

	// Name and Code are used by school; either may be empty.
	Name string `yaml:"name,omitempty"`
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputLacks    = "output_lacks"
	AssertRepromptCount  = "reprompt_count"
	AssertSchool         = "school"
	AssertMedianAbsent   = "median_absent"
)

// LoadScenario reads and parses a scenario YAML file. A relative Data path
// is resolved against the scenario file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Data != "" && !filepath.IsAbs(scenario.Data) {
		scenario.Data = filepath.Join(filepath.Dir(path), scenario.Data)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Inputs) == 0 {
		return fmt.Errorf("inputs list is required and must be non-empty")
	}

	if s.Data != "" {
		if _, err := os.Stat(s.Data); os.IsNotExist(err) {
			return fmt.Errorf("data file not found: %s", s.Data)
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertOutputContains, AssertOutputLacks:
			if a.Text == "" {
				return fmt.Errorf("assertions[%d]: %s requires text", i, a.Type)
			}
		case AssertSchool:
			if a.Name == "" && a.Code == "" {
				return fmt.Errorf("assertions[%d]: school requires name or code", i)
			}
		case AssertRepromptCount, AssertMedianAbsent:
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
	}

	return nil
}
