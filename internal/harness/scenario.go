package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one pipeline conformance scenario: an IDL source, a
// method to resolve, a JSON argument document, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name, so keep it filename-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// IDL is the Candid source text, inline.
	IDL string `yaml:"idl"`

	// Method is the service method to resolve.
	Method string `yaml:"method"`

	// JSON is the argument document. Empty for zero-argument methods.
	JSON string `yaml:"json,omitempty"`

	// Expect specifies the expected pipeline outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected outcome of running a scenario.
type ExpectClause struct {
	// Valid is whether validation must pass.
	Valid bool `yaml:"valid"`

	// ArgTypes, when set, must equal the resolved argument types exactly.
	ArgTypes []string `yaml:"arg_types,omitempty"`

	// Encoded, when set, must equal the encoded argument tuple exactly.
	// Only meaningful when Valid is true.
	Encoded string `yaml:"encoded,omitempty"`

	// Errors are substrings that must each appear in some validation
	// error. Only meaningful when Valid is false.
	Errors []string `yaml:"errors,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and coherent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.IDL == "" {
		return fmt.Errorf("idl is required")
	}
	if s.Method == "" {
		return fmt.Errorf("method is required")
	}
	if s.Expect.Valid && len(s.Expect.Errors) > 0 {
		return fmt.Errorf("expect: errors listed but valid is true")
	}
	if !s.Expect.Valid && s.Expect.Encoded != "" {
		return fmt.Errorf("expect: encoded set but valid is false")
	}
	return nil
}
