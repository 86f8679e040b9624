package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusim/sim/trace"
)

// ErrInvalidConfig is returned when simulation parameters fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// WorkloadBundle holds a complete simulation input, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override RunConfig defaults.
type WorkloadBundle struct {
	Quantum       *int            `yaml:"quantum,omitempty" json:"quantum,omitempty"`
	ContextSwitch *int            `yaml:"context_switch,omitempty" json:"context_switch,omitempty"`
	Seed          *int64          `yaml:"seed,omitempty" json:"seed,omitempty"`
	Policies      []string        `yaml:"policies,omitempty" json:"policies,omitempty"`
	TraceLevel    string          `yaml:"trace_level,omitempty" json:"trace_level,omitempty"`
	Processes     []ProcessRecord `yaml:"processes" json:"processes"`
}

// LoadWorkloadBundle reads and parses a YAML workload file.
func LoadWorkloadBundle(path string) (*WorkloadBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}
	return ParseWorkloadBundle(data)
}

// ParseWorkloadBundle parses YAML workload content.
// Unknown fields are rejected so typos surface as errors.
func ParseWorkloadBundle(data []byte) (*WorkloadBundle, error) {
	var bundle WorkloadBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing workload: %w", err)
	}
	return &bundle, nil
}

// Validate checks process records, policy names and parameter ranges.
func (b *WorkloadBundle) Validate() error {
	if err := ValidateRecords(b.Processes); err != nil {
		return err
	}
	for _, p := range b.Policies {
		if !IsValidScheduler(p) {
			return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, p)
		}
	}
	if !trace.IsValidTraceLevel(b.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, b.TraceLevel)
	}
	if b.Quantum != nil && *b.Quantum < 1 {
		return fmt.Errorf("%w: quantum must be >= 1, got %d", ErrInvalidConfig, *b.Quantum)
	}
	if b.ContextSwitch != nil && *b.ContextSwitch < 0 {
		return fmt.Errorf("%w: context_switch must be non-negative, got %d", ErrInvalidConfig, *b.ContextSwitch)
	}
	return nil
}

// Apply overlays the fields set in the bundle onto cfg and returns the result.
func (b *WorkloadBundle) Apply(cfg RunConfig) RunConfig {
	if b.Quantum != nil {
		cfg.Quantum = *b.Quantum
	}
	if b.ContextSwitch != nil {
		cfg.ContextSwitch = *b.ContextSwitch
	}
	if b.Seed != nil {
		cfg.Seed = *b.Seed
	}
	if len(b.Policies) > 0 {
		cfg.Policies = append([]string(nil), b.Policies...)
	}
	if b.TraceLevel != "" {
		cfg.TraceLevel = trace.TraceLevel(b.TraceLevel)
	}
	return cfg
}
