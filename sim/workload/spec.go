package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// GeneratorSpec configures a synthetic process set.
// Loaded from YAML via LoadGeneratorSpec(path).
type GeneratorSpec struct {
	Seed        int64       `yaml:"seed"`
	Count       int         `yaml:"count"`        // number of processes
	Rate        float64     `yaml:"rate"`         // mean arrivals per tick
	Arrival     ArrivalSpec `yaml:"arrival"`      // inter-arrival process
	Burst       DistSpec    `yaml:"burst"`        // burst time distribution
	PriorityMax int         `yaml:"priority_max"` // priorities are uniform in [1, PriorityMax]
	NamePrefix  string      `yaml:"name_prefix,omitempty"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string   `yaml:"process"`
	CV      *float64 `yaml:"cv,omitempty"`
}

// DistSpec parameterizes a burst time distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "gamma": true, "weibull": true, "constant": true,
	}
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "uniform": true, "constant": true,
	}
)

// DefaultGeneratorSpec returns a small Poisson workload with exponential bursts.
func DefaultGeneratorSpec() GeneratorSpec {
	return GeneratorSpec{
		Seed:        42,
		Count:       10,
		Rate:        0.25,
		Arrival:     ArrivalSpec{Process: "poisson"},
		Burst:       DistSpec{Type: "exponential", Params: map[string]float64{"mean": 8}},
		PriorityMax: 10,
		NamePrefix:  "P",
	}
}

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *GeneratorSpec) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", s.Count)
	}
	if err := validateFinitePositive("rate", s.Rate); err != nil {
		return err
	}
	if s.PriorityMax < 1 {
		return fmt.Errorf("priority_max must be >= 1, got %d", s.PriorityMax)
	}
	if !validArrivalProcesses[s.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, gamma, weibull, constant", s.Arrival.Process)
	}
	if s.Arrival.CV != nil {
		if err := validateFinitePositive("arrival.cv", *s.Arrival.CV); err != nil {
			return err
		}
		if s.Arrival.Process == "weibull" && (*s.Arrival.CV < 0.01 || *s.Arrival.CV > 10.4) {
			return fmt.Errorf("weibull CV must be in [0.01, 10.4], got %f", *s.Arrival.CV)
		}
	}
	return validateDistSpec("burst", &s.Burst)
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: gaussian, exponential, uniform, constant", prefix, d.Type)
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
