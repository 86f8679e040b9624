package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// BurstSampler generates burst times.
type BurstSampler interface {
	// Sample returns a burst time in ticks (>= 1).
	Sample(rng *rand.Rand) int
}

// GaussianSampler produces clamped Gaussian burst times.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int {
	if s.min == s.max {
		return atLeastOne(s.min)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	return atLeastOne(int(math.Round(clamped)))
}

// ExponentialSampler produces exponentially-distributed burst times.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int {
	return atLeastOne(int(math.Round(rng.ExpFloat64() * s.mean)))
}

// UniformSampler produces burst times uniform in [min, max].
type UniformSampler struct {
	min, max int
}

func (s *UniformSampler) Sample(rng *rand.Rand) int {
	return atLeastOne(s.min + rng.Intn(s.max-s.min+1))
}

// ConstantSampler always returns the same burst time.
type ConstantSampler struct {
	value int
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int {
	return atLeastOne(s.value)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewBurstSampler creates a BurstSampler from a DistSpec.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    int(spec.Params["min"]),
			max:    int(spec.Params["max"]),
		}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int(spec.Params["min"]), int(spec.Params["max"])
		if hi < lo {
			return nil, fmt.Errorf("uniform distribution: max %d < min %d", hi, lo)
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int(spec.Params["value"])}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
