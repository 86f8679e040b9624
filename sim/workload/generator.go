// Package workload generates synthetic process sets for the scheduling simulator.
package workload

import (
	"fmt"

	"github.com/inference-sim/cpusim/sim"
)

// GenerateProcesses creates spec.Count process records.
// Deterministic given the same spec and seed. Records are in arrival order,
// named NamePrefix1..NamePrefixN, and the first process arrives at tick 0.
func GenerateProcesses(spec *GeneratorSpec) ([]sim.ProcessRecord, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	if spec.Count == 0 {
		return []sim.ProcessRecord{}, nil
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemWorkloadGen)
	arrivals := NewArrivalSampler(spec.Arrival, spec.Rate)
	bursts, err := NewBurstSampler(spec.Burst)
	if err != nil {
		return nil, fmt.Errorf("burst distribution: %w", err)
	}

	prefix := spec.NamePrefix
	if prefix == "" {
		prefix = "P"
	}
	records := make([]sim.ProcessRecord, 0, spec.Count)
	clock := 0
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			clock += arrivals.SampleIAT(rng)
		}
		records = append(records, sim.ProcessRecord{
			Name:        fmt.Sprintf("%s%d", prefix, i+1),
			ArrivalTime: clock,
			BurstTime:   bursts.Sample(rng),
			Priority:    1 + rng.Intn(spec.PriorityMax),
		})
	}
	return records, nil
}
