package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim/trace"
)

// RunConfig groups the parameters of a multi-policy simulation.
type RunConfig struct {
	Quantum       int              // Round Robin base quantum (>= 1)
	ContextSwitch int              // SJF context-switch cost (>= 0)
	Seed          int64            // master seed for Round Robin aging keys
	Policies      []string         // policies to run; empty runs all of them
	TraceLevel    trace.TraceLevel // "none" (default) or "decisions"
	// KeySource overrides the seeded aging-key source for the named policy.
	// Tests use it to pin Round Robin aging keys.
	KeySource func(policy string) AgingKeySource
}

// DefaultRunConfig returns the parameters used when nothing is configured.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Quantum:    4,
		Seed:       42,
		Policies:   AllSchedulerNames(),
		TraceLevel: trace.TraceLevelNone,
	}
}

// Validate checks parameter ranges and policy names.
func (c RunConfig) Validate() error {
	if c.Quantum < 1 {
		return fmt.Errorf("%w: quantum must be >= 1, got %d", ErrInvalidConfig, c.Quantum)
	}
	if c.ContextSwitch < 0 {
		return fmt.Errorf("%w: context switch must be non-negative, got %d", ErrInvalidConfig, c.ContextSwitch)
	}
	for _, p := range c.Policies {
		if !IsValidScheduler(p) {
			return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, p)
		}
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	return nil
}

func (c RunConfig) policies() []string {
	if len(c.Policies) == 0 {
		return AllSchedulerNames()
	}
	return c.Policies
}

// Result is the outcome of one policy run.
type Result struct {
	RunID        string                 `json:"run_id"`
	Policy       string                 `json:"policy"`
	Schedule     Schedule               `json:"schedule"`
	Metrics      *Metrics               `json:"metrics"`
	Trace        *trace.SimulationTrace `json:"trace,omitempty"` // nil when tracing is disabled
	TraceSummary *trace.TraceSummary    `json:"trace_summary,omitempty"`
}

// RunAll validates records and cfg, then simulates every requested policy over
// the same arrival index. Policies run concurrently; each run owns its process
// copies, ready queue and aging-key source, so runs never share mutable state.
// Every schedule is checked against the records before metrics are derived.
// Results are returned in the requested policy order.
func RunAll(ctx context.Context, records []ProcessRecord, cfg RunConfig) ([]Result, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	idx := BuildArrivalIndex(records)
	policies := cfg.policies()

	// PartitionedRNG is not thread-safe: derive every source up front.
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	schedulers := make([]Scheduler, len(policies))
	traces := make([]*trace.SimulationTrace, len(policies))
	for i, name := range policies {
		var keys AgingKeySource = rng.ForSubsystem(SubsystemPolicy(name))
		if cfg.KeySource != nil {
			if k := cfg.KeySource(name); k != nil {
				keys = k
			}
		}
		if cfg.TraceLevel == trace.TraceLevelDecisions {
			traces[i] = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel, Policy: name})
		}
		schedulers[i] = NewScheduler(name, Config{
			ContextSwitch: cfg.ContextSwitch,
			Quantum:       cfg.Quantum,
			Keys:          keys,
			Trace:         traces[i],
		})
	}

	results := make([]Result, len(policies))
	errs := make([]error, len(policies))
	var wg sync.WaitGroup
	for i := range schedulers {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = runOne(schedulers[i], idx, records, traces[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// RunPolicy simulates a single named policy. It is RunAll restricted to one policy.
func RunPolicy(ctx context.Context, records []ProcessRecord, name string, cfg RunConfig) (*Result, error) {
	cfg.Policies = []string{name}
	results, err := RunAll(ctx, records, cfg)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

func runOne(s Scheduler, idx *ArrivalIndex, records []ProcessRecord, tr *trace.SimulationTrace) (Result, error) {
	runID := uuid.New().String()
	logrus.Infof("run %s: simulating %s over %d processes", runID, s.Name(), idx.Len())

	schedule := s.Schedule(idx)
	if err := CheckSchedule(schedule, records); err != nil {
		return Result{}, err
	}
	metrics, err := ComputeMetrics(schedule, records)
	if err != nil {
		return Result{}, err
	}
	logrus.Infof("run %s: %s produced %d clusters, avg turnaround %.2f, avg waiting %.2f",
		runID, s.Name(), len(schedule.Clusters), metrics.AvgTurnaround, metrics.AvgWaiting)

	res := Result{
		RunID:    runID,
		Policy:   s.Name(),
		Schedule: schedule,
		Metrics:  metrics,
	}
	if tr != nil {
		res.Trace = tr
		res.TraceSummary = trace.Summarize(tr)
	}
	return res, nil
}
