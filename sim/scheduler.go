package sim

import (
	"fmt"
	"math/rand"

	"github.com/inference-sim/cpusim/sim/trace"
)

// Scheduler simulates one policy over an arrival index.
// Schedule returns the ordered cluster sequence covering every indexed
// process from dispatch to completion. An empty index yields an empty schedule.
type Scheduler interface {
	Name() string
	Schedule(idx *ArrivalIndex) Schedule
}

// Policy names accepted by NewScheduler.
const (
	PolicySJF        = "sjf"
	PolicySRTF       = "srtf"
	PolicyPriority   = "priority"
	PolicyRoundRobin = "round-robin"
)

// ValidSchedulers is the set of recognized scheduler names.
var ValidSchedulers = map[string]bool{
	PolicySJF:        true,
	PolicySRTF:       true,
	PolicyPriority:   true,
	PolicyRoundRobin: true,
}

// IsValidScheduler returns true if name is a recognized scheduler.
func IsValidScheduler(name string) bool {
	return ValidSchedulers[name]
}

// AllSchedulerNames returns every policy in reporting order.
func AllSchedulerNames() []string {
	return []string{PolicySJF, PolicySRTF, PolicyPriority, PolicyRoundRobin}
}

// Config carries the scalar simulation parameters shared by all policies.
type Config struct {
	ContextSwitch int // SJF: ticks spent switching in a newly dispatched process
	Quantum       int // Round Robin: base quantum assigned at admission (must be >= 1)
	// Keys supplies Round Robin aging-key draws. Nil uses an unseeded source.
	Keys AgingKeySource
	// Trace receives the run's decisions. Nil disables tracing.
	Trace *trace.SimulationTrace
}

// NewScheduler creates a Scheduler by name.
// Valid names are defined in ValidSchedulers.
// Panics on unrecognized names; callers validate with IsValidScheduler first.
func NewScheduler(name string, cfg Config) Scheduler {
	if !IsValidScheduler(name) {
		panic(fmt.Sprintf("unknown scheduler %q", name))
	}
	switch name {
	case PolicySJF:
		return &SJFScheduler{ContextSwitch: cfg.ContextSwitch, Trace: cfg.Trace}
	case PolicySRTF:
		return &SRTFScheduler{Trace: cfg.Trace}
	case PolicyPriority:
		return &PriorityScheduler{Trace: cfg.Trace}
	case PolicyRoundRobin:
		keys := cfg.Keys
		if keys == nil {
			keys = rand.New(rand.NewSource(rand.Int63()))
		}
		return &RoundRobinScheduler{Quantum: cfg.Quantum, Keys: keys, Trace: cfg.Trace}
	default:
		panic(fmt.Sprintf("unhandled scheduler %q", name))
	}
}
