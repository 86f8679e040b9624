// Defines the ProcessRecord input type and the policy-owned runtime copies
// that a single simulation run mutates.

package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProcess is returned when a process record fails validation.
	ErrInvalidProcess = errors.New("invalid process")
	// ErrInvariantViolation signals a defect in a policy implementation:
	// overlapping clusters, over- or under-executed bursts, negative waiting time.
	ErrInvariantViolation = errors.New("scheduling invariant violated")
)

// ProcessRecord describes one task supplied to the simulator.
// Records are never mutated after creation; every policy run works on its own copies.
type ProcessRecord struct {
	Name        string `yaml:"name" json:"name"`
	ArrivalTime int    `yaml:"arrival" json:"arrival"`
	BurstTime   int    `yaml:"burst" json:"burst"`
	Priority    int    `yaml:"priority" json:"priority"` // 1 = most urgent
}

// Validate checks the field ranges of a single record.
func (p ProcessRecord) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProcess)
	}
	if p.ArrivalTime < 0 {
		return fmt.Errorf("%w: %s: arrival time must be non-negative, got %d", ErrInvalidProcess, p.Name, p.ArrivalTime)
	}
	if p.BurstTime < 1 {
		return fmt.Errorf("%w: %s: burst time must be >= 1, got %d", ErrInvalidProcess, p.Name, p.BurstTime)
	}
	if p.Priority < 1 {
		return fmt.Errorf("%w: %s: priority must be >= 1, got %d", ErrInvalidProcess, p.Name, p.Priority)
	}
	return nil
}

func (p ProcessRecord) String() string {
	return fmt.Sprintf("%s %d %d %d", p.Name, p.ArrivalTime, p.BurstTime, p.Priority)
}

// ValidateRecords validates every record and rejects duplicate names.
// An empty slice is valid and simulates to an empty schedule.
func ValidateRecords(records []ProcessRecord) error {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate process name %q", ErrInvalidProcess, r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

// handle indexes a runtimeProcess inside the processArena of one run.
type handle int

const noProcess handle = -1

// runtimeProcess is a policy-owned mutable copy of a ProcessRecord.
// Fields a policy does not use stay at their zero value.
type runtimeProcess struct {
	ProcessRecord
	Remaining   int // ticks left; reaches 0 exactly when the process finishes
	CurPriority int // SRTF / Priority: aged priority
	Quantum     int // Round Robin: current quantum
	AgingKey    int // Round Robin: static ordering key drawn at admission
}

// tick executes one tick of the process.
// Running a finished process is a policy defect and panics.
func (p *runtimeProcess) tick() {
	if p.Remaining <= 0 {
		panic(fmt.Sprintf("tick: process %s has no remaining burst", p.Name))
	}
	p.Remaining--
}

func (p *runtimeProcess) finished() bool {
	return p.Remaining == 0
}

// promote lowers CurPriority by one (more urgent), floored at 1.
// Returns true if the priority changed.
func (p *runtimeProcess) promote() bool {
	if p.CurPriority > 1 {
		p.CurPriority--
		return true
	}
	return false
}

// processArena owns every runtimeProcess of a single run.
// Ready sets, the running slot and the finished set refer to entries by handle.
type processArena struct {
	procs []runtimeProcess
}

func newProcessArena(capacity int) *processArena {
	return &processArena{procs: make([]runtimeProcess, 0, capacity)}
}

// add copies rec into the arena and returns its handle.
func (a *processArena) add(rec ProcessRecord) handle {
	a.procs = append(a.procs, runtimeProcess{
		ProcessRecord: rec,
		Remaining:     rec.BurstTime,
		CurPriority:   rec.Priority,
	})
	return handle(len(a.procs) - 1)
}

// get returns the process for h. The pointer is only valid until the next add.
func (a *processArena) get(h handle) *runtimeProcess {
	return &a.procs[h]
}

func (a *processArena) len() int {
	return len(a.procs)
}
