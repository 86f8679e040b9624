// Derives per-process and aggregate statistics from one policy's schedule.

package sim

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProcess is returned when a cluster names a process with no input record.
var ErrUnknownProcess = errors.New("unknown process")

// ProcessMetrics holds the statistics of a single process in one schedule.
type ProcessMetrics struct {
	Name       string `json:"name"`
	Arrival    int    `json:"arrival"`
	Burst      int    `json:"burst"`
	FirstStart int    `json:"first_start"` // start of the first cluster
	Completion int    `json:"completion"`  // end of the chronologically last cluster
	Turnaround int    `json:"turnaround"`  // Completion - Arrival
	Waiting    int    `json:"waiting"`     // Turnaround - Burst
	Response   int    `json:"response"`    // FirstStart - Arrival
	Clusters   int    `json:"clusters"`    // number of execution intervals
}

// Metrics aggregates the statistics of one policy run for final reporting.
type Metrics struct {
	Policy        string           `json:"policy"`
	Processes     []ProcessMetrics `json:"processes"` // first-appearance order in the schedule
	AvgTurnaround float64          `json:"avg_turnaround"`
	AvgWaiting    float64          `json:"avg_waiting"`
	AvgResponse   float64          `json:"avg_response"`
	P95Waiting    float64          `json:"p95_waiting"`
	Makespan      int              `json:"makespan"`   // end of the last cluster
	BusyTicks     int              `json:"busy_ticks"` // ticks the processor executed a process
	Utilization   float64          `json:"utilization"`
	Throughput    float64          `json:"throughput"` // completed processes per tick
}

// ComputeMetrics derives per-process turnaround and waiting times from s.
//
// Waiting time is computed from the immutable input record as
// turnaround - original burst, never from runtime state. An empty schedule
// yields empty metrics. Returns ErrUnknownProcess if a cluster names a process
// without a record and ErrInvariantViolation if any waiting time is negative.
func ComputeMetrics(s Schedule, records []ProcessRecord) (*Metrics, error) {
	m := &Metrics{Policy: s.Policy, Processes: make([]ProcessMetrics, 0)}
	if len(s.Clusters) == 0 {
		return m, nil
	}

	byName := make(map[string]ProcessRecord, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	pos := make(map[string]int) // process name -> index in m.Processes
	lastStart := make(map[string]int)
	for _, c := range s.Clusters {
		rec, ok := byName[c.Process]
		if !ok {
			return nil, fmt.Errorf("%w: %s schedule references %q", ErrUnknownProcess, s.Policy, c.Process)
		}
		i, seen := pos[c.Process]
		if !seen {
			pos[c.Process] = len(m.Processes)
			m.Processes = append(m.Processes, ProcessMetrics{
				Name:       rec.Name,
				Arrival:    rec.ArrivalTime,
				Burst:      rec.BurstTime,
				FirstStart: c.Start,
				Completion: c.End,
			})
			lastStart[c.Process] = c.Start
			i = pos[c.Process]
		}
		pm := &m.Processes[i]
		pm.Clusters++
		if c.Start < pm.FirstStart {
			pm.FirstStart = c.Start
		}
		if c.Start >= lastStart[c.Process] {
			lastStart[c.Process] = c.Start
			pm.Completion = c.End
		}
		m.BusyTicks += c.Duration()
		if c.End > m.Makespan {
			m.Makespan = c.End
		}
	}

	turnarounds := make([]int, len(m.Processes))
	waits := make([]int, len(m.Processes))
	responses := make([]int, len(m.Processes))
	for i := range m.Processes {
		pm := &m.Processes[i]
		pm.Turnaround = pm.Completion - pm.Arrival
		pm.Waiting = pm.Turnaround - pm.Burst
		pm.Response = pm.FirstStart - pm.Arrival
		if pm.Waiting < 0 {
			return nil, fmt.Errorf("%w: %s: %s has negative waiting time %d", ErrInvariantViolation, s.Policy, pm.Name, pm.Waiting)
		}
		turnarounds[i] = pm.Turnaround
		waits[i] = pm.Waiting
		responses[i] = pm.Response
	}

	m.AvgTurnaround = CalculateMean(turnarounds)
	m.AvgWaiting = CalculateMean(waits)
	m.AvgResponse = CalculateMean(responses)
	sort.Ints(waits)
	m.P95Waiting = CalculatePercentile(waits, 95)
	if m.Makespan > 0 {
		m.Utilization = float64(m.BusyTicks) / float64(m.Makespan)
		m.Throughput = float64(len(m.Processes)) / float64(m.Makespan)
	}
	return m, nil
}

// Lookup returns the metrics of the named process.
func (m *Metrics) Lookup(name string) (ProcessMetrics, bool) {
	for _, pm := range m.Processes {
		if pm.Name == name {
			return pm, true
		}
	}
	return ProcessMetrics{}, false
}
