package sim

import (
	"fmt"
	"strings"
)

// QuantumSpan carries a Round Robin process's quantum when a turn opened and closed.
// Display/audit only; never read by a scheduling decision.
type QuantumSpan struct {
	Start int `json:"start"`
	End   int `json:"end"` // 0 when the turn ended with the process finishing
}

// Cluster is one contiguous, uninterrupted execution interval of a single process.
type Cluster struct {
	Process string       `json:"process"`
	Start   int          `json:"start"`
	End     int          `json:"end"`
	Quantum *QuantumSpan `json:"quantum,omitempty"` // Round Robin only
}

// Duration returns the number of ticks executed in the cluster.
func (c Cluster) Duration() int {
	return c.End - c.Start
}

func (c Cluster) String() string {
	if c.Quantum != nil {
		return fmt.Sprintf("(%s %d-%d q%d->%d)", c.Process, c.Start, c.End, c.Quantum.Start, c.Quantum.End)
	}
	return fmt.Sprintf("(%s %d-%d)", c.Process, c.Start, c.End)
}

// Schedule is the ordered cluster sequence produced by one policy run.
type Schedule struct {
	Policy   string    `json:"policy"`
	Clusters []Cluster `json:"clusters"`
}

func (s Schedule) String() string {
	var sb strings.Builder
	sb.WriteString(s.Policy)
	sb.WriteString(": [")
	for i, c := range s.Clusters {
		sb.WriteString(c.String())
		if i < len(s.Clusters)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Executed returns total executed ticks per process name.
func (s Schedule) Executed() map[string]int {
	executed := make(map[string]int)
	for _, c := range s.Clusters {
		executed[c.Process] += c.Duration()
	}
	return executed
}

// Makespan returns the end time of the last cluster, or 0 for an empty schedule.
func (s Schedule) Makespan() int {
	if len(s.Clusters) == 0 {
		return 0
	}
	return s.Clusters[len(s.Clusters)-1].End
}

// CheckSchedule verifies that s is a complete single-processor schedule for records:
// clusters are ordered by start time, have positive length, do not overlap,
// reference only known processes, and execute each process exactly its burst time.
func CheckSchedule(s Schedule, records []ProcessRecord) error {
	bursts := make(map[string]int, len(records))
	for _, r := range records {
		bursts[r.Name] = r.BurstTime
	}
	prevEnd := 0
	for i, c := range s.Clusters {
		if _, ok := bursts[c.Process]; !ok {
			return fmt.Errorf("%w: %s cluster %d references unknown process %q", ErrInvariantViolation, s.Policy, i, c.Process)
		}
		if c.End <= c.Start {
			return fmt.Errorf("%w: %s cluster %d %v has non-positive length", ErrInvariantViolation, s.Policy, i, c)
		}
		if i > 0 && c.Start < prevEnd {
			return fmt.Errorf("%w: %s cluster %d %v overlaps previous cluster ending at %d", ErrInvariantViolation, s.Policy, i, c, prevEnd)
		}
		prevEnd = c.End
	}
	executed := s.Executed()
	for _, r := range records {
		if executed[r.Name] != r.BurstTime {
			return fmt.Errorf("%w: %s executed %s for %d ticks, burst is %d",
				ErrInvariantViolation, s.Policy, r.Name, executed[r.Name], r.BurstTime)
		}
	}
	return nil
}
