package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// rec builds a ProcessRecord.
func rec(name string, arrival, burst, priority int) ProcessRecord {
	return ProcessRecord{Name: name, ArrivalTime: arrival, BurstTime: burst, Priority: priority}
}

// cl builds a cluster without quantum information.
func cl(name string, start, end int) Cluster {
	return Cluster{Process: name, Start: start, End: end}
}

// rrCl builds a Round Robin cluster carrying its start and end quantum.
func rrCl(name string, start, end, q0, q1 int) Cluster {
	return Cluster{Process: name, Start: start, End: end, Quantum: &QuantumSpan{Start: q0, End: q1}}
}

// simulate runs s over records and requires a complete, consistent schedule.
func simulate(t *testing.T, s Scheduler, records []ProcessRecord) (Schedule, *Metrics) {
	t.Helper()
	require.NoError(t, ValidateRecords(records))
	schedule := s.Schedule(BuildArrivalIndex(records))
	require.NoError(t, CheckSchedule(schedule, records), "schedule: %v", schedule)
	m, err := ComputeMetrics(schedule, records)
	require.NoError(t, err)
	return schedule, m
}

// assertTimes checks turnaround and waiting of one process.
func assertTimes(t *testing.T, m *Metrics, name string, turnaround, waiting int) {
	t.Helper()
	pm, ok := m.Lookup(name)
	require.True(t, ok, "no metrics for %s", name)
	require.Equal(t, turnaround, pm.Turnaround, "%s turnaround", name)
	require.Equal(t, waiting, pm.Waiting, "%s waiting", name)
}

// classicWorkload is the four-process textbook workload used across policy tests.
func classicWorkload() []ProcessRecord {
	return []ProcessRecord{
		rec("P1", 0, 17, 4),
		rec("P2", 3, 6, 9),
		rec("P3", 4, 10, 2),
		rec("P4", 29, 4, 8),
	}
}
