package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim/trace"
)

func TestPriority_MostUrgentFirstWhenFree(t *testing.T) {
	// GIVEN three processes of different priorities
	records := []ProcessRecord{rec("P1", 0, 4, 3), rec("P2", 1, 2, 1), rec("P3", 2, 3, 2)}

	// WHEN the Priority policy runs
	s, m := simulate(t, &PriorityScheduler{}, records)

	// THEN after P1 completes, the more urgent P2 precedes P3
	assert.Equal(t, []Cluster{cl("P1", 0, 4), cl("P2", 4, 6), cl("P3", 6, 9)}, s.Clusters)
	assertTimes(t, m, "P2", 5, 3)
	assertTimes(t, m, "P3", 7, 4)
}

func TestPriority_NoMidBurstPreemption(t *testing.T) {
	// GIVEN a more urgent process arriving while a less urgent one runs
	records := []ProcessRecord{rec("P1", 0, 10, 5), rec("P2", 1, 2, 1)}

	// WHEN the Priority policy runs
	s, _ := simulate(t, &PriorityScheduler{}, records)

	// THEN the running process is not interrupted
	assert.Equal(t, []Cluster{cl("P1", 0, 10), cl("P2", 10, 12)}, s.Clusters)
}

func TestPriority_AgingReordersWaitingProcesses(t *testing.T) {
	// GIVEN P2 (priority 5) waiting since 0 and P3 (priority 4) arriving at 20
	records := []ProcessRecord{rec("P1", 0, 40, 1), rec("P2", 0, 5, 5), rec("P3", 20, 5, 4)}
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions, Policy: PolicyPriority})

	// WHEN the Priority policy runs
	s, _ := simulate(t, &PriorityScheduler{Trace: tr}, records)

	// THEN P2 is promoted to 4 at tick 30 and wins the tie on earlier arrival
	assert.Equal(t, []Cluster{cl("P1", 0, 40), cl("P2", 40, 45), cl("P3", 45, 50)}, s.Clusters)
	require.Len(t, tr.Agings, 1)
	assert.Equal(t, trace.AgingRecord{Process: "P2", Clock: 30, From: 5, To: 4}, tr.Agings[0])
}

func TestPriority_OriginalTestCase(t *testing.T) {
	s, m := simulate(t, &PriorityScheduler{}, classicWorkload())
	assert.Equal(t, []Cluster{cl("P1", 0, 17), cl("P3", 17, 27), cl("P2", 27, 33), cl("P4", 33, 37)}, s.Clusters)
	assert.InDelta(t, 19.5, m.AvgTurnaround, 1e-9)
	assert.InDelta(t, 10.25, m.AvgWaiting, 1e-9)
}
