package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim/trace"
)

func TestSRTF_PreemptsOnShorterArrival(t *testing.T) {
	// GIVEN progressively shorter arrivals
	records := []ProcessRecord{rec("P1", 0, 8, 1), rec("P2", 1, 4, 1), rec("P3", 2, 2, 1)}

	// WHEN SRTF runs
	s, m := simulate(t, &SRTFScheduler{}, records)

	// THEN each shorter arrival preempts and preempted processes resume later
	assert.Equal(t, []Cluster{
		cl("P1", 0, 1), cl("P2", 1, 2), cl("P3", 2, 4), cl("P2", 4, 7), cl("P1", 7, 14),
	}, s.Clusters)
	assertTimes(t, m, "P1", 14, 6)
	assertTimes(t, m, "P2", 6, 2)
	assertTimes(t, m, "P3", 2, 0)
}

func TestSRTF_EqualRemainingDoesNotPreempt(t *testing.T) {
	// GIVEN P2 arriving with remaining equal to P1's remaining
	records := []ProcessRecord{rec("P1", 0, 4, 1), rec("P2", 1, 3, 1)}

	// WHEN SRTF runs
	s, _ := simulate(t, &SRTFScheduler{}, records)

	// THEN P1 keeps the processor (the comparison is strict)
	assert.Equal(t, []Cluster{cl("P1", 0, 4), cl("P2", 4, 7)}, s.Clusters)
}

func TestSRTF_AgingPromotesStarvedProcess(t *testing.T) {
	// GIVEN two long processes arriving together
	records := []ProcessRecord{rec("A", 0, 200, 3), rec("B", 0, 300, 3)}
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions, Policy: PolicySRTF})

	// WHEN SRTF runs
	s, m := simulate(t, &SRTFScheduler{Trace: tr}, records)

	// THEN B reaches priority 1 after 180 ticks of waiting and takes over,
	// then A does the same after waiting in turn
	assert.Equal(t, []Cluster{
		cl("A", 0, 180), cl("B", 180, 360), cl("A", 360, 380), cl("B", 380, 500),
	}, s.Clusters)
	assertTimes(t, m, "A", 380, 180)
	assertTimes(t, m, "B", 500, 200)

	// AND the trace records both preemptions and the promotions
	require.Len(t, tr.Preemptions, 2)
	assert.Equal(t, trace.PreemptionRecord{Preempted: "A", By: "B", Clock: 180, Remaining: 20}, tr.Preemptions[0])
	assert.Equal(t, "B", tr.Preemptions[1].Preempted)
	assert.Equal(t, 360, tr.Preemptions[1].Clock)
	assert.NotEmpty(t, tr.Agings)
	for _, a := range tr.Agings {
		assert.Equal(t, a.From-1, a.To)
		assert.GreaterOrEqual(t, a.To, 1)
	}
}

func TestSRTF_OriginalTestCase(t *testing.T) {
	s, m := simulate(t, &SRTFScheduler{}, classicWorkload())
	assert.Equal(t, []Cluster{
		cl("P1", 0, 3), cl("P2", 3, 9), cl("P3", 9, 19), cl("P1", 19, 33), cl("P4", 33, 37),
	}, s.Clusters)
	assertTimes(t, m, "P1", 33, 16)
	assertTimes(t, m, "P2", 6, 0)
	assertTimes(t, m, "P3", 15, 5)
	assertTimes(t, m, "P4", 8, 4)
}

func TestSRTFLess_PriorityOneFirst(t *testing.T) {
	top := &runtimeProcess{ProcessRecord: rec("T", 5, 50, 1), Remaining: 50, CurPriority: 1}
	short := &runtimeProcess{ProcessRecord: rec("S", 0, 2, 1), Remaining: 2, CurPriority: 10}
	assert.True(t, srtfLess(top, short))
	assert.False(t, srtfLess(short, top))
}
