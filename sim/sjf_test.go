package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSJF_ShortestFirstAfterCurrentFinishes(t *testing.T) {
	// GIVEN P1 running when the shorter P2 arrives
	records := []ProcessRecord{rec("P1", 0, 5, 1), rec("P2", 2, 3, 1)}

	// WHEN SJF runs without context switching
	s, m := simulate(t, &SJFScheduler{}, records)

	// THEN P1 runs to completion and P2 follows
	assert.Equal(t, []Cluster{cl("P1", 0, 5), cl("P2", 5, 8)}, s.Clusters)
	assertTimes(t, m, "P1", 5, 0)
	assertTimes(t, m, "P2", 6, 3)
	assert.InDelta(t, 5.5, m.AvgTurnaround, 1e-9)
	assert.InDelta(t, 1.5, m.AvgWaiting, 1e-9)
}

func TestSJF_ContextSwitchDelaysEveryDispatch(t *testing.T) {
	// GIVEN a context switch of 1 tick
	records := []ProcessRecord{rec("P1", 0, 3, 1), rec("P2", 1, 2, 1)}

	// WHEN SJF runs
	s, m := simulate(t, &SJFScheduler{ContextSwitch: 1}, records)

	// THEN each cluster opens one tick after the processor became free
	assert.Equal(t, []Cluster{cl("P1", 1, 4), cl("P2", 5, 7)}, s.Clusters)
	assertTimes(t, m, "P1", 4, 1)
	assertTimes(t, m, "P2", 6, 4)
}

func TestSJF_NonPreemptive(t *testing.T) {
	// GIVEN a long job followed by a 1-tick job
	records := []ProcessRecord{rec("P1", 0, 10, 1), rec("P2", 1, 1, 1)}

	// WHEN SJF runs
	s, _ := simulate(t, &SJFScheduler{}, records)

	// THEN the running job is never interrupted
	assert.Equal(t, []Cluster{cl("P1", 0, 10), cl("P2", 10, 11)}, s.Clusters)
}

func TestSJF_PicksShortestAmongWaiting(t *testing.T) {
	records := []ProcessRecord{rec("P1", 0, 8, 1), rec("P2", 1, 4, 1), rec("P3", 2, 2, 1)}
	s, _ := simulate(t, &SJFScheduler{}, records)
	assert.Equal(t, []Cluster{cl("P1", 0, 8), cl("P3", 8, 10), cl("P2", 10, 14)}, s.Clusters)
}

func TestSJF_EqualBurstTieBrokenByArrival(t *testing.T) {
	records := []ProcessRecord{rec("P1", 0, 5, 1), rec("P3", 2, 3, 1), rec("P2", 1, 3, 1)}
	s, _ := simulate(t, &SJFScheduler{}, records)
	assert.Equal(t, []Cluster{cl("P1", 0, 5), cl("P2", 5, 8), cl("P3", 8, 11)}, s.Clusters)
}

func TestSJF_IdleGapProducesNoCluster(t *testing.T) {
	records := []ProcessRecord{rec("P1", 0, 2, 1), rec("P2", 5, 1, 1)}
	s, m := simulate(t, &SJFScheduler{}, records)
	assert.Equal(t, []Cluster{cl("P1", 0, 2), cl("P2", 5, 6)}, s.Clusters)
	assertTimes(t, m, "P2", 1, 0)
	assert.Equal(t, 3, m.BusyTicks)
	assert.Equal(t, 6, m.Makespan)
}

func TestSJF_OriginalTestCase(t *testing.T) {
	// GIVEN the classic four-process workload with a 2-tick context switch
	s, m := simulate(t, &SJFScheduler{ContextSwitch: 2}, classicWorkload())

	assert.Equal(t, []Cluster{cl("P1", 2, 19), cl("P2", 21, 27), cl("P3", 29, 39), cl("P4", 41, 45)}, s.Clusters)
	assertTimes(t, m, "P1", 19, 2)
	assertTimes(t, m, "P2", 24, 18)
	assertTimes(t, m, "P3", 35, 25)
	assertTimes(t, m, "P4", 16, 12)
	assert.InDelta(t, 23.5, m.AvgTurnaround, 1e-9)
	assert.InDelta(t, 14.25, m.AvgWaiting, 1e-9)
}
