package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSchedule_Violations(t *testing.T) {
	records := []ProcessRecord{rec("A", 0, 2, 1), rec("B", 0, 2, 1)}
	tests := []struct {
		name     string
		clusters []Cluster
		wantErr  bool
	}{
		{"valid", []Cluster{cl("A", 0, 2), cl("B", 2, 4)}, false},
		{"valid with gap", []Cluster{cl("A", 0, 2), cl("B", 5, 7)}, false},
		{"unknown process", []Cluster{cl("A", 0, 2), cl("Z", 2, 4)}, true},
		{"zero length", []Cluster{cl("A", 0, 2), cl("B", 2, 2), cl("B", 2, 4)}, true},
		{"overlap", []Cluster{cl("A", 0, 2), cl("B", 1, 3)}, true},
		{"under-executed", []Cluster{cl("A", 0, 2), cl("B", 2, 3)}, true},
		{"over-executed", []Cluster{cl("A", 0, 3), cl("B", 3, 5)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSchedule(Schedule{Policy: "test", Clusters: tc.clusters}, records)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvariantViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchedule_StringAndAccessors(t *testing.T) {
	s := Schedule{Policy: PolicyRoundRobin, Clusters: []Cluster{rrCl("A", 0, 4, 4, 5), cl("B", 4, 6)}}
	assert.Equal(t, "round-robin: [(A 0-4 q4->5) (B 4-6)]", s.String())
	assert.Equal(t, map[string]int{"A": 4, "B": 2}, s.Executed())
	assert.Equal(t, 6, s.Makespan())
	assert.Equal(t, 0, Schedule{}.Makespan())
}
