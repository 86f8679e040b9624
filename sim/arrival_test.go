package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArrivalIndex_GroupsByTimePreservingOrder(t *testing.T) {
	// GIVEN records out of arrival order, two sharing tick 3
	records := []ProcessRecord{rec("C", 3, 1, 1), rec("A", 0, 1, 1), rec("B", 3, 2, 1)}

	// WHEN the index is built
	idx := BuildArrivalIndex(records)

	// THEN groups keep input order and times are ascending
	assert.Equal(t, []ProcessRecord{rec("C", 3, 1, 1), rec("B", 3, 2, 1)}, idx.At(3))
	assert.Equal(t, []ProcessRecord{rec("A", 0, 1, 1)}, idx.At(0))
	assert.Nil(t, idx.At(1))
	assert.Equal(t, []int{0, 3}, idx.Times())
	assert.Equal(t, 3, idx.LastArrival())
	assert.Equal(t, 3, idx.Len())
	assert.False(t, idx.Empty())
	assert.Equal(t, records, idx.Records())
}

func TestBuildArrivalIndex_Empty(t *testing.T) {
	idx := BuildArrivalIndex(nil)
	assert.True(t, idx.Empty())
	assert.Equal(t, -1, idx.LastArrival())
	assert.Empty(t, idx.Times())
}

func TestBuildArrivalIndex_IndependentOfCallerSlice(t *testing.T) {
	records := []ProcessRecord{rec("A", 0, 1, 1)}
	idx := BuildArrivalIndex(records)
	records[0].BurstTime = 99
	assert.Equal(t, 1, idx.At(0)[0].BurstTime)
}
