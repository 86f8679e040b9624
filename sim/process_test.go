package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  ProcessRecord
		wantErr bool
	}{
		{"valid", rec("P1", 0, 1, 1), false},
		{"empty name", rec("", 0, 1, 1), true},
		{"negative arrival", rec("P1", -1, 1, 1), true},
		{"zero burst", rec("P1", 0, 0, 1), true},
		{"zero priority", rec("P1", 0, 1, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidProcess), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecords_DuplicateName(t *testing.T) {
	err := ValidateRecords([]ProcessRecord{rec("P1", 0, 1, 1), rec("P1", 2, 3, 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProcess)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestValidateRecords_EmptyIsValid(t *testing.T) {
	assert.NoError(t, ValidateRecords(nil))
}

func TestRuntimeProcess_TickPastZeroPanics(t *testing.T) {
	// GIVEN a process with one tick left
	arena := newProcessArena(1)
	p := arena.get(arena.add(rec("P1", 0, 1, 1)))

	// WHEN it runs that tick
	p.tick()

	// THEN it is finished and another tick is an invariant violation
	assert.True(t, p.finished())
	assert.Panics(t, func() { p.tick() })
}

func TestRuntimeProcess_PromoteFloorsAtOne(t *testing.T) {
	p := &runtimeProcess{ProcessRecord: rec("P1", 0, 1, 2), CurPriority: 2}
	assert.True(t, p.promote())
	assert.Equal(t, 1, p.CurPriority)
	assert.False(t, p.promote())
	assert.Equal(t, 1, p.CurPriority)
}

func TestProcessArena_CopiesRecords(t *testing.T) {
	// GIVEN a record added to an arena
	original := rec("P1", 2, 5, 3)
	arena := newProcessArena(0)
	h := arena.add(original)

	// WHEN the runtime copy is mutated
	arena.get(h).tick()
	arena.get(h).promote()

	// THEN the record is untouched and the copy tracks its own state
	assert.Equal(t, rec("P1", 2, 5, 3), original)
	assert.Equal(t, 4, arena.get(h).Remaining)
	assert.Equal(t, 2, arena.get(h).CurPriority)
	assert.Equal(t, 1, arena.len())
}
