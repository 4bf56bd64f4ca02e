package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestNextSlot(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"on the hour rounds to half past", at(13, 0), at(13, 30)},
		{"mid half-hour rounds up to half past", at(13, 12), at(13, 30)},
		{"exactly half past stays at half past", at(13, 30), at(13, 30)},
		{"past half-hour rounds to next hour", at(13, 31), at(14, 0)},
		{"late minute rounds to next hour", at(13, 59), at(14, 0)},
		{"seconds are discarded", at(13, 30).Add(45 * time.Second), at(13, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSlot(tt.now))
		})
	}
}

func TestNextSlot_RollsOverMidnight(t *testing.T) {
	got := NextSlot(at(23, 45))
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestAvailable_GapsBetweenReservations(t *testing.T) {
	reserved := []Slot{
		{Start: at(14, 0), End: at(15, 0)},
		{Start: at(16, 0), End: at(17, 0)},
	}
	got := Available(at(13, 10), reserved, at(23, 30))

	require.Len(t, got, 3)
	assert.Equal(t, Slot{Start: at(13, 30), End: at(14, 0)}, got[0])
	assert.Equal(t, Slot{Start: at(15, 0), End: at(16, 0)}, got[1])
	assert.Equal(t, Slot{Start: at(17, 0), End: at(23, 30)}, got[2])
}

func TestAvailable_NoReservations(t *testing.T) {
	got := Available(at(9, 42), nil, at(23, 30))

	require.Len(t, got, 1)
	assert.Equal(t, Slot{Start: at(10, 0), End: at(23, 30)}, got[0])
}

func TestAvailable_ClosingBeforeRoundedNow(t *testing.T) {
	assert.Empty(t, Available(at(23, 45), nil, at(23, 30)))
	assert.Empty(t, Available(at(23, 30), nil, at(23, 30)))
}

func TestAvailable_ReservationStartsAtCursor(t *testing.T) {
	reserved := []Slot{{Start: at(13, 30), End: at(15, 0)}}
	got := Available(at(13, 0), reserved, at(23, 30))

	require.Len(t, got, 1)
	assert.Equal(t, Slot{Start: at(15, 0), End: at(23, 30)}, got[0])
}

func TestAvailable_OverlappingInputMergesViaCursor(t *testing.T) {
	// Overlaps should never appear, but the cursor must not move
	// backward when they do.
	reserved := []Slot{
		{Start: at(14, 0), End: at(16, 0)},
		{Start: at(15, 0), End: at(15, 30)},
		{Start: at(17, 0), End: at(18, 0)},
	}
	got := Available(at(13, 10), reserved, at(23, 30))

	require.Len(t, got, 3)
	assert.Equal(t, Slot{Start: at(13, 30), End: at(14, 0)}, got[0])
	assert.Equal(t, Slot{Start: at(16, 0), End: at(17, 0)}, got[1])
	assert.Equal(t, Slot{Start: at(18, 0), End: at(23, 30)}, got[2])
}

func TestAvailable_LastReservationTouchesClosing(t *testing.T) {
	reserved := []Slot{{Start: at(22, 0), End: at(23, 30)}}
	got := Available(at(21, 40), reserved, at(23, 30))
	assert.Empty(t, got)
}
