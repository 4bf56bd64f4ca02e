package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhoneNumber(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"010-1234-5678", true},
		{"010-123-4567", true},
		{"011-9876-5432", true},
		{"019-123-4567", true},
		{"02-1234-5678", false},   // not a mobile prefix
		{"010-12-3456", false},    // middle group too short
		{"010-12345-678", false},  // middle group too long
		{"01012345678", false},    // missing dashes
		{"010-1234-567", false},   // last group too short
		{" 010-1234-5678", false}, // leading garbage
		{"010-1234-5678 ", false}, // trailing garbage
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidPhoneNumber(tc.phone), "phone %q", tc.phone)
	}
}

func TestParseClock(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	got, err := ParseClock("14:30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 14, 30, 0, 0, time.UTC), got)

	_, err = ParseClock("25:00", now)
	assert.Error(t, err)
	_, err = ParseClock("14:61", now)
	assert.Error(t, err)
	_, err = ParseClock("2pm", now)
	assert.Error(t, err)
}

func TestOnHalfHourGrid(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2025, 3, 14, h, m, 0, 0, time.UTC)
	}
	assert.True(t, OnHalfHourGrid(day(14, 0)))
	assert.True(t, OnHalfHourGrid(day(14, 30)))
	assert.False(t, OnHalfHourGrid(day(14, 15)))
	assert.False(t, OnHalfHourGrid(day(14, 29)))
	assert.False(t, OnHalfHourGrid(day(14, 31)))
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 14, h, m, 0, 0, time.UTC)
	}
	cases := []struct {
		name                   string
		s1, e1, s2, e2         time.Time
		want                   bool
	}{
		{"partial overlap", at(14, 0), at(15, 0), at(14, 30), at(15, 30), true},
		{"touching intervals do not overlap", at(14, 0), at(15, 0), at(15, 0), at(16, 0), false},
		{"contained", at(14, 0), at(16, 0), at(14, 30), at(15, 0), true},
		{"identical", at(14, 0), at(15, 0), at(14, 0), at(15, 0), true},
		{"disjoint", at(10, 0), at(11, 0), at(12, 0), at(13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Symmetric by definition.
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestTotalAmount(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 14, h, m, 0, 0, time.UTC)
	}
	cases := []struct {
		name       string
		rate       uint32
		start, end time.Time
		want       uint32
	}{
		{"single half hour", 1000, at(14, 0), at(14, 30), 1000},
		{"one hour", 1000, at(14, 0), at(15, 0), 2000},
		{"three hours", 500, at(9, 0), at(12, 0), 3000},
		{"partial unit rounds up", 1000, at(14, 0), at(14, 45), 2000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalAmount(tc.rate, tc.start, tc.end))
		})
	}
}
