package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	testCases := []struct {
		Seconds  int
		Expected string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{65, "01:05"},
		{1500, "25:00"},
		{3725, "01:02:05"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.Expected, Clock(tc.Seconds))
	}
}

func TestHourInterval(t *testing.T) {
	assert.Equal(t, "00:00-01:00", HourInterval(0))
	assert.Equal(t, "09:00-10:00", HourInterval(9))
	assert.Equal(t, "23:00-00:00", HourInterval(23))
}

func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 1.3, RoundTo(1.25, 1), 0.0001)
	assert.InDelta(t, 0.5, RoundTo(0.5, 1), 0.0001)
}

func TestRoundToStart(t *testing.T) {
	ts := time.Date(2026, 3, 4, 15, 4, 5, 6, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), RoundToStart(ts))
	assert.Equal(t, "2026-03-04", DayKey(ts))
}

func TestFromStrEmptyReturnsNow(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

	got, err := FromStr("  ", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)
}

func TestFromStrAbsoluteDate(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

	got, err := FromStr("2026-02-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", DayKey(got))
}
