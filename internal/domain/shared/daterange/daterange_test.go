package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := ParseDay(value)
	require.NoError(t, err)
	return parsed
}

func TestParseDay(t *testing.T) {
	parsed, err := ParseDay("2026-07-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDay("01/07/2026")
	assert.ErrorIs(t, err, ErrBadDayFormat)

	_, err = ParseDay("")
	assert.ErrorIs(t, err, ErrBadDayFormat)
}

func TestDayTruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	input := time.Date(2026, 7, 1, 23, 45, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Day(input))
}

func TestNewPeriodRejectsInvertedOrEqualDates(t *testing.T) {
	_, err := NewPeriod(day(t, "2026-07-10"), day(t, "2026-07-01"))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewPeriod(day(t, "2026-07-10"), day(t, "2026-07-10"))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodOverlaps(t *testing.T) {
	base, err := NewPeriod(day(t, "2026-07-10"), day(t, "2026-07-20"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   string
		end     string
		overlap bool
	}{
		{"fully before", "2026-07-01", "2026-07-05", false},
		{"fully after", "2026-07-25", "2026-07-30", false},
		{"touching start endpoint", "2026-07-01", "2026-07-10", true},
		{"touching end endpoint", "2026-07-20", "2026-07-25", true},
		{"contained", "2026-07-12", "2026-07-15", true},
		{"containing", "2026-07-01", "2026-07-30", true},
		{"ends one day before", "2026-07-01", "2026-07-09", false},
		{"starts one day after", "2026-07-21", "2026-07-30", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other, err := NewPeriod(day(t, tc.start), day(t, tc.end))
			require.NoError(t, err)
			assert.Equal(t, tc.overlap, base.Overlaps(other))
			assert.Equal(t, tc.overlap, other.Overlaps(base))
		})
	}
}

func TestPeriodBlocksStayIsOpenInterval(t *testing.T) {
	period, err := NewPeriod(day(t, "2026-07-10"), day(t, "2026-07-15"))
	require.NoError(t, err)

	// Checking in on the period's end day is allowed.
	stay, err := NewStayRange(day(t, "2026-07-15"), day(t, "2026-07-18"))
	require.NoError(t, err)
	assert.False(t, period.BlocksStay(stay))

	// Checking out on the period's start day is allowed.
	stay, err = NewStayRange(day(t, "2026-07-05"), day(t, "2026-07-10"))
	require.NoError(t, err)
	assert.False(t, period.BlocksStay(stay))

	stay, err = NewStayRange(day(t, "2026-07-12"), day(t, "2026-07-13"))
	require.NoError(t, err)
	assert.True(t, period.BlocksStay(stay))
}

func TestStayRangeNights(t *testing.T) {
	stay, err := NewStayRange(day(t, "2026-07-01"), day(t, "2026-07-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights())
	assert.Equal(t, day(t, "2026-07-01"), stay.NightAt(0))
	assert.Equal(t, day(t, "2026-07-03"), stay.NightAt(2))

	_, err = NewStayRange(day(t, "2026-07-04"), day(t, "2026-07-04"))
	assert.ErrorIs(t, err, ErrInvalidStay)
}
