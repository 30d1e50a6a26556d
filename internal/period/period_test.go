package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestContainsInclusiveBounds(t *testing.T) {
	r := NewResolver(time.UTC)
	start := d(2024, time.May, 1)
	end := d(2024, time.May, 10)

	assert.True(t, r.Contains(start, end, start), "first day is inside")
	assert.True(t, r.Contains(start, end, end), "last day is inside")
	assert.True(t, r.Contains(start, end, d(2024, time.May, 5)))
	assert.False(t, r.Contains(start, end, d(2024, time.April, 30)))
	assert.False(t, r.Contains(start, end, d(2024, time.May, 11)))
}

func TestMutableBoundary(t *testing.T) {
	r := NewResolver(time.UTC)
	end := d(2024, time.May, 10)

	assert.True(t, r.Mutable(end, d(2024, time.May, 10)), "still editable on the last day")
	assert.False(t, r.Mutable(end, d(2024, time.May, 11)), "locked the day after the period ends")
	assert.True(t, r.Mutable(end, d(2024, time.May, 1)))
}

func TestOverlaps(t *testing.T) {
	r := NewResolver(time.UTC)

	tests := []struct {
		name                   string
		aStart, aEnd           time.Time
		bStart, bEnd           time.Time
		want                   bool
	}{
		{
			name:   "disjoint ranges",
			aStart: d(2024, time.May, 1), aEnd: d(2024, time.May, 5),
			bStart: d(2024, time.May, 6), bEnd: d(2024, time.May, 10),
			want: false,
		},
		{
			name:   "shared boundary day collides",
			aStart: d(2024, time.May, 1), aEnd: d(2024, time.May, 5),
			bStart: d(2024, time.May, 5), bEnd: d(2024, time.May, 10),
			want: true,
		},
		{
			name:   "nested range collides",
			aStart: d(2024, time.May, 1), aEnd: d(2024, time.May, 31),
			bStart: d(2024, time.May, 10), bEnd: d(2024, time.May, 12),
			want: true,
		},
		{
			name:   "partial overlap collides",
			aStart: d(2024, time.May, 1), aEnd: d(2024, time.May, 10),
			bStart: d(2024, time.May, 8), bEnd: d(2024, time.May, 20),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, r.Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "overlap is symmetric")
		})
	}
}

func TestDayKeepsStoredCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	r := NewResolver(loc)

	// DATE columns scan as UTC midnights; normalising must not shift them
	// into the previous local day.
	stored := d(2024, time.May, 5)
	assert.Equal(t, stored, r.Day(stored))

	// Stray time-of-day on a stored value is stripped.
	assert.Equal(t, stored, r.Day(time.Date(2024, time.May, 5, 13, 45, 0, 0, time.UTC)))
}

func TestTodayUsesLocalWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC on May 6 is still the evening of May 5 in Sao Paulo.
	now := time.Date(2024, time.May, 6, 1, 30, 0, 0, time.UTC)
	r := NewResolver(loc, WithNow(func() time.Time { return now }))

	assert.Equal(t, d(2024, time.May, 5), r.Today())

	// A board covering May 5 is therefore still the active one.
	assert.True(t, r.Contains(d(2024, time.May, 1), d(2024, time.May, 5), r.Today()))
	assert.True(t, r.Mutable(d(2024, time.May, 5), r.Today()))
}

func TestNilLocationDefaultsToUTC(t *testing.T) {
	now := time.Date(2024, time.May, 6, 1, 30, 0, 0, time.UTC)
	r := NewResolver(nil, WithNow(func() time.Time { return now }))
	assert.Equal(t, time.UTC, r.Location())
	assert.Equal(t, d(2024, time.May, 6), r.Today())
}
