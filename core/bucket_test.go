package core

import (
	"testing"
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestShiftedDateCutoff(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// 01:30 local on Nov 11 with a 5am cutoff belongs to Nov 10.
	lateNight := time.Date(2025, 11, 11, 1, 30, 0, 0, ny)
	assert.Equal(t, schema.Date{Year: 2025, Month: time.November, Day: 10}, ShiftedDate(lateNight, ny, 5))

	// 06:00 local the same morning is already the new day.
	morning := time.Date(2025, 11, 11, 6, 0, 0, 0, ny)
	assert.Equal(t, schema.Date{Year: 2025, Month: time.November, Day: 11}, ShiftedDate(morning, ny, 5))

	// Zero cutoff is plain local midnight.
	assert.Equal(t, schema.Date{Year: 2025, Month: time.November, Day: 11}, ShiftedDate(lateNight, ny, 0))
}

func TestShiftedDateConvertsZone(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// 02:00 UTC on Nov 11 is 21:00 Nov 10 in New York.
	utcEvening := time.Date(2025, 11, 11, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, schema.Date{Year: 2025, Month: time.November, Day: 10}, ShiftedDate(utcEvening, ny, 0))
}

func TestBucketByDay(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// Three sessions: two on the same shifted day (one of them past local
	// midnight), one the following evening.
	s1 := schema.Session{ev(t, "20:00", "20:30", schema.Win)}                // Nov 10 15:00 NY
	s2 := schema.Session{ev(t, "23:30", "23:50", schema.Loss)}               // Nov 10 18:30 NY
	s3 := schema.Session{{Start: time.Date(2025, 11, 12, 1, 0, 0, 0, time.UTC), End: time.Date(2025, 11, 12, 1, 20, 0, 0, time.UTC), Outcome: schema.Draw}} // Nov 11 20:00 NY

	buckets := BucketByDay([]schema.Session{s1, s2, s3}, ny, 5)
	days := buckets.Days()
	require.Len(t, days, 2)
	assert.Equal(t, schema.Date{Year: 2025, Month: time.November, Day: 10}, days[0])
	assert.Equal(t, schema.Date{Year: 2025, Month: time.November, Day: 11}, days[1])

	// Chronological order within a bucket is preserved.
	require.Len(t, buckets[days[0]], 2)
	assert.Equal(t, s1, buckets[days[0]][0])
	assert.Equal(t, s2, buckets[days[0]][1])
	assert.Equal(t, []schema.Session{s3}, buckets[days[1]])

	assert.Equal(t, 3, buckets.TotalGames())
}

func TestBucketByDayNeverSplitsASession(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// A session whose games straddle the 5am local cutoff stays in the
	// bucket of its first event.
	straddling := schema.Session{
		{Start: time.Date(2025, 11, 11, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 11, 11, 9, 40, 0, 0, time.UTC)},  // 04:00 NY, before cutoff
		{Start: time.Date(2025, 11, 11, 10, 30, 0, 0, time.UTC), End: time.Date(2025, 11, 11, 11, 0, 0, 0, time.UTC)}, // 05:30 NY, after cutoff
	}

	buckets := BucketByDay([]schema.Session{straddling}, ny, 5)
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets.TotalGames())
	assert.Contains(t, buckets, schema.Date{Year: 2025, Month: time.November, Day: 10})
}

func TestBucketByDayIdempotent(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")
	events := []schema.Event{
		ev(t, "10:00", "10:20", schema.Win),
		ev(t, "10:30", "10:50", schema.Loss),
		ev(t, "22:00", "22:20", schema.Draw),
	}

	first := BucketByDay(Segment(events, time.Hour), ny, 5)
	second := BucketByDay(Segment(events, time.Hour), ny, 5)
	assert.Equal(t, first, second)
}

func TestBucketByDayEmpty(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")
	buckets := BucketByDay(nil, ny, 5)
	assert.Empty(t, buckets)
	assert.Empty(t, buckets.Days())
	assert.Zero(t, buckets.TotalGames())
}
