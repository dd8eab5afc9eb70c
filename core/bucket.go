package core

import (
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
)

// ShiftedDate returns the calendar date of t in tz after moving the day
// boundary to cutoffHours o'clock local time. With a cutoff of 5, games
// played at 01:30 local still belong to the previous day.
func ShiftedDate(t time.Time, tz *time.Location, cutoffHours int) schema.Date {
	shifted := t.In(tz).Add(-time.Duration(cutoffHours) * time.Hour)
	return schema.DateOf(shifted)
}

// BucketByDay groups sessions by the shifted local date of each session's
// first event. A session is never split across two buckets even when it
// spans the cutoff boundary; the first event alone decides the bucket.
// Within a bucket, sessions keep the segmenter's chronological order.
func BucketByDay(sessions []schema.Session, tz *time.Location, cutoffHours int) schema.DayBuckets {
	buckets := make(schema.DayBuckets, len(sessions))
	for _, s := range sessions {
		d := ShiftedDate(s.Start(), tz, cutoffHours)
		buckets[d] = append(buckets[d], s)
	}
	return buckets
}
