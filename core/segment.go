package core

import (
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
)

// Segment partitions a time-ordered event sequence into maximal runs
// where the gap between one event's end and the next event's start never
// exceeds gap. The input must already be sorted ascending by start time;
// Segment trusts that order and never re-sorts. It runs in a single O(n)
// pass and the returned sessions concatenate back to the input exactly.
//
// An empty input yields an empty output. A zero gap merges only
// back-to-back games. A negative gap never merges, so every event becomes
// its own session.
func Segment(events []schema.Event, gap time.Duration) []schema.Session {
	if len(events) == 0 {
		return nil
	}

	var sessions []schema.Session
	current := schema.Session{events[0]}
	for _, e := range events[1:] {
		if gap >= 0 && e.Start.Sub(current.End()) <= gap {
			current = append(current, e)
			continue
		}
		sessions = append(sessions, current)
		current = schema.Session{e}
	}
	return append(sessions, current)
}
