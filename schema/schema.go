// Package schema has configs, models and shared types for all parts of chessions.
package schema

import (
	"math"
	"sort"
	"time"
)

// Event represents a single finished game from the observer's perspective.
// Start and End are UTC instants recovered from the PGN headers; End is
// never before Start (games reported as crossing UTC midnight are
// normalized at parse time). Events are created once by the report builder
// and never mutated afterwards.
type Event struct {
	Start   time.Time
	End     time.Time
	Outcome Outcome
	Side    Side
	Detail  Details
	Game    *Game // raw API record, kept for presentation
}

// Details holds optional per-game metadata extracted from PGN tags and the
// API payload. Pointer fields are nil when the source data does not expose
// the value (unrated games usually carry no ratings).
type Details struct {
	Opponent     string
	OppRating    *int
	RatingBefore *int
	RatingAfter  *int
	RatingDiff   *int
	Accuracy     *float64
	TimeClass    string
	Rated        bool
}

// Session is a maximal run of chronologically adjacent events whose
// pairwise gaps never exceed the configured threshold. A session is never
// empty and its events are sorted ascending by start time.
type Session []Event

// Start returns the start instant of the session's first event.
func (s Session) Start() time.Time { return s[0].Start }

// End returns the end instant of the session's last event.
func (s Session) End() time.Time { return s[len(s)-1].End }

// Duration returns the elapsed time between the session's first start and
// last end.
func (s Session) Duration() time.Duration { return s.End().Sub(s.Start()) }

// Outcomes returns the session's results as a compact W/L/D string.
func (s Session) Outcomes() string {
	out := make([]byte, len(s))
	for i, e := range s {
		out[i] = e.Outcome[0]
	}
	return string(out)
}

// Date is a timezone-free calendar date used as a day-bucket key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Time returns the date as a midnight UTC instant, useful for formatting.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the date in ISO form, e.g. "2026-01-02".
func (d Date) String() string { return d.Time().Format("2006-01-02") }

// DayBuckets maps calendar dates to the sessions whose first event falls
// on that date under the configured day-cutoff rule. Within a bucket,
// sessions keep the segmenter's chronological order.
type DayBuckets map[Date][]Session

// Days returns the bucket keys in ascending date order.
func (b DayBuckets) Days() []Date {
	days := make([]Date, 0, len(b))
	for d := range b {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// TotalGames returns the number of events across all buckets.
func (b DayBuckets) TotalGames() int {
	n := 0
	for _, sessions := range b {
		for _, s := range sessions {
			n += len(s)
		}
	}
	return n
}

// Tally accumulates win/loss/draw counts.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Add records one outcome.
func (t *Tally) Add(o Outcome) {
	switch o {
	case Win:
		t.Wins++
	case Loss:
		t.Losses++
	default:
		t.Draws++
	}
}

// Total returns the number of recorded outcomes.
func (t Tally) Total() int { return t.Wins + t.Losses + t.Draws }

// WinPct returns the rounded win percentage, or 0 when no outcomes were
// recorded (defined, never NaN).
func (t Tally) WinPct() int {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Wins) / float64(total) * 100))
}

// RatingSpan is the first known pre-game rating and last known post-game
// rating across a chronological event list. Either end may be absent when
// no event in the list exposes the value; absent is not the same as a
// zero-change span.
type RatingSpan struct {
	Start *int `json:"start,omitempty"`
	End   *int `json:"end,omitempty"`
}

// Delta returns End-Start, or nil when either end is absent.
func (r RatingSpan) Delta() *int {
	if r.Start == nil || r.End == nil {
		return nil
	}
	d := *r.End - *r.Start
	return &d
}

// SessionStats summarizes session shape across a report.
type SessionStats struct {
	Count          int           `json:"count"`
	MeanDuration   time.Duration `json:"mean_duration"`
	MedianDuration time.Duration `json:"median_duration"`
	MeanGames      float64       `json:"mean_games"`
	MedianGames    float64       `json:"median_games"`
}

// Summary is the derived aggregate over a filtered event list. It is
// recomputed fresh on every run and never mutated in place.
type Summary struct {
	Overall  Tally        `json:"overall"`
	White    Tally        `json:"white"`
	Black    Tally        `json:"black"`
	Rating   RatingSpan   `json:"rating"`
	Sessions SessionStats `json:"sessions"`
}

// Report is the output of one analysis pass: the flat chronological event
// list, the segmented sessions, the day buckets, and the summary. All of
// it is derived from an immutable snapshot of the fetched games and is
// recomputed fresh on every invocation.
type Report struct {
	Events   []Event
	Sessions []Session
	Days     DayBuckets
	Summary  Summary
}

// Empty reports whether the filters left no games to analyze. This is a
// user-visible "no data" condition, not an error.
func (r *Report) Empty() bool { return len(r.Events) == 0 }
