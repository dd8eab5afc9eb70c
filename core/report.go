// Package core implements the session analysis pipeline: classifying raw
// games, segmenting them into sessions by idle gaps, bucketing sessions
// into shifted calendar days, and aggregating summaries.
package core

import (
	"sort"
	"time"

	"github.com/christianmadden/chess.com-utils/internal/pgn"
	"github.com/christianmadden/chess.com-utils/schema"
)

// DayWindow is an inclusive range of shifted local dates.
type DayWindow struct {
	From schema.Date
	To   schema.Date
}

// Contains reports whether d falls within the window.
func (w DayWindow) Contains(d schema.Date) bool {
	return !d.Before(w.From) && !w.To.Before(d)
}

// ReportOptions controls one report build.
type ReportOptions struct {
	Observer    string         // username whose perspective decides outcomes
	Gap         time.Duration  // idle gap that starts a new session
	TZ          *time.Location // local time zone for day bucketing
	CutoffHours int            // local hour treated as the start of a day
	Window      *DayWindow     // optional shifted-date filter
	LastN       int            // optional most-recent-games filter (0 = off)
}

// BuildEvents converts raw games into events, skipping any game whose
// timing headers are missing or unparsable. The returned slice is not yet
// sorted.
func BuildEvents(games []schema.Game, observer string) []schema.Event {
	events := make([]schema.Event, 0, len(games))
	for i := range games {
		g := &games[i]
		start, end, ok := pgn.ParseGameTimes(g.PGN)
		if !ok {
			continue
		}
		outcome, side := Classify(g, observer)
		events = append(events, schema.Event{
			Start:   start,
			End:     end,
			Outcome: outcome,
			Side:    side,
			Detail:  pgn.ExtractDetails(g, observer),
			Game:    g,
		})
	}
	return events
}

// BuildReport runs the full pipeline over raw games: extract, classify,
// sort, filter, segment, bucket, aggregate. Degenerate inputs (no games,
// a single game, everything filtered out) produce well-defined empty or
// singleton results.
func BuildReport(games []schema.Game, opts ReportOptions) *schema.Report {
	events := BuildEvents(games, opts.Observer)
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })

	if opts.Window != nil {
		kept := events[:0]
		for _, e := range events {
			if opts.Window.Contains(ShiftedDate(e.Start, opts.TZ, opts.CutoffHours)) {
				kept = append(kept, e)
			}
		}
		events = kept
	}
	if opts.LastN > 0 && len(events) > opts.LastN {
		events = events[len(events)-opts.LastN:]
	}

	sessions := Segment(events, opts.Gap)
	return &schema.Report{
		Events:   events,
		Sessions: sessions,
		Days:     BucketByDay(sessions, opts.TZ, opts.CutoffHours),
		Summary:  Aggregate(events, sessions),
	}
}
