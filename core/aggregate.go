package core

import (
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/montanaflynn/stats"
)

// Aggregate computes outcome tallies overall and split by side, the
// rating span across the chronological event list, and session-shape
// statistics. Events with an unknown side count toward the overall tally
// only. An empty input produces a zero summary with an absent rating
// span, never an error.
func Aggregate(events []schema.Event, sessions []schema.Session) schema.Summary {
	var sum schema.Summary
	for _, e := range events {
		sum.Overall.Add(e.Outcome)
		switch e.Side {
		case schema.SideWhite:
			sum.White.Add(e.Outcome)
		case schema.SideBlack:
			sum.Black.Add(e.Outcome)
		}
	}
	sum.Rating = ratingSpan(events)
	sum.Sessions = sessionStats(sessions)
	return sum
}

// ratingSpan scans forward for the first event with a known pre-game
// rating and backward for the last event with a known post-game rating.
// Ratings are present only for rated games, so either end may be absent;
// absent must not be conflated with a zero-change span.
func ratingSpan(events []schema.Event) schema.RatingSpan {
	var span schema.RatingSpan
	for _, e := range events {
		if e.Detail.RatingBefore != nil {
			span.Start = e.Detail.RatingBefore
			break
		}
	}
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Detail.RatingAfter != nil {
			span.End = events[i].Detail.RatingAfter
			break
		}
	}
	return span
}

// sessionStats reduces the segmented sessions to mean/median duration and
// games-per-session figures for the detail view.
func sessionStats(sessions []schema.Session) schema.SessionStats {
	st := schema.SessionStats{Count: len(sessions)}
	if len(sessions) == 0 {
		return st
	}

	durations := make([]float64, len(sessions))
	games := make([]float64, len(sessions))
	for i, s := range sessions {
		durations[i] = float64(s.Duration())
		games[i] = float64(len(s))
	}

	meanDur, _ := stats.Mean(durations)
	medianDur, _ := stats.Median(durations)
	st.MeanDuration = time.Duration(meanDur)
	st.MedianDuration = time.Duration(medianDur)
	st.MeanGames, _ = stats.Mean(games)
	st.MedianGames, _ = stats.Median(games)
	return st
}
