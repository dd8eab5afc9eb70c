// Package pgn extracts timing and rating metadata from Chess.com PGN
// headers. Only tag pairs are inspected; movetext is never parsed.
package pgn

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
)

var (
	dateRE  = regexp.MustCompile(`\[UTCDate "([\d.]+)"\]`)
	startRE = regexp.MustCompile(`\[UTCTime "([\d:]+)"\]`)
	endRE   = regexp.MustCompile(`\[EndTime "([\d:]+)"\]`)
	tagRE   = regexp.MustCompile(`\[(\S+) "([^"]*)"\]`)
)

// timeLayout matches the PGN header format, e.g. "2025.11.10 01:19:42".
const timeLayout = "2006.01.02 15:04:05"

// ParseGameTimes returns the UTC start and end instants recorded in a
// game's PGN headers. ok is false when any of the three required tags
// (UTCDate, UTCTime, EndTime) is missing or unparsable; callers skip such
// games rather than aborting the run. The PGN carries a single date tag,
// so an end time of day numerically earlier than the start time means the
// game crossed UTC midnight and the end date advances by one day.
func ParseGameTimes(pgn string) (start, end time.Time, ok bool) {
	mDate := dateRE.FindStringSubmatch(pgn)
	mStart := startRE.FindStringSubmatch(pgn)
	mEnd := endRE.FindStringSubmatch(pgn)
	if mDate == nil || mStart == nil || mEnd == nil {
		return time.Time{}, time.Time{}, false
	}

	var err error
	start, err = time.ParseInLocation(timeLayout, mDate[1]+" "+mStart[1], time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.ParseInLocation(timeLayout, mDate[1]+" "+mEnd[1], time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

// ParseTags parses all PGN tag pairs into a map.
func ParseTags(pgn string) map[string]string {
	if pgn == "" {
		return nil
	}
	matches := tagRE.FindAllStringSubmatch(pgn, -1)
	tags := make(map[string]string, len(matches))
	for _, m := range matches {
		tags[m[1]] = m[2]
	}
	return tags
}

// ExtractDetails returns per-game metadata from the observer's
// perspective. Ratings come from the API payload, overridden by the
// WhiteElo/BlackElo tags when present; the pre-game rating is derived from
// the rating-diff tags. Accuracy prefers PGN tags over the API's
// accuracies object. Fields stay nil when the source exposes no value.
func ExtractDetails(g *schema.Game, observer string) schema.Details {
	d := schema.Details{TimeClass: g.TimeClass, Rated: g.Rated}
	obs := strings.ToLower(observer)
	tags := ParseTags(g.PGN)

	whiteAfter := positiveInt(g.White.Rating)
	blackAfter := positiveInt(g.Black.Rating)
	if v := toInt(tags["WhiteElo"]); v != nil {
		whiteAfter = v
	}
	if v := toInt(tags["BlackElo"]); v != nil {
		blackAfter = v
	}
	whiteDiff := toInt(tags["WhiteRatingDiff"])
	blackDiff := toInt(tags["BlackRatingDiff"])
	whiteAcc := toFloat(tags["WhiteAccuracy"])
	blackAcc := toFloat(tags["BlackAccuracy"])
	if g.Accuracies != nil {
		if whiteAcc == nil && g.Accuracies.White > 0 {
			whiteAcc = &g.Accuracies.White
		}
		if blackAcc == nil && g.Accuracies.Black > 0 {
			blackAcc = &g.Accuracies.Black
		}
	}

	switch obs {
	case strings.ToLower(g.White.Username):
		d.Opponent = g.Black.Username
		d.OppRating = blackAfter
		d.RatingAfter = whiteAfter
		d.RatingDiff = whiteDiff
		d.Accuracy = whiteAcc
	case strings.ToLower(g.Black.Username):
		d.Opponent = g.White.Username
		d.OppRating = whiteAfter
		d.RatingAfter = blackAfter
		d.RatingDiff = blackDiff
		d.Accuracy = blackAcc
	}

	if d.RatingAfter != nil && d.RatingDiff != nil {
		before := *d.RatingAfter - *d.RatingDiff
		d.RatingBefore = &before
	}
	return d
}

// toInt parses a tag value like "1234", "+8" or "-12" into an int.
func toInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// toFloat parses a tag value like "87.3" into a float64.
func toFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// positiveInt treats non-positive API ratings as absent.
func positiveInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
