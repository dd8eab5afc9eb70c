package chesscom

import (
	"context"
	"time"

	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/internal/gamecache"
	"github.com/christianmadden/chess.com-utils/internal/pgn"
	"github.com/christianmadden/chess.com-utils/schema"
)

// Service fetches monthly archives with cache-aside semantics: past
// months are served from the store when present, the current month is
// always fetched live so today's games show up.
type Service struct {
	client  *Client
	store   gamecache.Store
	tz      *time.Location
	verbose bool
	now     func() time.Time
}

// NewService wires a client and a cache store together. tz decides which
// month counts as "current".
func NewService(client *Client, store gamecache.Store, tz *time.Location, verbose bool) *Service {
	return &Service{client: client, store: store, tz: tz, verbose: verbose, now: time.Now}
}

// currentMonth returns the month of local "now".
func (s *Service) currentMonth() YearMonth {
	return YearMonthOf(s.now().In(s.tz))
}

// MonthGames returns one month of games, consulting the cache for past
// months. Cache writes are advisory; a failed write never fails the fetch.
func (s *Service) MonthGames(ctx context.Context, user string, ym YearMonth) ([]schema.Game, error) {
	isCurrent := ym == s.currentMonth()

	if !isCurrent {
		if archive, ok := s.store.Get(user, ym.Year, ym.Month); ok {
			return archive.Games, nil
		}
	}

	archive, err := s.client.FetchMonth(ctx, user, ym.Year, ym.Month)
	if err != nil {
		return nil, err
	}
	internal.Tracef(s.verbose, "fetched %d games for %s", len(archive.Games), ym)

	if !isCurrent {
		s.store.Put(user, ym.Year, ym.Month, archive)
	}
	return archive.Games, nil
}

// GamesForWindow returns all playable games between the months of from
// and to inclusive, with coach/bot entries filtered out.
func (s *Service) GamesForWindow(ctx context.Context, user string, from, to YearMonth) ([]schema.Game, error) {
	var games []schema.Game
	for _, ym := range MonthsForward(from, to) {
		monthGames, err := s.MonthGames(ctx, user, ym)
		if err != nil {
			return nil, err
		}
		games = appendPlayable(games, monthGames)
	}
	return games, nil
}

// AllGames fetches the player's entire archive history using the archive
// index, oldest first.
func (s *Service) AllGames(ctx context.Context, user string) ([]schema.Game, error) {
	archives, err := s.client.FetchArchives(ctx, user)
	if err != nil {
		return nil, err
	}

	var games []schema.Game
	for _, url := range archives {
		ym, err := ParseArchiveURL(url)
		if err != nil {
			internal.Warning(err.Error())
			continue
		}
		monthGames, err := s.MonthGames(ctx, user, ym)
		if err != nil {
			return nil, err
		}
		games = appendPlayable(games, monthGames)
	}
	return games, nil
}

// MostRecentGames walks months backward until at least n games with
// parsable timing data have been collected, bounded by maxMonths. The
// result is in fetch order; callers sort and trim to the final n.
func (s *Service) MostRecentGames(ctx context.Context, user string, n, maxMonths int) ([]schema.Game, error) {
	if n <= 0 {
		return nil, nil
	}

	var collected []schema.Game
	parsable := 0
	for _, ym := range MonthsBack(s.currentMonth(), maxMonths) {
		monthGames, err := s.MonthGames(ctx, user, ym)
		if err != nil {
			return nil, err
		}
		playable := appendPlayable(nil, monthGames)
		for i := range playable {
			if _, _, ok := pgn.ParseGameTimes(playable[i].PGN); ok {
				parsable++
			}
		}
		collected = append(playable, collected...)
		if parsable >= n {
			break
		}
	}
	return collected, nil
}

// appendPlayable appends games that are not coach/bot entries.
func appendPlayable(dst, src []schema.Game) []schema.Game {
	for i := range src {
		if Skippable(&src[i]) {
			continue
		}
		dst = append(dst, src[i])
	}
	return dst
}
