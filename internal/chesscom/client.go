// Package chesscom is a minimal client for the Chess.com published-data
// API, plus cache-aside fetch helpers for monthly game archives.
package chesscom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/schema"
)

const (
	defaultBaseURL = "https://api.chess.com/pub"

	// Friendly UA per Chess.com API guidelines.
	userAgent = "chessions/1.0 (github.com/christianmadden/chess.com-utils)"

	maxAttempts = 3
)

// ErrUserNotFound indicates the API has no player with that username.
var ErrUserNotFound = errors.New("user not found")

// Client talks to the Chess.com published-data API.
type Client struct {
	httpc   *http.Client
	baseURL string
	verbose bool
}

// NewClient returns a client with a conservative request timeout.
func NewClient(verbose bool) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		verbose: verbose,
	}
}

type httpError struct {
	Status int
	Body   string
}

func (e httpError) Error() string { return fmt.Sprintf("http %d: %s", e.Status, e.Body) }

// getJSON fetches url and decodes the response into v, retrying 429 and
// 5xx responses with a short linear backoff.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	internal.Tracef(c.verbose, "fetching %s", url)

	var last httpError
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := c.httpc.Do(req)
		if err != nil {
			return err
		}

		if res.StatusCode == http.StatusOK {
			err := json.NewDecoder(res.Body).Decode(v)
			_ = res.Body.Close()
			return err
		}

		// Capture the API message for error clarity.
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&msg)
		_ = res.Body.Close()
		last = httpError{Status: res.StatusCode, Body: msg.Message}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			select {
			case <-time.After(time.Duration(250*(attempt+1)) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		break
	}
	return last
}

// FetchMonth returns the archive for one month of a player's games. A 404
// is treated as an empty month rather than an error: the API responds 404
// for months before the account existed, which the backward archive walk
// routinely crosses.
func (c *Client) FetchMonth(ctx context.Context, user string, year int, month time.Month) (*schema.MonthArchive, error) {
	url := fmt.Sprintf("%s/player/%s/games/%04d/%02d", c.baseURL, strings.ToLower(user), year, month)
	var archive schema.MonthArchive
	if err := c.getJSON(ctx, url, &archive); err != nil {
		var httpErr httpError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return &schema.MonthArchive{}, nil
		}
		return nil, fmt.Errorf("fetch month %04d-%02d for %s: %w", year, month, user, err)
	}
	return &archive, nil
}

// FetchArchives returns the player's monthly archive URLs, oldest first.
func (c *Client) FetchArchives(ctx context.Context, user string) ([]string, error) {
	url := fmt.Sprintf("%s/player/%s/games/archives", c.baseURL, strings.ToLower(user))
	var idx schema.ArchiveIndex
	if err := c.getJSON(ctx, url, &idx); err != nil {
		var httpErr httpError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, user)
		}
		return nil, fmt.Errorf("fetch archives for %s: %w", user, err)
	}
	return idx.Archives, nil
}

// FetchPlayer returns a player's public profile.
func (c *Client) FetchPlayer(ctx context.Context, user string) (*schema.PlayerProfile, error) {
	url := fmt.Sprintf("%s/player/%s", c.baseURL, strings.ToLower(user))
	var profile schema.PlayerProfile
	if err := c.getJSON(ctx, url, &profile); err != nil {
		var httpErr httpError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, user)
		}
		return nil, fmt.Errorf("fetch player %s: %w", user, err)
	}
	return &profile, nil
}

// FetchCountry resolves a profile's country URL (already absolute).
func (c *Client) FetchCountry(ctx context.Context, countryURL string) (*schema.Country, error) {
	var country schema.Country
	if err := c.getJSON(ctx, countryURL, &country); err != nil {
		return nil, fmt.Errorf("fetch country %s: %w", countryURL, err)
	}
	return &country, nil
}

// Skippable returns true for coach/bot entries we want to ignore.
func Skippable(g *schema.Game) bool {
	if strings.EqualFold(g.White.Username, "chess.com") || strings.EqualFold(g.Black.Username, "chess.com") {
		return true
	}
	return strings.Contains(g.PGN, `Event "Play vs Coach"`)
}
