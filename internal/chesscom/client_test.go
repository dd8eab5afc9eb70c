package chesscom

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at a stub API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(false)
	client.baseURL = server.URL
	return client
}

func TestFetchMonth(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player/alice/games/2025/11", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "chessions")
		fmt.Fprint(w, `{"games":[{"url":"https://example.com/1","white":{"username":"alice","result":"win"},"black":{"username":"bob","result":"resigned"}}]}`)
	}))

	archive, err := client.FetchMonth(context.Background(), "Alice", 2025, time.November)
	require.NoError(t, err)
	require.Len(t, archive.Games, 1)
	assert.Equal(t, "alice", archive.Games[0].White.Username)
}

func TestFetchMonthNotFoundIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"no games"}`, http.StatusNotFound)
	}))

	archive, err := client.FetchMonth(context.Background(), "alice", 2019, time.January)
	require.NoError(t, err)
	assert.Empty(t, archive.Games)
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, `{"message":"try later"}`, http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"games":[]}`)
	}))

	_, err := client.FetchMonth(context.Background(), "alice", 2025, time.October)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestGetJSONGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, `{"message":"overloaded"}`, http.StatusTooManyRequests)
	}))

	_, err := client.FetchMonth(context.Background(), "alice", 2025, time.October)
	assert.Error(t, err)
	assert.Equal(t, maxAttempts, attempts)
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, `{"message":"bad request"}`, http.StatusBadRequest)
	}))

	_, err := client.FetchMonth(context.Background(), "alice", 2025, time.October)
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestFetchArchivesUserNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"User \"nosuch\" not found."}`, http.StatusNotFound)
	}))

	_, err := client.FetchArchives(context.Background(), "nosuch")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFetchArchives(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player/alice/games/archives", r.URL.Path)
		fmt.Fprint(w, `{"archives":["https://api.chess.com/pub/player/alice/games/2025/10","https://api.chess.com/pub/player/alice/games/2025/11"]}`)
	}))

	archives, err := client.FetchArchives(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, archives, 2)
}

func TestFetchPlayerAndCountry(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/player/bob", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"username":"bob","country":"%s/country/BR"}`, server.URL)
	})
	mux.HandleFunc("/country/BR", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"code":"BR","name":"Brazil"}`)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(false)
	client.baseURL = server.URL

	profile, err := client.FetchPlayer(context.Background(), "bob")
	require.NoError(t, err)
	require.NotEmpty(t, profile.CountryURL)

	country, err := client.FetchCountry(context.Background(), profile.CountryURL)
	require.NoError(t, err)
	assert.Equal(t, "Brazil", country.Name)
	assert.Equal(t, "BR", country.Code)
}

func TestSkippable(t *testing.T) {
	assert.True(t, Skippable(&schema.Game{White: schema.GamePlayer{Username: "Chess.com"}}))
	assert.True(t, Skippable(&schema.Game{Black: schema.GamePlayer{Username: "chess.com"}}))
	assert.True(t, Skippable(&schema.Game{PGN: `[Event "Play vs Coach"]`}))
	assert.False(t, Skippable(&schema.Game{
		White: schema.GamePlayer{Username: "alice"},
		Black: schema.GamePlayer{Username: "bob"},
		PGN:   `[Event "Live Chess"]`,
	}))
}
