// Package gamecache persists monthly game archives between invocations.
// The current month is always fetched live; only past months are served
// from the cache, so entries never expire.
package gamecache

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
)

// Store is a per-user month cache.
//
// Writes are advisory: a failed Put is logged and dropped, never
// propagated, and must not corrupt previously cached state.
type Store interface {
	// Get returns the cached archive for a month, or ok=false on a miss.
	// Unreadable or corrupt entries count as misses.
	Get(user string, year int, month time.Month) (*schema.MonthArchive, bool)

	// Put stores an archive for a past month.
	Put(user string, year int, month time.Month, archive *schema.MonthArchive)

	// Clear removes all cached months for user.
	Clear(user string) error

	// Status reports backend statistics.
	Status() (schema.CacheStatus, error)

	// Close releases backend resources.
	Close() error
}

// New returns the store for the configured backend. The json backend
// lives under dir; the sqlite backend keeps a single database file there.
func New(backend schema.CacheBackend, dir string, verbose bool) (Store, error) {
	switch backend {
	case schema.JSONBackend:
		return NewFileStore(dir, verbose), nil
	case schema.SQLiteBackend:
		return NewSQLiteStore(filepath.Join(dir, "months.db"), verbose)
	case schema.NoneBackend:
		return NopStore{}, nil
	}
	return nil, fmt.Errorf("unsupported cache backend: %s. Must be json, sqlite or none", backend)
}

// safeUser normalizes a username into a cache key segment.
func safeUser(user string) string {
	return strings.ToLower(strings.TrimSpace(user))
}

// monthKey builds the canonical "user/YYYY-MM" cache key.
func monthKey(user string, year int, month time.Month) string {
	return fmt.Sprintf("%s/%04d-%02d", safeUser(user), year, month)
}

// NopStore is the no-op backend used when caching is disabled.
type NopStore struct{}

// Get always misses.
func (NopStore) Get(string, int, time.Month) (*schema.MonthArchive, bool) { return nil, false }

// Put drops the archive.
func (NopStore) Put(string, int, time.Month, *schema.MonthArchive) {}

// Clear has nothing to remove.
func (NopStore) Clear(string) error { return nil }

// Status reports a disconnected backend.
func (NopStore) Status() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: schema.NoneBackend}, nil
}

// Close is a no-op.
func (NopStore) Close() error { return nil }
