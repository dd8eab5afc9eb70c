package gamecache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore keeps all cached months in a single key-value table, which
// avoids a directory full of small files for long archive histories.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	verbose bool
}

var _ Store = (*SQLiteStore)(nil) // Compile-time check

// NewSQLiteStore opens (or creates) the database at path and ensures the
// cache table exists.
func NewSQLiteStore(path string, verbose bool) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory for %q: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	const query = `
		CREATE TABLE IF NOT EXISTS month_cache (
			cache_key TEXT PRIMARY KEY,
			cache_value BLOB NOT NULL,
			cache_timestamp BIGINT NOT NULL
		);
	`
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table month_cache: %w", err)
	}

	return &SQLiteStore{db: db, path: path, verbose: verbose}, nil
}

// Get returns the cached archive for a month; corrupt rows are misses.
func (s *SQLiteStore) Get(user string, year int, month time.Month) (*schema.MonthArchive, bool) {
	key := monthKey(user, year, month)
	var blob []byte
	err := s.db.QueryRow(`SELECT cache_value FROM month_cache WHERE cache_key = ?`, key).Scan(&blob)
	if err != nil {
		return nil, false
	}
	var archive schema.MonthArchive
	if err := json.Unmarshal(blob, &archive); err != nil {
		internal.Tracef(s.verbose, "cache read failed (%s): %v, will refetch", key, err)
		return nil, false
	}
	internal.Tracef(s.verbose, "cache hit: %s", key)
	return &archive, true
}

// Put upserts an archive row. REPLACE is atomic per row, so a failed
// write leaves the previous entry intact.
func (s *SQLiteStore) Put(user string, year int, month time.Month, archive *schema.MonthArchive) {
	key := monthKey(user, year, month)
	blob, err := json.Marshal(archive)
	if err != nil {
		internal.Warning(fmt.Sprintf("cache encode failed (%s): %v", key, err))
		return
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO month_cache (cache_key, cache_value, cache_timestamp) VALUES (?, ?, ?)`,
		key, blob, time.Now().Unix(),
	)
	if err != nil {
		internal.Warning(fmt.Sprintf("cache write failed (%s): %v", key, err))
		return
	}
	internal.Tracef(s.verbose, "cached: %s", key)
}

// Clear removes all cached months for user.
func (s *SQLiteStore) Clear(user string) error {
	_, err := s.db.Exec(`DELETE FROM month_cache WHERE cache_key LIKE ?`, safeUser(user)+"/%")
	if err != nil {
		return fmt.Errorf("failed to clear cache for %q: %w", user, err)
	}
	return nil
}

// Status reports row count and payload size.
func (s *SQLiteStore) Status() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: schema.SQLiteBackend, Location: s.path}
	row := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(cache_value)), 0) FROM month_cache`)
	if err := row.Scan(&status.TotalEntries, &status.TotalBytes); err != nil {
		return status, fmt.Errorf("failed to read cache status: %w", err)
	}
	return status, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
