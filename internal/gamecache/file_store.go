package gamecache

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/schema"
)

// FileStore keeps one JSON file per user and month under
// <root>/<user>/<YYYY-MM>.json.
type FileStore struct {
	root    string
	verbose bool
}

var _ Store = (*FileStore)(nil) // Compile-time check

// NewFileStore returns a file-backed store rooted at root. The directory
// is created lazily on the first write.
func NewFileStore(root string, verbose bool) *FileStore {
	return &FileStore{root: root, verbose: verbose}
}

func (s *FileStore) path(user string, year int, month time.Month) string {
	return filepath.Join(s.root, safeUser(user), fmt.Sprintf("%04d-%02d.json", year, month))
}

// Get returns the cached archive for a month. A missing, unreadable or
// corrupt file is a miss, never an error; a corrupt entry will simply be
// refetched and rewritten.
func (s *FileStore) Get(user string, year int, month time.Month) (*schema.MonthArchive, bool) {
	path := s.path(user, year, month)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var archive schema.MonthArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		internal.Tracef(s.verbose, "cache read failed (%s): %v, will refetch", path, err)
		return nil, false
	}
	internal.Tracef(s.verbose, "cache hit: %s", path)
	return &archive, true
}

// Put stores an archive using write-to-temp-then-rename so a failed write
// never leaves a truncated file behind the previous cache state.
func (s *FileStore) Put(user string, year int, month time.Month, archive *schema.MonthArchive) {
	path := s.path(user, year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		internal.Warning(fmt.Sprintf("cache write failed (%s): %v", path, err))
		return
	}

	data, err := json.Marshal(archive)
	if err != nil {
		internal.Warning(fmt.Sprintf("cache encode failed (%s): %v", path, err))
		return
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		internal.Warning(fmt.Sprintf("cache write failed (%s): %v", path, err))
		_ = os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		internal.Warning(fmt.Sprintf("cache write failed (%s): %v", path, err))
		_ = os.Remove(tmp)
		return
	}
	internal.Tracef(s.verbose, "cached: %s", path)
}

// Clear removes all cached months for user.
func (s *FileStore) Clear(user string) error {
	dir := filepath.Join(s.root, safeUser(user))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}

// Status walks the cache root counting entries and bytes.
func (s *FileStore) Status() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: schema.JSONBackend, Location: s.root}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		status.TotalEntries++
		status.TotalBytes += info.Size()
		return nil
	})
	if os.IsNotExist(err) {
		return status, nil
	}
	return status, err
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
