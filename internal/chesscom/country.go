package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/christianmadden/chess.com-utils/internal"
)

// CountryCache memoizes username→country display strings across
// invocations. It is an explicit object with a load/save lifecycle owned
// by the caller, so its scope is bounded to one invocation instead of
// living in package-level mutable state.
type CountryCache struct {
	path    string
	entries map[string]string
	dirty   bool
}

// NewCountryCache returns a cache backed by the JSON file at path.
func NewCountryCache(path string) *CountryCache {
	return &CountryCache{path: path, entries: make(map[string]string)}
}

// Load reads the cache file. A missing or corrupt file starts empty.
func (c *CountryCache) Load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	c.entries = entries
}

// Save writes the cache back when it changed. Writes are advisory and go
// through a temp file so a failure never corrupts the previous state.
func (c *CountryCache) Save() {
	if !c.dirty {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		internal.Warning(fmt.Sprintf("country cache write failed (%s): %v", c.path, err))
		return
	}
	data, err := json.Marshal(c.entries)
	if err != nil {
		internal.Warning(fmt.Sprintf("country cache encode failed: %v", err))
		return
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		internal.Warning(fmt.Sprintf("country cache write failed (%s): %v", c.path, err))
		_ = os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, c.path); err != nil {
		internal.Warning(fmt.Sprintf("country cache write failed (%s): %v", c.path, err))
		_ = os.Remove(tmp)
	}
}

// get returns a memoized display string.
func (c *CountryCache) get(user string) (string, bool) {
	v, ok := c.entries[user]
	return v, ok
}

// set memoizes a display string.
func (c *CountryCache) set(user, display string) {
	c.entries[user] = display
	c.dirty = true
}

// CountryLookup resolves opponent usernames to "Name (CC)" display
// strings, memoized through cache. Lookups are best-effort: an opponent
// whose profile or country cannot be fetched is simply absent from the
// result.
func (s *Service) CountryLookup(ctx context.Context, cache *CountryCache, opponents []string) map[string]string {
	unique := make(map[string]struct{}, len(opponents))
	for _, o := range opponents {
		if o != "" {
			unique[o] = struct{}{}
		}
	}
	names := make([]string, 0, len(unique))
	for o := range unique {
		names = append(names, o)
	}
	sort.Strings(names)

	result := make(map[string]string, len(names))
	for _, name := range names {
		if display, ok := cache.get(name); ok {
			result[name] = display
			continue
		}

		profile, err := s.client.FetchPlayer(ctx, name)
		if err != nil || profile.CountryURL == "" {
			internal.Tracef(s.verbose, "country lookup skipped for %s: %v", name, err)
			continue
		}
		country, err := s.client.FetchCountry(ctx, profile.CountryURL)
		if err != nil {
			internal.Tracef(s.verbose, "country lookup skipped for %s: %v", name, err)
			continue
		}

		display := fmt.Sprintf("%s (%s)", country.Name, country.Code)
		cache.set(name, display)
		result[name] = display
	}
	return result
}
