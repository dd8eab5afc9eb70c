package chesscom

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countryMux(hits map[string]int) (*http.ServeMux, func(string)) {
	mux := http.NewServeMux()
	var baseURL string
	mux.HandleFunc("/player/", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits[r.URL.Path]++
		}
		name := filepath.Base(r.URL.Path)
		if name == "ghost" {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"username":%q,"country":"%s/country/US"}`, name, baseURL)
	})
	mux.HandleFunc("/country/US", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"code":"US","name":"United States"}`)
	})
	return mux, func(url string) { baseURL = url }
}

func TestCountryLookup(t *testing.T) {
	hits := make(map[string]int)
	mux, setBase := countryMux(hits)
	client := newTestClient(t, mux)
	setBase(client.baseURL)
	svc := NewService(client, newRecordingStore(), time.UTC, false)

	cache := NewCountryCache(filepath.Join(t.TempDir(), "countries.json"))
	cache.Load()

	result := svc.CountryLookup(context.Background(), cache, []string{"bob", "bob", "ghost", ""})
	assert.Equal(t, map[string]string{"bob": "United States (US)"}, result)
	assert.Equal(t, 1, hits["/player/bob"], "duplicates resolve once")
	assert.Equal(t, 1, hits["/player/ghost"], "failed lookups are skipped, not fatal")
}

func TestCountryLookupMemoizesAcrossLoads(t *testing.T) {
	hits := make(map[string]int)
	mux, setBase := countryMux(hits)
	client := newTestClient(t, mux)
	setBase(client.baseURL)
	svc := NewService(client, newRecordingStore(), time.UTC, false)

	path := filepath.Join(t.TempDir(), "countries.json")

	first := NewCountryCache(path)
	first.Load()
	svc.CountryLookup(context.Background(), first, []string{"bob"})
	first.Save()

	second := NewCountryCache(path)
	second.Load()
	result := svc.CountryLookup(context.Background(), second, []string{"bob"})
	assert.Equal(t, "United States (US)", result["bob"])
	assert.Equal(t, 1, hits["/player/bob"], "second invocation hits the saved cache")
}

func TestCountryCacheSaveSkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.json")
	cache := NewCountryCache(path)
	cache.Load()
	cache.Save()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clean cache should not write a file")
}

func TestCountryCacheCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cache := NewCountryCache(path)
	cache.Load()
	_, ok := cache.get("anyone")
	assert.False(t, ok)
}

func TestCountryCacheAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "countries.json")
	cache := NewCountryCache(path)
	cache.set("bob", "Brazil (BR)")
	cache.Save()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "countries.json", entries[0].Name())
}
