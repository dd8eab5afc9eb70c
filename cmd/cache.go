package cmd

import (
	"fmt"
	"strings"

	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/internal/contract"
	"github.com/christianmadden/chess.com-utils/internal/gamecache"
	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads the minimal configuration needed for cache operations.
// Cache commands skip the full shared setup so they work without a
// username or network access.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.CacheBackend(viper.GetString("cache-backend"))
	if backend == "" {
		backend = schema.JSONBackend
	}
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend %q: must be json, sqlite or none", backend)
	}

	dir := viper.GetString("cache-dir")
	if dir == "" {
		var err error
		dir, err = contract.DefaultCacheDir()
		if err != nil {
			return err
		}
	}

	cfg.CacheBackend = backend
	cfg.CacheDir = dir
	cfg.Verbose = viper.GetBool("verbose")
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the monthly archive cache (improves performance)",
	Long: `Manage the cache of monthly game archives.

Chessions caches past months locally so repeated runs do not re-download
history from the Chess.com API. The current month is always fetched live.

Supported backends: json (default), sqlite, or none

Subcommands:
  status - Show cache statistics and location
  clear  - Remove cached months for a player

Examples:
  # Check cache status
  chessions cache status

  # Clear cached months for one player
  chessions cache clear magnuscarlsen`,
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and location",
	Long: `Show the configured cache backend, its location on disk, and how
many monthly archives it currently holds.

Examples:
  # Check cache status
  chessions cache status

  # Check the sqlite backend instead
  chessions cache status --cache-backend sqlite`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := gamecache.New(cfg.CacheBackend, cfg.CacheDir, cfg.Verbose)
		if err != nil {
			internal.FatalError("Failed to open cache", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status()
		if err != nil {
			internal.FatalError("Failed to get cache status", err)
		}
		printCacheStatus(status)
	},
}

// cacheClearCmd clears cached months for one player.
var cacheClearCmd = &cobra.Command{
	Use:   "clear [username]",
	Short: "Remove cached months for a player",
	Long: `Delete all cached monthly archives for a player.

Use this when cached months may be stale, for example after the API
backfills accuracy data for recently finished games.

Examples:
  # Clear cached months for one player
  chessions cache clear magnuscarlsen

  # Username can also come from flags, env or the config file
  chessions cache clear --user magnuscarlsen`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		user := viper.GetString("user")
		if len(args) == 1 {
			user = args[0]
		}
		if strings.TrimSpace(user) == "" {
			internal.FatalError("Cannot clear cache", fmt.Errorf("username is required: pass it as an argument or via --user"))
		}

		store, err := gamecache.New(cfg.CacheBackend, cfg.CacheDir, cfg.Verbose)
		if err != nil {
			internal.FatalError("Failed to open cache", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(user); err != nil {
			internal.FatalError("Failed to clear cache", err)
		}
		fmt.Printf("Cache cleared for %s.\n", user)
	},
}

// printCacheStatus renders cache statistics in a stable key-value layout.
func printCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Backend:  %s\n", status.Backend)
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Entries:  %d\n", status.TotalEntries)
	fmt.Printf("Size:     %d bytes\n", status.TotalBytes)
}
