package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/christianmadden/chess.com-utils/core"
	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/internal/chesscom"
	"github.com/christianmadden/chess.com-utils/internal/contract"
	"github.com/christianmadden/chess.com-utils/internal/gamecache"
	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file,
// env, flags). Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "chessions [username]",
	Short: "Analyze Chess.com games grouped into play sessions.",
	Long: `Chessions groups a Chess.com player's games into play sessions by idle
gaps, buckets them into local calendar days, and reports win/loss/draw
summaries for each.`,
	Version:            version,
	Args:               cobra.MaximumNArgs(1),
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(rootCtx, cfg); err != nil {
			internal.FatalError("Cannot build session report", err)
		}
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".chessions")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("CHESSIONS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("days", contract.DefaultDays)
	viper.SetDefault("gap", contract.DefaultGapMinutes)
	viper.SetDefault("day-cutoff-hour", contract.DefaultCutoffHour)
	viper.SetDefault("tz", contract.DefaultTimezone)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.JSONBackend)
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".chessions")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle the positional username (which Viper doesn't do).
	if len(args) == 1 {
		input.User = args[0]
	}

	// 4. Run all validation and complex parsing. This populates the
	// global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetupWrapper wraps sharedSetup to provide PreRunE for Cobra.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(cmd, args)
}

// runReport fetches the requested games, builds the session report and
// renders it in the configured output mode.
func runReport(ctx context.Context, cfg *contract.Config) error {
	store, err := gamecache.New(cfg.CacheBackend, cfg.CacheDir, cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := chesscom.NewService(chesscom.NewClient(cfg.Verbose), store, cfg.TZ, cfg.Verbose)

	games, window, err := fetchGames(ctx, svc, cfg)
	if err != nil {
		return err
	}

	report := core.BuildReport(games, core.ReportOptions{
		Observer:    cfg.User,
		Gap:         cfg.Gap,
		TZ:          cfg.TZ,
		CutoffHours: cfg.CutoffHour,
		Window:      window,
		LastN:       cfg.LastN,
	})
	if report.Empty() {
		fmt.Printf("No games found for %s.\n", cfg.User)
		return nil
	}

	var countries map[string]string
	if cfg.Countries {
		countries = lookupCountries(ctx, svc, cfg, report)
	}

	return internal.PrintReport(report, cfg, countries)
}

// fetchGames retrieves raw games for the configured mode and returns the
// day window to filter on, when one applies.
func fetchGames(ctx context.Context, svc *chesscom.Service, cfg *contract.Config) ([]schema.Game, *core.DayWindow, error) {
	switch {
	case cfg.All:
		games, err := svc.AllGames(ctx, cfg.User)
		return games, nil, err
	case cfg.LastN > 0:
		games, err := svc.MostRecentGames(ctx, cfg.User, cfg.LastN, contract.MaxRecentMonths)
		return games, nil, err
	default:
		now := time.Now().In(cfg.TZ)
		window := &core.DayWindow{
			From: core.ShiftedDate(now.AddDate(0, 0, -(cfg.Days-1)), cfg.TZ, cfg.CutoffHour),
			To:   core.ShiftedDate(now, cfg.TZ, cfg.CutoffHour),
		}

		// Fetch one extra day of months so the cutoff shift near a
		// month boundary cannot miss games; the window filter does the
		// precise cut.
		first := chesscom.YearMonthOf(now.AddDate(0, 0, -cfg.Days))
		games, err := svc.GamesForWindow(ctx, cfg.User, first, chesscom.YearMonthOf(now))
		return games, window, err
	}
}

// lookupCountries resolves opponent countries through the persistent
// country cache. Failures degrade to missing entries, never errors.
func lookupCountries(ctx context.Context, svc *chesscom.Service, cfg *contract.Config, report *schema.Report) map[string]string {
	opponents := make([]string, 0, len(report.Events))
	for i := range report.Events {
		opponents = append(opponents, report.Events[i].Detail.Opponent)
	}

	cache := chesscom.NewCountryCache(filepath.Join(cfg.CacheDir, "countries.json"))
	cache.Load()
	countries := svc.CountryLookup(ctx, cache, opponents)
	cache.Save()
	return countries
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
