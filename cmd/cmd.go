// Package cmd defines the command-line interface for chessions.
package cmd

import (
	"github.com/christianmadden/chess.com-utils/internal"
	"github.com/christianmadden/chess.com-utils/internal/contract"
	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("user", "u", "", "Chess.com username to analyze")
	rootCmd.PersistentFlags().IntP("days", "d", contract.DefaultDays, "Number of recent days to analyze")
	rootCmd.PersistentFlags().Bool("all", false, "Analyze the entire archive history")
	rootCmd.PersistentFlags().Int("last", 0, "Analyze only the N most recent games")
	rootCmd.PersistentFlags().IntP("gap", "g", contract.DefaultGapMinutes, "Idle minutes between games that starts a new session")
	rootCmd.PersistentFlags().Int("day-cutoff-hour", contract.DefaultCutoffHour, "Local hour treated as the start of a day (games before it count as the previous day)")
	rootCmd.PersistentFlags().String("tz", contract.DefaultTimezone, "IANA time zone for day bucketing")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the monthly archive cache")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.JSONBackend), "Cache backend: json or sqlite or none")
	rootCmd.PersistentFlags().String("cache-dir", "", "Cache directory (default: platform user cache dir)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-game opponent, rating and accuracy tables")
	rootCmd.PersistentFlags().Bool("countries", false, "Resolve and print opponent countries")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored results in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print fetch and cache diagnostics to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		internal.FatalError("Error binding root flags", err)
	}
}
