// Package contract has configuration contracts for the chessions runtime.
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/christianmadden/chess.com-utils/schema"
)

// Default values for configuration.
const (
	DefaultDays       = 1
	DefaultGapMinutes = 60
	DefaultCutoffHour = 5
	DefaultTimezone   = "America/New_York"

	// MaxRecentMonths bounds the backward archive walk in --last mode so a
	// sparse account cannot trigger an unbounded fetch loop.
	MaxRecentMonths = 36
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for one invocation.
// This struct remains the "final, validated" config.
type Config struct {
	User        string
	Days        int  // day window size; ignored when All or LastN is set
	All         bool // analyze the full archive history
	LastN       int  // analyze only the N most recent games (0 = off)
	Gap         time.Duration
	CutoffHour  int
	TZ          *time.Location
	Detail      bool
	Countries   bool
	Output      schema.OutputMode
	OutputFile  string
	Width       int // terminal width override (0 = auto-detect)
	UseColors   bool
	Verbose     bool
	CacheBackend schema.CacheBackend
	CacheDir     string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	User          string `mapstructure:"user"`
	Days          int    `mapstructure:"days"`
	All           bool   `mapstructure:"all"`
	Last          int    `mapstructure:"last"`
	Gap           int    `mapstructure:"gap"`
	DayCutoffHour int    `mapstructure:"day-cutoff-hour"`
	Timezone      string `mapstructure:"tz"`
	NoCache       bool   `mapstructure:"no-cache"`
	CacheBackend  string `mapstructure:"cache-backend"`
	CacheDir      string `mapstructure:"cache-dir"`
	Detail        bool   `mapstructure:"detail"`
	Countries     bool   `mapstructure:"countries"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
	Verbose       bool   `mapstructure:"verbose"`
}

// ProcessAndValidate validates the raw input and populates cfg from it.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.User) == "" {
		return fmt.Errorf("username is required: pass --user, set CHESSIONS_USER, or add 'user' to the config file")
	}
	cfg.User = strings.TrimSpace(input.User)

	if input.Last < 0 {
		return fmt.Errorf("--last must be positive, got %d", input.Last)
	}
	if input.Last > 0 && input.All {
		return fmt.Errorf("--last and --all are mutually exclusive")
	}
	cfg.LastN = input.Last
	cfg.All = input.All
	if input.Days < 1 && !input.All && input.Last == 0 {
		return fmt.Errorf("--days must be at least 1, got %d", input.Days)
	}
	cfg.Days = input.Days

	// Zero is legal: only back-to-back games merge. The segmenter also
	// tolerates negative thresholds, but reaching it with one is a caller
	// bug, so reject here.
	if input.Gap < 0 {
		return fmt.Errorf("--gap must be >= 0 minutes, got %d", input.Gap)
	}
	cfg.Gap = time.Duration(input.Gap) * time.Minute

	if input.DayCutoffHour < 0 || input.DayCutoffHour > 23 {
		return fmt.Errorf("--day-cutoff-hour must be in [0,23], got %d", input.DayCutoffHour)
	}
	cfg.CutoffHour = input.DayCutoffHour

	tzName := input.Timezone
	if tzName == "" {
		tzName = DefaultTimezone
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tzName, err)
	}
	cfg.TZ = tz

	output := schema.OutputMode(input.Output)
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv or json", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("--width must be >= 0, got %d", input.Width)
	}
	cfg.Width = input.Width

	backend := schema.CacheBackend(input.CacheBackend)
	if backend == "" {
		backend = schema.JSONBackend
	}
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend %q: must be json, sqlite or none", input.CacheBackend)
	}
	if input.NoCache {
		backend = schema.NoneBackend
	}
	cfg.CacheBackend = backend

	cacheDir := input.CacheDir
	if cacheDir == "" {
		cacheDir, err = DefaultCacheDir()
		if err != nil {
			return err
		}
	}
	cfg.CacheDir = cacheDir

	cfg.UseColors, err = ParseColorOption(input.Color)
	if err != nil {
		return err
	}

	cfg.Detail = input.Detail
	cfg.Countries = input.Countries
	cfg.Verbose = input.Verbose
	return nil
}

// DefaultCacheDir returns the per-user cache root, honoring the platform
// cache-dir convention.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(base, "chessions"), nil
}

// ParseColorOption parses the --color value (yes/no/true/false/1/0).
func ParseColorOption(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q: use yes or no", value)
}

// SelectOutputFile returns the destination for rendered output: stdout by
// default, or a freshly created file when a path was requested.
func SelectOutputFile(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", outputFile, err)
	}
	return file, nil
}
