package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/christianmadden/chess.com-utils/internal/contract"
	"github.com/christianmadden/chess.com-utils/schema"
)

// PrintReport renders a session report in the configured output mode.
// countries maps opponent usernames to display strings and may be nil.
func PrintReport(report *schema.Report, cfg *contract.Config, countries map[string]string) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVReport(report, cfg, countries); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printTextReport(report, cfg, countries); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeWithFile handles the common pattern of opening the destination,
// writing to it, and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// printJSONReport writes the day buckets and summary as indented JSON.
func printJSONReport(report *schema.Report, cfg *contract.Config) error {
	type jsonGame struct {
		Start    string         `json:"start"`
		End      string         `json:"end"`
		Outcome  schema.Outcome `json:"outcome"`
		Side     schema.Side    `json:"side,omitempty"`
		Opponent string         `json:"opponent,omitempty"`
		Rating   *int           `json:"rating,omitempty"`
		Accuracy *float64       `json:"accuracy,omitempty"`
	}
	type jsonSession struct {
		Start string     `json:"start"`
		End   string     `json:"end"`
		Games []jsonGame `json:"games"`
	}
	type jsonDay struct {
		Date     string        `json:"date"`
		Sessions []jsonSession `json:"sessions"`
	}

	days := make([]jsonDay, 0, len(report.Days))
	for _, d := range report.Days.Days() {
		day := jsonDay{Date: d.String()}
		for _, s := range report.Days[d] {
			sess := jsonSession{
				Start: s.Start().In(cfg.TZ).Format(contract.DateTimeFormat),
				End:   s.End().In(cfg.TZ).Format(contract.DateTimeFormat),
			}
			for _, e := range s {
				sess.Games = append(sess.Games, jsonGame{
					Start:    e.Start.In(cfg.TZ).Format(contract.DateTimeFormat),
					End:      e.End.In(cfg.TZ).Format(contract.DateTimeFormat),
					Outcome:  e.Outcome,
					Side:     e.Side,
					Opponent: e.Detail.Opponent,
					Rating:   e.Detail.RatingAfter,
					Accuracy: e.Detail.Accuracy,
				})
			}
			day.Sessions = append(day.Sessions, sess)
		}
		days = append(days, day)
	}

	payload := struct {
		Days    []jsonDay      `json:"days"`
		Summary schema.Summary `json:"summary"`
	}{Days: days, Summary: report.Summary}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}, "Wrote JSON")
}

// printCSVReport writes one row per game.
func printCSVReport(report *schema.Report, cfg *contract.Config, countries map[string]string) error {
	header := []string{
		"date", "session", "start", "end", "outcome", "side",
		"opponent", "rating", "rating_diff", "accuracy", "time_class", "rated", "country",
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()

		if err := csvWriter.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}

		for _, d := range report.Days.Days() {
			for si, s := range report.Days[d] {
				for _, e := range s {
					rec := []string{
						d.String(),
						strconv.Itoa(si + 1),
						e.Start.In(cfg.TZ).Format(contract.DateTimeFormat),
						e.End.In(cfg.TZ).Format(contract.DateTimeFormat),
						string(e.Outcome),
						string(e.Side),
						e.Detail.Opponent,
						formatIntPtr(e.Detail.RatingAfter),
						formatIntPtr(e.Detail.RatingDiff),
						formatFloatPtr(e.Detail.Accuracy),
						e.Detail.TimeClass,
						strconv.FormatBool(e.Detail.Rated),
						countries[e.Detail.Opponent],
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}, "Wrote CSV")
}

// formatIntPtr renders an optional int, empty when absent.
func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// formatFloatPtr renders an optional float with one decimal, empty when absent.
func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
