package internal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/christianmadden/chess.com-utils/internal/contract"
	"github.com/christianmadden/chess.com-utils/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	winColor  = color.New(color.FgHiGreen, color.Bold)
	lossColor = color.New(color.FgHiRed, color.Bold)
	drawColor = color.New(color.FgHiBlack, color.Bold)
)

// resultLetter renders one outcome from the strip. The letter is lowercase
// when the observer played black, so the strip doubles as a color record.
func resultLetter(e schema.Event, useColors bool) string {
	letter := string(e.Outcome)
	if e.Side == schema.SideBlack {
		letter = strings.ToLower(letter)
	}
	if !useColors {
		return letter
	}
	switch e.Outcome {
	case schema.Win:
		return winColor.Sprint(letter)
	case schema.Loss:
		return lossColor.Sprint(letter)
	default:
		return drawColor.Sprint(letter)
	}
}

// ResultStrip renders a compact colorized W/L/D strip for a run of events.
func ResultStrip(events []schema.Event, useColors bool) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(resultLetter(e, useColors))
	}
	return b.String()
}

// clockFormat renders an instant as a short local clock time, e.g. "9:41pm".
func clockFormat(t time.Time, tz *time.Location) string {
	return strings.ToLower(t.In(tz).Format("3:04pm"))
}

// printTextReport writes the human-readable report: an overall result
// strip, one table of sessions per day, and a closing summary.
func printTextReport(report *schema.Report, cfg *contract.Config, countries map[string]string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		sum := report.Summary.Overall
		fmt.Fprintf(w, "\nSessions for %s\n\n", cfg.User)
		fmt.Fprintf(w, "%s -- %d wins, %d losses, %d draws -- %d%% win rate\n",
			ResultStrip(report.Events, cfg.UseColors),
			sum.Wins, sum.Losses, sum.Draws, sum.WinPct())
		if delta := report.Summary.Rating.Delta(); delta != nil {
			fmt.Fprintf(w, "Rating: %d → %d (%+d)\n", *report.Summary.Rating.Start, *report.Summary.Rating.End, *delta)
		}
		fmt.Fprintln(w)

		for _, d := range report.Days.Days() {
			fmt.Fprintln(w, d.Time().Format("Monday, January 2"))
			if cfg.Detail {
				if err := writeDayDetailTable(w, report.Days[d], cfg, countries); err != nil {
					return err
				}
			} else {
				if err := writeDayTable(w, report.Days[d], cfg); err != nil {
					return err
				}
			}
			fmt.Fprintln(w)
		}

		if cfg.Detail {
			writeSessionStats(w, report.Summary.Sessions)
		}
		return nil
	}, "Wrote report")
}

// writeDayTable writes one row per session of the day.
func writeDayTable(w io.Writer, sessions []schema.Session, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Time", "Games", "Length", "Results"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, s := range sessions {
		data = append(data, []string{
			fmt.Sprintf("%s to %s", clockFormat(s.Start(), cfg.TZ), clockFormat(s.End(), cfg.TZ)),
			pluralGames(len(s)),
			formatDuration(s.Duration()),
			ResultStrip(s, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeDayDetailTable writes one row per game of the day, grouped by session.
func writeDayDetailTable(w io.Writer, sessions []schema.Session, cfg *contract.Config, countries map[string]string) error {
	table := tablewriter.NewWriter(w)
	headers := []string{"Session", "Time", "Result", "Opponent", "Rating", "Δ", "Acc"}
	if cfg.Countries {
		headers = append(headers, "Country")
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for si, s := range sessions {
		for _, e := range s {
			opponent := truncateName(e.Detail.Opponent, maxOpponentWidth(cfg))
			row := []string{
				strconv.Itoa(si + 1),
				clockFormat(e.Start, cfg.TZ),
				resultLetter(e, cfg.UseColors),
				opponent,
				formatIntPtr(e.Detail.RatingAfter),
				formatDiff(e.Detail.RatingDiff),
				formatFloatPtr(e.Detail.Accuracy),
			}
			if cfg.Countries {
				row = append(row, countries[e.Detail.Opponent])
			}
			data = append(data, row)
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSessionStats writes the session-shape figures of the detail view.
func writeSessionStats(w io.Writer, st schema.SessionStats) {
	if st.Count == 0 {
		return
	}
	fmt.Fprintf(w, "%d sessions -- mean %s / median %s -- %.1f games per session (median %.1f)\n",
		st.Count,
		formatDuration(st.MeanDuration),
		formatDuration(st.MedianDuration),
		st.MeanGames, st.MedianGames)
}

// formatDuration renders a duration as "1h23m" or "45m".
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// formatDiff renders an optional signed rating change.
func formatDiff(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%+d", *v)
}

func pluralGames(n int) string {
	if n == 1 {
		return "1 game"
	}
	return fmt.Sprintf("%d games", n)
}

// truncateName truncates a username to a maximum width with ellipsis suffix.
func truncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}
