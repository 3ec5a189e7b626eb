// Package report renders batch summaries as text tables and keeps a
// cumulative log of every batch.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jason-s-yu/klondike/internal/game"
	"github.com/jason-s-yu/klondike/internal/sim"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	// DetailDir holds one report file per batch, under the report directory.
	DetailDir = "detailed"
	// CumulativeFile is the running log of every batch.
	CumulativeFile = "cumulative.log"

	topStrategies = 5
	ruleWidth     = 100
)

var ratingLines = map[sim.Rating]string{
	sim.RatingExcellent:  "EXCELLENT: very high win rate",
	sim.RatingGood:       "GOOD: win rate within the norm",
	sim.RatingAcceptable: "ACCEPTABLE: realistic win rate",
	sim.RatingCritical:   "CRITICAL: very low win rate",
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.Style().Title.Align = text.AlignLeft
	return t
}

func pct(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}

func seconds(d time.Duration) string { return fmt.Sprintf("%.3fs", d.Seconds()) }

// Write renders s as a set of tables.
func Write(w io.Writer, s sim.Summary) error {
	if _, err := fmt.Fprintf(w, "KLONDIKE SIMULATION REPORT\nbatch %s, seed %d\n", s.BatchID, s.Seed); err != nil {
		return err
	}
	fmt.Fprintf(w, "time %.1fs, %.1f games/s\n\n", s.Wall.Seconds(), s.GamesPerSecond)

	t := newTable(w, "Results")
	t.AppendHeader(table.Row{"", "Games", "Share"})
	t.AppendRows([]table.Row{
		{"Played", s.Games, ""},
		{"Wins", s.Wins, fmt.Sprintf("%.1f%%", s.WinRate)},
		{"Stalemates", s.Stalemates, fmt.Sprintf("%.1f%%", s.StalemateRate)},
		{"Timeouts", s.Timeouts, fmt.Sprintf("%.1f%%", s.TimeoutRate)},
	})
	t.Render()
	fmt.Fprintln(w)

	t = newTable(w, "Analysis")
	t.AppendRows([]table.Row{
		{"Average turns", fmt.Sprintf("%.1f", s.AvgTurns)},
		{"Average duration", seconds(s.AvgDuration)},
		{"Average foundation cards", fmt.Sprintf("%.1f/52", s.AvgFoundationCards)},
		{"Completion", fmt.Sprintf("%.1f%%", s.AvgCompletion)},
	})
	t.Render()
	fmt.Fprintln(w)

	t = newTable(w, "Extremes")
	t.AppendHeader(table.Row{"", "Min", "Max"})
	t.AppendRows([]table.Row{
		{"Turns", s.MinTurns, s.MaxTurns},
		{"Duration", seconds(s.MinDuration), seconds(s.MaxDuration)},
	})
	t.Render()
	fmt.Fprintln(w)

	if len(s.Causes) > 0 {
		t = newTable(w, "End causes")
		t.AppendHeader(table.Row{"Cause", "Games", "Share"})
		causes := make([]game.Cause, 0, len(s.Causes))
		for c := range s.Causes {
			causes = append(causes, c)
		}
		sort.Slice(causes, func(i, j int) bool {
			if s.Causes[causes[i]] != s.Causes[causes[j]] {
				return s.Causes[causes[i]] > s.Causes[causes[j]]
			}
			return causes[i] < causes[j]
		})
		for _, c := range causes {
			t.AppendRow(table.Row{string(c), s.Causes[c], pct(s.Causes[c], s.Games)})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if len(s.WinningTags) > 0 {
		t = newTable(w, "Winning strategies")
		t.AppendHeader(table.Row{"Action", "Times"})
		for i, tc := range s.WinningTags {
			if i == topStrategies {
				break
			}
			t.AppendRow(table.Row{string(tc.Tag), tc.Count})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintf(w, "Rating: %s\n", ratingLines[s.Rating()])
	return err
}

// SaveFile writes the report for s to dir/detailed/report_YYYYMMDD_HHMMSS.txt
// and returns the file's path.
func SaveFile(dir string, s sim.Summary, now time.Time) (string, error) {
	detail := filepath.Join(dir, DetailDir)
	if err := os.MkdirAll(detail, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(detail, fmt.Sprintf("report_%s.txt", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Generated %s\n", now.Format("02/01/2006 15:04:05"))
	fmt.Fprintln(f, strings.Repeat("=", ruleWidth))
	if err := Write(f, s); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintln(f, strings.Repeat("=", ruleWidth))
	return path, f.Close()
}

// CumulativeLine formats one batch as a row of the cumulative log.
func CumulativeLine(s sim.Summary, now time.Time) string {
	return fmt.Sprintf("%s | %6d | %4d (%5.1f%%) | %4d (%5.1f%%) | %4d (%5.1f%%) | %6.1fs | %7.1f | %s",
		now.Format("02/01/2006 15:04:05"), s.Games,
		s.Wins, s.WinRate, s.Stalemates, s.StalemateRate, s.Timeouts, s.TimeoutRate,
		s.Wall.Seconds(), s.GamesPerSecond, s.Rating())
}

const cumulativeHeader = "Date/Time           | Games  | Wins          | Stalemates    | Timeouts      | Time    | Games/s | Rating"

// AppendCumulative adds one line for s to dir/cumulative.log, writing the
// header first when the file is new. It returns the file's path.
func AppendCumulative(dir string, s sim.Summary, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, CumulativeFile)
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open cumulative log: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	if fresh {
		b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
		b.WriteString("KLONDIKE SIMULATION - CUMULATIVE LOG\n")
		b.WriteString(strings.Repeat("=", ruleWidth) + "\n")
		b.WriteString(cumulativeHeader + "\n")
		b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	}
	b.WriteString(CumulativeLine(s, now) + "\n")
	if _, err := f.WriteString(b.String()); err != nil {
		return "", fmt.Errorf("append cumulative log: %w", err)
	}
	return path, f.Close()
}
