package main

import (
	"fmt"
	"sort"

	"github.com/jason-s-yu/klondike/internal/store"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	sc := cfg.Store
	if sc.PostgresDSN == "" && sc.RedisAddr == "" {
		return fmt.Errorf("no store configured: set store.postgres_dsn or store.redis_addr")
	}

	if sc.PostgresDSN != "" {
		db, err := store.Open(ctx, sc.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		rows, err := db.RecentBatches(ctx, recentLimit)
		if err != nil {
			return fmt.Errorf("recent batches: %w", err)
		}
		t := table.NewWriter()
		t.SetOutputMirror(out)
		t.SetTitle("Recent batches")
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Started", "Batch", "Seed", "Games", "Wins", "Win %", "Avg turns"})
		for _, r := range rows {
			t.AppendRow(table.Row{
				r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.Seed, r.Games, r.Wins,
				fmt.Sprintf("%.1f", r.WinRate), fmt.Sprintf("%.1f", r.AvgTurns),
			})
		}
		t.Render()
	}

	if sc.RedisAddr != "" {
		tally := store.NewTally(sc.RedisAddr, sc.RedisKey)
		defer tally.Close()
		totals, err := tally.Totals(ctx)
		if err != nil {
			return fmt.Errorf("totals: %w", err)
		}
		printTotals(cmd, totals)
	}
	return nil
}

func printTotals(cmd *cobra.Command, totals map[string]int64) {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetTitle("Cumulative totals")
	t.SetStyle(table.StyleLight)
	for _, k := range keys {
		t.AppendRow(table.Row{k, totals[k]})
	}
	if games := totals["games"]; games > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{"win rate", fmt.Sprintf("%.2f%%", 100*float64(totals["wins"])/float64(games))})
	}
	t.Render()
}
