package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/jason-s-yu/klondike/internal/config"
	"github.com/jason-s-yu/klondike/internal/metrics"
	"github.com/jason-s-yu/klondike/internal/report"
	"github.com/jason-s-yu/klondike/internal/sim"
	"github.com/jason-s-yu/klondike/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	log := logrus.StandardLogger()

	if cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = sim.TimeSeed()
	}
	runner := newRunner(cfg, log)
	if !noProgress {
		errOut := cmd.ErrOrStderr()
		runner.OnProgress = func(done, total int) {
			fmt.Fprintf(errOut, "progress: %d/%d games (%.0f%%)\n", done, total, 100*float64(done)/float64(total))
		}
	}

	var gm *metrics.GameMetrics
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		var err error
		if gm, err = metrics.New(reg); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		runner.Observer = gm
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, reg, log); err != nil {
				log.Errorf("Metrics: %v", err)
			}
		}()
	}

	summary, results, runErr := runner.RunBatch(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if gm != nil {
		gm.BatchDone()
	}

	out := cmd.OutOrStdout()
	if err := report.Write(out, summary); err != nil {
		return err
	}
	if err := saveReports(out, cfg.Report, summary, time.Now()); err != nil {
		log.Errorf("Report: %v", err)
	}

	batch := store.Batch{Summary: summary, Rules: cfg.Rules, Results: results}
	if err := persist(context.WithoutCancel(ctx), cfg.Store, batch, log); err != nil {
		return fmt.Errorf("persist batch: %w", err)
	}
	return runErr
}

func newRunner(c config.Config, log logrus.FieldLogger) *sim.Runner {
	r := sim.NewRunner(c.Sim)
	r.Rules = c.Rules
	r.Agent = c.Agent
	r.Log = log
	return r
}

// saveReports writes the detailed report and the cumulative log line when
// enabled, printing where each went.
func saveReports(out io.Writer, rc config.ReportConfig, s sim.Summary, now time.Time) error {
	if rc.Save {
		path, err := report.SaveFile(rc.Dir, s, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Report saved: %s\n", path)
	}
	if rc.Cumulative {
		path, err := report.AppendCumulative(rc.Dir, s, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cumulative log updated: %s\n", path)
	}
	return nil
}

// openSinks connects every configured store. The returned closer releases
// them all.
func openSinks(ctx context.Context, sc config.StoreConfig) (store.Multi, func(), error) {
	var sinks store.Multi
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	if sc.PostgresDSN != "" {
		db, err := store.Open(ctx, sc.PostgresDSN)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, db.Close)
		if err := db.Migrate(ctx); err != nil {
			return nil, closeAll, fmt.Errorf("migrate: %w", err)
		}
		sinks = append(sinks, db)
	}
	if sc.RedisAddr != "" {
		t := store.NewTally(sc.RedisAddr, sc.RedisKey)
		closers = append(closers, func() { _ = t.Close() })
		if err := t.Ping(ctx); err != nil {
			return nil, closeAll, fmt.Errorf("redis: %w", err)
		}
		sinks = append(sinks, t)
	}
	return sinks, closeAll, nil
}

func persist(ctx context.Context, sc config.StoreConfig, b store.Batch, log logrus.FieldLogger) error {
	sinks, closeAll, err := openSinks(ctx, sc)
	defer closeAll()
	if err != nil {
		return err
	}
	if len(sinks) == 0 {
		return nil
	}
	if err := sinks.SaveBatch(ctx, b); err != nil {
		return err
	}
	log.Infof("Batch %s: Saved to %d store(s).", b.Summary.BatchID, len(sinks))
	return nil
}
