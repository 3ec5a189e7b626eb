// Package sim plays batches of agent-driven games and aggregates the results.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/klondike/engine"
	"github.com/jason-s-yu/klondike/engine/agent"
	"github.com/jason-s-yu/klondike/internal/game"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config controls a batch run.
type Config struct {
	Games            int    `yaml:"games" json:"games"`
	Workers          int    `yaml:"workers" json:"workers"`
	Seed             uint64 `yaml:"seed" json:"seed"`
	MaxTurns         int    `yaml:"max_turns" json:"max_turns"`
	VerifyInvariants bool   `yaml:"verify_invariants" json:"verify_invariants"`
	ProgressEvery    int    `yaml:"progress_every" json:"progress_every"`
}

// DefaultConfig returns the batch defaults: 100 games, one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Games:         100,
		Workers:       runtime.NumCPU(),
		MaxTurns:      game.DefaultMaxTurns,
		ProgressEvery: 100,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Games < 1:
		return fmt.Errorf("games must be positive, got %d", c.Games)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.MaxTurns < 1:
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	case c.ProgressEvery < 0:
		return fmt.Errorf("progress_every must not be negative, got %d", c.ProgressEvery)
	}
	return nil
}

// Observer is notified of every finished game. Implementations must be safe
// for concurrent use.
type Observer interface {
	ObserveGame(res game.Result)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(res game.Result)

// ObserveGame calls f(res).
func (f ObserverFunc) ObserveGame(res game.Result) { f(res) }

// Runner plays games with a fixed rule set and agent configuration.
type Runner struct {
	Config Config
	Rules  engine.Rules
	Agent  agent.Config

	Log      logrus.FieldLogger
	Observer Observer
	// OnProgress is called after every ProgressEvery finished games, and
	// once more at the end, from whichever worker finished the game.
	OnProgress func(done, total int)
}

// NewRunner returns a runner with default rules and agent thresholds.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		Config: cfg,
		Rules:  engine.DefaultRules(),
		Agent:  agent.DefaultConfig(),
		Log:    logrus.StandardLogger(),
	}
}

func (r *Runner) options() game.Options {
	return game.Options{
		Rules:            r.Rules,
		Agent:            r.Agent,
		MaxTurns:         r.Config.MaxTurns,
		VerifyInvariants: r.Config.VerifyInvariants,
	}
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// PlayGame plays one game from seed to completion.
func (r *Runner) PlayGame(ctx context.Context, seed uint64) (game.Result, error) {
	g := game.NewKlondikeGame(seed, r.options())
	g.Log = r.logger()
	return g.Run(ctx)
}

// RunBatch plays Config.Games games across Config.Workers goroutines. Game i
// is dealt from GameSeed(Config.Seed, i), so a batch is reproducible
// regardless of scheduling. Results are returned in game order. A cancelled
// context stops scheduling and returns the context error with the games
// finished so far summarised.
func (r *Runner) RunBatch(ctx context.Context) (Summary, []game.Result, error) {
	if err := r.Config.Validate(); err != nil {
		return Summary{}, nil, err
	}
	total := r.Config.Games
	workers := r.Config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	batchID, _ := uuid.NewRandom()
	log := r.logger().WithFields(logrus.Fields{"batch_id": batchID, "seed": r.Config.Seed})
	log.Infof("Batch %s: Playing %d game(s) on %d worker(s).", batchID, total, workers)

	results := make([]game.Result, total)
	played := make([]bool, total)
	var done atomic.Int64
	var progressMu sync.Mutex

	start := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := 0; i < total; i++ {
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			res, err := r.PlayGame(egCtx, GameSeed(r.Config.Seed, i))
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, res.Seed, err)
			}
			results[i] = res
			played[i] = true
			if r.Observer != nil {
				r.Observer.ObserveGame(res)
			}
			n := int(done.Add(1))
			if r.OnProgress != nil && r.Config.ProgressEvery > 0 && n%r.Config.ProgressEvery == 0 && n != total {
				progressMu.Lock()
				r.OnProgress(n, total)
				progressMu.Unlock()
			}
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	finished := results[:0:0]
	for i, ok := range played {
		if ok {
			finished = append(finished, results[i])
		}
	}
	if r.OnProgress != nil {
		r.OnProgress(len(finished), total)
	}

	summary := Summarize(finished, time.Since(start))
	summary.BatchID = batchID
	summary.Seed = r.Config.Seed
	summary.Started = start

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warnf("Batch %s: Stopped after %d of %d game(s): %v", batchID, len(finished), total, err)
		} else {
			log.Errorf("Batch %s: Failed: %v", batchID, err)
		}
		return summary, finished, err
	}
	log.WithFields(logrus.Fields{
		"wins":     summary.Wins,
		"win_rate": summary.WinRate,
	}).Infof("Batch %s: Finished %d game(s) in %s.", batchID, summary.Games, summary.Wall.Round(time.Millisecond))
	return summary, finished, nil
}
