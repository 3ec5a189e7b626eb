// Package metrics exports simulation results as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jason-s-yu/klondike/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const metricsNamespace = "klondike"

// GameMetrics records every finished game. It implements sim.Observer.
type GameMetrics struct {
	GamesTotal      *prometheus.CounterVec
	Turns           prometheus.Histogram
	DurationSeconds prometheus.Histogram
	FoundationCards prometheus.Histogram
	Batches         prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*GameMetrics, error) {
	m := &GameMetrics{
		GamesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "games_total",
				Help:      "Finished games by outcome and end cause",
			},
			[]string{"outcome", "cause"},
		),
		Turns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "game_turns",
			Help:      "Agent moves per game",
			Buckets:   []float64{25, 50, 100, 150, 200, 300, 500, 750, 1000},
		}),
		DurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "game_duration_seconds",
			Help:      "Wall time per game in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		FoundationCards: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "foundation_cards",
			Help:      "Cards on the foundations when the game ended",
			Buckets:   prometheus.LinearBuckets(4, 4, 13),
		}),
		Batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "batches_total",
			Help:      "Finished simulation batches",
		}),
	}
	for _, c := range []prometheus.Collector{m.GamesTotal, m.Turns, m.DurationSeconds, m.FoundationCards, m.Batches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveGame records one finished game.
func (m *GameMetrics) ObserveGame(res game.Result) {
	m.GamesTotal.WithLabelValues(string(res.Outcome), string(res.Cause)).Inc()
	m.Turns.Observe(float64(res.Turns))
	m.DurationSeconds.Observe(res.Elapsed.Seconds())
	m.FoundationCards.Observe(float64(res.FoundationCards))
}

// BatchDone counts a finished batch.
func (m *GameMetrics) BatchDone() { m.Batches.Inc() }

// Serve exposes the gatherer's metrics on addr at /metrics until ctx is
// cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Metrics: Serving on %s/metrics", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
