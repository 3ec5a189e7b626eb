package metrics

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jason-s-yu/klondike/internal/game"
	"github.com/jason-s-yu/klondike/internal/sim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMetrics registers the collectors on an isolated registry.
func newTestMetrics(t *testing.T) (*GameMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	return m, reg
}

func TestObserveGame(t *testing.T) {
	m, _ := newTestMetrics(t)
	var _ sim.Observer = m

	m.ObserveGame(game.Result{Outcome: game.OutcomeWin, Cause: game.CauseVictory, Turns: 180, FoundationCards: 52, Elapsed: time.Millisecond})
	m.ObserveGame(game.Result{Outcome: game.OutcomeStalemate, Cause: game.CauseLoopForced, Turns: 400, FoundationCards: 11})
	m.ObserveGame(game.Result{Outcome: game.OutcomeStalemate, Cause: game.CauseLoopForced, Turns: 350, FoundationCards: 7})
	m.BatchDone()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues("win", "victory")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues("stalemate", "loop_forced")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Batches))
	assert.Equal(t, 2, testutil.CollectAndCount(m.GamesTotal))
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.ObserveGame(game.Result{Outcome: game.OutcomeTimeout, Cause: game.CauseTurnLimit, Turns: 1000})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, reg, logger) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr + "/metrics")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
