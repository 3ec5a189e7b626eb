// Package store persists batch results to Postgres and keeps running totals
// in Redis.
package store

import (
	"context"
	"errors"

	engine "github.com/jason-s-yu/klondike/engine"
	"github.com/jason-s-yu/klondike/internal/game"
	"github.com/jason-s-yu/klondike/internal/sim"
)

// Batch is one finished batch ready to persist.
type Batch struct {
	Summary sim.Summary
	Rules   engine.Rules
	Results []game.Result
}

// Sink receives finished batches.
type Sink interface {
	SaveBatch(ctx context.Context, b Batch) error
}

// Multi fans a batch out to every sink and joins their errors.
type Multi []Sink

// SaveBatch saves b to each sink in order. A failing sink does not stop the
// others.
func (m Multi) SaveBatch(ctx context.Context, b Batch) error {
	var errs []error
	for _, s := range m {
		if err := s.SaveBatch(ctx, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
