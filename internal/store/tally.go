package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Tally keeps cumulative counters across batches in a Redis hash.
type Tally struct {
	Client *redis.Client
	Key    string
}

// NewTally connects to the Redis server at addr.
func NewTally(addr, key string) *Tally {
	return &Tally{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		Key:    key,
	}
}

func (t *Tally) Close() error { return t.Client.Close() }

// Ping checks that the server is reachable.
func (t *Tally) Ping(ctx context.Context) error {
	return t.Client.Ping(ctx).Err()
}

// tallyFields lists the counters a batch adds to.
func tallyFields(b Batch) map[string]int64 {
	s := b.Summary
	fields := map[string]int64{
		"batches":    1,
		"games":      int64(s.Games),
		"wins":       int64(s.Wins),
		"stalemates": int64(s.Stalemates),
		"timeouts":   int64(s.Timeouts),
	}
	var turns, cards int64
	for _, r := range b.Results {
		turns += int64(r.Turns)
		cards += int64(r.FoundationCards)
	}
	fields["turns"] = turns
	fields["foundation_cards"] = cards
	for cause, n := range s.Causes {
		fields["cause:"+string(cause)] = int64(n)
	}
	return fields
}

// SaveBatch adds the batch to the running counters atomically.
func (t *Tally) SaveBatch(ctx context.Context, b Batch) error {
	fields := tallyFields(b)
	_, err := t.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for f, n := range fields {
			pipe.HIncrBy(ctx, t.Key, f, n)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tally batch %s: %w", b.Summary.BatchID, err)
	}
	return nil
}

// Totals returns every counter.
func (t *Tally) Totals(ctx context.Context) (map[string]int64, error) {
	raw, err := t.Client.HGetAll(ctx, t.Key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// Reset deletes every counter.
func (t *Tally) Reset(ctx context.Context) error {
	return t.Client.Del(ctx, t.Key).Err()
}
