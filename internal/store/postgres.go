package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// DB stores batches and their games in Postgres.
type DB struct{ *pgxpool.Pool }

// Open connects to the database at dsn.
func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &DB{p}, nil
}

func (db *DB) Close()                         { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

// Migrate creates the tables when they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

var gameColumns = []string{
	"id", "batch_id", "seed", "outcome", "cause", "turns", "moves",
	"reshuffles", "foundation_cards", "elapsed_us", "last_actions",
}

// SaveBatch writes the batch row and copies every game row in one
// transaction.
func (db *DB) SaveBatch(ctx context.Context, b Batch) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	s := b.Summary
	_, err = tx.Exec(ctx, `
		INSERT INTO batches(id, seed, started_at, games, wins, stalemates, timeouts,
		                    win_rate, avg_turns, avg_foundation, wall_ms,
		                    reserve_capacity, max_reshuffles)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, s.BatchID, int64(s.Seed), s.Started, s.Games, s.Wins, s.Stalemates, s.Timeouts,
		s.WinRate, s.AvgTurns, s.AvgFoundationCards, s.Wall.Milliseconds(),
		int16(b.Rules.ReserveCapacity), int32(b.Rules.MaxReshuffles))
	if err != nil {
		return fmt.Errorf("insert batch %s: %w", s.BatchID, err)
	}

	rows := make([][]any, len(b.Results))
	for i, r := range b.Results {
		actions := make([]string, len(r.LastActions))
		for j, t := range r.LastActions {
			actions[j] = string(t)
		}
		rows[i] = []any{
			r.ID, s.BatchID, int64(r.Seed), string(r.Outcome), string(r.Cause),
			int32(r.Turns), int32(r.Moves), int32(r.Reshuffles),
			int16(r.FoundationCards), r.Elapsed.Microseconds(), actions,
		}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"games"}, gameColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy games for batch %s: %w", s.BatchID, err)
	}
	return tx.Commit(ctx)
}

// BatchRow is a stored batch as read back by RecentBatches.
type BatchRow struct {
	ID        uuid.UUID
	Seed      uint64
	StartedAt time.Time
	Games     int
	Wins      int
	WinRate   float64
	AvgTurns  float64
}

// RecentBatches returns up to limit batches, newest first.
func (db *DB) RecentBatches(ctx context.Context, limit int) ([]BatchRow, error) {
	rows, err := db.Query(ctx, `
		SELECT id, seed, started_at, games, wins, win_rate, avg_turns
		  FROM batches
		 ORDER BY started_at DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BatchRow
	for rows.Next() {
		var r BatchRow
		var seed int64
		if err := rows.Scan(&r.ID, &seed, &r.StartedAt, &r.Games, &r.Wins, &r.WinRate, &r.AvgTurns); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		out = append(out, r)
	}
	return out, rows.Err()
}

// OutcomeCounts totals every stored game by outcome.
func (db *DB) OutcomeCounts(ctx context.Context) (map[string]int, error) {
	rows, err := db.Query(ctx, `SELECT outcome, count(*) FROM games GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	return out, rows.Err()
}
