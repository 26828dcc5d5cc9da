package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedRun inserts an empty run header and returns its ID.
func SeedRun(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO match_runs
		 (id, seed, order_policy, frequency_tolerance, concreteness_tolerance, targets, matched, unmatched, pool_before, pool_after)
		 VALUES ($1, 42, 'input', 0.1, 1.0, 0, 0, 0, 10, 10)`,
		id,
	)
	if err != nil {
		t.Fatalf("testhelper: seed run: %v", err)
	}
	return id
}
