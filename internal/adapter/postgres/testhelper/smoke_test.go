//go:build integration

package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	id := SeedRun(t, pool)

	var seed int64
	err := pool.QueryRow(context.Background(), `SELECT seed FROM match_runs WHERE id = $1`, id).Scan(&seed)
	if err != nil {
		t.Fatalf("expected run in DB, got error: %v", err)
	}
	if seed != 42 {
		t.Fatalf("expected seed 42, got %d", seed)
	}
}
