// Package filler orchestrates a filler-matching run: load the input tables,
// prepare the corpus, match, assign conditions, write the results table and
// optionally persist the run.
package filler

import (
	"context"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

// RunStore persists a finished run. Implemented by matchrun.Repo.
type RunStore interface {
	Save(ctx context.Context, run domain.MatchRun, results []domain.MatchResult) error
}
