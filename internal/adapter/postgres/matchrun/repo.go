// Package matchrun stores matching runs and their per-target results in
// PostgreSQL.
package matchrun

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lexmatch/internal/adapter/postgres"
	"github.com/heartmarshall/lexmatch/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides run persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new run repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, txm: postgres.NewTxManager(pool)}
}

// ResultFilter narrows ListResults. Zero values mean no filter.
type ResultFilter struct {
	Status domain.MatchStatus
	Limit  uint64
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Save writes the run header and every result in one transaction.
func (r *Repo) Save(ctx context.Context, run domain.MatchRun, results []domain.MatchResult) error {
	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)
		s := run.Summary

		var concTol *float64
		if s.Tolerances.UseConcreteness {
			concTol = &s.Tolerances.Concreteness
		}

		// seed is stored bit-for-bit in a signed bigint.
		_, err := q.Exec(ctx,
			`INSERT INTO match_runs
			 (id, created_at, seed, order_policy, frequency_tolerance, concreteness_tolerance,
			  targets, matched, unmatched, pool_before, pool_after)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			run.ID, run.CreatedAt, int64(s.Seed), string(s.Order), s.Tolerances.Frequency, concTol,
			s.Targets, s.Matched, s.Unmatched, s.PoolBefore, s.PoolAfter,
		)
		if err != nil {
			return postgres.MapError(err, "match_run", run.ID)
		}

		if len(results) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i := range results {
			queueResult(batch, run.ID, i, &results[i])
		}
		if err := sendBatchExec(ctx, q, batch); err != nil {
			return postgres.MapError(err, "match_result", run.ID)
		}
		return nil
	})
}

func queueResult(batch *pgx.Batch, runID uuid.UUID, index int, res *domain.MatchResult) {
	t := &res.Target

	var syllables *int
	var frequency *float64
	if t.Resolved {
		syllables = &t.SyllableCount
		frequency = &t.FrequencyScore
	}

	var fWord *string
	var fSyllables *int
	var fFrequency, fConc *float64
	if f := res.Filler; f != nil {
		fWord = &f.Word
		fSyllables = &f.SyllableCount
		fFrequency = &f.FrequencyScore
		fConc = f.Concreteness
	}

	batch.Queue(
		`INSERT INTO match_results
		 (run_id, input_index, position, target_word, target_class, target_source, target_condition,
		  target_resolved, target_syllables, target_frequency, target_concreteness,
		  status, filler_word, filler_syllables, filler_frequency, filler_concreteness,
		  filler_condition, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		runID, index, res.Position, t.Word, string(t.Class), t.Source, t.Condition,
		t.Resolved, syllables, frequency, t.Concreteness,
		string(res.Status()), fWord, fSyllables, fFrequency, fConc,
		res.Condition, res.Reason(),
	)
}

func sendBatchExec(ctx context.Context, q postgres.Querier, batch *pgx.Batch) error {
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the run header for id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (domain.MatchRun, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		run     = domain.MatchRun{ID: id}
		seed    int64
		order   string
		concTol *float64
	)
	err := q.QueryRow(ctx,
		`SELECT created_at, seed, order_policy, frequency_tolerance, concreteness_tolerance,
		        targets, matched, unmatched, pool_before, pool_after
		 FROM match_runs WHERE id = $1`,
		id,
	).Scan(
		&run.CreatedAt, &seed, &order, &run.Summary.Tolerances.Frequency, &concTol,
		&run.Summary.Targets, &run.Summary.Matched, &run.Summary.Unmatched,
		&run.Summary.PoolBefore, &run.Summary.PoolAfter,
	)
	if err != nil {
		return domain.MatchRun{}, postgres.MapError(err, "match_run", id)
	}

	run.Summary.Seed = uint64(seed)
	run.Summary.Order = domain.OrderPolicy(order)
	if concTol != nil {
		run.Summary.Tolerances.Concreteness = *concTol
		run.Summary.Tolerances.UseConcreteness = true
	}
	return run, nil
}

var resultColumns = []string{
	"position", "target_word", "target_class", "target_source", "target_condition",
	"target_resolved", "target_syllables", "target_frequency", "target_concreteness",
	"status", "filler_word", "filler_syllables", "filler_frequency", "filler_concreteness",
	"filler_condition", "reason",
}

// ListResults returns the stored results of a run in input order.
func (r *Repo) ListResults(ctx context.Context, runID uuid.UUID, filter ResultFilter) ([]domain.MatchResult, error) {
	query := psql.Select(resultColumns...).
		From("match_results").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("input_index ASC")
	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "match_results", runID)
	}
	defer rows.Close()

	var out []domain.MatchResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, postgres.MapError(err, "match_results", runID)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "match_results", runID)
	}
	return out, nil
}

func scanResult(rows pgx.Rows) (domain.MatchResult, error) {
	var (
		res                   domain.MatchResult
		class, status         string
		syllables, fSyllables *int
		frequency             *float64
		fWord                 *string
		fFrequency, fConc     *float64
		reason                string
	)
	t := &res.Target
	err := rows.Scan(
		&res.Position, &t.Word, &class, &t.Source, &t.Condition,
		&t.Resolved, &syllables, &frequency, &t.Concreteness,
		&status, &fWord, &fSyllables, &fFrequency, &fConc,
		&res.Condition, &reason,
	)
	if err != nil {
		return domain.MatchResult{}, err
	}

	t.Class = domain.GrammaticalClass(class)
	if syllables != nil {
		t.SyllableCount = *syllables
	}
	if frequency != nil {
		t.FrequencyScore = *frequency
	}

	if domain.MatchStatus(status) == domain.StatusMatched && fWord != nil {
		f := &domain.LexicalEntry{Word: *fWord, Class: t.Class, Concreteness: fConc}
		if fSyllables != nil {
			f.SyllableCount = *fSyllables
		}
		if fFrequency != nil {
			f.FrequencyScore = *fFrequency
		}
		res.Filler = f
	} else {
		res.Err = &domain.NoCandidateError{Word: t.Word, Reason: reason}
	}
	return res, nil
}
