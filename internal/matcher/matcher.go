// Package matcher draws one filler per target from a candidate pool.
//
// Matching is greedy and order-dependent: each target filters the pool as
// it stands, draws uniformly among the eligible entries and removes the
// drawn word before the next target runs. Targets without an eligible
// entry are recorded as unmatched and the run continues.
package matcher

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

// Unmatched reasons.
const (
	ReasonNoEligible     = "no eligible candidate"
	ReasonNoConcreteness = "target has no concreteness rating"
)

// Options configures one matching run.
type Options struct {
	Tolerances domain.Tolerances
	// Rand drives the draw. Nil means NewRand(Seed).
	Rand *rand.Rand
	// Seed is recorded in the summary.
	Seed                 uint64
	Order                domain.OrderPolicy
	RequireDominantClass bool
}

// Run is the outcome of Match.
type Run struct {
	// Results holds one result per target in input order.
	Results []domain.MatchResult
	Summary domain.Summary
}

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Match draws a filler for every target, mutating pool. The same pool
// contents, targets, order and seed give the same run.
func Match(targets []domain.TargetWord, pool *CandidatePool, opts Options) Run {
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(opts.Seed)
	}
	if opts.Order == "" {
		opts.Order = domain.OrderInput
	}

	summary := domain.Summary{
		Targets:    len(targets),
		PoolBefore: pool.Len(),
		Tolerances: opts.Tolerances,
		Order:      opts.Order,
		Seed:       opts.Seed,
	}

	results := make([]domain.MatchResult, len(targets))
	selected := make(map[string]bool, len(targets))

	for pos, i := range processingOrder(targets, pool, opts) {
		t := targets[i]
		res := domain.MatchResult{Target: t, Position: pos}

		if reason := unmatchable(&t, opts.Tolerances); reason != "" {
			res.Err = &domain.NoCandidateError{Word: t.Word, Reason: reason}
			results[i] = res
			summary.Unmatched++
			continue
		}

		eligible := eligibleFor(&t, pool, opts, selected)
		if len(eligible) == 0 {
			res.Err = &domain.NoCandidateError{Word: t.Word, Reason: ReasonNoEligible}
			results[i] = res
			summary.Unmatched++
			continue
		}

		filler := *eligible[rng.IntN(len(eligible))]
		selected[filler.Word] = true
		pool.Remove(filler.Word)

		res.Filler = &filler
		results[i] = res
		summary.Matched++
	}

	summary.PoolAfter = pool.Len()
	return Run{Results: results, Summary: summary}
}

// Eligible returns the entries of pool a target could draw right now.
func Eligible(t domain.TargetWord, pool *CandidatePool, opts Options) []domain.LexicalEntry {
	if unmatchable(&t, opts.Tolerances) != "" {
		return nil
	}
	found := eligibleFor(&t, pool, opts, nil)
	out := make([]domain.LexicalEntry, len(found))
	for i, e := range found {
		out[i] = *e
	}
	return out
}

func unmatchable(t *domain.TargetWord, tol domain.Tolerances) string {
	if !t.Resolved {
		if t.Unresolved != "" {
			return "unresolved: " + t.Unresolved
		}
		return "unresolved"
	}
	if tol.UseConcreteness && !t.HasConcreteness() {
		return ReasonNoConcreteness
	}
	return ""
}

func eligibleFor(t *domain.TargetWord, pool *CandidatePool, opts Options, selected map[string]bool) []*domain.LexicalEntry {
	tol := opts.Tolerances
	var out []*domain.LexicalEntry

	for _, c := range pool.candidates(t.Class, t.SyllableCount) {
		if c.Word == t.Word || selected[c.Word] {
			continue
		}
		if !domain.Within(c.FrequencyScore, t.FrequencyScore, tol.Frequency) {
			continue
		}
		if tol.UseConcreteness {
			if !c.HasConcreteness() || !domain.Within(*c.Concreteness, *t.Concreteness, tol.Concreteness) {
				continue
			}
		}
		if opts.RequireDominantClass && c.DominantClass != t.Class {
			continue
		}
		out = append(out, c)
	}

	return out
}

// processingOrder returns target indices in the order they are matched.
// Scarcity sorts by ascending eligible count against the initial pool,
// keeping input order among ties.
func processingOrder(targets []domain.TargetWord, pool *CandidatePool, opts Options) []int {
	order := make([]int, len(targets))
	for i := range order {
		order[i] = i
	}
	if opts.Order != domain.OrderScarcity {
		return order
	}

	counts := make([]int, len(targets))
	for i := range targets {
		if unmatchable(&targets[i], opts.Tolerances) == "" {
			counts[i] = len(eligibleFor(&targets[i], pool, opts, nil))
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(counts[a], counts[b])
	})
	return order
}
