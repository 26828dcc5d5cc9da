package domain

import "errors"

// Tolerances are the half-widths of the open windows a candidate must fall
// inside. A candidate c is eligible for target t when t-tol < c < t+tol.
type Tolerances struct {
	Frequency       float64
	Concreteness    float64
	UseConcreteness bool
}

// Within reports whether candidate lies strictly inside target ± tol.
func Within(candidate, target, tol float64) bool {
	return candidate < target+tol && candidate > target-tol
}

// MatchResult pairs a target with its drawn filler, or records why none
// could be drawn.
type MatchResult struct {
	Target TargetWord
	Filler *LexicalEntry
	// Err is a *NoCandidateError when Filler is nil.
	Err error
	// Position is the 0-based processing position of the target in the run.
	Position int
	// Condition is the filler condition label, empty until assigned.
	Condition string
}

// Matched reports whether a filler was drawn.
func (r *MatchResult) Matched() bool {
	return r.Filler != nil
}

// Status returns the matched/unmatched marker for the output table.
func (r *MatchResult) Status() MatchStatus {
	if r.Matched() {
		return StatusMatched
	}
	return StatusUnmatched
}

// Reason returns the unmatched reason, or "" for a matched result.
func (r *MatchResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	var nc *NoCandidateError
	if errors.As(r.Err, &nc) {
		return nc.Reason
	}
	return r.Err.Error()
}

// Summary holds the run-level diagnostics of one matching pass.
type Summary struct {
	Targets    int
	Matched    int
	Unmatched  int
	PoolBefore int
	PoolAfter  int
	Tolerances Tolerances
	Order      OrderPolicy
	Seed       uint64
}
