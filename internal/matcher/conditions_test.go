package matcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

func matchedResults(matched, unmatched int) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, matched+unmatched)
	for i := 0; i < matched; i++ {
		f := entry(fmt.Sprintf("filler%03d", i), 1, 1, domain.ClassNoun, 1)
		results = append(results, domain.MatchResult{Filler: &f})
	}
	for i := 0; i < unmatched; i++ {
		results = append(results, domain.MatchResult{Err: &domain.NoCandidateError{Word: "x"}})
	}
	return results
}

func TestAssignConditions_Balanced(t *testing.T) {
	t.Parallel()

	results := matchedResults(112, 4)
	counts := AssignConditions(results, []string{"NN", "NS", "SN"}, NewRand(1))

	assert.Equal(t, map[string]int{"NN": 38, "NS": 37, "SN": 37}, counts)
	for _, r := range results {
		if r.Matched() {
			assert.NotEmpty(t, r.Condition)
		} else {
			assert.Empty(t, r.Condition)
		}
	}
}

func TestAssignConditions_ShuffleIsSeeded(t *testing.T) {
	t.Parallel()

	labels := func(seed uint64) []string {
		results := matchedResults(30, 0)
		AssignConditions(results, []string{"NN", "NS", "SN"}, NewRand(seed))
		out := make([]string, len(results))
		for i, r := range results {
			out[i] = r.Condition
		}
		return out
	}

	assert.Equal(t, labels(9), labels(9))
	assert.NotEqual(t, labels(9), labels(10))
}

func TestAssignConditions_NoLabels(t *testing.T) {
	t.Parallel()

	results := matchedResults(3, 0)
	counts := AssignConditions(results, nil, NewRand(1))

	assert.Empty(t, counts)
	for _, r := range results {
		assert.Empty(t, r.Condition)
	}
}
