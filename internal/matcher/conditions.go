package matcher

import (
	"math/rand/v2"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

// AssignConditions labels the matched results with a balanced shuffle of
// labels. Labels are dealt round-robin over the matched count, so the
// first labels take any remainder, then shuffled with rng and assigned in
// result order. Unmatched results stay unlabelled. It returns the count per
// label.
func AssignConditions(results []domain.MatchResult, labels []string, rng *rand.Rand) map[string]int {
	counts := make(map[string]int, len(labels))
	if len(labels) == 0 {
		return counts
	}

	matched := 0
	for i := range results {
		if results[i].Matched() {
			matched++
		}
	}

	deck := make([]string, matched)
	for i := range deck {
		deck[i] = labels[i%len(labels)]
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	next := 0
	for i := range results {
		if !results[i].Matched() {
			continue
		}
		results[i].Condition = deck[next]
		counts[deck[next]]++
		next++
	}

	return counts
}
