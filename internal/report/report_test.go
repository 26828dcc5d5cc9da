package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexmatch/internal/corpus"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/matcher"
)

func ptr[T any](v T) *T { return &v }

func sampleResults() []domain.MatchResult {
	bank := domain.TargetWord{
		LexicalEntry: domain.LexicalEntry{Word: "bank", Class: domain.ClassNoun, SyllableCount: 1, FrequencyScore: 3.0, Concreteness: ptr(4.0)},
		Source:       "Rodd",
		Condition:    "Homonymy",
		Resolved:     true,
	}
	shore := domain.LexicalEntry{Word: "shore", Class: domain.ClassNoun, SyllableCount: 1, FrequencyScore: 3.05, Concreteness: ptr(4.5)}
	cast := domain.TargetWord{
		LexicalEntry: domain.LexicalEntry{Word: "cast", Class: domain.ClassVerb},
		Unresolved:   "not in reference table",
	}

	return []domain.MatchResult{
		{Target: bank, Filler: &shore, Condition: "NS"},
		{Target: cast, Err: &domain.NoCandidateError{Word: "cast", Reason: "unresolved: not in reference table"}, Position: 1},
	}
}

func readCSV(t *testing.T, s string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteResults_WithConcreteness(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, sampleResults(), true))

	records := readCSV(t, buf.String())
	require.Len(t, records, 3)
	assert.Equal(t, ResultColumns(true), records[0])
	assert.Equal(t, []string{
		"bank", "Noun", "Rodd", "Homonymy", "1", "3.0000", "4.0000",
		"matched", "shore", "1", "3.0500", "4.5000", "NS", "",
	}, records[1])
	assert.Equal(t, []string{
		"cast", "Verb", "", "", "", "", "",
		"unmatched", "", "", "", "", "", "unresolved: not in reference table",
	}, records[2])
}

func TestWriteResults_FrequencyOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, sampleResults(), false))

	records := readCSV(t, buf.String())
	assert.NotContains(t, records[0], "target_concreteness")
	assert.NotContains(t, records[0], "filler_concreteness")
	for _, r := range records {
		assert.Len(t, r, len(records[0]))
	}
}

func TestWritePartition(t *testing.T) {
	t.Parallel()

	groups := []matcher.PartitionGroup{
		{Pass: "perceptual", Dimension: "count_perceptual", Level: matcher.LevelLow, Items: []matcher.ObservedItem{
			{Word: "bank", Key: "They walked along the bank.", Counts: map[string]int{"count_perceptual": 8}},
		}},
		{Pass: "perceptual", Dimension: "count_perceptual", Level: matcher.LevelHigh},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePartition(&buf, groups))

	records := readCSV(t, buf.String())
	assert.Equal(t, [][]string{
		PartitionColumns,
		{"perceptual", "low", "bank", "They walked along the bank.", "8"},
	}, records)
}

func TestRunSummary(t *testing.T) {
	t.Parallel()

	out := RunSummary(domain.Summary{
		Targets: 2, Matched: 1, Unmatched: 1, PoolBefore: 10, PoolAfter: 9,
		Tolerances: domain.Tolerances{Frequency: 0.1, Concreteness: 1, UseConcreteness: true},
		Order:      domain.OrderInput,
		Seed:       42,
	}, map[string]int{"NS": 1})

	for _, want := range []string{"matched", "pool after", "0.1000", "input", "42", "condition NS"} {
		assert.Contains(t, out, want)
	}
}

func TestPrepareStagesAndUnmatched(t *testing.T) {
	t.Parallel()

	assert.Contains(t, PrepareStages(corpus.Stats{ReferenceRows: 13, PoolSize: 3}), "pool size")
	assert.Contains(t, UnmatchedTargets(sampleResults()), "unresolved: not in reference table")
	assert.Empty(t, UnmatchedTargets(sampleResults()[:1]))
}

func TestPartitionGroups(t *testing.T) {
	t.Parallel()

	out := PartitionGroups([]matcher.PartitionGroup{{Pass: "action", Level: matcher.LevelHigh, Discarded: 3}})
	assert.Contains(t, out, "action")
	assert.Contains(t, out, "3")
}
