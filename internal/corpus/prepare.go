// Package corpus turns the parsed input tables into the candidate pool and
// the resolved target set the matcher consumes.
package corpus

import (
	"github.com/heartmarshall/lexmatch/internal/app/filler/celex"
	"github.com/heartmarshall/lexmatch/internal/app/filler/norms"
	"github.com/heartmarshall/lexmatch/internal/app/filler/stimuli"
	"github.com/heartmarshall/lexmatch/internal/domain"
	"github.com/heartmarshall/lexmatch/internal/matcher"
)

// Unresolved reasons recorded on targets that fail to join.
const (
	UnresolvedReference = "not in reference table"
	UnresolvedSyllables = "no syllable count"
	UnresolvedFrequency = "no frequency"
)

// SyllableSource supplies syllable counts for reference rows that lack one.
type SyllableSource interface {
	Lookup(word string) (int, bool)
}

// Input holds the rows read by the source parsers. Concreteness and
// Pronunciations may be nil.
type Input struct {
	Reference      []celex.Row
	Frequency      []norms.FrequencyRow
	Concreteness   []norms.ConcretenessRow
	Stimuli        []stimuli.Row
	Pronunciations SyllableSource
}

// Options controls cleaning policy.
type Options struct {
	DedupScope domain.DedupScope
}

// Prepared is the output of Prepare.
type Prepared struct {
	Pool    *matcher.CandidatePool
	Targets []domain.TargetWord
	Stats   Stats
}

// Stats counts entries at each preparation stage.
type Stats struct {
	ReferenceRows   int
	NoSyllables     int
	SyllablesFilled int
	MultiToken      int
	TooShort        int
	ProperNoun      int
	Duplicates      int
	NoFrequency     int
	NoConcreteness  int
	TargetOverlap   int
	PoolSize        int
	StimulusRows    int
	StimulusRepeats int
	Targets         int
	Unresolved      int
}

type wordClass struct {
	word  string
	class domain.GrammaticalClass
}

// Prepare cleans the reference rows, joins the norms tables, resolves the
// stimuli and removes every stimulus word from the pool. It is
// deterministic: the same input yields the same pool in the same order.
// A stimulus word listed with two different classes is a
// *domain.DuplicateTargetError.
func Prepare(in Input, opts Options) (Prepared, error) {
	if opts.DedupScope == "" {
		opts.DedupScope = domain.DedupByWord
	}

	var stats Stats
	stats.ReferenceRows = len(in.Reference)

	targets, err := collapseStimuli(in.Stimuli, &stats)
	if err != nil {
		return Prepared{}, err
	}

	freq := indexFrequency(in.Frequency)
	conc := indexConcreteness(in.Concreteness)

	entries := make([]domain.LexicalEntry, 0, len(in.Reference))
	seen := make(map[wordClass]bool, len(in.Reference))

	for _, row := range in.Reference {
		switch domain.RejectReason(row.Word) {
		case domain.RejectMultiToken:
			stats.MultiToken++
			continue
		case domain.RejectTooShort:
			stats.TooShort++
			continue
		case domain.RejectProperNoun:
			stats.ProperNoun++
			continue
		}

		syl, ok := syllableCount(row, in.Pronunciations)
		if !ok {
			stats.NoSyllables++
			continue
		}
		if syl != row.SyllableCount {
			stats.SyllablesFilled++
		}

		key := wordClass{word: row.Word}
		if opts.DedupScope == domain.DedupByWordClass {
			key.class = row.Class
		}
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		raw, ok := freq[row.Word]
		if !ok {
			stats.NoFrequency++
			continue
		}

		entry := newEntry(row.Word, row.Class, syl, raw)
		if c, ok := conc[row.Word]; ok {
			entry.Concreteness = &c.value
			entry.DominantClass = c.dominant
		} else if in.Concreteness != nil {
			stats.NoConcreteness++
		}
		entries = append(entries, entry)
	}

	resolveTargets(targets, in.Reference, in.Pronunciations, freq, conc, &stats)

	words := make([]string, len(targets))
	for i := range targets {
		words[i] = targets[i].Word
	}

	pool := matcher.NewCandidatePool(entries)
	stats.TargetOverlap = pool.Exclude(words)
	stats.PoolSize = pool.Len()
	stats.Targets = len(targets)

	return Prepared{Pool: pool, Targets: targets, Stats: stats}, nil
}

// collapseStimuli keeps the first row of every stimulus word. Exact
// repeats of the same (word, class) collapse; a second class is fatal.
func collapseStimuli(rows []stimuli.Row, stats *Stats) ([]domain.TargetWord, error) {
	stats.StimulusRows = len(rows)

	first := make(map[string]int, len(rows))
	var targets []domain.TargetWord

	for _, row := range rows {
		if i, ok := first[row.Word]; ok {
			if targets[i].Class != row.Class {
				return nil, &domain.DuplicateTargetError{
					Word:    row.Word,
					Classes: []domain.GrammaticalClass{targets[i].Class, row.Class},
				}
			}
			stats.StimulusRepeats++
			continue
		}
		first[row.Word] = len(targets)
		targets = append(targets, domain.TargetWord{
			LexicalEntry: domain.LexicalEntry{Word: row.Word, Class: row.Class},
			Source:       row.Source,
			Condition:    row.Condition,
			Extra:        row.Extra,
		})
	}

	return targets, nil
}

// resolveTargets joins each target to the first reference row with the
// same (word, class) and a syllable count, then to the norms tables by
// word. Targets are not subject to the word filters.
func resolveTargets(targets []domain.TargetWord, reference []celex.Row, pron SyllableSource, freq map[string]float64, conc map[string]concreteness, stats *Stats) {
	syllables := make(map[wordClass]int, len(targets))
	listed := make(map[wordClass]bool, len(targets))
	wanted := make(map[wordClass]bool, len(targets))
	for i := range targets {
		wanted[wordClass{targets[i].Word, targets[i].Class}] = true
	}
	for _, row := range reference {
		key := wordClass{row.Word, row.Class}
		if !wanted[key] {
			continue
		}
		listed[key] = true
		if _, ok := syllables[key]; ok {
			continue
		}
		if n, ok := syllableCount(row, pron); ok {
			syllables[key] = n
		}
	}

	for i := range targets {
		t := &targets[i]
		key := wordClass{t.Word, t.Class}
		n, ok := syllables[key]
		if !ok {
			t.Unresolved = UnresolvedReference
			if listed[key] {
				t.Unresolved = UnresolvedSyllables
			}
			stats.Unresolved++
			continue
		}
		raw, ok := freq[t.Word]
		if !ok {
			t.SyllableCount = n
			t.Unresolved = UnresolvedFrequency
			stats.Unresolved++
			continue
		}

		t.LexicalEntry = newEntry(t.Word, t.Class, n, raw)
		if c, ok := conc[t.Word]; ok {
			t.Concreteness = &c.value
			t.DominantClass = c.dominant
		}
		t.Resolved = true
	}
}

// syllableCount returns the row's own count, falling back to pron when the
// row has none.
func syllableCount(row celex.Row, pron SyllableSource) (int, bool) {
	if row.SyllableCount > 0 {
		return row.SyllableCount, true
	}
	if pron == nil {
		return 0, false
	}
	n, ok := pron.Lookup(row.Word)
	return n, ok && n > 0
}

func newEntry(word string, class domain.GrammaticalClass, syllables int, raw float64) domain.LexicalEntry {
	return domain.LexicalEntry{
		Word:           word,
		Class:          class,
		SyllableCount:  syllables,
		RawFrequency:   raw,
		FrequencyScore: domain.FrequencyScore(raw),
	}
}

type concreteness struct {
	value    float64
	dominant domain.GrammaticalClass
}

// indexFrequency maps word to raw frequency; the first row of a word wins.
func indexFrequency(rows []norms.FrequencyRow) map[string]float64 {
	m := make(map[string]float64, len(rows))
	for _, r := range rows {
		if _, ok := m[r.Word]; !ok {
			m[r.Word] = r.Raw
		}
	}
	return m
}

func indexConcreteness(rows []norms.ConcretenessRow) map[string]concreteness {
	m := make(map[string]concreteness, len(rows))
	for _, r := range rows {
		if _, ok := m[r.Word]; !ok {
			m[r.Word] = concreteness{value: r.Concreteness, dominant: r.DominantClass}
		}
	}
	return m
}
