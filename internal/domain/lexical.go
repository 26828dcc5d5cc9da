package domain

import "math"

// LexicalEntry is one row of the reference corpus after cleaning.
type LexicalEntry struct {
	Word           string
	Class          GrammaticalClass
	SyllableCount  int
	RawFrequency   float64
	FrequencyScore float64
	// Concreteness is set only when a concreteness table was merged in.
	Concreteness *float64
	// DominantClass is the dominant part of speech reported by the norms
	// table, if any.
	DominantClass GrammaticalClass
}

// HasConcreteness reports whether a concreteness value was merged in.
func (e *LexicalEntry) HasConcreteness() bool {
	return e.Concreteness != nil
}

// FrequencyScore compresses a raw corpus frequency as log10(raw + 1).
// The +1 keeps zero-frequency words finite.
func FrequencyScore(raw float64) float64 {
	return math.Log10(raw + 1)
}

// TargetWord is one critical stimulus requiring a matched filler.
type TargetWord struct {
	LexicalEntry

	Source    string
	Condition string
	// Extra holds every other stimulus column, carried through unchanged.
	Extra map[string]string

	// Resolved is false when the stimulus could not be joined to the
	// reference or frequency table; Unresolved names the missing join.
	Resolved   bool
	Unresolved string
}
