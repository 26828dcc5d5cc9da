package matcher

import "github.com/heartmarshall/lexmatch/internal/domain"

func ptr[T any](v T) *T { return &v }

func entry(word string, freq, conc float64, class domain.GrammaticalClass, syl int) domain.LexicalEntry {
	return domain.LexicalEntry{
		Word:           word,
		Class:          class,
		SyllableCount:  syl,
		FrequencyScore: freq,
		Concreteness:   ptr(conc),
	}
}

func target(word string, freq, conc float64, class domain.GrammaticalClass, syl int) domain.TargetWord {
	return domain.TargetWord{LexicalEntry: entry(word, freq, conc, class, syl), Resolved: true}
}

var defaultTolerances = domain.Tolerances{Frequency: 0.1, Concreteness: 1.0, UseConcreteness: true}
