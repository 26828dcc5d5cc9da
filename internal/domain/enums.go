package domain

import "strings"

// GrammaticalClass is the part-of-speech category a lexical entry is matched on.
// Unknown corpus codes are kept verbatim so exact-equality matching still works.
type GrammaticalClass string

const (
	ClassNoun         GrammaticalClass = "Noun"
	ClassVerb         GrammaticalClass = "Verb"
	ClassAdjective    GrammaticalClass = "Adjective"
	ClassAdverb       GrammaticalClass = "Adverb"
	ClassNumeral      GrammaticalClass = "Numeral"
	ClassPronoun      GrammaticalClass = "Pronoun"
	ClassPreposition  GrammaticalClass = "Preposition"
	ClassConjunction  GrammaticalClass = "Conjunction"
	ClassInterjection GrammaticalClass = "Interjection"
	ClassArticle      GrammaticalClass = "Article"
)

func (c GrammaticalClass) String() string { return string(c) }

// IsKnown reports whether c is one of the canonical classes.
func (c GrammaticalClass) IsKnown() bool {
	switch c {
	case ClassNoun, ClassVerb, ClassAdjective, ClassAdverb, ClassNumeral,
		ClassPronoun, ClassPreposition, ClassConjunction, ClassInterjection, ClassArticle:
		return true
	}
	return false
}

// classCodes maps lower-cased corpus codes and names to canonical classes.
var classCodes = map[string]GrammaticalClass{
	"n":            ClassNoun,
	"noun":         ClassNoun,
	"v":            ClassVerb,
	"verb":         ClassVerb,
	"a":            ClassAdjective,
	"adj":          ClassAdjective,
	"adjective":    ClassAdjective,
	"adv":          ClassAdverb,
	"adverb":       ClassAdverb,
	"num":          ClassNumeral,
	"number":       ClassNumeral,
	"numeral":      ClassNumeral,
	"pron":         ClassPronoun,
	"pronoun":      ClassPronoun,
	"prep":         ClassPreposition,
	"preposition":  ClassPreposition,
	"c":            ClassConjunction,
	"conj":         ClassConjunction,
	"conjunction":  ClassConjunction,
	"i":            ClassInterjection,
	"interjection": ClassInterjection,
	"art":          ClassArticle,
	"article":      ClassArticle,
}

// ParseGrammaticalClass maps a corpus class code ("N", "V", "ADV") or a
// full name ("Noun", "verb") to its canonical class. An empty input yields
// an empty class; an unrecognized code is returned trimmed but unchanged.
func ParseGrammaticalClass(s string) GrammaticalClass {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if c, ok := classCodes[strings.ToLower(s)]; ok {
		return c
	}
	return GrammaticalClass(s)
}

// DedupScope selects the key the corpus preparer deduplicates on.
type DedupScope string

const (
	// DedupByWord keeps the first row of each word.
	DedupByWord DedupScope = "word"
	// DedupByWordClass keeps the first row of each (word, class) pair, so
	// homonyms of different classes are both retained.
	DedupByWordClass DedupScope = "word_class"
)

func (s DedupScope) String() string { return string(s) }

func (s DedupScope) IsValid() bool {
	switch s {
	case DedupByWord, DedupByWordClass:
		return true
	}
	return false
}

// OrderPolicy selects the order in which targets are matched.
type OrderPolicy string

const (
	// OrderInput matches targets in the order they were given.
	OrderInput OrderPolicy = "input"
	// OrderScarcity matches targets with the fewest eligible candidates first.
	OrderScarcity OrderPolicy = "scarcity"
)

func (o OrderPolicy) String() string { return string(o) }

func (o OrderPolicy) IsValid() bool {
	switch o {
	case OrderInput, OrderScarcity:
		return true
	}
	return false
}

// MatchStatus is the outcome recorded for one target.
type MatchStatus string

const (
	StatusMatched   MatchStatus = "matched"
	StatusUnmatched MatchStatus = "unmatched"
)

func (s MatchStatus) String() string { return string(s) }

func (s MatchStatus) IsValid() bool {
	return s == StatusMatched || s == StatusUnmatched
}
