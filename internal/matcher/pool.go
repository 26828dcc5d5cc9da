package matcher

import "github.com/heartmarshall/lexmatch/internal/domain"

// shape is the exact-match part of the eligibility key.
type shape struct {
	class     domain.GrammaticalClass
	syllables int
}

// CandidatePool is the shrinking set of entries a run may still draw from.
// Entries keep their insertion order. Removal is by word and drops every
// row of that word, so word_class homonyms leave together.
// A pool has a single writer; it is not safe for concurrent use.
type CandidatePool struct {
	entries []domain.LexicalEntry
	removed []bool
	byWord  map[string][]int
	byShape map[shape][]int
	live    int
}

// NewCandidatePool builds a pool over a copy of entries.
func NewCandidatePool(entries []domain.LexicalEntry) *CandidatePool {
	p := &CandidatePool{
		entries: append([]domain.LexicalEntry(nil), entries...),
		removed: make([]bool, len(entries)),
		byWord:  make(map[string][]int, len(entries)),
		byShape: make(map[shape][]int),
		live:    len(entries),
	}
	for i := range p.entries {
		e := &p.entries[i]
		p.byWord[e.Word] = append(p.byWord[e.Word], i)
		k := shape{e.Class, e.SyllableCount}
		p.byShape[k] = append(p.byShape[k], i)
	}
	return p
}

// Len returns the number of entries still in the pool.
func (p *CandidatePool) Len() int {
	return p.live
}

// Contains reports whether any entry of word is still in the pool.
func (p *CandidatePool) Contains(word string) bool {
	for _, i := range p.byWord[word] {
		if !p.removed[i] {
			return true
		}
	}
	return false
}

// Remove drops every entry of word and returns how many were dropped.
func (p *CandidatePool) Remove(word string) int {
	n := 0
	for _, i := range p.byWord[word] {
		if !p.removed[i] {
			p.removed[i] = true
			n++
		}
	}
	p.live -= n
	return n
}

// Exclude removes every entry whose word is in words and returns how many
// entries were dropped.
func (p *CandidatePool) Exclude(words []string) int {
	n := 0
	for _, w := range words {
		n += p.Remove(w)
	}
	return n
}

// Entries returns the remaining entries in insertion order.
func (p *CandidatePool) Entries() []domain.LexicalEntry {
	out := make([]domain.LexicalEntry, 0, p.live)
	for i := range p.entries {
		if !p.removed[i] {
			out = append(out, p.entries[i])
		}
	}
	return out
}

// Clone returns an independent pool with the same remaining entries.
func (p *CandidatePool) Clone() *CandidatePool {
	return NewCandidatePool(p.Entries())
}

// candidates returns the remaining entries with the given class and
// syllable count, in insertion order.
func (p *CandidatePool) candidates(class domain.GrammaticalClass, syllables int) []*domain.LexicalEntry {
	idx := p.byShape[shape{class, syllables}]
	out := make([]*domain.LexicalEntry, 0, len(idx))
	for _, i := range idx {
		if !p.removed[i] {
			out = append(out, &p.entries[i])
		}
	}
	return out
}
