package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexmatch/internal/domain"
)

func TestCandidatePool_RemoveDropsAllRowsOfWord(t *testing.T) {
	t.Parallel()

	pool := NewCandidatePool([]domain.LexicalEntry{
		entry("shore", 3.0, 4.5, domain.ClassNoun, 1),
		entry("fly", 2.0, 3.0, domain.ClassNoun, 1),
		entry("fly", 2.0, 3.0, domain.ClassVerb, 1),
	})
	require.Equal(t, 3, pool.Len())

	assert.Equal(t, 2, pool.Remove("fly"))
	assert.False(t, pool.Contains("fly"))
	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, 0, pool.Remove("fly"), "second remove is a no-op")
	assert.Equal(t, 0, pool.Remove("absent"))
}

func TestCandidatePool_ExcludeAndEntriesOrder(t *testing.T) {
	t.Parallel()

	pool := NewCandidatePool([]domain.LexicalEntry{
		entry("shore", 3.0, 4.5, domain.ClassNoun, 1),
		entry("bank", 3.0, 4.0, domain.ClassNoun, 1),
		entry("desk", 3.4, 4.0, domain.ClassNoun, 1),
	})

	assert.Equal(t, 1, pool.Exclude([]string{"bank", "lamb"}))

	words := make([]string, 0, pool.Len())
	for _, e := range pool.Entries() {
		words = append(words, e.Word)
	}
	assert.Equal(t, []string{"shore", "desk"}, words)
}

func TestCandidatePool_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	pool := NewCandidatePool([]domain.LexicalEntry{
		entry("shore", 3.0, 4.5, domain.ClassNoun, 1),
		entry("desk", 3.4, 4.0, domain.ClassNoun, 1),
	})
	clone := pool.Clone()
	clone.Remove("shore")

	assert.True(t, pool.Contains("shore"))
	assert.False(t, clone.Contains("shore"))
	assert.Equal(t, 2, pool.Len())
	assert.Equal(t, 1, clone.Len())
}

func TestNewCandidatePool_CopiesInput(t *testing.T) {
	t.Parallel()

	in := []domain.LexicalEntry{entry("shore", 3.0, 4.5, domain.ClassNoun, 1)}
	pool := NewCandidatePool(in)
	in[0].Word = "mutated"

	assert.True(t, pool.Contains("shore"))
}
