package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammar_AddAndRule(t *testing.T) {
	g := New()
	g.Add("ab", []string{"a", "b"})

	rhs, ok := g.Rule("ab")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rhs)

	_, ok = g.Rule("cd")
	assert.False(t, ok)
}

func TestGrammar_Size(t *testing.T) {
	g := New()
	g.Add("abab", []string{"ab", "ab"})
	g.Add("ab", []string{"a", "b"})

	assert.Equal(t, 4, g.Size())
}

func TestGrammar_ExpandSimple(t *testing.T) {
	g := New()
	g.Add("abab", []string{"ab", "ab"})
	g.Add("ab", []string{"a", "b"})

	s, err := g.Expand("abab")
	assert.NoError(t, err)
	assert.Equal(t, "abab", s)
}

func TestGrammar_ExpandUnresolved(t *testing.T) {
	g := New()
	g.Add("abab", []string{"ab", "ab"})
	// "ab" never added.

	_, err := g.Expand("abab")
	assert.Error(t, err)
}

func TestGrammar_Validate(t *testing.T) {
	g := New()
	g.Add("abab", []string{"ab", "ab"})
	assert.Error(t, g.Validate())

	g.Add("ab", []string{"a", "b"})
	assert.NoError(t, g.Validate())
}

func TestGrammar_Equal(t *testing.T) {
	a := New()
	a.Add("ab", []string{"a", "b"})

	b := New()
	b.Add("ab", []string{"a", "b"})

	assert.True(t, a.Equal(b))

	b.Add("ab", []string{"a", "c"})
	assert.False(t, a.Equal(b))
}

func TestGrammar_StageCount(t *testing.T) {
	g := New()
	g.Add("abab", []string{"ab", "ab"})
	g.Add("ab", []string{"a", "b"})

	assert.Equal(t, 2, g.StageCount("abab"))
	assert.Equal(t, 1, g.StageCount("ab"))
	assert.Equal(t, 0, g.StageCount("a"))
}

func TestMerge_LeftWins(t *testing.T) {
	left := New()
	left.Add("ab", []string{"a", "b"})

	right := New()
	right.Add("ab", []string{"x", "y"})
	right.Add("cd", []string{"c", "d"})

	merged := Merge(left, right)

	rhs, ok := merged.Rule("ab")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rhs)

	rhs, ok = merged.Rule("cd")
	assert.True(t, ok)
	assert.Equal(t, []string{"c", "d"}, rhs)
}

func TestEntriesRoundTrip(t *testing.T) {
	g := New()
	g.Add("abab", []string{"ab", "ab"})
	g.Add("ab", []string{"a", "b"})

	keys, rhss := g.Entries()
	g2 := FromEntries(keys, rhss)

	assert.True(t, g.Equal(g2))
}
