package sakamoto

import (
	"math/rand"
	"testing"

	"github.com/andrewwinslow/grammar-approx/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasRepeatingPairs(t *testing.T) {
	assert.True(t, hasRepeatingPairs([]string{"a", "b", "a", "b"}))
	assert.False(t, hasRepeatingPairs([]string{"a", "b", "c", "d"}))
	assert.False(t, hasRepeatingPairs([]string{"a"}))
}

func TestHasRepeatingSymbol(t *testing.T) {
	start, end, ok := hasRepeatingSymbol([]string{"a", "a", "a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	_, _, ok = hasRepeatingSymbol([]string{"a", "b", "c"})
	assert.False(t, ok)
}

func TestProduceRepeatingSymbolGrammar(t *testing.T) {
	g := grammar.New()
	produceRepeatingSymbolGrammar(g, "aaaa")
	rhs, ok := g.Rule("aaaa")
	require.True(t, ok)
	assert.Equal(t, []string{"aa", "aa"}, rhs)
	rhs, ok = g.Rule("aa")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "a"}, rhs)
}

func TestCreateSortedSegmentList(t *testing.T) {
	list := createSortedSegmentList([]string{"a", "b", "c", "d"})
	require.Len(t, list, 3)
	assert.Equal(t, pairCount{count: 1, sym0: "c", sym1: "d"}, list[0])
	assert.Equal(t, pairCount{count: 1, sym0: "b", sym1: "c"}, list[1])
	assert.Equal(t, pairCount{count: 1, sym0: "a", sym1: "b"}, list[2])

	list = createSortedSegmentList([]string{"a", "b", "a", "b"})
	require.Len(t, list, 2)
	assert.Equal(t, pairCount{count: 2, sym0: "a", sym1: "b"}, list[0])
	assert.Equal(t, pairCount{count: 1, sym0: "b", sym1: "a"}, list[1])
}

func TestProduceTrivialGrammar(t *testing.T) {
	g := produceTrivialGrammar([]string{"a", "b", "c", "d"})
	rhs, ok := g.Rule("ab")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rhs)
	rhs, ok = g.Rule("abc")
	require.True(t, ok)
	assert.Equal(t, []string{"ab", "c"}, rhs)
	rhs, ok = g.Rule("abcd")
	require.True(t, ok)
	assert.Equal(t, []string{"abc", "d"}, rhs)
}

func TestArrangement_SimplePairs(t *testing.T) {
	idCounter := 0
	g, w := arrangement([]string{"a", "b", "a", "b"}, &idCounter)
	rhs, ok := g.Rule("ab")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rhs)
	assert.Equal(t, []string{"ab", "ab"}, w)
}

func TestBuild_Simple(t *testing.T) {
	g, err := Build("abab")
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	s, err := g.Expand("abab")
	require.NoError(t, err)
	assert.Equal(t, "abab", s)
}

func TestBuild_Scenario(t *testing.T) {
	g, err := Build("aaaaaabbbbbbbaaaaaa")
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	s, err := g.Expand("aaaaaabbbbbbbaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "aaaaaabbbbbbbaaaaaa", s)
}

func TestBuild_Invariants(t *testing.T) {
	inputs := []string{
		"a",
		"ab",
		"abab",
		"aababbabababbaba",
		"aaaaaabbbbbbbaaaaaa",
		"abcabcbacbabcbbcbacbabcbabbacbabacbabcaacbabcababcba",
	}
	for _, s := range inputs {
		g, err := Build(s)
		require.NoError(t, err, "input %q", s)
		require.NoError(t, g.Validate(), "input %q", s)

		expanded, err := g.Expand(s)
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, s, expanded, "input %q", s)
	}
}

func TestBuild_Fuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	alphabet := "ab"
	for i := 0; i < 20; i++ {
		n := 2 + rng.Intn(400)
		buf := make([]byte, n)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		s := string(buf)

		g, err := Build(s)
		require.NoError(t, err, "input %q", s)
		require.NoError(t, g.Validate(), "input %q", s)

		expanded, err := g.Expand(s)
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, s, expanded, "input %q", s)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build("")
	assert.Error(t, err)
}
