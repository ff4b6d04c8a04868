package lehman1

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTooBigs(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "b", "d", "ef", "gh", "ij"},
		splitTooBigs([]string{"ab", "def", "ghij"}, 1),
	)
	assert.Equal(t,
		[]string{"ab", "d", "ef", "gh", "ij"},
		splitTooBigs([]string{"ab", "def", "ghij"}, 2),
	)
	assert.Equal(t,
		[]string{"ab", "def", "gh", "ij"},
		splitTooBigs([]string{"ab", "def", "ghij"}, 3),
	)
	assert.Equal(t, []string{"ab", "cd"}, splitTooBigs([]string{"abcd"}, 2))
}

func TestGenerateCs(t *testing.T) {
	assert.Equal(t, [][]string{{"abcd"}, {"ab", "cd"}}, generateCs("abcd"))

	assert.Equal(t,
		[][]string{{"abcdefgh"}, {"abcd", "efgh"}, {"ab", "cd", "ef", "gh"}},
		generateCs("abcdefgh"),
	)
}

func TestFindLongestPrefix(t *testing.T) {
	start, end, used := findLongestPrefix("abcdefg", []string{"ab", "cd", "ef", "gh"})
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
	assert.Equal(t, 6, used)

	start, end, used = findLongestPrefix("cde", []string{"cd", "ab", "cd", "ef"})
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)
	assert.Equal(t, 2, used)

	start, end, used = findLongestPrefix("abcde", []string{"abcd", "qq", "abc", "d", "ef"})
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)
	assert.Equal(t, 4, used)
}

func TestSubstringConstructionGrammar_Chars(t *testing.T) {
	g := substringConstructionGrammar([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	assert.Equal(t, 8, g.Len())

	rhs, _ := g.Rule("abcd")
	assert.Equal(t, []string{"a", "bcd"}, rhs)
	rhs, _ = g.Rule("efgh")
	assert.Equal(t, []string{"efg", "h"}, rhs)
}

func TestSubstringConstructionGrammar_TwoPieces(t *testing.T) {
	g := substringConstructionGrammar([]string{"ab", "cd", "ef", "gh"})
	assert.Equal(t, 2, g.Len())
	rhs, _ := g.Rule("abcd")
	assert.Equal(t, []string{"ab", "cd"}, rhs)
	rhs, _ = g.Rule("efgh")
	assert.Equal(t, []string{"ef", "gh"}, rhs)
}

func TestBuild_Ab(t *testing.T) {
	g, err := Build("ab")
	require.NoError(t, err)
	rhs, ok := g.Rule("ab")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rhs)
}

func TestBuild_Abcdefgh(t *testing.T) {
	g, err := Build("abcdefgh")
	require.NoError(t, err)

	cases := map[string][]string{
		"abcdefgh": {"abcd", "efgh"},
		"abcd":     {"ab", "cd"},
		"efgh":     {"ef", "gh"},
		"ab":       {"a", "b"},
		"cd":       {"c", "d"},
		"ef":       {"e", "f"},
		"gh":       {"g", "h"},
	}
	for key, want := range cases {
		rhs, ok := g.Rule(key)
		require.True(t, ok, "missing rule for %q", key)
		assert.Equal(t, want, rhs)
	}
}

func TestBuild_Abab(t *testing.T) {
	g, err := Build("abab")
	require.NoError(t, err)

	rhs, _ := g.Rule("abab")
	assert.Equal(t, []string{"ab", "ab"}, rhs)
	rhs, _ = g.Rule("ab")
	assert.Equal(t, []string{"a", "b"}, rhs)
}

func TestBuild_Scenario(t *testing.T) {
	g, err := Build("aababbabababbaba")
	require.NoError(t, err)

	rhs, _ := g.Rule("abab")
	assert.Equal(t, []string{"a", "ba", "b"}, rhs)
	rhs, _ = g.Rule("baba")
	assert.Equal(t, []string{"ba", "ba"}, rhs)
	rhs, _ = g.Rule("ba")
	assert.Equal(t, []string{"b", "a"}, rhs)
}

func TestBuild_Invariants(t *testing.T) {
	inputs := []string{
		"ab",
		"abcdefgh",
		"abab",
		"aababbabababbaba",
		"abcabcbacbabcbbcbacbabcbabbacbabacbabcaacbabcababcba",
	}
	for _, s := range inputs {
		g, err := Build(s)
		require.NoError(t, err, "input %q", s)
		require.NoError(t, g.Validate(), "input %q", s)

		expanded, err := g.Expand(s)
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, s, expanded)
	}
}

func TestBuild_Fuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := "ab"
	for i := 0; i < 20; i++ {
		n := 5 + rng.Intn(500)
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
