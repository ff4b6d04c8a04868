package bisection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
	assert.Equal(t, 7, g.Len())
}

func TestBuild_KeyCollapse(t *testing.T) {
	g, err := Build("abababab")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())

	rhs, _ := g.Rule("abababab")
	assert.Equal(t, []string{"abab", "abab"}, rhs)
	rhs, _ = g.Rule("abab")
	assert.Equal(t, []string{"ab", "ab"}, rhs)
	rhs, _ = g.Rule("ab")
	assert.Equal(t, []string{"a", "b"}, rhs)
}

func TestBuild_Deterministic(t *testing.T) {
	g1, _ := Build("abcdefghij")
	g2, _ := Build("abcdefghij")
	assert.True(t, g1.Equal(g2))
}

func TestBuild_Invariants(t *testing.T) {
	g, err := Build("aababbabababbaba")
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	s, err := g.Expand("aababbabababbaba")
	require.NoError(t, err)
	assert.Equal(t, "aababbabababbaba", s)
}

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build("")
	assert.Error(t, err)
}

func TestBuild_SingleChar(t *testing.T) {
	g, err := Build("a")
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}
