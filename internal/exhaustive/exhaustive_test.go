package exhaustive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate_CatalanCount(t *testing.T) {
	grammars := enumerate("ababc")
	assert.Len(t, grammars, 14)
}

func TestBuild_Abab(t *testing.T) {
	g, err := Build("abab")
	require.NoError(t, err)

	rhs, ok := g.Rule("abab")
	require.True(t, ok)
	assert.Equal(t, []string{"ab", "ab"}, rhs)
	assert.Equal(t, 4, g.Size())
}

func TestBuild_Abababab(t *testing.T) {
	g, err := Build("abababab")
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())

	rhs, _ := g.Rule("abababab")
	assert.Equal(t, []string{"abab", "abab"}, rhs)
	rhs, _ = g.Rule("abab")
	assert.Equal(t, []string{"ab", "ab"}, rhs)
}

func TestBuild_AbcabcabcEitherOptimum(t *testing.T) {
	g, err := Build("abcabcabc")
	require.NoError(t, err)

	rhs, _ := g.Rule("abcabcabc")
	opt1 := len(rhs) == 2 && rhs[0] == "abc" && rhs[1] == "abcabc"
	opt2 := len(rhs) == 2 && rhs[0] == "abcabc" && rhs[1] == "abc"
	assert.True(t, opt1 || opt2)

	rhs, _ = g.Rule("abcabc")
	assert.Equal(t, []string{"abc", "abc"}, rhs)
}

func TestBuild_Invariants(t *testing.T) {
	g, err := Build("abcabc")
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	s, err := g.Expand("abcabc")
	require.NoError(t, err)
	assert.Equal(t, "abcabc", s)
}

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build("")
	assert.Error(t, err)
}
