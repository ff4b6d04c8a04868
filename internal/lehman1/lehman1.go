// Package lehman1 implements the O(log^3 n)-approximation algorithm for the
// smallest grammar problem (Charikar et al., "The Smallest Grammar
// Problem", pages 15-17): build a hierarchy of progressively finer string
// decompositions via the superstring kernel, emit the substring-
// construction productions at every level, then stitch each coarse-level
// segment to a sequence of finer-level segments by repeatedly consuming
// the longest available prefix.
package lehman1

import (
	"strings"

	"github.com/andrewwinslow/grammar-approx/internal/grammar"
	"github.com/andrewwinslow/grammar-approx/internal/sgerrors"
	"github.com/andrewwinslow/grammar-approx/internal/superstring"
)

// Build returns a grammar for s, approximating the smallest straight-line
// grammar to within a factor of O(log^3 len(s)).
func Build(s string) (*grammar.Grammar, error) {
	if len(s) == 0 {
		return nil, sgerrors.EmptyInput()
	}

	cs := generateCs(s)

	g := grammar.New()
	for _, level := range cs {
		mergeInto(g, substringConstructionGrammar(level))
	}
	mergeInto(g, substringConstructionGrammar(chars(s)))

	stitch(cs, g)

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func chars(s string) []string {
	out := make([]string, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = string(s[i])
	}
	return out
}

func mergeInto(dst, src *grammar.Grammar) {
	for _, k := range src.Keys() {
		rhs, _ := src.Rule(k)
		dst.Add(k, rhs)
	}
}

// ceilLog2 returns ceil(log2(n)) for n >= 1, computed with integer
// arithmetic rather than floating-point math.Log2 so that exact powers of
// two are never off by one to rounding error.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	exp, val := 0, 1
	for val < n {
		val <<= 1
		exp++
	}
	return exp
}

// initialK returns the starting segment-length threshold k0 for the
// C-hierarchy: 2^(ceil(log2(n))-1), or 0 (causing generateCs to build only
// the trivial single-level hierarchy [S]) when that exponent would be
// negative, i.e. for n < 2.
func initialK(n int) int {
	exp := ceilLog2(n) - 1
	if exp < 0 {
		return 0
	}
	return 1 << exp
}

// generateCs builds the sequence C0=[S], C1, C2, ..., C_2: each level is
// the boundary-preserving superstring of the previous level, re-split so
// that no segment exceeds that level's length threshold, with thresholds
// halving (k0, k0/2, ..., 2) until falling below 2.
func generateCs(s string) [][]string {
	cs := [][]string{{s}}
	for k := initialK(len(s)); k >= 2; k /= 2 {
		merged := superstring.GreedySuperstringWithBreaks(cs[len(cs)-1])
		cs = append(cs, splitTooBigs(merged, k))
	}
	return cs
}

// splitTooBigs halves, at its floor-midpoint, every string in strings that
// exceeds splitLen; strings within the threshold pass through unchanged.
func splitTooBigs(strings []string, splitLen int) []string {
	out := make([]string, 0, len(strings))
	for _, s := range strings {
		if len(s) > splitLen {
			mid := len(s) / 2
			out = append(out, s[:mid], s[mid:])
		} else {
			out = append(out, s)
		}
	}
	return out
}

func join(pieces []string) string {
	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteString(p)
	}
	return sb.String()
}

// substringConstructionGrammar runs the substring construction over a
// sequence of pieces (a C-hierarchy level, or the
// character sequence of the original input): for every contiguous range of
// pieces containing the midpoint, it emits a two-symbol production, then
// recurses on each half.
func substringConstructionGrammar(pieces []string) *grammar.Grammar {
	g := grammar.New()
	recurseSubstringConstruction(pieces, g)
	return g
}

func recurseSubstringConstruction(s []string, g *grammar.Grammar) {
	if len(s) == 1 {
		return
	}
	mid := len(s) / 2
	for i := 0; i < mid-1; i++ {
		key := join(s[i:mid])
		g.Add(key, []string{s[i], join(s[i+1 : mid])})
	}
	for i := mid + 1; i < len(s); i++ {
		key := join(s[mid : i+1])
		g.Add(key, []string{join(s[mid:i]), s[i]})
	}
	recurseSubstringConstruction(s[:mid], g)
	recurseSubstringConstruction(s[mid:], g)
}

// findPrefixStart finds the smallest index i such that s is a prefix of the
// concatenation of small[i:].
func findPrefixStart(s string, small []string) int {
	for i := 0; i < len(small); i++ {
		if strings.HasPrefix(join(small[i:]), s) {
			return i
		}
	}
	// Every stitched segment is, by construction of the C-hierarchy, a
	// concatenation of whole finer-level segments starting somewhere in
	// small; reaching here means that invariant was broken upstream.
	panic("lehman1: string not found as a prefix of any finer-level suffix")
}

// findLongestPrefix returns the half-open range [start, end) of small whose
// concatenation is the longest run of *whole* elements of small forming a
// prefix of s, along with the number of characters of s that range covers.
func findLongestPrefix(s string, small []string) (start, end, used int) {
	start = findPrefixStart(s, small)
	end = start
	remaining := len(s)
	for end < len(small) && len(small[end]) <= remaining {
		remaining -= len(small[end])
		end++
	}
	return start, end, len(s) - remaining
}

// stitch builds, for every segment s of length >= 2 at every level of cs,
// an RHS that walks progressively finer levels, consuming the longest
// available prefix of the still-unproduced remainder of s at each one.
func stitch(cs [][]string, g *grammar.Grammar) {
	for i := range cs {
		for _, s := range cs[i] {
			if len(s) == 1 {
				continue
			}

			rhs := []string{}
			g.Add(s, rhs) // mirrors the reference's `grammar[s] = []` before incremental appends

			remainder := s
			for lvl := i + 1; lvl < len(cs); lvl++ {
				level := cs[lvl]
				start, end, used := findLongestPrefix(remainder, level)

				switch {
				case start == end:
					continue
				case start+1 == end:
					rhs = append(rhs, level[start])
				case start+2 == end:
					rhs = append(rhs, level[start], level[start+1])
				default:
					half1, half2 := splitAtGrammarKey(level, start, end, g)
					rhs = append(rhs, half1, half2)
				}
				remainder = remainder[used:]
				g.Add(s, rhs)
			}

			for c := 0; c < len(remainder); c++ {
				rhs = append(rhs, string(remainder[c]))
			}
			g.Add(s, rhs)
		}
	}
}

// splitAtGrammarKey finds a split point in (start, end) dividing level's
// [start:end) range into two halves that are each either a single segment
// or already a grammar key, preferring the earliest such split — matching
// the reference's `for split in range(start+1, end): ... break`.
func splitAtGrammarKey(level []string, start, end int, g *grammar.Grammar) (half1, half2 string) {
	for split := start + 1; split < end; split++ {
		half1 = join(level[start:split])
		half2 = join(level[split:end])
		if (split == start+1 || g.Has(half1)) && (split == end-1 || g.Has(half2)) {
			break
		}
	}
	return half1, half2
}
