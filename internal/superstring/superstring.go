// Package superstring implements the greedy shortest-common-superstring
// kernel that Lehman1 builds its C-hierarchy on top of: a 4-approximation
// (Blum, Jiang, Li, Tromp, Yannakakis) that additionally preserves the
// boundaries of the strings it was built from, so the caller can recover
// which output segments came from which input strings.
package superstring

// Overlap is the length of the longest non-empty proper suffix of a that
// equals a prefix of b, together with the index in a at which that suffix
// begins. Both the leading part of a and the trailing part of b must be
// non-empty, i.e. the overlap is strictly less than min(len(a), len(b)).
//
// Returns (0, len(a)) if no such overlap exists. The Python reference
// carries a third tuple element that is always 0 (kept there purely so
// its overlap/pair comparisons are well-typed 3-tuples); it's dropped here
// since it never varies.
func Overlap(a, b string) (length, splitIndex int) {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	best := 0
	bestSplit := len(a)
	for i := 1; i < max; i++ {
		if a[len(a)-i:] == b[:i] {
			best = i
			bestSplit = len(a) - i
		}
	}
	if best == 0 {
		return 0, len(a)
	}
	return best, bestSplit
}

// segment is a working-list entry: the string itself, and the set of
// offsets within it at which some original input string began (so that
// boundaries can be recovered once merging is complete).
type segment struct {
	s       string
	offsets []int
}

// GreedySuperstringWithBreaks runs the greedy nearest-neighbor merge over M
// (repeatedly fusing the two strings with maximum overlap until one
// remains) and then slices the resulting superstring at every offset where
// an input string from M began, returning the ordered sequence of
// resulting segments.
//
// M's order affects the result: a pair is only tried with the earlier
// working-list entry as the left side of the merge, so the order decides
// which string of a pair comes first, and it also breaks ties (see below).
//
// Ties in overlap length are broken by preferring the later-found pair in
// iteration order, exactly as the Python reference's `max` over
// `(overlap, i, j)` tuples does (since indices only grow, max prefers the
// last pair it sees when overlaps tie).
func GreedySuperstringWithBreaks(M []string) []string {
	segs := make([]segment, len(M))
	for i, s := range M {
		segs[i] = segment{s: s, offsets: []int{0}}
	}

	for len(segs) > 1 {
		bestI, bestJ, bestOverlap, bestSplit := -1, -1, -1, 0
		for i := 0; i < len(segs); i++ {
			for j := i + 1; j < len(segs); j++ {
				ov, split := Overlap(segs[i].s, segs[j].s)
				if ov >= bestOverlap {
					bestOverlap, bestSplit, bestI, bestJ = ov, split, i, j
				}
			}
		}

		a, b := segs[bestI], segs[bestJ]
		merged := a.s[:bestSplit] + b.s
		mergedOffsets := append(append([]int{}, a.offsets...), shiftOffsets(b.offsets, bestSplit)...)

		next := make([]segment, 0, len(segs)-1)
		for k, seg := range segs {
			if k == bestI || k == bestJ {
				continue
			}
			next = append(next, seg)
		}
		next = append(next, segment{s: merged, offsets: mergedOffsets})
		segs = next
	}

	superstring := segs[0].s
	offsets := append(append([]int{}, segs[0].offsets...), 0, len(superstring))
	offsets = dedupSortInts(offsets)

	out := make([]string, 0, len(offsets)-1)
	for i := 0; i+1 < len(offsets); i++ {
		out = append(out, superstring[offsets[i]:offsets[i+1]])
	}
	return out
}

func shiftOffsets(offsets []int, by int) []int {
	shifted := make([]int, len(offsets))
	for i, o := range offsets {
		shifted[i] = o + by
	}
	return shifted
}

func dedupSortInts(xs []int) []int {
	seen := make(map[int]bool, len(xs))
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
