// Package grammar holds the shared straight-line grammar data model used by
// every approximation algorithm in this module: a single production per
// nonterminal, each nonterminal named by the terminal string it canonically
// expands to.
package grammar

import (
	"sort"
	"strings"

	"github.com/andrewwinslow/grammar-approx/internal/sgerrors"
)

// Grammar maps a nonterminal, identified by its canonical expansion, to the
// ordered sequence of symbols that produce it. A Grammar is built up with
// Add and is otherwise treated as immutable once handed to a caller.
type Grammar struct {
	rules map[string][]string
}

// New returns an empty Grammar ready for Add calls.
func New() *Grammar {
	return &Grammar{rules: make(map[string][]string)}
}

// Add inserts, or overwrites, the production nonterminal -> rhs. rhs is not
// checked: Lehman1's stitching registers an empty RHS for a segment first
// and overwrites it as the RHS is built up.
func (g *Grammar) Add(nonterminal string, rhs []string) {
	if g.rules == nil {
		g.rules = make(map[string][]string)
	}
	cp := make([]string, len(rhs))
	copy(cp, rhs)
	g.rules[nonterminal] = cp
}

// Has reports whether nonterminal is a key of the grammar.
func (g *Grammar) Has(nonterminal string) bool {
	_, ok := g.rules[nonterminal]
	return ok
}

// Rule returns the right-hand side registered for nonterminal, and whether
// one was found.
func (g *Grammar) Rule(nonterminal string) ([]string, bool) {
	rhs, ok := g.rules[nonterminal]
	if !ok {
		return nil, false
	}
	cp := make([]string, len(rhs))
	copy(cp, rhs)
	return cp, true
}

// Keys returns the grammar's nonterminals in sorted order, for deterministic
// iteration (reporting, serialization, and test diffs all want this over
// Go's randomized map order).
func (g *Grammar) Keys() []string {
	keys := make([]string, 0, len(g.rules))
	for k := range g.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of productions (distinct nonterminals) in the
// grammar.
func (g *Grammar) Len() int {
	return len(g.rules)
}

// Size returns the grammar size: the sum of |RHS| across every production.
// This is the quantity the algorithms are approximating the minimum of.
func (g *Grammar) Size() int {
	total := 0
	for _, rhs := range g.rules {
		total += len(rhs)
	}
	return total
}

// Validate checks the closure invariant: every symbol of length >= 2
// appearing on any right-hand side must itself be a key of the grammar. It
// returns sgerrors.ClosureViolation for the first violation found (in
// sorted-key order, for determinism), or nil if the grammar is closed.
func (g *Grammar) Validate() error {
	for _, key := range g.Keys() {
		rhs := g.rules[key]
		for _, sym := range rhs {
			if len(sym) >= 2 && !g.Has(sym) {
				return sgerrors.ClosureViolation(sym)
			}
		}
	}
	return nil
}

// Expand derives the terminal string produced by start, failing with
// sgerrors.UnresolvedNonterminal if the grammar's closure is broken. This is
// a test/debug utility, not a performance-sensitive path — grammar
// evaluation speed is out of scope for this module.
func (g *Grammar) Expand(start string) (string, error) {
	var sb strings.Builder
	if err := g.expandInto(&sb, start, make(map[string]bool)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Grammar) expandInto(sb *strings.Builder, sym string, onPath map[string]bool) error {
	if len(sym) == 1 {
		sb.WriteString(sym)
		return nil
	}
	rhs, ok := g.rules[sym]
	if !ok {
		return sgerrors.UnresolvedNonterminal(sym)
	}
	if onPath[sym] {
		// Acyclicity is an algorithm invariant; a cycle here means a
		// production refers back to itself transitively, which no
		// constructor in this module is meant to produce.
		return sgerrors.WrapClosureViolation(nil, sym)
	}
	onPath[sym] = true
	for _, part := range rhs {
		if err := g.expandInto(sb, part, onPath); err != nil {
			return err
		}
	}
	delete(onPath, sym)
	return nil
}

// Equal reports whether g and other define exactly the same set of
// productions (same keys, same RHS sequences).
func (g *Grammar) Equal(other *Grammar) bool {
	if other == nil {
		return false
	}
	if len(g.rules) != len(other.rules) {
		return false
	}
	for k, rhs := range g.rules {
		orhs, ok := other.rules[k]
		if !ok || len(rhs) != len(orhs) {
			return false
		}
		for i := range rhs {
			if rhs[i] != orhs[i] {
				return false
			}
		}
	}
	return true
}

// StageCount returns the maximum number of production applications along
// any derivation path from start down to terminals: the derivation depth
// used as Exhaustive's tie-breaking secondary key.
func (g *Grammar) StageCount(start string) int {
	rhs, ok := g.rules[start]
	if !ok {
		return 0
	}
	maxChild := 0
	for _, sym := range rhs {
		if c := g.StageCount(sym); c > maxChild {
			maxChild = c
		}
	}
	return maxChild + 1
}

// Clone returns a deep copy of g.
func (g *Grammar) Clone() *Grammar {
	g2 := New()
	for k, rhs := range g.rules {
		g2.Add(k, rhs)
	}
	return g2
}

// Merge returns a new grammar containing the union of left's and right's
// productions. Where both grammars define a production for the same
// nonterminal with different right-hand sides, left's production wins — this mirrors Exhaustive's combination rule: the left child's RHS
// wins.
func Merge(left, right *Grammar) *Grammar {
	merged := New()
	if right != nil {
		for k, rhs := range right.rules {
			merged.Add(k, rhs)
		}
	}
	if left != nil {
		for k, rhs := range left.rules {
			merged.Add(k, rhs)
		}
	}
	return merged
}

// Entries returns the grammar's productions as parallel (nonterminal, RHS)
// slices in sorted-key order, for use by callers (internal/store) that need
// an exported, reflection-friendly view to hand to a generic encoder.
func (g *Grammar) Entries() (keys []string, rhss [][]string) {
	keys = g.Keys()
	rhss = make([][]string, len(keys))
	for i, k := range keys {
		rhss[i] = g.rules[k]
	}
	return keys, rhss
}

// FromEntries rebuilds a Grammar from the parallel slices Entries produced.
func FromEntries(keys []string, rhss [][]string) *Grammar {
	g := New()
	for i, k := range keys {
		g.Add(k, rhss[i])
	}
	return g
}
