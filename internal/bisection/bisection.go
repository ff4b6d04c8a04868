// Package bisection implements the O(sqrt(n)/log(n))-approximation
// algorithm for the smallest grammar problem: recursively split the input
// at its floor-midpoint and emit a production for every substring of
// length >= 2 encountered along the way.
package bisection

import (
	"github.com/andrewwinslow/grammar-approx/internal/grammar"
	"github.com/andrewwinslow/grammar-approx/internal/sgerrors"
)

// Build returns a grammar whose start symbol is s, constructed by
// recursively splitting s at floor(len(s)/2). Strings of length 1
// contribute no production. Deterministic: calling Build twice on the same
// s produces byte-identical grammars.
func Build(s string) (*grammar.Grammar, error) {
	if len(s) == 0 {
		return nil, sgerrors.EmptyInput()
	}

	g := grammar.New()
	recurse(s, g)
	return g, nil
}

func recurse(s string, g *grammar.Grammar) {
	if len(s) <= 1 {
		return
	}
	mid := len(s) / 2
	left, right := s[:mid], s[mid:]
	g.Add(s, []string{left, right})
	recurse(left, g)
	recurse(right, g)
}
