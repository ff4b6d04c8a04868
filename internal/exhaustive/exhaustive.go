// Package exhaustive implements the optimal (exponential-time) algorithm
// for the smallest grammar problem by enumerating every binary parse tree
// of the input and keeping the smallest grammar under the (size, stage
// count) ordering. It is intended only as a ground-truth oracle for tiny
// inputs (|S| <~ 10).
package exhaustive

import (
	"github.com/andrewwinslow/grammar-approx/internal/grammar"
	"github.com/andrewwinslow/grammar-approx/internal/sgerrors"
)

// Build returns the smallest grammar for s under the ordering (grammar
// size, stage count), ties broken by enumeration order (the Python
// reference's min() keeps the first minimum it sees; this does the same).
func Build(s string) (*grammar.Grammar, error) {
	if len(s) == 0 {
		return nil, sgerrors.EmptyInput()
	}

	var best *grammar.Grammar
	bestSize, bestStage := 0, 0

	for _, g := range enumerate(s) {
		size := g.Size()
		stage := g.StageCount(s)
		if best == nil || size < bestSize || (size == bestSize && stage < bestStage) {
			best, bestSize, bestStage = g, size, stage
		}
	}
	return best, nil
}

// enumerate yields every grammar obtainable by choosing, at every level of
// recursive decomposition, each of the len(s)-1 possible split points. Base
// case len(s) == 1 yields a single empty grammar (a lone terminal needs no
// production). This is a Catalan-number blowup: len(s) == 5 yields 14
// grammars, the 5th Catalan number.
func enumerate(s string) []*grammar.Grammar {
	if len(s) == 1 {
		return []*grammar.Grammar{grammar.New()}
	}

	var out []*grammar.Grammar
	for i := 1; i < len(s); i++ {
		left, right := s[:i], s[i:]
		leftGrammars := enumerate(left)
		rightGrammars := enumerate(right)
		for _, lg := range leftGrammars {
			for _, rg := range rightGrammars {
				combined := grammar.Merge(lg, rg)
				combined.Add(s, []string{left, right})
				out = append(out, combined)
			}
		}
	}
	return out
}
