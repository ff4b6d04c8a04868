// Package grammarapprox is a thin façade over the four smallest-grammar-
// problem approximation algorithms: it does not implement any algorithm
// logic itself, only calls into internal/* packages.
package grammarapprox

import (
	"fmt"

	"github.com/andrewwinslow/grammar-approx/internal/bisection"
	"github.com/andrewwinslow/grammar-approx/internal/exhaustive"
	"github.com/andrewwinslow/grammar-approx/internal/grammar"
	"github.com/andrewwinslow/grammar-approx/internal/lehman1"
	"github.com/andrewwinslow/grammar-approx/internal/sakamoto"
)

// Grammar is the straight-line grammar type every algorithm below produces.
type Grammar = grammar.Grammar

// Algorithm names one of the four approximation algorithms.
type Algorithm int

const (
	AlgorithmBisection Algorithm = iota
	AlgorithmLehman1
	AlgorithmSakamoto
	AlgorithmExhaustive
)

// Algorithms lists every algorithm, in a stable order suitable for sweeps
// and report columns.
var Algorithms = []Algorithm{
	AlgorithmBisection,
	AlgorithmLehman1,
	AlgorithmSakamoto,
	AlgorithmExhaustive,
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmBisection:
		return "bisection"
	case AlgorithmLehman1:
		return "lehman1"
	case AlgorithmSakamoto:
		return "sakamoto"
	case AlgorithmExhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm parses the name an Algorithm.String() produces.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", name)
}

// Build runs the named algorithm against s.
func Build(a Algorithm, s string) (*Grammar, error) {
	switch a {
	case AlgorithmBisection:
		return Bisection(s)
	case AlgorithmLehman1:
		return Lehman1(s)
	case AlgorithmSakamoto:
		return Sakamoto(s)
	case AlgorithmExhaustive:
		return Exhaustive(s)
	default:
		return nil, fmt.Errorf("unknown algorithm %q", a)
	}
}

// Bisection builds a grammar for s via recursive midpoint splitting.
func Bisection(s string) (*Grammar, error) {
	return bisection.Build(s)
}

// Lehman1 builds a grammar for s via the C-hierarchy/substring-construction
// approximation, an O(log^3 n)-approximation to the smallest grammar.
func Lehman1(s string) (*Grammar, error) {
	return lehman1.Build(s)
}

// Sakamoto builds a grammar for s via LEVELWISE-REPAIR, an
// O(log n)-approximation to the smallest grammar.
func Sakamoto(s string) (*Grammar, error) {
	return sakamoto.Build(s)
}

// Exhaustive builds the smallest possible grammar for s by enumerating
// every binary parse. Exponential time; intended only for small |s|.
func Exhaustive(s string) (*Grammar, error) {
	return exhaustive.Build(s)
}
