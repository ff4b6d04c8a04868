// Package sgerrors defines the error kinds that the grammar model and the
// four approximation algorithms can raise. Per the design these are all
// programmer errors, not conditions a caller is expected to retry around:
// valid input should never produce one.
package sgerrors

import "fmt"

// sgError is a wrapped error carrying an optional offending value, in the
// same spirit as tqerrors' interpreterError: a short Error() string plus
// enough structure for a caller to act on without re-parsing the message.
type sgError struct {
	kind  string
	msg   string
	value string
	wrap  error
}

func (e *sgError) Error() string {
	return e.msg
}

func (e *sgError) Unwrap() error {
	return e.wrap
}

// Kind returns the short identifier of the error family this error belongs
// to, one of "EmptyInput", "ClosureViolation", or "UnresolvedNonterminal".
func (e *sgError) Kind() string {
	return e.kind
}

// Value returns the offending nonterminal or input string associated with
// the error, if any.
func (e *sgError) Value() string {
	return e.value
}

// EmptyInput returns an error indicating that an algorithm was called with
// an empty string where |S| >= 1 is required.
func EmptyInput() error {
	return &sgError{
		kind: "EmptyInput",
		msg:  "input string must have length >= 1",
	}
}

// ClosureViolation returns an error indicating that a constructed grammar
// has a right-hand side referencing a nonterminal that is not itself a key
// of the grammar. This always indicates a bug in an algorithm, since every
// algorithm in this module is required to return closed grammars.
func ClosureViolation(nonterminal string) error {
	return &sgError{
		kind:  "ClosureViolation",
		msg:   fmt.Sprintf("grammar is not closed: %q is used on a right-hand side but has no production", nonterminal),
		value: nonterminal,
	}
}

// UnresolvedNonterminal returns an error raised by the test expander when it
// encounters a nonterminal with no production while expanding a grammar,
// i.e. the grammar's closure invariant was broken.
func UnresolvedNonterminal(nonterminal string) error {
	return &sgError{
		kind:  "UnresolvedNonterminal",
		msg:   fmt.Sprintf("cannot expand %q: no production registered for it", nonterminal),
		value: nonterminal,
	}
}

// WrapClosureViolation wraps an existing error with ClosureViolation
// context, preserving it as the Unwrap() target.
func WrapClosureViolation(err error, nonterminal string) error {
	e := ClosureViolation(nonterminal).(*sgError)
	e.wrap = err
	return e
}

// IsKind reports whether err is an sgerrors value of the given kind.
func IsKind(err error, kind string) bool {
	var e *sgError
	for err != nil {
		if se, ok := err.(*sgError); ok {
			e = se
			break
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return e != nil && e.kind == kind
}
