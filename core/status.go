package core

import (
	"errors"
	"fmt"
)

// The tracing core reports failures as values from this fixed set. Hot-path
// code never panics and never wraps; collaborators that need context may wrap
// with fmt.Errorf("...: %w", err) at their boundary and callers still match
// with errors.Is / errors.As.
var (
	// ErrNoIntersection is returned by shape callbacks that found no hits.
	// The hit tester converts it to success; it never escapes a trace.
	ErrNoIntersection = errors.New("core: no intersection")

	// ErrDone is returned by a process-hit callback to stop a TraceAllHits
	// walk early. The walk converts it to success.
	ErrDone = errors.New("core: done")

	// ErrAllocationFailed is returned when an arena or pool cannot grow.
	ErrAllocationFailed = errors.New("core: allocation failed")

	// ErrArithmetic is returned when a matrix turns out to be singular.
	ErrArithmetic = errors.New("core: arithmetic error")

	// ErrOutOfEntropy is returned when a low-discrepancy sequence consumer
	// asks for more dimensions than the sequence supports.
	ErrOutOfEntropy = errors.New("core: out of entropy")
)

// ArgumentError reports a per-argument validation failure. Position is the
// zero-based index of the offending argument in the called function's
// signature. Comparable, so tests may use == as well as errors.As.
type ArgumentError struct {
	Position int
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("core: invalid argument %02d", e.Position)
}

// ArgumentCombinationError reports a constraint violated jointly by several
// arguments. Position counts the combinations checked by the called function,
// in declaration order.
type ArgumentCombinationError struct {
	Position int
}

func (e ArgumentCombinationError) Error() string {
	return fmt.Sprintf("core: invalid argument combination %02d", e.Position)
}

// InvalidArgument builds the validation failure for one argument position.
func InvalidArgument(position int) error {
	return ArgumentError{Position: position}
}

// InvalidArgumentCombination builds the validation failure for one
// cross-argument constraint.
func InvalidArgumentCombination(position int) error {
	return ArgumentCombinationError{Position: position}
}
