package cuckoo

import "github.com/pkg/errors"

// Kind distinguishes the error taxonomy of §7. Only Overloaded is an
// ordinary outcome; the rest are abnormal and terminate the solve.
type Kind int

const (
	// Overloaded: trim insufficient, too many live edges remain.
	Overloaded Kind = iota
	// PathOverflow: a path walk exceeded MaxPathLen.
	PathOverflow
	// IllegalCycle: a pre-existing k-cycle (k < ProofSize) was found
	// during a path walk.
	IllegalCycle
	// AllocationFailure: TwiceSet or CuckooMap could not be allocated.
	AllocationFailure
	// InvariantViolation: CuckooMap probe drift exceeded its bound.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case Overloaded:
		return "overloaded"
	case PathOverflow:
		return "path overflow"
	case IllegalCycle:
		return "illegal cycle"
	case AllocationFailure:
		return "allocation failure"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "unknown"
	}
}

// SolveError is the typed error hierarchy of §7. Kind is the distinguished
// outcome; the wrapped cause (if any) carries detail via pkg/errors.
type SolveError struct {
	Kind  Kind
	cause error
}

func (e *SolveError) Error() string {
	if e.cause != nil {
		return e.Kind.String() + ": " + e.cause.Error()
	}
	return e.Kind.String()
}

func (e *SolveError) Unwrap() error { return e.cause }

// newSolveError builds a SolveError, wrapping cause with pkg/errors so a
// stack trace is attached at the point of failure.
func newSolveError(kind Kind, msg string) *SolveError {
	return &SolveError{Kind: kind, cause: errors.New(msg)}
}

// IsOverloaded reports whether err is (or wraps) an Overloaded SolveError.
func IsOverloaded(err error) bool {
	var se *SolveError
	return errors.As(err, &se) && se.Kind == Overloaded
}
