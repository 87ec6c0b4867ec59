package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCircularReference is returned when two napkin positions reference each other
// (directly or through a chain) and neither can be resolved first.
var ErrCircularReference = errors.New("circular reference")

// ErrNeedsNeighborhood is returned when a transition or symmetry is declared before
// the section has a neighborhood.
var ErrNeedsNeighborhood = errors.New("no neighborhood declared")

// Kind classifies a compilation failure.
type Kind int

const (
	// KindUndefinedReference: a variable or binding index is not in scope.
	KindUndefinedReference Kind = iota + 1
	// KindSyntaxInconsistency: compass direction out of sequence, duplicated, etc.
	KindSyntaxInconsistency
	// KindValueRange: literal outside the state range, short mapping, bad range bounds.
	KindValueRange
	// KindGeometry: a symmetry the current neighborhood cannot realize.
	KindGeometry
	// KindUnsupported: a construct that is not valid in the current mode.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindUndefinedReference:
		return "UndefinedReference"
	case KindSyntaxInconsistency:
		return "SyntaxInconsistency"
	case KindValueRange:
		return "ValueRangeError"
	case KindGeometry:
		return "GeometryError"
	case KindUnsupported:
		return "UnsupportedFeature"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a compilation failure bound to a source span.
type Error struct {
	Kind Kind
	Span Span
	Msg  string
	Err  error // optional cause
}

func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and a span to err. If err already is an *Error with a span,
// it is returned unchanged.
func Wrap(kind Kind, span Span, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		if de.Span.IsZero() {
			cp := *de
			cp.Span = span
			return &cp
		}
		return err
	}
	return &Error{Kind: kind, Span: span, Msg: err.Error(), Err: err}
}

// KindOf reports the Kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// AggregateError represents multiple transition-level failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns all failures if err is an AggregateError, the error itself
// otherwise, and nil for a nil error.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return []error{err}
}
