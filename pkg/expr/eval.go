package expr

import (
	"strconv"

	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
)

// State parses a state literal and checks its range.
func (s *Scope) State(lit *ast.Int) (int, error) {
	n, err := strconv.Atoi(lit.Raw)
	if err != nil {
		return 0, domain.Errorf(domain.KindValueRange, lit.Span, "%q is not an integer state", lit.Raw)
	}
	if n < 0 || n >= s.nStates {
		return 0, domain.Errorf(domain.KindValueRange, lit.Span, "state %q is outside 0..%d", lit.Raw, s.nStates-1)
	}
	return n, nil
}

// Count evaluates an integer operand such as a repeat count or rotation amount.
func (s *Scope) Count(e ast.Expr) (int, error) {
	lit, ok := e.(*ast.Int)
	if !ok {
		return 0, domain.Errorf(domain.KindValueRange, e.Pos(), "expected an integer operand")
	}
	n, err := strconv.Atoi(lit.Raw)
	if err != nil {
		return 0, domain.Errorf(domain.KindValueRange, lit.Span, "%q is not an integer", lit.Raw)
	}
	return n, nil
}

// Eval evaluates a state-list expression. Binding nodes are not state lists
// and are rejected.
func (s *Scope) Eval(e ast.Expr) (StateList, error) {
	list, ellipsis, err := s.EvalTarget(e)
	if err != nil {
		return nil, err
	}
	if ellipsis {
		return nil, domain.Errorf(domain.KindValueRange, e.Pos(), "an ellipsis is only allowed at the end of a mapping target")
	}
	return list, nil
}

// EvalTarget evaluates a mapping target, which may end in an ellipsis.
func (s *Scope) EvalTarget(e ast.Expr) (StateList, bool, error) {
	switch e := e.(type) {
	case *ast.Int:
		n, err := s.State(e)
		if err != nil {
			return nil, false, err
		}
		return StateList{n}, false, nil

	case *ast.Name:
		v, ok := s.Lookup(e.Ident)
		if !ok {
			return nil, false, domain.Errorf(domain.KindUndefinedReference, e.Span, "undefined variable %q", e.Ident)
		}
		return v.States, false, nil

	case *ast.Set:
		var out StateList
		for _, el := range e.Elems {
			list, err := s.Eval(el)
			if err != nil {
				return nil, false, err
			}
			out = append(out, list...)
		}
		if len(out) == 0 {
			return nil, false, domain.Errorf(domain.KindValueRange, e.Span, "empty state set")
		}
		return out, e.Ellipsis, nil

	case *ast.Range:
		lo, err := s.rangeBound(e.Lo)
		if err != nil {
			return nil, false, err
		}
		hi, err := s.rangeBound(e.Hi)
		if err != nil {
			return nil, false, err
		}
		if lo > hi {
			return nil, false, domain.Errorf(domain.KindValueRange, e.Span, "range %d..%d has its bounds reversed", lo, hi)
		}
		out := make(StateList, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
		return out, false, nil

	case *ast.Binary:
		list, err := s.binary(e)
		return list, false, err

	case *ast.Complement:
		operand, err := s.Eval(e.Operand)
		if err != nil {
			return nil, false, err
		}
		universe := s.AnyStates()
		if e.Live {
			universe = s.LiveStates()
		}
		out := operand.Complement(universe)
		if len(out) == 0 {
			return nil, false, domain.Errorf(domain.KindValueRange, e.Span, "complement is empty")
		}
		return out, false, nil

	case *ast.Ref, *ast.Map, *ast.RefOp:
		return nil, false, domain.Errorf(domain.KindUnsupported, e.Pos(), "a reference cannot be used as a state list")
	}
	return nil, false, domain.Errorf(domain.KindUnsupported, e.Pos(), "unknown expression %T", e)
}

func (s *Scope) rangeBound(e ast.Expr) (int, error) {
	lit, ok := e.(*ast.Int)
	if !ok {
		return 0, domain.Errorf(domain.KindValueRange, e.Pos(), "range bounds must be integer states")
	}
	return s.State(lit)
}

func (s *Scope) binary(e *ast.Binary) (StateList, error) {
	left, err := s.Eval(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpRepeat:
		n, err := s.Count(e.Right)
		if err != nil {
			return nil, err
		}
		out, ok := left.Repeat(n)
		if !ok {
			return nil, domain.Errorf(domain.KindValueRange, e.Right.Pos(), "repeat count %d must be positive", n)
		}
		return out, nil
	case ast.OpRepeatTo:
		right, err := s.Eval(e.Right)
		if err != nil {
			return nil, err
		}
		return left.RepeatTo(len(right)), nil
	case ast.OpSubtract:
		right, err := s.Eval(e.Right)
		if err != nil {
			return nil, err
		}
		out := left.Subtract(right)
		if len(out) == 0 {
			return nil, domain.Errorf(domain.KindValueRange, e.Span, "subtraction leaves no states")
		}
		return out, nil
	case ast.OpRotate:
		n, err := s.Count(e.Right)
		if err != nil {
			return nil, err
		}
		return left.Rotate(n), nil
	}
	return nil, domain.Errorf(domain.KindUnsupported, e.Span, "unknown operator %q", e.Op)
}
