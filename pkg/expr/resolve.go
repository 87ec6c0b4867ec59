package expr

import (
	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
)

// Context exposes the already resolved slots of the transition being expanded.
type Context interface {
	At(slot int) Value
	// Anonymous returns the generated variable holding states.
	Anonymous(states StateList) *Var
}

// Resolution is the outcome of resolving a cell: either a Value, or a request
// to branch over every state of the variable at Slot.
type Resolution struct {
	Value  Value
	Branch bool
	Slot   int
}

// Resolved wraps a value.
func Resolved(v Value) Resolution {
	return Resolution{Value: v}
}

// NeedsBranch asks the caller to substitute each state of slot in turn.
func NeedsBranch(slot int) Resolution {
	return Resolution{Branch: true, Slot: slot}
}

// Resolve evaluates c for slot. Reference cells read the slot they point at
// through ctx, which must already be resolved.
func Resolve(c Cell, slot int, ctx Context) (Resolution, error) {
	switch c := c.(type) {
	case Literal:
		return Resolved(Value{State: c.State, Source: c.Source, Index: c.Index, Origin: slot}), nil

	case VarCell:
		if s, ok := c.Var.States.Unique(); ok {
			return Resolved(Value{State: s, Source: c.Var, Origin: slot}), nil
		}
		return Resolved(Value{Var: c.Var, Origin: slot}), nil

	case Binding:
		v := ctx.At(c.Ref)
		if v.IsVar() {
			// the simulator binds repeated names, so the occurrence is shared
			return Resolved(Value{Var: v.Var, Origin: v.Origin}), nil
		}
		v.Origin = slot
		return Resolved(v), nil

	case Mapping:
		v := ctx.At(c.Ref)
		if v.IsVar() {
			return NeedsBranch(c.Ref), nil
		}
		return lookup(c.To, c.Ellipsis, v, slot, c.Span)

	case Operation:
		v := ctx.At(c.Ref)
		if c.Op == ast.OpSubtract {
			return subtract(c, v, slot, ctx)
		}
		if c.Op != ast.OpRotate {
			return Resolution{}, domain.Errorf(domain.KindUnsupported, c.Span, "operator %s cannot transform a reference", c.Op)
		}
		if v.IsVar() {
			return NeedsBranch(c.Ref), nil
		}
		src := StateList{v.State}
		if v.Source != nil {
			src = v.Source.States
		}
		return lookup(src.Rotate(c.Count), false, v, slot, c.Span)
	}
	return Resolution{}, domain.Errorf(domain.KindUnsupported, domain.Span{}, "unknown cell %T", c)
}

// lookup maps the index v was drawn at onto to. A literal that was not drawn
// from a variable counts as a one-element list.
func lookup(to StateList, ellipsis bool, v Value, slot int, span domain.Span) (Resolution, error) {
	srcLen, index := 1, 0
	if v.Source != nil {
		srcLen, index = len(v.Source.States), v.Index
	}
	if len(to) == 0 {
		return Resolution{}, domain.Errorf(domain.KindValueRange, span, "mapping target is empty")
	}
	if len(to) < srcLen && !ellipsis {
		return Resolution{}, domain.Errorf(domain.KindValueRange, span,
			"mapping target %s has %d states but the referenced variable has %d; end it with ... to repeat the last state",
			to, len(to), srcLen)
	}
	if index >= len(to) {
		index = len(to) - 1
	}
	target := &Var{States: to, Anonymous: true}
	return Resolved(Drawn(target, index, slot)), nil
}

// subtract yields the referenced variable's states without the operand. It
// does not depend on which state the reference took, so it never branches.
func subtract(c Operation, v Value, slot int, ctx Context) (Resolution, error) {
	src := StateList{v.State}
	switch {
	case v.Var != nil:
		src = v.Var.States
	case v.Source != nil:
		src = v.Source.States
	}
	rest := src.Subtract(c.Operand)
	if len(rest) == 0 {
		return Resolution{}, domain.Errorf(domain.KindValueRange, c.Span, "%s - %s leaves no state", src, c.Operand)
	}
	if s, ok := rest.Unique(); ok {
		return Resolved(Value{State: s, Origin: slot}), nil
	}
	return Resolved(Value{Var: ctx.Anonymous(rest), Origin: slot}), nil
}
