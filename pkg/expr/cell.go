package expr

import (
	"strconv"

	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
)

// Cell is the content of one transition slot. Slot 0 is the initial state,
// slots 1..n the napkin and slot n+1 the resultant. The set of implementations
// is closed.
type Cell interface {
	cell()
}

// Literal is a single state. Source and Index are set when the state was
// substituted from a variable, so mappings can still find its position.
type Literal struct {
	State  int
	Source *Var
	Index  int
}

// VarCell is a multi-valued variable occurrence.
type VarCell struct {
	Var *Var
}

// Binding copies the value of slot Ref.
type Binding struct {
	Ref  int
	Span domain.Span
}

// Mapping looks up the index slot Ref's value holds in its variable, and
// yields the element of To at that index. With Ellipsis, the last element of
// To fills the positions To is too short for.
type Mapping struct {
	Ref      int
	To       StateList
	Ellipsis bool
	Span     domain.Span
}

// Operation transforms the referenced slot's variable. Rotate maps the
// reference's index onto the variable shifted by Count. Subtract yields the
// variable's states without Operand as a free variable of its own.
type Operation struct {
	Ref     int
	Op      ast.Op
	Count   int
	Operand StateList
	Span    domain.Span
}

func (Literal) cell()   {}
func (VarCell) cell()   {}
func (Binding) cell()   {}
func (Mapping) cell()   {}
func (Operation) cell() {}

// Ref returns the slot a reference cell points at.
func Ref(c Cell) (int, bool) {
	switch c := c.(type) {
	case Binding:
		return c.Ref, true
	case Mapping:
		return c.Ref, true
	case Operation:
		return c.Ref, true
	}
	return 0, false
}

// WithRef returns a copy of a reference cell pointing at slot.
func WithRef(c Cell, slot int) Cell {
	switch c := c.(type) {
	case Binding:
		c.Ref = slot
		return c
	case Mapping:
		c.Ref = slot
		return c
	case Operation:
		c.Ref = slot
		return c
	}
	return c
}

// Value is a resolved slot: either a literal state or a variable reference.
type Value struct {
	// Var is set when the slot is emitted as a variable reference.
	Var *Var
	// State is the literal state when Var is nil.
	State int
	// Source and Index record the variable and position a literal was
	// drawn from, for index-based mapping lookups.
	Source *Var
	Index  int
	// Origin is the slot owning this variable occurrence. Bound slots share
	// the origin of the slot they copy.
	Origin int
}

// IsVar reports whether v is a variable reference.
func (v Value) IsVar() bool { return v.Var != nil }

// Key identifies the value for equality: the state, or the variable with the
// occurrence it belongs to.
func (v Value) Key() string {
	if v.Var != nil {
		return "$" + v.Var.Name + "@" + strconv.Itoa(v.Origin)
	}
	return strconv.Itoa(v.State)
}

// Drawn returns the literal value of v's index-th state.
func Drawn(v *Var, index, origin int) Value {
	return Value{State: v.States[index], Source: v, Index: index, Origin: origin}
}
