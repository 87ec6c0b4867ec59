package expand

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/expr"
)

// Expand resolves every slot of g and returns its concrete transitions, one
// row of values per slot. Variables stay variables unless a mapping needs
// to know their state, in which case the row is split per state. Duplicate
// rows are dropped.
func (g *TransitionGroup) Expand() ([][]expr.Value, error) {
	return expandCells(g.Cells, g.Span, g.scope)
}

func expandCells(cells []expr.Cell, span domain.Span, scope *expr.Scope) ([][]expr.Value, error) {
	var out [][]expr.Value
	seen := make(map[string]bool)
	err := branch(slices.Clone(cells), span, scope, func(row []expr.Value) {
		if k := RowKey(row); !seen[k] {
			seen[k] = true
			out = append(out, row)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// branch resolves cells left to right. When a slot needs the state of a
// variable, the variable's owning slot is replaced by each of its states in
// turn, so every slot bound to that occurrence sees the same state.
func branch(cells []expr.Cell, span domain.Span, scope *expr.Scope, emit func([]expr.Value)) error {
	r := &resolver{
		cells:    cells,
		vals:     make([]expr.Value, len(cells)),
		done:     make([]bool, len(cells)),
		visiting: make([]bool, len(cells)),
		span:     span,
		scope:    scope,
	}
	for i := range cells {
		res, err := r.resolve(i)
		if err != nil {
			return err
		}
		if !res.Branch {
			continue
		}
		v := r.vals[res.Slot]
		for k, s := range v.Var.States {
			next := slices.Clone(cells)
			next[v.Origin] = expr.Literal{State: s, Source: v.Var, Index: k}
			if err := branch(next, span, scope, emit); err != nil {
				return err
			}
		}
		return nil
	}
	emit(r.vals)
	return nil
}

type resolver struct {
	cells    []expr.Cell
	vals     []expr.Value
	done     []bool
	visiting []bool
	span     domain.Span
	scope    *expr.Scope
}

func (r *resolver) At(slot int) expr.Value { return r.vals[slot] }

func (r *resolver) Anonymous(states expr.StateList) *expr.Var { return r.scope.Anonymous(states) }

func (r *resolver) resolve(i int) (expr.Resolution, error) {
	if r.done[i] {
		return expr.Resolution{}, nil
	}
	if r.visiting[i] {
		return expr.Resolution{}, domain.Wrap(domain.KindUndefinedReference, r.span,
			fmt.Errorf("slot %d refers back to itself: %w", i, domain.ErrCircularReference))
	}
	r.visiting[i] = true
	defer func() { r.visiting[i] = false }()

	if ref, ok := expr.Ref(r.cells[i]); ok {
		if ref < 0 || ref >= len(r.cells)-1 {
			return expr.Resolution{}, domain.Errorf(domain.KindUndefinedReference, r.span, "slot %d is not a napkin position", ref)
		}
		res, err := r.resolve(ref)
		if err != nil || res.Branch {
			return res, err
		}
	}

	res, err := expr.Resolve(r.cells[i], i, r)
	if err != nil {
		return res, domain.Wrap(domain.KindValueRange, r.span, err)
	}
	if res.Branch {
		return res, nil
	}
	if v := res.Value; i == len(r.cells)-1 && v.IsVar() && v.Origin == i {
		return expr.Resolution{}, domain.Errorf(domain.KindUnsupported, r.span,
			"the resultant cannot be the free variable %s; bind it to a napkin position", v.Var.States)
	}
	r.vals[i] = res.Value
	r.done[i] = true
	return expr.Resolution{}, nil
}

// RowKey identifies a concrete transition.
func RowKey(row []expr.Value) string {
	keys := make([]string, len(row))
	for i, v := range row {
		keys[i] = v.Key()
	}
	return strings.Join(keys, ",")
}
