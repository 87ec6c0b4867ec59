package expand

import (
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/expr"
	"github.com/aretw0/nutshell/pkg/geometry"
)

// AuxiliaryRows returns the concrete auxiliary transitions that row triggers,
// each seen from the cell it targets. Cells the origin cannot see are any.
func (g *TransitionGroup) AuxiliaryRows(row []expr.Value) ([][]expr.Value, error) {
	var out [][]expr.Value
	for _, aux := range g.Auxiliaries {
		for _, target := range aux.Targets {
			cells, err := g.reframe(row, aux, target)
			if err != nil {
				return nil, err
			}
			rows, err := expandCells(cells, aux.Span, g.scope)
			if err != nil {
				return nil, err
			}
			out = append(out, rows...)
		}
	}
	return out, nil
}

// reframe lays out row around target. Variable occurrences the origin shares
// between slots stay shared through bindings.
func (g *TransitionGroup) reframe(row []expr.Value, aux Auxiliary, target geometry.Direction) ([]expr.Cell, error) {
	n := g.nb.Len()
	dirs := g.nb.Directions()
	cells := make([]expr.Cell, n+2)
	owners := make(map[int]int)
	place := func(slot int, v expr.Value) {
		if !v.IsVar() {
			cells[slot] = expr.Literal{State: v.State, Source: v.Source, Index: v.Index}
			return
		}
		if first, ok := owners[v.Origin]; ok {
			cells[slot] = expr.Binding{Ref: first, Span: aux.Span}
			return
		}
		owners[v.Origin] = slot
		cells[slot] = expr.VarCell{Var: v.Var}
	}

	// originSlot is the slot of row holding the cell the origin sees at d.
	originSlot := func(d geometry.Direction) (int, bool) {
		if d == geometry.C {
			return 0, true
		}
		return g.nb.Ordinal(d)
	}

	t, _ := originSlot(target)
	place(0, row[t])
	anyVar, _ := g.scope.Lookup(expr.Any)
	for i, d := range dirs {
		seen, ok := geometry.Translate(target, d)
		if ok {
			if slot, visible := originSlot(seen); visible {
				place(i+1, row[slot])
				continue
			}
		}
		cells[i+1] = expr.VarCell{Var: anyVar}
	}

	value := aux.Value
	if ref, ok := expr.Ref(value); ok {
		at := geometry.C
		if ref > 0 {
			at = dirs[ref-1]
		}
		seen, ok := geometry.Reproject(target, at)
		slot := -1
		if ok {
			if seen == geometry.C {
				slot = 0
			} else if pos, in := g.nb.Ordinal(seen); in {
				slot = pos
			}
		}
		if slot < 0 {
			return nil, domain.Errorf(domain.KindUndefinedReference, aux.Span,
				"%s is not visible from the cell at %s", at, target)
		}
		value = expr.WithRef(value, slot)
	}
	cells[n+1] = value
	return cells, nil
}
