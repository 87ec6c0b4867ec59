package expand

import (
	"strconv"
	"strings"

	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/expr"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

// Env carries the section state a transition is built against.
type Env struct {
	Scope        *expr.Scope
	Neighborhood *geometry.Neighborhood
	Symmetry     *symmetry.Type
	Registry     *symmetry.Registry
}

// Auxiliary sets the cells at Targets when its transition fires. Value is
// written in the frame of the originating cell.
type Auxiliary struct {
	Targets []geometry.Direction
	Value   expr.Cell
	Span    domain.Span
}

// TransitionGroup is one abstract transition and the symmetry it was
// declared under.
type TransitionGroup struct {
	Cells       []expr.Cell
	Symmetry    *symmetry.Type
	Auxiliaries []Auxiliary
	Span        domain.Span

	nb    *geometry.Neighborhood
	scope *expr.Scope
}

// Neighborhood returns the neighborhood the group's napkin is laid out in.
func (g *TransitionGroup) Neighborhood() *geometry.Neighborhood { return g.nb }

// ResultSlot is the index of the resultant cell.
func (g *TransitionGroup) ResultSlot() int { return len(g.Cells) - 1 }

// Build lays out t's terms along env's neighborhood.
func Build(t *ast.Transition, env Env) (*TransitionGroup, error) {
	if env.Neighborhood == nil {
		return nil, domain.Wrap(domain.KindSyntaxInconsistency, t.Span, domain.ErrNeedsNeighborhood)
	}
	b := &builder{env: env, nb: env.Neighborhood}
	n := b.nb.Len()
	g := &TransitionGroup{
		Cells:    make([]expr.Cell, n+2),
		Symmetry: env.Symmetry,
		Span:     t.Span,
		nb:       b.nb,
		scope:    env.Scope,
	}
	if g.Symmetry == nil {
		g.Symmetry = env.Registry.None(b.nb)
	}

	var err error
	if g.Cells[0], err = b.cell(t.Initial, false); err != nil {
		return nil, err
	}
	if err := b.napkin(t.Napkin, g.Cells[1:n+1], t.Span); err != nil {
		return nil, err
	}
	if g.Cells[n+1], err = b.cell(t.Result, true); err != nil {
		return nil, err
	}

	for _, a := range t.Auxiliaries {
		aux, err := b.auxiliary(a, g.Symmetry)
		if err != nil {
			return nil, err
		}
		g.Auxiliaries = append(g.Auxiliaries, aux)
	}
	return g, nil
}

type builder struct {
	env Env
	nb  *geometry.Neighborhood
}

// napkin fills out from terms. Unlabeled terms take the next position;
// labeled ones must name it.
func (b *builder) napkin(terms []ast.Term, out []expr.Cell, span domain.Span) error {
	next := 0
	for _, term := range terms {
		from, to := next, next
		if term.Dir != "" {
			pos, err := b.position(term.Dir, term.Span)
			if err != nil {
				return err
			}
			switch {
			case pos < next:
				return domain.Errorf(domain.KindSyntaxInconsistency, term.Span, "direction %s is already given", term.Dir)
			case pos > next:
				return domain.Errorf(domain.KindSyntaxInconsistency, term.Span,
					"direction %s is out of sequence; expected %s", term.Dir, b.nb.Directions()[next])
			}
			to = pos
			if term.Through != "" {
				if to, err = b.position(term.Through, term.Span); err != nil {
					return err
				}
				if to < from {
					return domain.Errorf(domain.KindSyntaxInconsistency, term.Span,
						"range %s..%s runs against the neighborhood order", term.Dir, term.Through)
				}
			}
		}
		if from >= len(out) {
			return domain.Errorf(domain.KindSyntaxInconsistency, term.Span,
				"the %s neighborhood has only %d positions", b.nb.Name(), len(out))
		}
		for i := from; i <= to; i++ {
			c, err := b.cell(term.Value, false)
			if err != nil {
				return err
			}
			out[i] = c
		}
		next = to + 1
	}
	if next != len(out) {
		return domain.Errorf(domain.KindSyntaxInconsistency, span,
			"napkin gives %d of the %d positions of the %s neighborhood", next, len(out), b.nb.Name())
	}
	return nil
}

// position returns the 0-based napkin position of a compass label.
func (b *builder) position(label string, span domain.Span) (int, error) {
	d, err := geometry.ParseDirection(label)
	if err != nil {
		return 0, domain.Wrap(domain.KindSyntaxInconsistency, span, err)
	}
	i, ok := b.nb.Index(d)
	if !ok {
		return 0, domain.Errorf(domain.KindSyntaxInconsistency, span, "%s is not part of the %s neighborhood", d, b.nb.Name())
	}
	return i, nil
}

// slot resolves a reference: C or 0 is the initial state, a compass label or
// a 1-based position (negative from the end) is a napkin slot.
func (b *builder) slot(ref *ast.Ref) (int, error) {
	label := strings.ToUpper(strings.TrimSpace(ref.Dir))
	if label == "C" || label == "0" {
		return 0, nil
	}
	if n, err := strconv.Atoi(label); err == nil {
		d, err := b.nb.DirAt(n)
		if err != nil {
			return 0, domain.Wrap(domain.KindUndefinedReference, ref.Span, err)
		}
		label = string(d)
	}
	d, err := geometry.ParseDirection(label)
	if err != nil {
		return 0, domain.Wrap(domain.KindUndefinedReference, ref.Span, err)
	}
	// slot 0 is the initial state, so the 1-based ordinal is the slot
	pos, ok := b.nb.Ordinal(d)
	if !ok {
		return 0, domain.Errorf(domain.KindUndefinedReference, ref.Span, "%s is not part of the %s neighborhood", d, b.nb.Name())
	}
	return pos, nil
}

// cell compiles one slot expression. A resultant may not hold a free
// variable: nothing would tell which of its states to emit.
func (b *builder) cell(e ast.Expr, result bool) (expr.Cell, error) {
	scope := b.env.Scope
	switch e := e.(type) {
	case *ast.Int:
		s, err := scope.State(e)
		if err != nil {
			return nil, err
		}
		return expr.Literal{State: s}, nil

	case *ast.Ref:
		slot, err := b.slot(e)
		if err != nil {
			return nil, err
		}
		return expr.Binding{Ref: slot, Span: e.Span}, nil

	case *ast.Map:
		slot, err := b.slot(&e.Ref)
		if err != nil {
			return nil, err
		}
		to, ellipsis, err := scope.EvalTarget(e.To)
		if err != nil {
			return nil, err
		}
		return expr.Mapping{Ref: slot, To: to, Ellipsis: ellipsis, Span: e.Span}, nil

	case *ast.RefOp:
		slot, err := b.slot(&e.Ref)
		if err != nil {
			return nil, err
		}
		op := expr.Operation{Ref: slot, Op: e.Op, Span: e.Span}
		switch e.Op {
		case ast.OpRotate:
			if op.Count, err = scope.Count(e.Arg); err != nil {
				return nil, err
			}
		case ast.OpSubtract:
			if op.Operand, err = scope.Eval(e.Arg); err != nil {
				return nil, err
			}
		case ast.OpRepeat:
			// repetition keeps every index in place, so it would read back the
			// referenced state unchanged
			return nil, domain.Errorf(domain.KindUnsupported, e.Span,
				"operator %s cannot transform a reference; bind it with [%s] instead", e.Op, e.Ref.Dir)
		default:
			return nil, domain.Errorf(domain.KindUnsupported, e.Span, "operator %s cannot transform a reference", e.Op)
		}
		return op, nil
	}

	var v *expr.Var
	if name, ok := e.(*ast.Name); ok {
		if v, ok = scope.Lookup(name.Ident); !ok {
			return nil, domain.Errorf(domain.KindUndefinedReference, name.Span, "undefined variable %q", name.Ident)
		}
	} else {
		states, err := scope.Eval(e)
		if err != nil {
			return nil, err
		}
		if s, ok := states.Unique(); ok {
			return expr.Literal{State: s}, nil
		}
		v = scope.Anonymous(states)
	}
	if _, unique := v.States.Unique(); result && !unique {
		return nil, domain.Errorf(domain.KindUnsupported, e.Pos(),
			"the resultant cannot be the free variable %s; bind it to a napkin position", v.Name)
	}
	return expr.VarCell{Var: v}, nil
}

func (b *builder) auxiliary(a ast.Auxiliary, sym *symmetry.Type) (Auxiliary, error) {
	if !b.env.Registry.Geometric(sym) {
		return Auxiliary{}, domain.Errorf(domain.KindUnsupported, a.Span,
			"auxiliary transitions need a geometric symmetry, not %s", sym.Name())
	}
	value, err := b.cell(a.Value, true)
	if err != nil {
		return Auxiliary{}, err
	}
	aux := Auxiliary{Value: value, Span: a.Span}

	var group *symmetry.Type
	if a.Group != nil {
		if group, err = b.env.Registry.Declare(b.nb, a.Group); err != nil {
			return Auxiliary{}, err
		}
	}
	seen := make(map[geometry.Direction]bool)
	for _, label := range a.Targets {
		pos, err := b.position(label, a.Span)
		if err != nil {
			return Auxiliary{}, err
		}
		targets := []int{pos}
		if group != nil {
			targets = targets[:0]
			for _, p := range group.Perms() {
				targets = append(targets, p.Inverse()[pos])
			}
		}
		for _, i := range targets {
			d := b.nb.Directions()[i]
			if !seen[d] {
				seen[d] = true
				aux.Targets = append(aux.Targets, d)
			}
		}
	}
	return aux, nil
}
