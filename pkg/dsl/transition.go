package dsl

import "github.com/aretw0/nutshell/pkg/ast"

// TransitionBuilder provides a fluent API for configuring a transition.
type TransitionBuilder struct {
	t *ast.Transition
}

// Napkin appends values for the next positions, in neighborhood order.
func (tb *TransitionBuilder) Napkin(values ...ast.Expr) *TransitionBuilder {
	for _, v := range values {
		tb.t.Napkin = append(tb.t.Napkin, ast.Term{Value: v, Span: tb.t.Span})
	}
	return tb
}

// At sets the position labeled dir, which must be the next one.
func (tb *TransitionBuilder) At(dir string, value ast.Expr) *TransitionBuilder {
	tb.t.Napkin = append(tb.t.Napkin, ast.Term{Dir: dir, Value: value, Span: tb.t.Span})
	return tb
}

// Range fills every position from one compass label through another.
func (tb *TransitionBuilder) Range(from, through string, value ast.Expr) *TransitionBuilder {
	tb.t.Napkin = append(tb.t.Napkin, ast.Term{Dir: from, Through: through, Value: value, Span: tb.t.Span})
	return tb
}

// To sets the resultant.
func (tb *TransitionBuilder) To(result ast.Expr) *TransitionBuilder {
	tb.t.Result = result
	return tb
}

// Aux adds an auxiliary setting the cells at targets.
func (tb *TransitionBuilder) Aux(value ast.Expr, targets ...string) *TransitionBuilder {
	tb.t.Auxiliaries = append(tb.t.Auxiliaries, ast.Auxiliary{Targets: targets, Value: value, Span: tb.t.Span})
	return tb
}

// AuxGroup adds an auxiliary whose target is expanded under the named symmetry.
func (tb *TransitionBuilder) AuxGroup(value ast.Expr, symmetry string, target string) *TransitionBuilder {
	tb.t.Auxiliaries = append(tb.t.Auxiliaries, ast.Auxiliary{
		Targets: []string{target},
		Group:   &ast.SymmetryExpr{Name: symmetry, Span: tb.t.Span},
		Value:   value,
		Span:    tb.t.Span,
	})
	return tb
}

// Build returns the underlying transition.
func (tb *TransitionBuilder) Build() *ast.Transition {
	return tb.t
}
