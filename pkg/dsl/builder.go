package dsl

import (
	"strconv"

	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
)

// Builder manages the table construction.
type Builder struct {
	name       string
	statements []ast.Statement
}

// New creates a new table builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) span() domain.Span {
	return domain.Span{Line: len(b.statements) + 1, Start: 1, End: 1}
}

// Directive appends a `name: value` line.
func (b *Builder) Directive(name, value string) *Builder {
	b.statements = append(b.statements, &ast.Directive{Name: name, Value: value, Span: b.span()})
	return b
}

// States declares the number of states.
func (b *Builder) States(n int) *Builder {
	return b.Directive("n_states", strconv.Itoa(n))
}

// Neighborhood declares a named topology or a comma-separated direction list.
func (b *Builder) Neighborhood(name string) *Builder {
	return b.Directive("neighborhood", name)
}

// Symmetries declares a named symmetry class.
func (b *Builder) Symmetries(name string) *Builder {
	return b.Directive("symmetries", name)
}

// SymmetryExpr declares a composed or primitive symmetry.
func (b *Builder) SymmetryExpr(e ast.SymmetryExpr) *Builder {
	span := b.span()
	e.Span = span
	b.statements = append(b.statements, &ast.Directive{Name: "symmetries", Symmetry: &e, Span: span})
	return b
}

// Var declares a variable.
func (b *Builder) Var(name string, value ast.Expr) *Builder {
	b.statements = append(b.statements, &ast.VarDecl{Name: name, Value: value, Span: b.span()})
	return b
}

// Transition starts a transition from the given initial state.
func (b *Builder) Transition(initial ast.Expr) *TransitionBuilder {
	t := &ast.Transition{Initial: initial, Span: b.span()}
	b.statements = append(b.statements, t)
	return &TransitionBuilder{t: t}
}

// Build returns the table.
func (b *Builder) Build() *ast.Table {
	return &ast.Table{Name: b.name, Statements: append([]ast.Statement(nil), b.statements...)}
}
