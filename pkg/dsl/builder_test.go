package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nutshell/pkg/ast"
)

func TestBuilder_Statements(t *testing.T) {
	b := New("life")
	b.States(3).Neighborhood("vonNeumann").Symmetries("rotate4")
	b.Var("a", States(1, 2))
	b.Transition(Int(0)).
		At("N", Name("a")).
		Range("E", "W", Int(0)).
		To(Map("N", Fill(2))).
		Aux(Int(1), "N")

	tbl := b.Build()
	assert.Equal(t, "life", tbl.Name)
	require.Len(t, tbl.Statements, 5)

	d, ok := tbl.Statements[0].(*ast.Directive)
	require.True(t, ok)
	assert.Equal(t, "n_states", d.Name)
	assert.Equal(t, "3", d.Value)

	tr, ok := tbl.Statements[4].(*ast.Transition)
	require.True(t, ok)
	assert.Equal(t, 5, tr.Span.Line)
	require.Len(t, tr.Napkin, 2)
	assert.Equal(t, "E", tr.Napkin[1].Dir)
	assert.Equal(t, "W", tr.Napkin[1].Through)

	m, ok := tr.Result.(*ast.Map)
	require.True(t, ok)
	assert.Equal(t, "N", m.Ref.Dir)
	assert.True(t, m.To.(*ast.Set).Ellipsis)

	require.Len(t, tr.Auxiliaries, 1)
	assert.Equal(t, []string{"N"}, tr.Auxiliaries[0].Targets)
}

func TestBuilder_SpansAreDistinct(t *testing.T) {
	b := New("")
	b.Neighborhood("Moore")
	b.SymmetryExpr(ast.SymmetryExpr{Op: "compose", Of: []ast.SymmetryExpr{{Name: "rotate4"}, {Name: "reflect_horizontal"}}})

	tbl := b.Build()
	require.Len(t, tbl.Statements, 2)
	d := tbl.Statements[1].(*ast.Directive)
	require.NotNil(t, d.Symmetry)
	assert.Equal(t, 2, d.Span.Line)
	assert.Equal(t, d.Span, d.Symmetry.Span)
	assert.NotEqual(t, tbl.Statements[0].Pos(), d.Pos())
}
