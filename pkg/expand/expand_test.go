package expand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/expr"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

func newEnv(t *testing.T, nbName, sym string, nStates int) Env {
	t.Helper()
	nb, err := geometry.Named(nbName)
	require.NoError(t, err)
	reg := symmetry.NewRegistry()
	st, err := reg.Named(nb, sym)
	require.NoError(t, err)
	return Env{
		Scope:        expr.NewScope(nStates, expr.NewNamer(1)),
		Neighborhood: nb,
		Symmetry:     st,
		Registry:     reg,
	}
}

func num(raw string) ast.Expr { return &ast.Int{Raw: raw} }

func set(raws ...string) *ast.Set {
	s := &ast.Set{}
	for _, r := range raws {
		s.Elems = append(s.Elems, num(r))
	}
	return s
}

func ref(dir string) *ast.Ref { return &ast.Ref{Dir: dir} }

func seq(values ...ast.Expr) []ast.Term {
	out := make([]ast.Term, len(values))
	for i, v := range values {
		out[i] = ast.Term{Value: v}
	}
	return out
}

func literals(t *testing.T, row []expr.Value) []int {
	t.Helper()
	out := make([]int, len(row))
	for i, v := range row {
		require.False(t, v.IsVar(), "slot %d is a variable", i)
		out[i] = v.State
	}
	return out
}

func TestExpand_MappingEllipsis(t *testing.T) {
	env := newEnv(t, geometry.VonNeumann, "none", 3)
	to := set("1", "2")
	to.Ellipsis = true
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("0", "1", "2"), num("0"), num("0"), num("0")),
		Result:  &ast.Map{Ref: *ref("N"), To: to},
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1}, literals(t, rows[0]))
	assert.Equal(t, []int{0, 1, 0, 0, 0, 2}, literals(t, rows[1]))
	assert.Equal(t, []int{0, 2, 0, 0, 0, 2}, literals(t, rows[2]))
}

func TestExpand_MappingTooShort(t *testing.T) {
	env := newEnv(t, geometry.VonNeumann, "none", 3)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("0", "1", "2"), num("0"), num("0"), num("0")),
		Result:  &ast.Map{Ref: *ref("N"), To: set("1", "2")},
	}, env)
	require.NoError(t, err, "lengths are only checked while expanding")

	_, err = g.Expand()
	require.Error(t, err)
	assert.Equal(t, domain.KindValueRange, domain.KindOf(err))
}

func TestExpand_BindingNeverDiverges(t *testing.T) {
	env := newEnv(t, geometry.VonNeumann, "none", 3)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("0", "1", "2"), num("0"), ref("N"), num("0")),
		Result:  &ast.Map{Ref: *ref("S"), To: set("2", "1", "0")},
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		states := literals(t, row)
		assert.Equal(t, states[1], states[3], "N and S must hold the same state")
		assert.Equal(t, 2-states[1], states[5])
	}
}

func TestExpand_PureBindingKeepsVariable(t *testing.T) {
	env := newEnv(t, geometry.VonNeumann, "none", 3)
	g, err := Build(&ast.Transition{
		Initial: &ast.Name{Ident: "live"},
		Napkin:  seq(num("0"), num("0"), num("0"), num("0")),
		Result:  ref("C"),
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	require.True(t, row[5].IsVar())
	assert.Equal(t, "live", row[5].Var.Name)
	assert.Equal(t, row[0].Key(), row[5].Key())
}

func TestExpand_RepeatedVariablesAreIndependent(t *testing.T) {
	env := newEnv(t, geometry.VonNeumann, "none", 3)
	live := &ast.Name{Ident: "live"}
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(live, live, num("0"), num("0")),
		Result:  num("1"),
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEqual(t, rows[0][1].Key(), rows[0][2].Key())
}

func TestExpand_OperationOnReference(t *testing.T) {
	env := newEnv(t, geometry.OneDimensional, "none", 4)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("1", "2", "3"), num("0")),
		Result:  &ast.RefOp{Ref: *ref("W"), Op: ast.OpRotate, Arg: num("1")},
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// {1,2,3} >> 1 is {3,1,2}
	assert.Equal(t, []int{0, 1, 0, 3}, literals(t, rows[0]))
	assert.Equal(t, []int{0, 2, 0, 1}, literals(t, rows[1]))
	assert.Equal(t, []int{0, 3, 0, 2}, literals(t, rows[2]))
}

func TestExpand_SubtractFromReference(t *testing.T) {
	env := newEnv(t, geometry.OneDimensional, "none", 4)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("1", "2", "3"), &ast.RefOp{Ref: *ref("W"), Op: ast.OpSubtract, Arg: num("1")}),
		Result:  num("0"),
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	require.True(t, row[1].IsVar())
	require.True(t, row[2].IsVar())
	assert.Equal(t, expr.StateList{2, 3}, row[2].Var.States)
	assert.True(t, row[2].Var.Anonymous)
	assert.NotEmpty(t, row[2].Var.Name)
	assert.NotEqual(t, row[1].Key(), row[2].Key())

	g, err = Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("1", "2", "3"), num("0")),
		Result:  &ast.RefOp{Ref: *ref("W"), Op: ast.OpSubtract, Arg: set("1", "2")},
	}, env)
	require.NoError(t, err)
	rows, err = g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0][3].State)
	assert.False(t, rows[0][3].IsVar())
}

func TestExpand_SubtractLeavesFreeResultant(t *testing.T) {
	env := newEnv(t, geometry.OneDimensional, "none", 4)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("1", "2", "3"), num("0")),
		Result:  &ast.RefOp{Ref: *ref("W"), Op: ast.OpSubtract, Arg: num("1")},
	}, env)
	require.NoError(t, err)

	_, err = g.Expand()
	require.Error(t, err)
	assert.Equal(t, domain.KindUnsupported, domain.KindOf(err))
}

func TestBuild_RepeatOnReference(t *testing.T) {
	env := newEnv(t, geometry.OneDimensional, "none", 4)
	_, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(set("1", "2", "3"), num("0")),
		Result:  &ast.RefOp{Ref: *ref("W"), Op: ast.OpRepeat, Arg: num("2")},
	}, env)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnsupported, domain.KindOf(err))
}

func TestExpand_CircularReference(t *testing.T) {
	env := newEnv(t, geometry.VonNeumann, "none", 2)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin:  seq(ref("E"), ref("N"), num("0"), num("0")),
		Result:  num("1"),
	}, env)
	require.NoError(t, err)

	_, err = g.Expand()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCircularReference))
}

func TestBuild_LabeledTerms(t *testing.T) {
	env := newEnv(t, geometry.Moore, "none", 2)
	g, err := Build(&ast.Transition{
		Initial: num("0"),
		Napkin: []ast.Term{
			{Dir: "N", Through: "SE", Value: num("1")},
			{Dir: "S", Value: num("0")},
			{Value: num("0")},
			{Dir: "w", Through: "NW", Value: num("1")},
		},
		Result: num("1"),
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []int{0, 1, 1, 1, 1, 0, 0, 1, 1, 1}, literals(t, rows[0]))
}

func TestBuild_PositionalReferences(t *testing.T) {
	env := newEnv(t, geometry.Moore, "none", 9)
	napkin := make([]ast.Expr, 8)
	for i := range napkin {
		napkin[i] = num(string(rune('1' + i)))
	}
	for _, tc := range []struct {
		dir  string
		want int
	}{
		{"C", 0},
		{"0", 0},
		{"1", 1},
		{"-1", 8},
		{"SE", 4},
	} {
		g, err := Build(&ast.Transition{Initial: num("0"), Napkin: seq(napkin...), Result: ref(tc.dir)}, env)
		require.NoError(t, err, tc.dir)
		rows, err := g.Expand()
		require.NoError(t, err)
		assert.Equal(t, tc.want, rows[0][9].State, tc.dir)
	}
}

func TestBuild_Errors(t *testing.T) {
	zeros := func(n int) []ast.Expr {
		out := make([]ast.Expr, n)
		for i := range out {
			out[i] = num("0")
		}
		return out
	}
	tests := []struct {
		name string
		tr   *ast.Transition
		kind domain.Kind
	}{
		{
			name: "out of sequence",
			tr: &ast.Transition{Initial: num("0"), Result: num("0"), Napkin: []ast.Term{
				{Dir: "E", Value: num("0")},
			}},
			kind: domain.KindSyntaxInconsistency,
		},
		{
			name: "duplicate direction",
			tr: &ast.Transition{Initial: num("0"), Result: num("0"), Napkin: []ast.Term{
				{Dir: "N", Value: num("0")}, {Dir: "N", Value: num("0")},
			}},
			kind: domain.KindSyntaxInconsistency,
		},
		{
			name: "short napkin",
			tr:   &ast.Transition{Initial: num("0"), Result: num("0"), Napkin: seq(zeros(3)...)},
			kind: domain.KindSyntaxInconsistency,
		},
		{
			name: "long napkin",
			tr:   &ast.Transition{Initial: num("0"), Result: num("0"), Napkin: seq(zeros(5)...)},
			kind: domain.KindSyntaxInconsistency,
		},
		{
			name: "direction outside neighborhood",
			tr:   &ast.Transition{Initial: num("0"), Result: ref("NE"), Napkin: seq(zeros(4)...)},
			kind: domain.KindUndefinedReference,
		},
		{
			name: "free variable in resultant",
			tr:   &ast.Transition{Initial: num("0"), Result: &ast.Name{Ident: "any"}, Napkin: seq(zeros(4)...)},
			kind: domain.KindUnsupported,
		},
		{
			name: "state out of range",
			tr:   &ast.Transition{Initial: num("5"), Result: num("0"), Napkin: seq(zeros(4)...)},
			kind: domain.KindValueRange,
		},
		{
			name: "undefined variable",
			tr:   &ast.Transition{Initial: &ast.Name{Ident: "missing"}, Result: num("0"), Napkin: seq(zeros(4)...)},
			kind: domain.KindUndefinedReference,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, geometry.VonNeumann, "none", 2)
			_, err := Build(tt.tr, env)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err), err.Error())
		})
	}
}

func TestReduce_Rotate4Reflect(t *testing.T) {
	env := newEnv(t, geometry.Moore, "rotate4reflect", 2)
	g, err := Build(&ast.Transition{
		Initial: num("1"),
		Napkin:  seq(num("1"), num("1"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0")),
		Result:  num("0"),
	}, env)
	require.NoError(t, err)
	rows, err := g.Expand()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	cache, err := symmetry.NewOrbitCache(16)
	require.NoError(t, err)

	none := env.Registry.None(env.Neighborhood)
	assert.Len(t, g.Reduce(rows, none, cache), 8)

	rot4, err := env.Registry.Named(env.Neighborhood, "rotate4")
	require.NoError(t, err)
	assert.Len(t, g.Reduce(rows, rot4, cache), 2)

	assert.Len(t, g.Reduce(rows, g.Symmetry, cache), 1)
}

func TestAuxiliary_Reframe(t *testing.T) {
	env := newEnv(t, geometry.Moore, "none", 3)
	g, err := Build(&ast.Transition{
		Initial:     num("1"),
		Napkin:      seq(num("2"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0")),
		Result:      num("0"),
		Auxiliaries: []ast.Auxiliary{{Targets: []string{"N"}, Value: ref("C")}},
	}, env)
	require.NoError(t, err)

	rows, err := g.Expand()
	require.NoError(t, err)
	aux, err := g.AuxiliaryRows(rows[0])
	require.NoError(t, err)
	require.Len(t, aux, 1)

	row := aux[0]
	assert.Equal(t, 2, row[0].State)
	for _, slot := range []int{1, 2, 8} {
		require.True(t, row[slot].IsVar(), "slot %d", slot)
		assert.Equal(t, expr.Any, row[slot].Var.Name)
	}
	assert.Equal(t, 1, row[5].State, "the origin sits south of its northern neighbor")
	assert.Equal(t, 1, row[9].State)
}

func TestAuxiliary_Errors(t *testing.T) {
	napkin := seq(num("0"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0"))

	env := newEnv(t, geometry.Moore, "none", 2)
	g, err := Build(&ast.Transition{
		Initial: num("1"), Napkin: napkin, Result: num("0"),
		Auxiliaries: []ast.Auxiliary{{Targets: []string{"N"}, Value: ref("S")}},
	}, env)
	require.NoError(t, err)
	rows, err := g.Expand()
	require.NoError(t, err)
	_, err = g.AuxiliaryRows(rows[0])
	assert.Equal(t, domain.KindUndefinedReference, domain.KindOf(err))

	env = newEnv(t, geometry.Moore, "permute", 2)
	_, err = Build(&ast.Transition{
		Initial: num("1"), Napkin: napkin, Result: num("0"),
		Auxiliaries: []ast.Auxiliary{{Targets: []string{"N"}, Value: num("1")}},
	}, env)
	assert.Equal(t, domain.KindUnsupported, domain.KindOf(err))
}

func TestAuxiliary_GroupedTargets(t *testing.T) {
	env := newEnv(t, geometry.Moore, "rotate4", 2)
	g, err := Build(&ast.Transition{
		Initial: num("1"),
		Napkin:  seq(num("0"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0"), num("0")),
		Result:  num("0"),
		Auxiliaries: []ast.Auxiliary{{
			Targets: []string{"N"},
			Group:   &ast.SymmetryExpr{Name: "rotate4"},
			Value:   num("1"),
		}},
	}, env)
	require.NoError(t, err)
	require.Len(t, g.Auxiliaries, 1)
	assert.Equal(t, []geometry.Direction{geometry.N, geometry.E, geometry.S, geometry.W}, g.Auxiliaries[0].Targets)
}
