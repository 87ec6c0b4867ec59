package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nutshell/pkg/domain"
)

func mustNamed(t *testing.T, name string) *Neighborhood {
	t.Helper()
	nb, err := Named(name)
	require.NoError(t, err)
	return nb
}

func TestNamed(t *testing.T) {
	tests := []struct {
		in   string
		name string
		size int
	}{
		{"Moore", Moore, 8},
		{"vonneumann", VonNeumann, 4},
		{"hex", Hexagonal, 6},
		{"oneDimensional", OneDimensional, 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			nb := mustNamed(t, tt.in)
			assert.Equal(t, tt.name, nb.Name())
			assert.Equal(t, tt.size, nb.Len())
		})
	}

	_, err := Named("triangular")
	assert.Equal(t, domain.KindGeometry, domain.KindOf(err))
}

func TestNew(t *testing.T) {
	t.Run("reorders to canonical order", func(t *testing.T) {
		nb, err := New(W, S, E, N)
		require.NoError(t, err)
		assert.Equal(t, VonNeumann, nb.Name())
		assert.Equal(t, []Direction{N, E, S, W}, nb.Directions())
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := New(N, N, S, W)
		assert.Equal(t, domain.KindSyntaxInconsistency, domain.KindOf(err))
	})

	t.Run("bad size", func(t *testing.T) {
		_, err := New(N, E, S)
		assert.Equal(t, domain.KindGeometry, domain.KindOf(err))
	})

	t.Run("unsupported set", func(t *testing.T) {
		_, err := New(N, NE, E, SE)
		assert.Equal(t, domain.KindGeometry, domain.KindOf(err))
	})
}

func TestParse(t *testing.T) {
	nb, err := Parse("N, E, SE, S, W, NW")
	require.NoError(t, err)
	assert.Equal(t, Hexagonal, nb.Name())

	nb, err = Parse("Moore")
	require.NoError(t, err)
	assert.Equal(t, 8, nb.Len())

	_, err = Parse("N, Q")
	assert.Error(t, err)
}

func TestDirAt(t *testing.T) {
	nb := mustNamed(t, Moore)

	d, err := nb.DirAt(1)
	require.NoError(t, err)
	assert.Equal(t, N, d)

	d, err = nb.DirAt(-1)
	require.NoError(t, err)
	assert.Equal(t, NW, d)

	d, err = nb.DirAt(-8)
	require.NoError(t, err)
	assert.Equal(t, N, d)

	_, err = nb.DirAt(0)
	assert.Equal(t, domain.KindUndefinedReference, domain.KindOf(err))
	_, err = nb.DirAt(9)
	assert.Error(t, err)

	pos, ok := nb.Ordinal(SE)
	assert.True(t, ok)
	assert.Equal(t, 4, pos)

	vn, err := Named(VonNeumann)
	require.NoError(t, err)
	_, ok = vn.Ordinal(NE)
	assert.False(t, ok)
}

func TestRotationsBy_ComposeToIdentity(t *testing.T) {
	for _, name := range []string{Moore, VonNeumann, Hexagonal, OneDimensional} {
		nb := mustNamed(t, name)
		for _, n := range []int{1, 2, 3, 4, 6, 8} {
			rots, err := nb.RotationsBy(n)
			if nb.Len()%n != 0 {
				assert.Error(t, err, "%s by %d", name, n)
				continue
			}
			require.NoError(t, err)
			require.Len(t, rots, n)
			assert.True(t, rots[0].IsIdentity())

			acc := Identity(nb.Len())
			for i := 0; i < n; i++ {
				acc = acc.Then(rots[1%n])
			}
			assert.True(t, acc.IsIdentity(), "%s rotated %d times by 1/%d turn", name, n, n)
		}
	}
}

func TestRotateBy_MovesValuesClockwise(t *testing.T) {
	nb := mustNamed(t, Moore)
	napkin := []string{"n", "", "", "", "", "", "", ""}
	out := Apply(nb.RotateBy(2), napkin)
	i, _ := nb.Index(E)
	assert.Equal(t, "n", out[i])
}

func TestReflectAcross(t *testing.T) {
	t.Run("involution on every topology", func(t *testing.T) {
		axes := map[string][2]Direction{
			Moore:          {N, S},
			VonNeumann:     {E, W},
			Hexagonal:      {SE, NW},
			OneDimensional: {N, S},
		}
		for name, axis := range axes {
			nb := mustNamed(t, name)
			p, err := nb.ReflectAcross(axis[0], axis[1])
			require.NoError(t, err, name)
			assert.False(t, p.IsIdentity(), name)
			assert.True(t, p.Then(p).IsIdentity(), name)
		}
	})

	t.Run("vertical axis swaps east and west", func(t *testing.T) {
		nb := mustNamed(t, Moore)
		p, err := nb.ReflectAcross(N, S)
		require.NoError(t, err)
		out := Apply(p, nb.Directions())
		assert.Equal(t, []Direction{N, NW, W, SW, S, SE, E, NE}, out)
	})

	t.Run("axis between adjacent points", func(t *testing.T) {
		nb := mustNamed(t, Moore)
		p, err := nb.ReflectAcross(N, NE)
		require.NoError(t, err)
		out := Apply(p, nb.Directions())
		iN, _ := nb.Index(N)
		assert.Equal(t, NE, out[iN])
	})

	t.Run("hexagonal is not symmetric across N-S", func(t *testing.T) {
		nb := mustNamed(t, Hexagonal)
		_, err := nb.ReflectAcross(N, S)
		assert.Equal(t, domain.KindGeometry, domain.KindOf(err))
	})

	t.Run("non adjacent endpoints", func(t *testing.T) {
		nb := mustNamed(t, Moore)
		_, err := nb.ReflectAcross(N, E)
		assert.Equal(t, domain.KindGeometry, domain.KindOf(err))
	})
}

func TestPermutations(t *testing.T) {
	nb := mustNamed(t, VonNeumann)

	all, err := nb.Permutations(nil)
	require.NoError(t, err)
	assert.Len(t, all, 24)

	some, err := nb.Permutations([]Direction{N, S})
	require.NoError(t, err)
	require.Len(t, some, 2)
	for _, p := range some {
		assert.Equal(t, 1, p[1])
		assert.Equal(t, 3, p[3])
	}

	_, err = nb.Permutations([]Direction{NE})
	assert.Equal(t, domain.KindSyntaxInconsistency, domain.KindOf(err))
}

func TestTranslateAndReproject(t *testing.T) {
	d, ok := Translate(N, S)
	assert.True(t, ok)
	assert.Equal(t, C, d)

	d, ok = Translate(N, E)
	assert.True(t, ok)
	assert.Equal(t, NE, d)

	_, ok = Translate(N, N)
	assert.False(t, ok)

	d, ok = Reproject(NE, N)
	assert.True(t, ok)
	assert.Equal(t, W, d)

	d, ok = Reproject(E, C)
	assert.True(t, ok)
	assert.Equal(t, W, d)
}
