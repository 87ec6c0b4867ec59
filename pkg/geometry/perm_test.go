package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerm(t *testing.T) {
	p := Perm{1, 2, 0}
	q := Perm{0, 2, 1}

	xs := []string{"a", "b", "c"}
	assert.Equal(t, []string{"b", "c", "a"}, Apply(p, xs))
	assert.Equal(t, Apply(q, Apply(p, xs)), Apply(p.Then(q), xs))
	assert.True(t, p.Then(p.Inverse()).IsIdentity())
	assert.True(t, p.Equal(Perm{1, 2, 0}))
	assert.False(t, p.Equal(q))
	assert.Equal(t, "1,2,0", p.Key())
}
