package geometry

import (
	"strconv"
	"strings"
)

// Perm is a relabeling of napkin positions: applying it to x yields y with
// y[i] = x[p[i]].
type Perm []int

// Identity returns the identity relabeling on n positions.
func Identity(n int) Perm {
	p := make(Perm, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Apply relabels xs by p.
func Apply[T any](p Perm, xs []T) []T {
	out := make([]T, len(p))
	for i, j := range p {
		out[i] = xs[j]
	}
	return out
}

// Then returns the relabeling equivalent to applying p and then q.
func (p Perm) Then(q Perm) Perm {
	out := make(Perm, len(q))
	for i, j := range q {
		out[i] = p[j]
	}
	return out
}

// Inverse returns the relabeling undoing p.
func (p Perm) Inverse() Perm {
	out := make(Perm, len(p))
	for i, j := range p {
		out[j] = i
	}
	return out
}

// Equal reports whether p and q relabel identically.
func (p Perm) Equal(q Perm) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsIdentity reports whether p fixes every position.
func (p Perm) IsIdentity() bool {
	for i, j := range p {
		if i != j {
			return false
		}
	}
	return true
}

// Key is a canonical string form usable as a map key.
func (p Perm) Key() string {
	var sb strings.Builder
	for i, j := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(j))
	}
	return sb.String()
}

// permuteAll returns every ordering of positions, keeping the rest of base fixed.
func permuteAll(base Perm, positions []int) []Perm {
	var out []Perm
	vals := make([]int, len(positions))
	copy(vals, positions)
	var rec func(k int)
	rec = func(k int) {
		if k == len(vals) {
			p := make(Perm, len(base))
			copy(p, base)
			for i, pos := range positions {
				p[pos] = vals[i]
			}
			out = append(out, p)
			return
		}
		for i := k; i < len(vals); i++ {
			vals[k], vals[i] = vals[i], vals[k]
			rec(k + 1)
			vals[k], vals[i] = vals[i], vals[k]
		}
	}
	rec(0)
	return out
}
