package symmetry

import (
	"sort"
	"sync"

	"github.com/aretw0/nutshell/pkg/geometry"
)

// Type is a set of napkin relabelings bound to one neighborhood.
type Type struct {
	name string
	key  string
	nb   *geometry.Neighborhood

	// gens generate perms under composition when closed is true.
	gens   []geometry.Perm
	closed bool

	// groups is set for pure permute types: each group of positions is freely
	// permuted and every other position is stationary.
	groups [][]int

	once  sync.Once
	perms []geometry.Perm
	index map[string]bool
}

// Name returns the class name, or the generating expression for unnamed types.
func (t *Type) Name() string { return t.name }

// Key identifies the type within its registry.
func (t *Type) Key() string { return t.key }

// Neighborhood returns the neighborhood the type is bound to.
func (t *Type) Neighborhood() *geometry.Neighborhood { return t.nb }

// Perms returns every transformation, identity first. This is the orbit of the
// identity napkin.
func (t *Type) Perms() []geometry.Perm {
	t.materialize()
	return t.perms
}

// Order is the number of distinct transformations.
func (t *Type) Order() int {
	t.materialize()
	return len(t.perms)
}

// Contains reports whether p is one of the type's transformations.
func (t *Type) Contains(p geometry.Perm) bool {
	t.materialize()
	return t.index[p.Key()]
}

// SubsetOf reports whether every transformation of t also belongs to o.
func (t *Type) SubsetOf(o *Type) bool {
	if t.nb != o.nb {
		return false
	}
	if t.Order() > o.Order() {
		return false
	}
	for _, p := range t.Perms() {
		if !o.Contains(p) {
			return false
		}
	}
	return true
}

// Equivalent reports whether t and o hold the same transformations.
func (t *Type) Equivalent(o *Type) bool {
	return t.Order() == o.Order() && t.SubsetOf(o)
}

// IsPermute reports whether the type freely permutes groups of positions.
func (t *Type) IsPermute() bool {
	return t.groups != nil
}

func (t *Type) String() string { return t.name }

func (t *Type) materialize() {
	t.once.Do(t.build)
}

func (t *Type) build() {
	gens := t.gens
	if t.groups != nil {
		gens = transpositions(t.nb.Len(), t.groups)
	}
	if t.closed {
		t.perms = closure(t.nb.Len(), gens)
	} else {
		t.perms = dedupe(t.nb.Len(), gens)
	}
	t.index = make(map[string]bool, len(t.perms))
	for _, p := range t.perms {
		t.index[p.Key()] = true
	}
}

// closure returns the group generated by gens, identity first, in
// breadth-first order.
func closure(n int, gens []geometry.Perm) []geometry.Perm {
	id := geometry.Identity(n)
	out := []geometry.Perm{id}
	seen := map[string]bool{id.Key(): true}
	for i := 0; i < len(out); i++ {
		for _, g := range gens {
			next := out[i].Then(g)
			if k := next.Key(); !seen[k] {
				seen[k] = true
				out = append(out, next)
			}
		}
	}
	return out
}

// dedupe returns identity followed by perms without repeats.
func dedupe(n int, perms []geometry.Perm) []geometry.Perm {
	id := geometry.Identity(n)
	out := []geometry.Perm{id}
	seen := map[string]bool{id.Key(): true}
	for _, p := range perms {
		if k := p.Key(); !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}
	return out
}

// transpositions generates the symmetric group on each group.
func transpositions(n int, groups [][]int) []geometry.Perm {
	var out []geometry.Perm
	for _, g := range groups {
		for i := 0; i+1 < len(g); i++ {
			p := geometry.Identity(n)
			p[g[i]], p[g[i+1]] = g[i+1], g[i]
			out = append(out, p)
		}
	}
	return out
}

// mergeGroups unions overlapping position groups; the symmetric groups on two
// overlapping sets generate the symmetric group on their union.
func mergeGroups(groups [][]int) [][]int {
	var out [][]int
	for _, g := range groups {
		merged := append([]int(nil), g...)
		var rest [][]int
		for _, o := range out {
			if overlaps(o, merged) {
				merged = union(o, merged)
			} else {
				rest = append(rest, o)
			}
		}
		out = append(rest, merged)
	}
	for _, g := range out {
		sort.Ints(g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func overlaps(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func union(a, b []int) []int {
	out := append([]int(nil), a...)
	for _, y := range b {
		if !overlaps(out, []int{y}) {
			out = append(out, y)
		}
	}
	return out
}
