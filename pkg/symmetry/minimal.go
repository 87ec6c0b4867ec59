package symmetry

import (
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/nutshell/pkg/geometry"
)

// Minimal returns the named class used to emit a table whose transitions were
// declared under ts.
//
// The transformations shared by every type (their orbits of the identity
// napkin) are intersected. A named class holding exactly that set is returned;
// otherwise the largest named class contained in it, which is at worst "none".
// Any returned class is contained in every declared type, so each declared
// transition can be re-expanded under it. Results are memoized, so equal
// inputs yield the identical object.
func (r *Registry) Minimal(ts ...*Type) (*Type, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	nb, err := sameNeighborhood(ts)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(ts))
	for _, t := range ts {
		if !slices.Contains(keys, t.key) {
			keys = append(keys, t.key)
		}
	}
	sort.Strings(keys)
	memoKey := strings.Join(keys, "&")

	r.mu.RLock()
	m, ok := r.minimal[memoKey]
	r.mu.RUnlock()
	if ok {
		return m, nil
	}

	shared := intersect(ts)
	candidates := r.Classes(nb)
	m = r.None(nb)
	for _, c := range candidates {
		if c.Order() == len(shared) && containedIn(c, shared) {
			m = c
			break
		}
		if c.Order() > m.Order() && containedIn(c, shared) {
			m = c
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.minimal[memoKey]; ok {
		return existing, nil
	}
	r.minimal[memoKey] = m
	return m, nil
}

func intersect(ts []*Type) map[string]geometry.Perm {
	shared := make(map[string]geometry.Perm)
	for _, p := range ts[0].Perms() {
		shared[p.Key()] = p
	}
	for _, t := range ts[1:] {
		for k, p := range shared {
			if !t.Contains(p) {
				delete(shared, k)
			}
		}
	}
	return shared
}

func containedIn(t *Type, set map[string]geometry.Perm) bool {
	if t.Order() > len(set) {
		return false
	}
	for _, p := range t.Perms() {
		if _, ok := set[p.Key()]; !ok {
			return false
		}
	}
	return true
}
