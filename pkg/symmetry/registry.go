package symmetry

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/geometry"
)

// Registry memoizes symmetry types by their generating arguments.
// Types are immutable once stored, so a Registry may be shared across
// compilations.
type Registry struct {
	mu      sync.RWMutex
	types   map[string]*Type
	minimal map[string]*Type
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[string]*Type),
		minimal: make(map[string]*Type),
	}
}

// memo returns the type stored under key, building and storing it if absent.
// build runs without the lock held because it may recurse into the registry.
func (r *Registry) memo(key string, build func() (*Type, error)) (*Type, error) {
	r.mu.RLock()
	t, ok := r.types[key]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := build()
	if err != nil {
		return nil, err
	}
	t.key = key

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.types[key]; ok {
		return existing, nil
	}
	r.types[key] = t
	return t, nil
}

func scoped(nb *geometry.Neighborhood, expr string) string {
	return nb.Name() + "/" + expr
}

// None is the trivial type: only the identity.
func (r *Registry) None(nb *geometry.Neighborhood) *Type {
	t, _ := r.memo(scoped(nb, "none"), func() (*Type, error) {
		return &Type{name: "none", nb: nb, closed: true}, nil
	})
	return t
}

// Rotate is the n-fold rotation type.
func (r *Registry) Rotate(nb *geometry.Neighborhood, n int) (*Type, error) {
	name := fmt.Sprintf("rotate%d", n)
	return r.memo(scoped(nb, name), func() (*Type, error) {
		rots, err := nb.RotationsBy(n)
		if err != nil {
			return nil, err
		}
		return &Type{name: name, nb: nb, gens: rots, closed: true}, nil
	})
}

// Reflect is the type holding the identity and the reflection across a-b.
func (r *Registry) Reflect(nb *geometry.Neighborhood, a, b geometry.Direction) (*Type, error) {
	name := fmt.Sprintf("reflect(%s,%s)", a, b)
	return r.memo(scoped(nb, name), func() (*Type, error) {
		p, err := nb.ReflectAcross(a, b)
		if err != nil {
			return nil, err
		}
		return &Type{name: name, nb: nb, gens: []geometry.Perm{p}, closed: true}, nil
	})
}

// Permute freely permutes the given directions; no directions means all.
func (r *Registry) Permute(nb *geometry.Neighborhood, dirs ...geometry.Direction) (*Type, error) {
	positions, err := nb.Positions(dirs)
	if err != nil {
		return nil, err
	}
	name := "permute"
	if len(positions) != nb.Len() {
		labels := make([]string, len(positions))
		all := nb.Directions()
		for i, p := range positions {
			labels[i] = string(all[p])
		}
		name = "permute(" + strings.Join(labels, ",") + ")"
	}
	return r.memo(scoped(nb, name), func() (*Type, error) {
		var groups [][]int
		if len(positions) > 1 {
			groups = [][]int{positions}
		} else {
			groups = [][]int{}
		}
		return &Type{name: name, nb: nb, groups: groups, closed: true}, nil
	})
}

// Compose returns the group generated by every transformation of ts.
func (r *Registry) Compose(ts ...*Type) (*Type, error) {
	nb, err := sameNeighborhood(ts)
	if err != nil {
		return nil, err
	}
	if len(ts) == 1 {
		return ts[0], nil
	}
	name := "compose(" + strings.Join(sortedNames(ts), ",") + ")"
	return r.memo(scoped(nb, name), func() (*Type, error) {
		t := &Type{name: name, nb: nb, closed: true}
		if allPermute(ts) {
			var groups [][]int
			for _, x := range ts {
				groups = append(groups, x.groups...)
			}
			t.groups = mergeGroups(groups)
			if t.groups == nil {
				t.groups = [][]int{}
			}
			return t, nil
		}
		for _, x := range ts {
			t.gens = append(t.gens, x.generators()...)
		}
		return t, nil
	})
}

// Combine returns the union of the transformation sets of ts. The result is
// not closed under composition.
func (r *Registry) Combine(ts ...*Type) (*Type, error) {
	nb, err := sameNeighborhood(ts)
	if err != nil {
		return nil, err
	}
	if len(ts) == 1 {
		return ts[0], nil
	}
	name := "combine(" + strings.Join(sortedNames(ts), ",") + ")"
	return r.memo(scoped(nb, name), func() (*Type, error) {
		t := &Type{name: name, nb: nb}
		for _, x := range ts {
			t.gens = append(t.gens, x.Perms()...)
		}
		return t, nil
	})
}

// Named returns the simulator symmetry class called name on nb.
func (r *Registry) Named(nb *geometry.Neighborhood, name string) (*Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	def, ok := lookupClass(nb, name)
	if !ok {
		return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "symmetry %q is not supported by the %s neighborhood", name, nb.Name())
	}
	return r.memo(scoped(nb, "class:"+name), func() (*Type, error) {
		base, err := def.build(r, nb)
		if err != nil {
			return nil, err
		}
		return &Type{
			name:   name,
			nb:     nb,
			gens:   base.generators(),
			closed: true,
			groups: base.groups,
		}, nil
	})
}

// Classes returns every named class nb supports, weakest first.
func (r *Registry) Classes(nb *geometry.Neighborhood) []*Type {
	var out []*Type
	for _, def := range classes[nb.Name()] {
		t, err := r.Named(nb, def.name)
		if err == nil {
			out = append(out, t)
		}
	}
	return out
}

// Supports reports whether nb can realize the named class.
func (r *Registry) Supports(nb *geometry.Neighborhood, name string) bool {
	_, err := r.Named(nb, name)
	return err == nil
}

// generators returns a set of perms that generate t when closed.
func (t *Type) generators() []geometry.Perm {
	switch {
	case t.groups != nil:
		return transpositions(t.nb.Len(), t.groups)
	case t.closed:
		return t.gens
	default:
		return t.Perms()
	}
}

func sameNeighborhood(ts []*Type) (*geometry.Neighborhood, error) {
	if len(ts) == 0 {
		return nil, domain.Errorf(domain.KindSyntaxInconsistency, domain.Span{}, "no symmetry types given")
	}
	nb := ts[0].nb
	for _, t := range ts[1:] {
		if t.nb != nb {
			return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "symmetry %s is bound to %s, not %s", t.name, t.nb.Name(), nb.Name())
		}
	}
	return nb, nil
}

func allPermute(ts []*Type) bool {
	for _, t := range ts {
		if !t.IsPermute() {
			return false
		}
	}
	return true
}

func sortedNames(ts []*Type) []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		if !slices.Contains(names, t.name) {
			names = append(names, t.name)
		}
	}
	sort.Strings(names)
	return names
}
