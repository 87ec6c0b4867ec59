package symmetry

import (
	"strconv"
	"strings"

	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/geometry"
)

// dihedral names the full geometric symmetry class of each topology.
var dihedral = map[string]string{
	geometry.Moore:          "rotate8reflect",
	geometry.VonNeumann:     "rotate4reflect",
	geometry.Hexagonal:      "rotate6reflect",
	geometry.OneDimensional: "reflect",
}

// Declare resolves a symmetries declaration against nb. Named classes take
// precedence over primitives of the same name.
func (r *Registry) Declare(nb *geometry.Neighborhood, e *ast.SymmetryExpr) (*Type, error) {
	t, err := r.declare(nb, e)
	if err != nil {
		return nil, domain.Wrap(domain.KindGeometry, e.Span, err)
	}
	return t, nil
}

func (r *Registry) declare(nb *geometry.Neighborhood, e *ast.SymmetryExpr) (*Type, error) {
	switch strings.ToLower(e.Op) {
	case "compose", "combine":
		parts := make([]*Type, 0, len(e.Of))
		for i := range e.Of {
			t, err := r.Declare(nb, &e.Of[i])
			if err != nil {
				return nil, err
			}
			parts = append(parts, t)
		}
		if strings.EqualFold(e.Op, "compose") {
			return r.Compose(parts...)
		}
		return r.Combine(parts...)
	case "":
	default:
		return nil, domain.Errorf(domain.KindSyntaxInconsistency, e.Span, "unknown symmetry operator %q", e.Op)
	}

	name := strings.ToLower(strings.TrimSpace(e.Name))
	if _, ok := lookupClass(nb, name); ok && len(e.Args) == 0 {
		return r.Named(nb, name)
	}
	switch name {
	case "none":
		return r.None(nb), nil
	case "rotate":
		if len(e.Args) != 1 {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, e.Span, "rotate takes one argument")
		}
		n, err := strconv.Atoi(strings.TrimSpace(e.Args[0]))
		if err != nil {
			return nil, domain.Errorf(domain.KindValueRange, e.Span, "%q is not an integer rotation count", e.Args[0])
		}
		return r.Rotate(nb, n)
	case "reflect":
		if len(e.Args) < 1 || len(e.Args) > 2 {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, e.Span, "reflect takes one or two compass directions")
		}
		dirs, err := directions(e.Args)
		if err != nil {
			return nil, err
		}
		if len(dirs) == 1 {
			dirs = append(dirs, dirs[0])
		}
		return r.Reflect(nb, dirs[0], dirs[1])
	case "permute":
		if len(e.Args) == 1 && strings.EqualFold(strings.TrimSpace(e.Args[0]), "all") {
			return r.Permute(nb)
		}
		dirs, err := directions(e.Args)
		if err != nil {
			return nil, err
		}
		return r.Permute(nb, dirs...)
	}
	return r.Named(nb, name)
}

func directions(args []string) ([]geometry.Direction, error) {
	out := make([]geometry.Direction, len(args))
	for i, a := range args {
		d, err := geometry.ParseDirection(a)
		if err != nil {
			return nil, domain.Wrap(domain.KindSyntaxInconsistency, domain.Span{}, err)
		}
		out[i] = d
	}
	return out, nil
}

// Geometric reports whether every transformation of t is a rotation or a
// reflection of the whole neighborhood.
func (r *Registry) Geometric(t *Type) bool {
	full, err := r.Named(t.nb, dihedral[t.nb.Name()])
	if err != nil {
		return false
	}
	return t.SubsetOf(full)
}
