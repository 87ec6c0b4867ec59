package symmetry

import "github.com/aretw0/nutshell/pkg/geometry"

type classDef struct {
	name  string
	build func(r *Registry, nb *geometry.Neighborhood) (*Type, error)
}

func none() classDef {
	return classDef{"none", func(r *Registry, nb *geometry.Neighborhood) (*Type, error) {
		return r.None(nb), nil
	}}
}

func rotate(name string, n int) classDef {
	return classDef{name, func(r *Registry, nb *geometry.Neighborhood) (*Type, error) {
		return r.Rotate(nb, n)
	}}
}

func reflect(name string, a, b geometry.Direction) classDef {
	return classDef{name, func(r *Registry, nb *geometry.Neighborhood) (*Type, error) {
		return r.Reflect(nb, a, b)
	}}
}

func rotateReflect(name string, n int, a, b geometry.Direction) classDef {
	return classDef{name, func(r *Registry, nb *geometry.Neighborhood) (*Type, error) {
		rot, err := r.Rotate(nb, n)
		if err != nil {
			return nil, err
		}
		ref, err := r.Reflect(nb, a, b)
		if err != nil {
			return nil, err
		}
		return r.Compose(rot, ref)
	}}
}

func permute() classDef {
	return classDef{"permute", func(r *Registry, nb *geometry.Neighborhood) (*Type, error) {
		return r.Permute(nb)
	}}
}

// classes lists the simulator's symmetry classes per topology, weakest first.
var classes = map[string][]classDef{
	geometry.Moore: {
		none(),
		reflect("reflect_horizontal", geometry.N, geometry.S),
		rotate("rotate4", 4),
		rotate("rotate8", 8),
		rotateReflect("rotate4reflect", 4, geometry.N, geometry.S),
		rotateReflect("rotate8reflect", 8, geometry.N, geometry.S),
		permute(),
	},
	geometry.VonNeumann: {
		none(),
		reflect("reflect_horizontal", geometry.N, geometry.S),
		rotate("rotate4", 4),
		rotateReflect("rotate4reflect", 4, geometry.N, geometry.S),
		permute(),
	},
	geometry.Hexagonal: {
		none(),
		rotate("rotate2", 2),
		rotate("rotate3", 3),
		rotate("rotate6", 6),
		rotateReflect("rotate6reflect", 6, geometry.SE, geometry.NW),
		permute(),
	},
	geometry.OneDimensional: {
		none(),
		reflect("reflect", geometry.N, geometry.S),
		permute(),
	},
}

func lookupClass(nb *geometry.Neighborhood, name string) (classDef, bool) {
	for _, def := range classes[nb.Name()] {
		if def.name == name {
			return def, true
		}
	}
	return classDef{}, false
}
