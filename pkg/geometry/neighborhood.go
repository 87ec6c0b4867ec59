package geometry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/nutshell/pkg/domain"
)

// Topology names understood by the target simulator.
const (
	Moore          = "Moore"
	VonNeumann     = "vonNeumann"
	Hexagonal      = "hexagonal"
	OneDimensional = "oneDimensional"
)

// canonical orders, clockwise as the simulator expects them.
var topologies = []struct {
	name    string
	aliases []string
	dirs    []Direction
}{
	{Moore, []string{"moore"}, []Direction{N, NE, E, SE, S, SW, W, NW}},
	{VonNeumann, []string{"vonneumann", "von_neumann"}, []Direction{N, E, S, W}},
	{Hexagonal, []string{"hexagonal", "hex"}, []Direction{N, E, SE, S, W, NW}},
	{OneDimensional, []string{"onedimensional", "1d"}, []Direction{W, E}},
}

// shared holds one immutable instance per topology so that types bound to a
// neighborhood can compare it by identity.
var shared = func() map[string]*Neighborhood {
	m := make(map[string]*Neighborhood, len(topologies))
	for _, t := range topologies {
		m[t.name] = build(t.name, t.dirs)
	}
	return m
}()

// Neighborhood is an ordered, duplicate-free set of compass directions.
type Neighborhood struct {
	name  string
	dirs  []Direction
	index map[Direction]int
}

// Named returns the neighborhood of a known topology.
func Named(name string) (*Neighborhood, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range topologies {
		if slices.Contains(t.aliases, key) {
			return shared[t.name], nil
		}
	}
	return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "unknown neighborhood %q", name)
}

// New builds the neighborhood holding exactly dirs. The set must match one of
// the supported topologies; positions are kept in that topology's order.
func New(dirs ...Direction) (*Neighborhood, error) {
	switch len(dirs) {
	case 2, 4, 6, 8:
	default:
		return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "neighborhood must have 2, 4, 6 or 8 directions, got %d", len(dirs))
	}
	seen := make(map[Direction]bool, len(dirs))
	for _, d := range dirs {
		if !d.Valid() || d == C {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, domain.Span{}, "invalid neighborhood direction %q", d)
		}
		if seen[d] {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, domain.Span{}, "duplicate neighborhood direction %s", d)
		}
		seen[d] = true
	}
	for _, t := range topologies {
		if len(t.dirs) != len(dirs) {
			continue
		}
		match := true
		for _, d := range t.dirs {
			if !seen[d] {
				match = false
				break
			}
		}
		if match {
			return shared[t.name], nil
		}
	}
	return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "directions %v do not form a supported neighborhood", dirs)
}

// Parse accepts either a topology name or a comma-separated direction list.
func Parse(value string) (*Neighborhood, error) {
	if !strings.Contains(value, ",") {
		if nb, err := Named(value); err == nil {
			return nb, nil
		}
	}
	var dirs []Direction
	for _, part := range strings.Split(value, ",") {
		d, err := ParseDirection(part)
		if err != nil {
			return nil, domain.Wrap(domain.KindSyntaxInconsistency, domain.Span{}, err)
		}
		dirs = append(dirs, d)
	}
	return New(dirs...)
}

func build(name string, dirs []Direction) *Neighborhood {
	nb := &Neighborhood{
		name:  name,
		dirs:  slices.Clone(dirs),
		index: make(map[Direction]int, len(dirs)),
	}
	for i, d := range dirs {
		nb.index[d] = i
	}
	return nb
}

// Name returns the topology name as the simulator spells it.
func (nb *Neighborhood) Name() string { return nb.name }

// Len returns the napkin size.
func (nb *Neighborhood) Len() int { return len(nb.dirs) }

// Directions returns the positions in order.
func (nb *Neighborhood) Directions() []Direction { return slices.Clone(nb.dirs) }

// Index returns the 0-based napkin position of d.
func (nb *Neighborhood) Index(d Direction) (int, bool) {
	i, ok := nb.index[d]
	return i, ok
}

// Contains reports whether d is a napkin position.
func (nb *Neighborhood) Contains(d Direction) bool {
	_, ok := nb.index[d]
	return ok
}

// DirAt resolves a 1-based sequential position to its compass label.
// Negative positions count from the end: -1 is the last direction.
func (nb *Neighborhood) DirAt(pos int) (Direction, error) {
	n := len(nb.dirs)
	switch {
	case pos > 0 && pos <= n:
		return nb.dirs[pos-1], nil
	case pos < 0 && -pos <= n:
		return nb.dirs[n+pos], nil
	}
	return "", domain.Errorf(domain.KindUndefinedReference, domain.Span{}, "position %d is outside the %s neighborhood", pos, nb.name)
}

// Ordinal is the inverse of DirAt: the 1-based position of d.
func (nb *Neighborhood) Ordinal(d Direction) (int, bool) {
	i, ok := nb.index[d]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// RotateBy shifts every value clockwise by offset positions.
func (nb *Neighborhood) RotateBy(offset int) Perm {
	n := len(nb.dirs)
	p := make(Perm, n)
	for i := range p {
		p[i] = mod(i-offset, n)
	}
	return p
}

// RotationsBy returns the n-fold rotation group, identity first.
func (nb *Neighborhood) RotationsBy(n int) ([]Perm, error) {
	if n <= 0 || len(nb.dirs)%n != 0 {
		return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "%s neighborhood of size %d cannot be rotated %d ways", nb.name, len(nb.dirs), n)
	}
	step := len(nb.dirs) / n
	out := make([]Perm, n)
	for k := range out {
		out[k] = nb.RotateBy(k * step)
	}
	return out, nil
}

// ReflectAcross returns the relabeling induced by reflecting across the line
// through a and b. b may equal a or its opposite (the line through a and the
// center) or be adjacent to a (the line between them). The reflection fails if
// the neighborhood is not symmetric across that line.
func (nb *Neighborhood) ReflectAcross(a, b Direction) (Perm, error) {
	ea, eb := a.eighth(), b.eighth()
	if ea < 0 || eb < 0 {
		return nil, domain.Errorf(domain.KindSyntaxInconsistency, domain.Span{}, "reflection axis %s-%s must use compass directions", a, b)
	}
	var axis int // twice the axis angle, in eighths
	switch mod(eb-ea, 8) {
	case 0, 4:
		axis = 2 * ea
	case 1, 7:
		axis = ea + eb
	default:
		return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "%s and %s are neither adjacent nor opposite", a, b)
	}
	p := make(Perm, len(nb.dirs))
	for i, d := range nb.dirs {
		r := compass[mod(axis-d.eighth(), 8)]
		j, ok := nb.index[r]
		if !ok {
			return nil, domain.Errorf(domain.KindGeometry, domain.Span{}, "%s neighborhood is not symmetric across %s-%s", nb.name, a, b)
		}
		p[i] = j
	}
	return p, nil
}

// Permutations returns every relabeling that permutes the positions in subset
// and fixes the others. An empty subset means every position.
func (nb *Neighborhood) Permutations(subset []Direction) ([]Perm, error) {
	positions, err := nb.Positions(subset)
	if err != nil {
		return nil, err
	}
	return permuteAll(Identity(len(nb.dirs)), positions), nil
}

// Positions maps directions to sorted 0-based positions; empty means all.
func (nb *Neighborhood) Positions(subset []Direction) ([]int, error) {
	if len(subset) == 0 {
		return Identity(len(nb.dirs)), nil
	}
	out := make([]int, 0, len(subset))
	for _, d := range subset {
		i, ok := nb.index[d]
		if !ok {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, domain.Span{}, "%s is not part of the %s neighborhood", d, nb.name)
		}
		if slices.Contains(out, i) {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, domain.Span{}, "duplicate direction %s", d)
		}
		out = append(out, i)
	}
	slices.Sort(out)
	return out, nil
}

func (nb *Neighborhood) String() string {
	return fmt.Sprintf("%s%v", nb.name, nb.dirs)
}
