package expand

import (
	"github.com/aretw0/nutshell/pkg/expr"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

// Reduce rewrites rows declared under g's symmetry for a table emitted under
// target, which must be contained in it. Each napkin is expanded into its
// orbit and one napkin is kept per orbit of target, in orbit order.
func (g *TransitionGroup) Reduce(rows [][]expr.Value, target *symmetry.Type, cache *symmetry.OrbitCache) [][]expr.Value {
	if g.Symmetry == target || g.Symmetry.Equivalent(target) {
		return rows
	}
	n := g.nb.Len()
	seen := make(map[string]bool)
	var out [][]expr.Value
	for _, row := range rows {
		initial, result := row[0], row[n+1]
		for _, napkin := range symmetry.Expand(g.Symmetry, cache, row[1:n+1], expr.Value.Key) {
			k := initial.Key() + "|" + symmetry.CanonicalKey(target, cache, napkin, expr.Value.Key) + "|" + result.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			full := make([]expr.Value, 0, n+2)
			full = append(full, initial)
			full = append(full, napkin...)
			out = append(out, append(full, result))
		}
	}
	return out
}
