package symmetry

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/nutshell/pkg/geometry"
)

// Expand returns the orbit of napkin under t: every distinct napkin obtained by
// applying one of t's transformations. napkin itself comes first. Values are
// considered equal when key maps them to the same string.
func Expand[T any](t *Type, cache *OrbitCache, napkin []T, key func(T) string) [][]T {
	ids, reps := intern(napkin, key)
	orbit := t.orbit(cache, ids)
	out := make([][]T, len(orbit))
	for i, row := range orbit {
		vals := make([]T, len(row))
		for j, id := range row {
			vals[j] = reps[id]
		}
		out[i] = vals
	}
	return out
}

// CanonicalKey returns a string shared by every napkin of the same orbit.
func CanonicalKey[T any](t *Type, cache *OrbitCache, napkin []T, key func(T) string) string {
	best := ""
	for i, row := range Expand(t, cache, napkin, key) {
		k := joinKeys(row, key)
		if i == 0 || k < best {
			best = k
		}
	}
	return best
}

func joinKeys[T any](row []T, key func(T) string) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = key(v)
	}
	return strings.Join(parts, "\x1f")
}

// intern numbers the distinct values of napkin by sorted key.
func intern[T any](napkin []T, key func(T) string) ([]int, []T) {
	keys := make([]string, len(napkin))
	for i, v := range napkin {
		keys[i] = key(v)
	}
	distinct := slices.Clone(keys)
	sort.Strings(distinct)
	distinct = slices.Compact(distinct)

	ids := make([]int, len(napkin))
	reps := make([]T, len(distinct))
	for i, k := range keys {
		id, _ := slices.BinarySearch(distinct, k)
		ids[i] = id
		reps[id] = napkin[i]
	}
	return ids, reps
}

func (t *Type) orbit(cache *OrbitCache, ids []int) [][]int {
	if t.groups != nil {
		return t.permuteOrbit(cache, ids)
	}
	key := t.key + "|" + idKey(ids)
	if orbit, ok := cache.get(key); ok {
		return orbit
	}
	var orbit [][]int
	seen := make(map[string]bool)
	for _, p := range t.Perms() {
		row := geometry.Apply(p, ids)
		if k := idKey(row); !seen[k] {
			seen[k] = true
			orbit = append(orbit, row)
		}
	}
	cache.add(key, orbit)
	return orbit
}

// permuteOrbit enumerates distinct arrangements group by group instead of
// applying every permutation. The cache key only depends on the stationary
// values and the multiset held by each group.
func (t *Type) permuteOrbit(cache *OrbitCache, ids []int) [][]int {
	contents := make([][]int, len(t.groups))
	var sb strings.Builder
	sb.WriteString(t.key)
	sb.WriteString("|p|")
	inGroup := make([]bool, len(ids))
	for gi, g := range t.groups {
		vals := make([]int, len(g))
		for i, pos := range g {
			vals[i] = ids[pos]
			inGroup[pos] = true
		}
		sort.Ints(vals)
		contents[gi] = vals
		sb.WriteString(idKey(vals))
		sb.WriteByte('/')
	}
	for pos, id := range ids {
		if !inGroup[pos] {
			sb.WriteString(strconv.Itoa(pos) + "=" + strconv.Itoa(id) + ";")
		}
	}
	key := sb.String()

	orbit, ok := cache.get(key)
	if !ok {
		orbit = [][]int{slices.Clone(ids)}
		for gi, g := range t.groups {
			arrangements := multisetPermutations(contents[gi])
			var next [][]int
			for _, row := range orbit {
				for _, arr := range arrangements {
					cp := slices.Clone(row)
					for i, pos := range g {
						cp[pos] = arr[i]
					}
					next = append(next, cp)
				}
			}
			orbit = next
		}
		cache.add(key, orbit)
	}
	return frontFirst(orbit, ids)
}

// frontFirst returns orbit with the row equal to ids moved to the front.
func frontFirst(orbit [][]int, ids []int) [][]int {
	for i, row := range orbit {
		if slices.Equal(row, ids) {
			if i == 0 {
				return orbit
			}
			out := make([][]int, 0, len(orbit))
			out = append(out, row)
			out = append(out, orbit[:i]...)
			return append(out, orbit[i+1:]...)
		}
	}
	return orbit
}

// multisetPermutations lists the distinct orderings of sorted, in lexicographic
// order.
func multisetPermutations(sorted []int) [][]int {
	cur := slices.Clone(sorted)
	out := [][]int{slices.Clone(cur)}
	for {
		i := len(cur) - 2
		for i >= 0 && cur[i] >= cur[i+1] {
			i--
		}
		if i < 0 {
			return out
		}
		j := len(cur) - 1
		for cur[j] <= cur[i] {
			j--
		}
		cur[i], cur[j] = cur[j], cur[i]
		slices.Reverse(cur[i+1:])
		out = append(out, slices.Clone(cur))
	}
}

func idKey(ids []int) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}
