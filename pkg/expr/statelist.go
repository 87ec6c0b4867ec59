package expr

import (
	"slices"
	"strconv"
	"strings"
)

// StateList is an ordered sequence of cell states. Repeats are allowed.
type StateList []int

// Repeat concatenates n copies of l. n must be positive.
func (l StateList) Repeat(n int) (StateList, bool) {
	if n < 1 {
		return nil, false
	}
	out := make(StateList, 0, len(l)*n)
	for range n {
		out = append(out, l...)
	}
	return out, true
}

// RepeatTo repeats l cyclically until it has exactly n elements.
func (l StateList) RepeatTo(n int) StateList {
	if len(l) == 0 {
		return nil
	}
	out := make(StateList, n)
	for i := range out {
		out[i] = l[i%len(l)]
	}
	return out
}

// Subtract removes every occurrence of the states in other.
func (l StateList) Subtract(other StateList) StateList {
	out := make(StateList, 0, len(l))
	for _, s := range l {
		if !slices.Contains(other, s) {
			out = append(out, s)
		}
	}
	return out
}

// Complement returns the states of universe that are not in l.
func (l StateList) Complement(universe StateList) StateList {
	return universe.Subtract(l)
}

// Rotate shifts l right by k positions, wrapping. Negative k shifts left.
func (l StateList) Rotate(k int) StateList {
	n := len(l)
	if n == 0 {
		return nil
	}
	out := make(StateList, n)
	for i, s := range l {
		out[((i+k)%n+n)%n] = s
	}
	return out
}

// Unique reports whether l holds a single distinct state.
func (l StateList) Unique() (int, bool) {
	if len(l) == 0 {
		return 0, false
	}
	for _, s := range l[1:] {
		if s != l[0] {
			return 0, false
		}
	}
	return l[0], true
}

// Key is a canonical string form.
func (l StateList) Key() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

// String renders the list as the simulator's literal set `{a,b,c}`.
func (l StateList) String() string {
	return "{" + l.Key() + "}"
}
