package expr

import "math/rand/v2"

const nameLetters = "abcdefghijklmnopqrstuvwxyz"

// Namer generates anonymous variable names from a seeded source, so the same
// seed yields the same names in the same order.
type Namer struct {
	rng  *rand.Rand
	used map[string]bool
}

// NewNamer creates a namer seeded with seed.
func NewNamer(seed uint64) *Namer {
	return &Namer{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		used: make(map[string]bool),
	}
}

// Reserve marks name as taken.
func (n *Namer) Reserve(name string) {
	n.used[name] = true
}

// Taken reports whether name was reserved or generated.
func (n *Namer) Taken(name string) bool { return n.used[name] }

// Next returns a fresh name: an underscore followed by six letters.
func (n *Namer) Next() string {
	for {
		b := []byte{'_', 0, 0, 0, 0, 0, 0}
		for i := 1; i < len(b); i++ {
			b[i] = nameLetters[n.rng.IntN(len(nameLetters))]
		}
		if name := string(b); !n.used[name] {
			n.used[name] = true
			return name
		}
	}
}
