package geometry

import (
	"fmt"
	"strings"
)

// Direction is a compass label. C denotes the center cell.
type Direction string

const (
	N  Direction = "N"
	NE Direction = "NE"
	E  Direction = "E"
	SE Direction = "SE"
	S  Direction = "S"
	SW Direction = "SW"
	W  Direction = "W"
	NW Direction = "NW"
	C  Direction = "C"
)

// compass lists the eight directions clockwise from north.
var compass = [8]Direction{N, NE, E, SE, S, SW, W, NW}

var offsets = map[Direction][2]int{
	N:  {0, 1},
	NE: {1, 1},
	E:  {1, 0},
	SE: {1, -1},
	S:  {0, -1},
	SW: {-1, -1},
	W:  {-1, 0},
	NW: {-1, 1},
	C:  {0, 0},
}

// ParseDirection reads a compass label, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := offsets[d]; !ok {
		return "", fmt.Errorf("unknown compass direction %q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the eight compass directions or C.
func (d Direction) Valid() bool {
	_, ok := offsets[d]
	return ok
}

// eighth is the clockwise angle from north in eighths of a turn, or -1 for C.
func (d Direction) eighth() int {
	for i, c := range compass {
		if c == d {
			return i
		}
	}
	return -1
}

// Offset returns the (dx, dy) displacement of d from the center.
func (d Direction) Offset() (dx, dy int) {
	o := offsets[d]
	return o[0], o[1]
}

// FromOffset returns the direction at displacement (dx, dy), if any.
func FromOffset(dx, dy int) (Direction, bool) {
	for d, o := range offsets {
		if o[0] == dx && o[1] == dy {
			return d, true
		}
	}
	return "", false
}

// Translate returns the direction, seen from the origin, of the cell found at
// step d away from the cell at target. ok is false when that cell lies outside
// the origin's 3x3 block.
func Translate(target, d Direction) (Direction, bool) {
	tx, ty := target.Offset()
	dx, dy := d.Offset()
	return FromOffset(tx+dx, ty+dy)
}

// Reproject expresses the origin-relative direction ref relative to the cell at
// target. ok is false when ref is not adjacent to target.
func Reproject(target, ref Direction) (Direction, bool) {
	tx, ty := target.Offset()
	rx, ry := ref.Offset()
	return FromOffset(rx-tx, ry-ty)
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
