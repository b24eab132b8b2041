package adjacency

import (
	"strings"

	"github.com/katalvlaran/plumbgrid/coord"
)

// Bitset records which directions of a cell carry an edge.
// The zero value has no edges and is equivalent to an absent entry.
type Bitset uint8

// Has reports whether the bit for d is set.
func (b Bitset) Has(d Direction) bool { return b&(1<<d) != 0 }

// With returns b with d set.
func (b Bitset) With(d Direction) Bitset { return b | 1<<d }

// Without returns b with d cleared.
func (b Bitset) Without(d Direction) Bitset { return b &^ (1 << d) }

// IsZero reports whether no bit is set.
func (b Bitset) IsZero() bool { return b == 0 }

// Directions lists the set directions in table order.
func (b Bitset) Directions() []Direction {
	out := make([]Direction, 0, NumDirections)
	for d := Direction(0); d < NumDirections; d++ {
		if b.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Offsets lists the displacement of every set direction in table order.
func (b Bitset) Offsets() []coord.Offset {
	out := make([]coord.Offset, 0, NumDirections)
	for d := Direction(0); d < NumDirections; d++ {
		if b.Has(d) {
			out = append(out, d.Offset())
		}
	}
	return out
}

// String renders the set directions, e.g. "north|up", or "none".
func (b Bitset) String() string {
	if b.IsZero() {
		return "none"
	}
	names := make([]string, 0, NumDirections)
	for _, d := range b.Directions() {
		names = append(names, d.String())
	}
	return strings.Join(names, "|")
}
