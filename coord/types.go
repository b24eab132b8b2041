package coord

import "fmt"

// Region addresses a top-level spatial partition. Regions are two
// dimensional: every Z level of a column belongs to the same region.
type Region struct {
	X, Y int
}

func (r Region) String() string { return fmt.Sprintf("region(%d,%d)", r.X, r.Y) }

// Cell addresses one node of the connectivity graph in absolute coordinates.
type Cell struct {
	X, Y, Z int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z) }

// Add returns c displaced by o.
func (c Cell) Add(o Offset) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns the offset that leads from other to c.
func (c Cell) Sub(other Cell) Offset {
	return Offset{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Less orders cells by Z, then Y, then X. Used for deterministic output.
func (c Cell) Less(o Cell) bool {
	if c.Z != o.Z {
		return c.Z < o.Z
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Offset is a relative displacement between cells.
type Offset struct {
	X, Y, Z int
}

func (o Offset) String() string { return fmt.Sprintf("(%+d,%+d,%+d)", o.X, o.Y, o.Z) }

// Neg returns the reciprocal offset.
func (o Offset) Neg() Offset { return Offset{X: -o.X, Y: -o.Y, Z: -o.Z} }

// Manhattan returns |x|+|y|+|z|.
func (o Offset) Manhattan() int { return abs(o.X) + abs(o.Y) + abs(o.Z) }

// SubUnit addresses a storage sub-unit in absolute coordinates.
type SubUnit struct {
	X, Y, Z int
}

func (s SubUnit) String() string { return fmt.Sprintf("sub(%d,%d,%d)", s.X, s.Y, s.Z) }

// Less orders sub-units by Z, then Y, then X.
func (s SubUnit) Less(o SubUnit) bool {
	return Cell(s).Less(Cell(o))
}

// Location addresses a single tile in absolute coordinates.
type Location struct {
	X, Y, Z int
}

func (l Location) String() string { return fmt.Sprintf("tile(%d,%d,%d)", l.X, l.Y, l.Z) }

// Point is a tile position inside one SubUnit, 0 <= X,Y < TilesPerSubUnit.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("[%d,%d]", p.X, p.Y) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
