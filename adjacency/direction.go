package adjacency

import "github.com/katalvlaran/plumbgrid/coord"

// Direction indexes an edge slot in a Bitset.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	Up
	Down

	// NumDirections is the width of a Bitset.
	NumDirections = 6
)

// directionTable is the single canonical Direction → Offset mapping shared
// by encode (DirectionOf) and decode (Offset) paths.
var directionTable = [NumDirections]coord.Offset{
	North: {X: 0, Y: -1, Z: 0},
	East:  {X: 1, Y: 0, Z: 0},
	South: {X: 0, Y: 1, Z: 0},
	West:  {X: -1, Y: 0, Z: 0},
	Up:    {X: 0, Y: 0, Z: 1},
	Down:  {X: 0, Y: 0, Z: -1},
}

var directionNames = [NumDirections]string{"north", "east", "south", "west", "up", "down"}

// Directions returns all directions in table order.
func Directions() []Direction {
	return []Direction{North, East, South, West, Up, Down}
}

// Offset returns the unit displacement of d.
func (d Direction) Offset() coord.Offset {
	return directionTable[d]
}

// Opposite returns the reciprocal direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	default:
		return Up
	}
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool { return d < NumDirections }

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// DirectionOf maps a unit offset back to its Direction. ok is false for any
// offset that is not orthogonally adjacent.
func DirectionOf(o coord.Offset) (d Direction, ok bool) {
	for i, off := range directionTable {
		if off == o {
			return Direction(i), true
		}
	}
	return 0, false
}
