package coord

import (
	"errors"
	"fmt"
)

// ErrInvalidScale is returned by Scale.Validate for non-positive factors.
var ErrInvalidScale = errors.New("coord: scale factors must be positive")

// Projector converts between the coordinate levels. The storage cache and
// the network service consume it; Scale is the stock implementation.
type Projector interface {
	// RegionOf returns the region containing c and c's position local to it.
	RegionOf(c Cell) (Region, Cell)
	// SubUnitsOf lists every sub-unit beneath c in a fixed order.
	SubUnitsOf(c Cell) []SubUnit
	// CellOfSubUnit returns the cell that owns s.
	CellOfSubUnit(s SubUnit) Cell
	// SubUnitOf splits an absolute tile into its sub-unit and local point.
	SubUnitOf(l Location) (SubUnit, Point)
	// LocationOf joins a sub-unit and local point into an absolute tile.
	LocationOf(s SubUnit, p Point) Location
	// TilesPerSubUnit is the edge length of a sub-unit in tiles.
	TilesPerSubUnit() int
}

// Default scale factors.
const (
	DefaultCellsPerRegion  = 180
	DefaultSubUnitsPerCell = 2
	DefaultTilesPerSubUnit = 12
)

// Scale is a Projector built from integer scale factors.
type Scale struct {
	// CellsPerRegion is the edge length of a region, in cells.
	CellsPerRegion int `yaml:"cells_per_region"`
	// SubUnitsPerCell is the edge length of a cell, in sub-units.
	SubUnitsPerCell int `yaml:"sub_units_per_cell"`
	// Tiles is the edge length of a sub-unit, in tiles.
	Tiles int `yaml:"tiles_per_sub_unit"`
}

// DefaultScale returns 180 cells per region, 2×2 sub-units per cell and
// 12×12 tiles per sub-unit.
func DefaultScale() Scale {
	return Scale{
		CellsPerRegion:  DefaultCellsPerRegion,
		SubUnitsPerCell: DefaultSubUnitsPerCell,
		Tiles:           DefaultTilesPerSubUnit,
	}
}

// Validate reports ErrInvalidScale if any factor is not positive.
func (s Scale) Validate() error {
	if s.CellsPerRegion <= 0 || s.SubUnitsPerCell <= 0 || s.Tiles <= 0 {
		return fmt.Errorf("%w: got %d/%d/%d", ErrInvalidScale, s.CellsPerRegion, s.SubUnitsPerCell, s.Tiles)
	}
	return nil
}

// RegionOf implements Projector.
func (s Scale) RegionOf(c Cell) (Region, Cell) {
	r := Region{X: floorDiv(c.X, s.CellsPerRegion), Y: floorDiv(c.Y, s.CellsPerRegion)}
	local := Cell{X: c.X - r.X*s.CellsPerRegion, Y: c.Y - r.Y*s.CellsPerRegion, Z: c.Z}
	return r, local
}

// CellOf is the inverse of RegionOf.
func (s Scale) CellOf(r Region, local Cell) Cell {
	return Cell{X: r.X*s.CellsPerRegion + local.X, Y: r.Y*s.CellsPerRegion + local.Y, Z: local.Z}
}

// SubUnitsOf implements Projector. Sub-units are listed row by row starting
// at the cell's base sub-unit: for the default 2×2 that is base, east,
// south, south-east.
func (s Scale) SubUnitsOf(c Cell) []SubUnit {
	n := s.SubUnitsPerCell
	out := make([]SubUnit, 0, n*n)
	for dy := 0; dy < n; dy++ {
		for dx := 0; dx < n; dx++ {
			out = append(out, SubUnit{X: c.X*n + dx, Y: c.Y*n + dy, Z: c.Z})
		}
	}
	return out
}

// CellOfSubUnit implements Projector.
func (s Scale) CellOfSubUnit(su SubUnit) Cell {
	return Cell{X: floorDiv(su.X, s.SubUnitsPerCell), Y: floorDiv(su.Y, s.SubUnitsPerCell), Z: su.Z}
}

// SubUnitOf implements Projector.
func (s Scale) SubUnitOf(l Location) (SubUnit, Point) {
	su := SubUnit{X: floorDiv(l.X, s.Tiles), Y: floorDiv(l.Y, s.Tiles), Z: l.Z}
	return su, Point{X: l.X - su.X*s.Tiles, Y: l.Y - su.Y*s.Tiles}
}

// LocationOf implements Projector.
func (s Scale) LocationOf(su SubUnit, p Point) Location {
	return Location{X: su.X*s.Tiles + p.X, Y: su.Y*s.Tiles + p.Y, Z: su.Z}
}

// TilesPerSubUnit implements Projector.
func (s Scale) TilesPerSubUnit() int { return s.Tiles }

// CellOfLocation projects a tile straight to its owning cell.
func CellOfLocation(p Projector, l Location) Cell {
	su, _ := p.SubUnitOf(l)
	return p.CellOfSubUnit(su)
}

// BaseLocation returns the first tile of the cell's base sub-unit.
func BaseLocation(p Projector, c Cell) Location {
	return p.LocationOf(p.SubUnitsOf(c)[0], Point{})
}
