package coord_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plumbgrid/coord"
)

func TestScale_Validate(t *testing.T) {
	require.NoError(t, coord.DefaultScale().Validate())

	bad := coord.Scale{CellsPerRegion: 180, SubUnitsPerCell: 0, Tiles: 12}
	err := bad.Validate()
	if !errors.Is(err, coord.ErrInvalidScale) {
		t.Errorf("zero sub-units: want ErrInvalidScale, got %v", err)
	}
}

func TestScale_RegionOf(t *testing.T) {
	s := coord.DefaultScale()
	cases := []struct {
		name   string
		cell   coord.Cell
		region coord.Region
		local  coord.Cell
	}{
		{"origin", coord.Cell{}, coord.Region{}, coord.Cell{}},
		{"last in region", coord.Cell{X: 179, Y: 179, Z: 2}, coord.Region{}, coord.Cell{X: 179, Y: 179, Z: 2}},
		{"next region east", coord.Cell{X: 180, Y: 5}, coord.Region{X: 1}, coord.Cell{X: 0, Y: 5}},
		{"negative", coord.Cell{X: -1, Y: -181, Z: -1}, coord.Region{X: -1, Y: -2}, coord.Cell{X: 179, Y: 179, Z: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, local := s.RegionOf(tc.cell)
			assert.Equal(t, tc.region, r)
			assert.Equal(t, tc.local, local)
			assert.Equal(t, tc.cell, s.CellOf(r, local), "CellOf must invert RegionOf")
		})
	}
}

func TestScale_SubUnitsOf(t *testing.T) {
	s := coord.DefaultScale()
	got := s.SubUnitsOf(coord.Cell{X: 3, Y: -1, Z: 1})
	want := []coord.SubUnit{
		{X: 6, Y: -2, Z: 1}, // base
		{X: 7, Y: -2, Z: 1}, // east
		{X: 6, Y: -1, Z: 1}, // south
		{X: 7, Y: -1, Z: 1}, // south-east
	}
	assert.Equal(t, want, got)
	for _, su := range got {
		assert.Equal(t, coord.Cell{X: 3, Y: -1, Z: 1}, s.CellOfSubUnit(su))
	}
}

func TestScale_LocationRoundTrip(t *testing.T) {
	s := coord.DefaultScale()
	l := coord.Location{X: -13, Y: 25, Z: 0}
	su, p := s.SubUnitOf(l)
	assert.Equal(t, coord.SubUnit{X: -2, Y: 2}, su)
	assert.Equal(t, coord.Point{X: 11, Y: 1}, p)
	assert.Equal(t, l, s.LocationOf(su, p))

	assert.Equal(t, coord.Cell{X: -1, Y: 1}, coord.CellOfLocation(s, l))
	assert.Equal(t, coord.Location{X: 24, Y: 48, Z: 3}, coord.BaseLocation(s, coord.Cell{X: 1, Y: 2, Z: 3}))
}

func TestOffset_Manhattan(t *testing.T) {
	a := coord.Cell{X: 1, Y: 1, Z: 0}
	b := coord.Cell{X: 1, Y: 2, Z: 0}
	assert.Equal(t, 1, b.Sub(a).Manhattan())
	assert.Equal(t, coord.Offset{Y: -1}, b.Sub(a).Neg())
	assert.Equal(t, b, a.Add(b.Sub(a)))
	assert.Equal(t, 3, coord.Offset{X: -1, Y: 1, Z: 1}.Manhattan())
}
