package adjacency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plumbgrid/adjacency"
	"github.com/katalvlaran/plumbgrid/coord"
)

// TestDirection_TableRoundTrip checks that every direction encodes and
// decodes through the one table, and that opposites cancel out.
func TestDirection_TableRoundTrip(t *testing.T) {
	for _, d := range adjacency.Directions() {
		got, ok := adjacency.DirectionOf(d.Offset())
		require.True(t, ok, "DirectionOf(%v)", d.Offset())
		assert.Equal(t, d, got)
		assert.Equal(t, d.Offset().Neg(), d.Opposite().Offset(), "opposite of %s", d)
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestDirectionOf_RejectsNonUnit(t *testing.T) {
	for _, o := range []coord.Offset{{}, {X: 1, Y: 1}, {X: 2}, {Z: -2}} {
		_, ok := adjacency.DirectionOf(o)
		assert.False(t, ok, "offset %v", o)
	}
}

func TestBitset(t *testing.T) {
	var b adjacency.Bitset
	assert.True(t, b.IsZero())
	assert.Equal(t, "none", b.String())

	b = b.With(adjacency.Up).With(adjacency.North)
	assert.True(t, b.Has(adjacency.North))
	assert.True(t, b.Has(adjacency.Up))
	assert.False(t, b.Has(adjacency.South))
	// table order, not insertion order
	assert.Equal(t, []adjacency.Direction{adjacency.North, adjacency.Up}, b.Directions())
	assert.Equal(t, []coord.Offset{{Y: -1}, {Z: 1}}, b.Offsets())
	assert.Equal(t, "north|up", b.String())

	b = b.Without(adjacency.North).Without(adjacency.Up)
	assert.True(t, b.IsZero())
}

func TestStore_ViewOfAbsentRegion(t *testing.T) {
	s := adjacency.NewStore()
	v := s.View(coord.Region{X: 4, Y: 2})
	assert.Equal(t, 0, v.Len())
	assert.True(t, v.At(coord.Cell{X: 1}).IsZero())
	assert.Equal(t, 0, s.Regions(), "read-only access must not create a region")
}

func TestStore_ConnectionsAndPrune(t *testing.T) {
	s := adjacency.NewStore()
	r := coord.Region{}
	a := coord.Cell{X: 1, Y: 1}
	b := coord.Cell{X: 2, Y: 1}

	m := s.Connections(r)
	m[a] = adjacency.Bitset(0).With(adjacency.East)
	m[b] = 0
	assert.Equal(t, 1, s.Regions())
	assert.Equal(t, 2, s.View(r).Len())
	assert.Equal(t, []coord.Cell{a, b}, s.View(r).Cells())

	assert.Equal(t, 1, s.Prune(r))
	assert.Equal(t, 1, s.View(r).Len())
	assert.True(t, s.At(r, a).Has(adjacency.East))

	s.Set(r, a, 0)
	assert.Equal(t, 0, s.View(r).Len())
	assert.Equal(t, 0, s.Prune(r))
	assert.Equal(t, 0, s.Regions(), "empty region is dropped by Prune")
}

func TestStore_Clear(t *testing.T) {
	s := adjacency.NewStore()
	s.Set(coord.Region{}, coord.Cell{}, adjacency.Bitset(0).With(adjacency.Down))
	s.Set(coord.Region{X: 1}, coord.Cell{}, adjacency.Bitset(0).With(adjacency.Up))
	require.Equal(t, 2, s.Regions())

	s.Clear()
	assert.Equal(t, 0, s.Regions())
	assert.True(t, s.At(coord.Region{}, coord.Cell{}).IsZero())
}
