package storage_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/storage"
	"github.com/katalvlaran/plumbgrid/world"
)

func TestDrain_MergesIntoTarget(t *testing.T) {
	f := newFixture(t)
	a, b := coord.Cell{}, coord.Cell{X: 1}
	f.topo.link(t, a, b)
	f.tank(a, coord.Point{X: 1}, water("w1", 3000))
	f.tank(b, coord.Point{X: 2}, world.Item{ID: "j1", Kind: "juice", Phase: world.Liquid, Volume: 500})
	f.loadCell(b)
	require.Equal(t, world.Volume(3500), f.tr.StatsAt(a).Stored)

	target := f.scale.LocationOf(f.scale.SubUnitsOf(b)[3], coord.Point{X: 6, Y: 6})
	res := f.tr.Drain(target)

	assert.Equal(t, storage.DrainResult{Kind: "water_clean", Volume: 3500, Tanks: 2, Placed: true}, res)

	su, p := f.scale.SubUnitOf(target)
	ch, err := f.world.Chunk(su)
	require.NoError(t, err)
	items := ch.Items(p)
	require.Len(t, items, 1)
	assert.Equal(t, "water_clean", items[0].Kind)
	assert.Equal(t, world.Volume(3500), items[0].Volume)
	assert.True(t, items[0].IsLiquid())

	assert.True(t, f.tr.Group(f.tr.GroupFor(a)).Dirty())
	assert.Equal(t, storage.Stats{Capacity: 2 * tankCap, Stored: 0}, f.tr.StatsAt(b))
}

func TestDrain_ClearsEverythingOnTankTiles(t *testing.T) {
	f := newFixture(t)
	c := coord.Cell{}
	loc := f.tank(c, coord.Point{},
		water("w1", 40),
		world.Item{ID: "r1", Kind: "rock", Phase: world.Solid, Volume: 200},
	)
	target := f.scale.LocationOf(f.scale.SubUnitsOf(c)[0], coord.Point{X: 11, Y: 11})

	res := f.tr.Drain(target)
	assert.True(t, res.Placed)
	assert.Equal(t, world.Volume(40), res.Volume)

	su, p := f.scale.SubUnitOf(loc)
	ch, _ := f.world.Chunk(su)
	assert.Empty(t, ch.Items(p))
}

func TestDrain_ReplacesTargetContents(t *testing.T) {
	f := newFixture(t)
	c := coord.Cell{}
	f.tank(c, coord.Point{}, water("w1", 40))
	su := f.scale.SubUnitsOf(c)[0]
	target := f.scale.LocationOf(su, coord.Point{X: 5})
	f.world.Load(su).AddItem(coord.Point{X: 5}, world.Item{ID: "junk", Kind: "rag", Phase: world.Solid, Volume: 1})

	f.tr.Drain(target)
	ch, _ := f.world.Chunk(su)
	require.Len(t, ch.Items(coord.Point{X: 5}), 1)
	assert.Equal(t, "water_clean", ch.Items(coord.Point{X: 5})[0].Kind)
}

func TestDrain_NothingToCollect(t *testing.T) {
	f := newFixture(t)
	c := coord.Cell{}
	f.tank(c, coord.Point{})
	target := coord.BaseLocation(f.scale, c)
	f.tr.StatsAt(c)

	res := f.tr.Drain(target)
	assert.Equal(t, storage.DrainResult{Tanks: 1}, res)
	assert.True(t, f.tr.Group(f.tr.GroupFor(c)).Dirty())

	su, p := f.scale.SubUnitOf(target)
	ch, _ := f.world.Chunk(su)
	assert.Empty(t, ch.Items(p))
}

func TestDrain_TargetNotResident(t *testing.T) {
	f := newFixture(t)
	a, b := coord.Cell{}, coord.Cell{X: -1}
	f.topo.link(t, a, b)
	loc := f.tank(a, coord.Point{}, water("w1", 60))

	target := coord.BaseLocation(f.scale, b)
	res := f.tr.Drain(target)
	assert.False(t, res.Placed)
	assert.Equal(t, world.Volume(60), res.Volume)

	su, p := f.scale.SubUnitOf(loc)
	ch, _ := f.world.Chunk(su)
	assert.Empty(t, ch.Items(p), "tanks are still emptied")
}

// stuckStore fails every SetItems on one sub-unit.
type stuckStore struct {
	world.Store
	stuck coord.SubUnit
}

func (s stuckStore) Chunk(su coord.SubUnit) (world.Chunk, error) {
	ch, err := s.Store.Chunk(su)
	if err != nil || su != s.stuck {
		return ch, err
	}
	return stuckChunk{ch}, nil
}

type stuckChunk struct{ world.Chunk }

func (stuckChunk) SetItems(coord.Point, []world.Item) error {
	return errors.New("disk full")
}

func TestDrain_UnclearedTankKeepsItsLiquid(t *testing.T) {
	f := newFixture(t)
	a, b := coord.Cell{}, coord.Cell{X: 1}
	f.topo.link(t, a, b)
	locA := f.tank(a, coord.Point{X: 1}, water("w1", 1000))
	locB := f.tank(b, coord.Point{X: 2}, water("w2", 500))
	f.loadCell(b)

	var logs bytes.Buffer
	suA, pA := f.scale.SubUnitOf(locA)
	tr := storage.NewTracker(f.topo, f.scale, stuckStore{Store: f.world, stuck: suA},
		storage.WithItemFactory(&fixedIDs{}),
		storage.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	require.Equal(t, world.Volume(1500), tr.StatsAt(a).Stored)

	target := f.scale.LocationOf(f.scale.SubUnitsOf(b)[3], coord.Point{X: 6, Y: 6})
	res := tr.Drain(target)

	assert.Equal(t, storage.DrainResult{Kind: "water_clean", Volume: 500, Tanks: 1, Placed: true}, res)
	assert.Contains(t, logs.String(), "clearing tank failed")

	liquid := func(loc coord.Location) world.Volume {
		su, p := f.scale.SubUnitOf(loc)
		ch, err := f.world.Chunk(su)
		require.NoError(t, err)
		var v world.Volume
		for _, it := range ch.Items(p) {
			v += it.Volume
		}
		return v
	}
	chA, err := f.world.Chunk(suA)
	require.NoError(t, err)
	require.Len(t, chA.Items(pA), 1)
	assert.Equal(t, world.Volume(1000), liquid(locA))
	assert.Zero(t, liquid(locB))
	assert.Equal(t, world.Volume(500), liquid(target))
	assert.Equal(t, world.Volume(1000), tr.StatsAt(a).Stored, "nothing is counted twice")
}
