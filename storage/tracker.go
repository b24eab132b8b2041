package storage

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/plumbgrid/connectivity"
	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

// Tracker maps sub-units to the storage group of their component.
// It is not safe for concurrent use; one owner must serialize every call,
// since a rebuild replaces state that queries read.
type Tracker struct {
	src   connectivity.Source
	proj  coord.Projector
	world world.Store
	opts  Options

	slots []*Group       // arena; nil entries are free
	refs  []int          // sub-units mapped to each slot
	free  *roaring.Bitmap // free slot numbers
	index map[coord.SubUnit]GroupID
}

// NewTracker returns an empty Tracker reading topology from src, projecting
// with proj and reading fixtures from w.
func NewTracker(src connectivity.Source, proj coord.Projector, w world.Store, opts ...Option) *Tracker {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Tracker{
		src:   src,
		proj:  proj,
		world: w,
		opts:  o,
		free:  roaring.New(),
		index: make(map[coord.SubUnit]GroupID),
	}
}

// GroupFor returns the group of c's component, building it on first use.
func (t *Tracker) GroupFor(c coord.Cell) GroupID {
	base := t.proj.SubUnitsOf(c)[0]
	if id, ok := t.index[base]; ok {
		return id
	}
	return t.build(c)
}

// Group returns the group stored under id, or nil if the slot is free.
func (t *Tracker) Group(id GroupID) *Group {
	if int(id) >= len(t.slots) {
		return nil
	}
	return t.slots[id]
}

// Lookup returns the group indexed for the sub-unit containing loc without
// building anything.
func (t *Tracker) Lookup(loc coord.Location) (GroupID, bool) {
	su, _ := t.proj.SubUnitOf(loc)
	id, ok := t.index[su]
	return id, ok
}

// StatsAt is Stats(GroupFor(c)).
func (t *Tracker) StatsAt(c coord.Cell) Stats {
	return t.Stats(t.GroupFor(c))
}

// Stats returns the cached summary of id, recomputing it when dirty.
// A free id yields zero Stats.
func (t *Tracker) Stats(id GroupID) Stats {
	g := t.Group(id)
	if g == nil {
		return Stats{}
	}
	if g.clean {
		return g.stats
	}

	var s Stats
	t.eachTank(g, func(loc TankLocation, ch world.Chunk, capacity world.Volume) {
		s.Capacity += capacity
		for _, it := range ch.Items(loc.Point) {
			if it.IsLiquid() {
				s.Stored += it.Volume
			}
		}
	})
	g.stats = s
	g.clean = true
	return s
}

// Invalidate marks the group owning loc's sub-unit dirty. Topology is left
// alone; use it when fixture contents change.
func (t *Tracker) Invalidate(loc coord.Location) {
	if id, ok := t.Lookup(loc); ok {
		t.slots[id].clean = false
	}
}

// Rebuild re-derives the group of loc's cell from the current topology and
// remaps every sub-unit of the component to it.
func (t *Tracker) Rebuild(loc coord.Location) GroupID {
	return t.build(coord.CellOfLocation(t.proj, loc))
}

// Reset forgets every group.
func (t *Tracker) Reset() {
	t.slots = nil
	t.refs = nil
	t.free.Clear()
	t.index = make(map[coord.SubUnit]GroupID)
}

// Len returns the number of live groups.
func (t *Tracker) Len() int {
	return len(t.slots) - int(t.free.GetCardinality())
}

// build floods c's component, expands it to sub-units, scans them for
// tanks and indexes every sub-unit to the new group.
func (t *Tracker) build(c coord.Cell) GroupID {
	cells := connectivity.Component(t.src, c).Cells.Sorted()
	subUnits := make([]coord.SubUnit, 0, len(cells)*len(t.proj.SubUnitsOf(c)))
	for _, cell := range cells {
		subUnits = append(subUnits, t.proj.SubUnitsOf(cell)...)
	}

	g := &Group{subUnits: subUnits}
	tiles := t.proj.TilesPerSubUnit()
	for _, su := range subUnits {
		ch, ok := t.chunk(su)
		if !ok {
			continue
		}
		for y := 0; y < tiles; y++ {
			for x := 0; x < tiles; x++ {
				p := coord.Point{X: x, Y: y}
				if _, isTank := t.tankCapacity(ch, p); isTank {
					g.tanks = append(g.tanks, TankLocation{SubUnit: su, Point: p})
				}
			}
		}
	}

	id := t.alloc(g)
	for _, su := range subUnits {
		if old, ok := t.index[su]; ok {
			t.release(old)
		}
		t.index[su] = id
		t.refs[id]++
	}
	t.opts.Logger.Debug("storage group built",
		"cell", c.String(),
		"group", uint32(id),
		"cells", len(cells),
		"tanks", len(g.tanks),
	)
	return id
}

func (t *Tracker) alloc(g *Group) GroupID {
	if !t.free.IsEmpty() {
		slot := t.free.Minimum()
		t.free.Remove(slot)
		t.slots[slot] = g
		t.refs[slot] = 0
		return GroupID(slot)
	}
	t.slots = append(t.slots, g)
	t.refs = append(t.refs, 0)
	return GroupID(len(t.slots) - 1)
}

func (t *Tracker) release(id GroupID) {
	t.refs[id]--
	if t.refs[id] == 0 {
		t.slots[id] = nil
		t.free.Add(uint32(id))
	}
}

// chunk fetches su, treating any failure as "not resident".
func (t *Tracker) chunk(su coord.SubUnit) (world.Chunk, bool) {
	ch, err := t.world.Chunk(su)
	if err != nil {
		if !errors.Is(err, world.ErrNotResident) {
			t.opts.Logger.Warn("chunk lookup failed", "sub_unit", su.String(), "error", err)
		}
		return nil, false
	}
	return ch, true
}

// tankCapacity reports whether p of ch currently holds a catalogued tank.
func (t *Tracker) tankCapacity(ch world.Chunk, p coord.Point) (world.Volume, bool) {
	id, ok := ch.Fixture(p)
	if !ok {
		return 0, false
	}
	return t.opts.Catalog.Capacity(id)
}

// eachTank calls fn for every tank of g whose chunk is resident and whose
// fixture is still in place.
func (t *Tracker) eachTank(g *Group, fn func(loc TankLocation, ch world.Chunk, capacity world.Volume)) {
	for _, loc := range g.tanks {
		ch, ok := t.chunk(loc.SubUnit)
		if !ok {
			continue
		}
		capacity, ok := t.tankCapacity(ch, loc.Point)
		if !ok {
			continue
		}
		fn(loc, ch, capacity)
	}
}
