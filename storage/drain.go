package storage

import (
	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

// Drain empties every tank of the group covering target's cell and puts
// the collected liquid on target as a single stack.
//
// Every item on a visited tank tile is removed. Liquid volumes are summed
// and the stack takes the kind of the first liquid met; later kinds are
// folded into it without conversion. The group is marked dirty whether or
// not anything was collected. When nothing was collected, or target's
// sub-unit is not resident, nothing is placed.
//
// A tank whose tile cannot be cleared keeps its contents and contributes
// nothing to the result.
func (t *Tracker) Drain(target coord.Location) DrainResult {
	id := t.GroupFor(coord.CellOfLocation(t.proj, target))
	g := t.slots[id]

	var res DrainResult
	t.eachTank(g, func(loc TankLocation, ch world.Chunk, _ world.Volume) {
		var (
			kind   string
			volume world.Volume
		)
		for _, it := range ch.Items(loc.Point) {
			if !it.IsLiquid() {
				continue
			}
			if kind == "" {
				kind = it.Kind
			}
			volume += it.Volume
		}
		if err := ch.SetItems(loc.Point, nil); err != nil {
			t.opts.Logger.Warn("clearing tank failed",
				"sub_unit", loc.SubUnit.String(),
				"point", loc.Point.String(),
				"error", err,
			)
			return
		}
		if res.Kind == "" {
			res.Kind = kind
		}
		res.Volume += volume
		res.Tanks++
	})
	g.clean = false

	if res.Kind == "" || res.Volume <= 0 {
		return res
	}

	su, p := t.proj.SubUnitOf(target)
	ch, ok := t.chunk(su)
	if !ok {
		t.opts.Logger.Debug("drain target not resident",
			"target", target.String(),
			"kind", res.Kind,
			"volume_ml", int64(res.Volume),
		)
		return res
	}
	stack := t.opts.Items.Spawn(res.Kind, world.Liquid, res.Volume)
	if err := ch.SetItems(p, []world.Item{stack}); err != nil {
		t.opts.Logger.Warn("placing drained liquid failed", "target", target.String(), "error", err)
		return res
	}
	res.Placed = true
	return res
}
