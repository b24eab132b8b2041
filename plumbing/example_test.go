package plumbing_test

import (
	"fmt"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/plumbing"
	"github.com/katalvlaran/plumbgrid/world"
	"github.com/katalvlaran/plumbgrid/world/memworld"
)

// ExampleNetwork connects two cells that each hold a tank, reads the
// merged storage, and drains it.
func ExampleNetwork() {
	w := memworld.New()
	n, _ := plumbing.NewNetwork(w)
	s := n.Scale()

	a, b := coord.Cell{X: 0, Y: 0}, coord.Cell{X: 1, Y: 0}
	for i, c := range []coord.Cell{a, b} {
		ch := w.Load(s.SubUnitsOf(c)[0])
		ch.SetFixture(coord.Point{}, world.DefaultTankFixture)
		ch.AddItem(coord.Point{}, world.Item{Kind: "water_clean", Phase: world.Liquid, Volume: world.Volume(1000 * (i + 1))})
	}

	fmt.Println("connected:", n.AddGridConnection(a, b))
	fmt.Println("again:", n.AddGridConnection(a, b))
	fmt.Println("grid:", n.GridAt(b).Sorted())
	fmt.Println("storage:", n.WaterStorageAt(a))

	res := n.DisconnectTank(s.LocationOf(s.SubUnitsOf(a)[0], coord.Point{X: 5, Y: 5}))
	fmt.Println("drained:", res.Kind, res.Volume)
	fmt.Println("storage:", n.WaterStorageAt(b))

	// Output:
	// connected: true
	// again: false
	// grid: [(0,0,0) (1,0,0)]
	// storage: 3000/480000 ml
	// drained: water_clean 3000 ml
	// storage: 0/480000 ml
}
