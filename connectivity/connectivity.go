package connectivity

import (
	"github.com/katalvlaran/plumbgrid/coord"
)

// Neighbors returns the offsets of c's set bits in direction-table order.
func Neighbors(src Source, c coord.Cell) []coord.Offset {
	return src.BitsetAt(c).Offsets()
}

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	cell  coord.Cell
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	src   Source
	opts  Options
	queue []queueItem
	res   *Result
}

// Component runs a breadth-first flood fill from seed over src and returns
// every reachable cell. The seed is always part of the result, even when it
// has no edges.
func Component(src Source, seed coord.Cell, opts ...Option) *Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &walker{
		src:  src,
		opts: o,
		res: &Result{
			Cells: make(Set),
			Depth: make(map[coord.Cell]int),
		},
	}

	w.enqueue(seed, 0)
	w.loop()
	return w.res
}

// enqueue marks c discovered at depth d and appends it to the frontier.
// Marking on discovery keeps each cell in the frontier at most once.
func (w *walker) enqueue(c coord.Cell, d int) {
	w.res.Depth[c] = d
	w.opts.OnEnqueue(c, d)
	w.queue = append(w.queue, queueItem{cell: c, depth: d})
}

// loop processes the frontier until empty.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Cells[item.cell] = struct{}{}
		w.res.Order = append(w.res.Order, item.cell)
		w.opts.OnVisit(item.cell, item.depth)

		for _, off := range w.src.BitsetAt(item.cell).Offsets() {
			next := item.cell.Add(off)
			if _, seen := w.res.Depth[next]; seen {
				continue
			}
			w.enqueue(next, item.depth+1)
		}
	}
}
