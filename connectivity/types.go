package connectivity

import (
	"sort"

	"github.com/katalvlaran/plumbgrid/adjacency"
	"github.com/katalvlaran/plumbgrid/coord"
)

// Source yields the adjacency bitset of an absolute cell. Missing cells
// report the zero Bitset.
type Source interface {
	BitsetAt(c coord.Cell) adjacency.Bitset
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(c coord.Cell) adjacency.Bitset

// BitsetAt implements Source.
func (f SourceFunc) BitsetAt(c coord.Cell) adjacency.Bitset { return f(c) }

// Option configures Component via functional arguments.
type Option func(*Options)

// Options holds the hooks invoked during a traversal.
type Options struct {
	// OnEnqueue is called when a cell is first discovered, with its
	// distance in edges from the seed.
	OnEnqueue func(c coord.Cell, depth int)

	// OnVisit is called when a cell is dequeued and added to the result.
	OnVisit func(c coord.Cell, depth int)
}

// DefaultOptions returns Options with no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnEnqueue: func(coord.Cell, int) {},
		OnVisit:   func(coord.Cell, int) {},
	}
}

// WithOnEnqueue registers a callback to run on discovery.
func WithOnEnqueue(fn func(c coord.Cell, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit.
func WithOnVisit(fn func(c coord.Cell, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Set is an unordered set of cells.
type Set map[coord.Cell]struct{}

// NewSet builds a Set from cells.
func NewSet(cells ...coord.Cell) Set {
	s := make(Set, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports membership of c.
func (s Set) Contains(c coord.Cell) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in coord.Cell.Less order.
func (s Set) Sorted() []coord.Cell {
	out := make([]coord.Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Result holds the outcome of a Component traversal.
//   - Cells: every reachable cell, seed included.
//   - Order: cells in visit sequence, seed first.
//   - Depth: distance in edges from the seed.
type Result struct {
	Cells Set
	Order []coord.Cell
	Depth map[coord.Cell]int
}
