package adjacency

import (
	"sort"

	"github.com/katalvlaran/plumbgrid/coord"
)

// Map holds the bitsets of one region, keyed by region-local cell.
type Map map[coord.Cell]Bitset

// At returns the bitset for local, or the zero Bitset if absent.
func (m Map) At(local coord.Cell) Bitset { return m[local] }

// emptyMap backs the View of every region without edges. It is never
// written to.
var emptyMap = Map{}

// View is a read-only window onto a region's Map.
type View struct {
	m Map
}

// At returns the bitset for local, or the zero Bitset if absent.
func (v View) At(local coord.Cell) Bitset { return v.m[local] }

// Len returns the number of recorded cells, including all-zero entries
// that have not been pruned.
func (v View) Len() int { return len(v.m) }

// Cells returns the recorded cells in coord.Cell.Less order.
func (v View) Cells() []coord.Cell {
	out := make([]coord.Cell, 0, len(v.m))
	for c := range v.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Store shards bitsets by region.
type Store struct {
	regions map[coord.Region]Map
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{regions: make(map[coord.Region]Map)}
}

// Connections returns the mutable Map of r, creating it on first use.
func (s *Store) Connections(r coord.Region) Map {
	m, ok := s.regions[r]
	if !ok {
		m = make(Map)
		s.regions[r] = m
	}
	return m
}

// View returns a read-only view of r. Regions without a Map share one
// empty view; nothing is allocated.
func (s *Store) View(r coord.Region) View {
	if m, ok := s.regions[r]; ok {
		return View{m: m}
	}
	return View{m: emptyMap}
}

// At returns the bitset of local in r without creating anything.
func (s *Store) At(r coord.Region, local coord.Cell) Bitset {
	return s.regions[r][local]
}

// Set stores b for local in r. A zero b removes the entry.
func (s *Store) Set(r coord.Region, local coord.Cell, b Bitset) {
	if b.IsZero() {
		if m, ok := s.regions[r]; ok {
			delete(m, local)
		}
		return
	}
	s.Connections(r)[local] = b
}

// Prune drops all-zero entries of r, and r itself once empty. It returns
// the number of entries removed.
func (s *Store) Prune(r coord.Region) int {
	m, ok := s.regions[r]
	if !ok {
		return 0
	}
	removed := 0
	for c, b := range m {
		if b.IsZero() {
			delete(m, c)
			removed++
		}
	}
	if len(m) == 0 {
		delete(s.regions, r)
	}
	return removed
}

// Regions returns the number of regions holding a Map.
func (s *Store) Regions() int { return len(s.regions) }

// Clear drops every region.
func (s *Store) Clear() {
	s.regions = make(map[coord.Region]Map)
}
