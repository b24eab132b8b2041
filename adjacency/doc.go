// Package adjacency stores, per region, which of the six orthogonal
// directions connect a cell to its neighbor.
//
// What
//
//   - Direction: North, East, South, West, Up, Down. The order of the
//     canonical table is also the bit order and the order in which
//     neighbors are reported.
//   - Bitset: one bit per Direction, packed in a uint8.
//   - Map: region-local cell → Bitset for one region.
//   - View: read-only wrapper over a Map. The view of an absent region is
//     backed by a single shared empty map and never allocates.
//   - Store: Region → Map, created on first write, cleared wholesale.
//
// The store performs no validation. Symmetry of edges is the caller's
// responsibility (see package plumbing).
//
// Complexity
//
//   - Bitset operations: O(1).
//   - Store.Connections / Store.View / Store.At: O(1) amortized.
//   - Store.Prune: O(cells in region).
package adjacency
