// Package connectivity answers reachability questions over an adjacency
// source: the immediate neighbors of one cell, and the full connected
// component around a seed.
//
// What
//
//   - Neighbors: offsets of the set bits of one cell, in direction-table
//     order (see package adjacency).
//   - Component: breadth-first flood fill from a seed. Returns a Set of
//     every reachable cell (the seed included) plus the visit Order.
//   - Hooks at two stages, configured through functional options:
//     OnEnqueue (a cell is discovered) and OnVisit (a cell is dequeued).
//
// Determinism
//
//	Neighbors are expanded in direction-table order, so Order is fully
//	reproducible for a given source. The Set itself is independent of
//	traversal order.
//
// Complexity (V = cells in the component, E = edges among them)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the frontier and the visited set
//
// No bound on component size is enforced. A component spanning thousands
// of cells is traversed in full; geography keeps real graphs local.
package connectivity
