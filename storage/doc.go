// Package storage aggregates the liquid held by every storage fixture of a
// connected component and keeps that summary cached until told otherwise.
//
// What
//
//   - Group: the sub-units spanned by one component, the tank locations
//     found on them when the group was built, and a cached Stats value with
//     an explicit dirty flag.
//   - Tracker: an arena of Groups addressed by GroupID. Every sub-unit of a
//     component maps to the same GroupID. Rebuilding allocates a new slot
//     and remaps the affected sub-units; a slot that no sub-unit references
//     any more is recycled.
//
// Operations
//
//   - GroupFor(cell):   return the indexed group or build one lazily.
//   - Stats(id):        cached capacity/stored, recomputed when dirty.
//   - Invalidate(loc):  mark the owning group dirty; topology untouched.
//   - Rebuild(loc):     re-derive the group from the current component.
//   - Drain(loc):       empty every tank of the group into one stack at loc.
//   - Reset():          forget every group.
//
// Residency
//
//	A sub-unit whose chunk is not resident contributes nothing. Fixtures
//	removed since the group was built are skipped when stats are computed;
//	the world may change without a notification.
//
// Complexity (S = sub-units in the component, T = tiles per sub-unit edge,
// K = tank locations)
//
//   - build:  O(V + E) flood fill + O(S·T²) fixture scan
//   - Stats:  O(1) when clean, O(K·items) otherwise
//   - Drain:  O(K·items)
package storage
