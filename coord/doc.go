// Package coord defines the coordinate hierarchy used by plumbgrid and the
// projection arithmetic between its levels.
//
// What
//
//   - Region:   top-level spatial partition that shards the adjacency store.
//   - Cell:     one node of the connectivity graph (absolute coordinates).
//   - SubUnit:  fine-grained storage unit beneath a cell; fixtures live here.
//   - Location: one tile, addressed absolutely.
//   - Point:    tile position inside a single SubUnit.
//   - Offset:   relative displacement between two cells.
//
// Why
//
//	The graph works on cells, the storage cache works on sub-units, and
//	notifications arrive as tile locations. Keeping each level a distinct
//	type makes it impossible to mix them up silently.
//
// Projection
//
//	Projector is the collaborator contract consumed by the rest of the module.
//	Scale is the default implementation: integer scale factors between the
//	levels with floor division, so negative coordinates project correctly.
//
//	    region  = floor(cell.xy / CellsPerRegion)
//	    subunit = cell * SubUnitsPerCell             (x and y only)
//	    tile    = subunit * TilesPerSubUnit          (x and y only)
//
//	The Z axis is shared by every level and never scaled.
package coord
