// Package plumbgrid models pipe networks laid over a voxel world and the
// liquid stored in the tanks those pipes connect.
//
// 🚰 What is plumbgrid?
//
//	A small, dependency-light toolkit that brings together:
//		• Adjacency: one 6-bit direction set per cell, partitioned by region
//		• Connectivity: neighbor listing and breadth-first component flood fill
//		• Mutation: symmetric connect/disconnect with explicit rejections
//		• Storage: cached capacity/volume per connected group of tanks
//		• Drain: empty every tank of a group onto a single tile
//
// ✨ Guarantees
//
//   - Every edge is stored on both endpoints or on neither.
//   - Edges never cross a region boundary.
//   - Storage figures are recomputed lazily and only after a notification.
//   - Deterministic output: neighbors in direction-table order, cells sorted.
//
// Everything is organized under these subpackages:
//
//	coord/         cells, regions, sub-units, tiles and the Scale projection
//	adjacency/     Direction, Bitset and the per-region Store
//	connectivity/  Neighbors and Component (BFS)
//	world/         chunk/store contracts, fixture catalog, item factory
//	  memworld/    in-memory world
//	  sqlworld/    SQLite world (modernc.org/sqlite)
//	storage/       Tracker: storage groups over sub-units, Drain
//	plumbing/      Network: the service tying the above together
//	config/        YAML configuration and logger construction
//	scenario/      YAML scenarios, deterministic traces, golden tests
//	cmd/plumbgrid/ command-line runner
//
// Quick ASCII example (two tanks joined by a pipe, one storage group):
//
//	    [T]───(·)───[T]
//	   240 L       240 L   →  480 L capacity
//
//	go run ./cmd/plumbgrid run scenario/testdata/merge_and_drain.yaml
package plumbgrid
