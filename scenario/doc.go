// Package scenario runs scripted plumbing sessions from YAML files and
// records a deterministic trace of every step.
//
// A scenario seeds a world (resident cells, tanks and their contents), then
// executes steps against a fresh plumbing.Network: edge mutations, grid and
// storage queries, change notifications, fills, drains and clears. Each
// step may carry an expect clause; misses are recorded in the trace and the
// run continues.
//
//	name: merge
//	world:
//	  tanks:
//	    - cell: [0, 0, 0]
//	      items:
//	        - {kind: water, phase: liquid, volume_ml: 1000}
//	steps:
//	  - op: connect
//	    from: [0, 0, 0]
//	    to: [1, 0, 0]
//	    expect: {ok: true}
//	  - op: storage
//	    cell: [1, 0, 0]
//	    expect: {capacity_ml: 240000, stored_ml: 1000}
//
// Errors
//
//   - ErrInvalidScenario – unknown field, unknown op, missing argument, or an
//     address outside the grid scale.
//   - ErrExpectation     – at least one step missed its expect clause.
package scenario
