// Package plumbing owns the pipe network: the adjacency store, the
// mutation API that keeps it symmetric, and the storage tracker that
// summarizes the tanks of each connected component.
//
// What
//
//   - Network: one process-scoped service. Construct it with NewNetwork,
//     pass it where it is needed, and call Clear at world-reload
//     boundaries. There is no package-level state.
//   - Queries: GridAt (connected component), GridConnectivityAt (immediate
//     neighbors), WaterStorageAt (capacity and stored liquid).
//   - Mutation: Connect/Disconnect return sentinel errors;
//     AddGridConnection/RemoveGridConnection log the same error as a
//     diagnostic and report success as a bool.
//   - Notifications: OnContentsChanged invalidates a storage group;
//     OnStructureChanged rebuilds it. DisconnectTank drains a group.
//
// Errors
//
//   - ErrCrossRegion      – endpoints lie in different regions.
//   - ErrNotAdjacent      – endpoints are not orthogonally adjacent.
//   - ErrAlreadyConnected – both direction bits already set.
//   - ErrNotConnected     – neither direction bit set.
//   - ErrAsymmetricEdge   – exactly one bit set; state is left untouched.
//
// Concurrency
//
//	A Network is not safe for concurrent use. All mutations, rebuilds and
//	queries must be serialized by the owner.
package plumbing
