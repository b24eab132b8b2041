package plumbing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/plumbgrid/adjacency"
	"github.com/katalvlaran/plumbgrid/connectivity"
	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/storage"
	"github.com/katalvlaran/plumbgrid/world"
)

// Sentinel errors for edge mutations.
var (
	// ErrCrossRegion indicates the endpoints lie in different regions.
	ErrCrossRegion = errors.New("plumbing: connecting cells across regions is not supported")

	// ErrNotAdjacent indicates the endpoints are not orthogonally adjacent.
	ErrNotAdjacent = errors.New("plumbing: cells are not orthogonally adjacent")

	// ErrAlreadyConnected indicates the edge already exists.
	ErrAlreadyConnected = errors.New("plumbing: cells are already connected")

	// ErrNotConnected indicates there is no edge to remove.
	ErrNotConnected = errors.New("plumbing: cells are not connected")

	// ErrAsymmetricEdge indicates exactly one side of the edge is recorded.
	// The store is left as is.
	ErrAsymmetricEdge = errors.New("plumbing: edge is recorded on one side only")
)

// Network is the pipe network service.
type Network struct {
	scale   coord.Scale
	store   *adjacency.Store
	tracker *storage.Tracker
	log     *slog.Logger
}

// NewNetwork returns an empty Network reading fixtures from w.
func NewNetwork(w world.Store, opts ...Option) (*Network, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Scale.Validate(); err != nil {
		return nil, err
	}

	n := &Network{
		scale: o.Scale,
		store: adjacency.NewStore(),
		log:   o.Logger,
	}
	n.tracker = storage.NewTracker(n, o.Scale, w,
		storage.WithCatalog(o.Catalog),
		storage.WithItemFactory(o.Items),
		storage.WithLogger(o.Logger),
	)
	return n, nil
}

// Scale returns the projection in use.
func (n *Network) Scale() coord.Scale { return n.scale }

// BitsetAt implements connectivity.Source over absolute cells.
func (n *Network) BitsetAt(c coord.Cell) adjacency.Bitset {
	r, local := n.scale.RegionOf(c)
	return n.store.At(r, local)
}

// Connections returns the mutable adjacency map of r, keyed by
// region-local cell. Writing to it bypasses validation and storage
// notifications.
func (n *Network) Connections(r coord.Region) adjacency.Map {
	return n.store.Connections(r)
}

// ConnectionsView returns a read-only view of r's adjacency map.
func (n *Network) ConnectionsView(r coord.Region) adjacency.View {
	return n.store.View(r)
}

// GridAt returns every cell connected to c, c included.
func (n *Network) GridAt(c coord.Cell) connectivity.Set {
	return connectivity.Component(n, c).Cells
}

// GridConnectivityAt returns the offsets of c's immediate neighbors in
// direction-table order.
func (n *Network) GridConnectivityAt(c coord.Cell) []coord.Offset {
	return connectivity.Neighbors(n, c)
}

// Connect adds the edge a–b.
func (n *Network) Connect(a, b coord.Cell) error {
	e, err := n.resolve(a, b)
	if err != nil {
		return err
	}
	fwd, back := e.bitsA.Has(e.dir), e.bitsB.Has(e.dir.Opposite())
	switch {
	case fwd && back:
		return fmt.Errorf("%w: %v and %v", ErrAlreadyConnected, a, b)
	case fwd != back:
		return fmt.Errorf("%w: %v→%v %t, %v→%v %t", ErrAsymmetricEdge, a, b, fwd, b, a, back)
	}

	n.store.Set(e.region, e.localA, e.bitsA.With(e.dir))
	n.store.Set(e.region, e.localB, e.bitsB.With(e.dir.Opposite()))
	n.structureChanged(a, b)
	return nil
}

// Disconnect removes the edge a–b.
func (n *Network) Disconnect(a, b coord.Cell) error {
	e, err := n.resolve(a, b)
	if err != nil {
		return err
	}
	fwd, back := e.bitsA.Has(e.dir), e.bitsB.Has(e.dir.Opposite())
	switch {
	case !fwd && !back:
		return fmt.Errorf("%w: %v and %v", ErrNotConnected, a, b)
	case fwd != back:
		return fmt.Errorf("%w: %v→%v %t, %v→%v %t", ErrAsymmetricEdge, a, b, fwd, b, a, back)
	}

	n.store.Set(e.region, e.localA, e.bitsA.Without(e.dir))
	n.store.Set(e.region, e.localB, e.bitsB.Without(e.dir.Opposite()))
	n.structureChanged(a, b)
	return nil
}

// AddGridConnection is Connect reporting failure as a logged diagnostic
// and false.
func (n *Network) AddGridConnection(a, b coord.Cell) bool {
	if err := n.Connect(a, b); err != nil {
		n.reject("connect", a, b, err)
		return false
	}
	return true
}

// RemoveGridConnection is Disconnect reporting failure as a logged
// diagnostic and false.
func (n *Network) RemoveGridConnection(a, b coord.Cell) bool {
	if err := n.Disconnect(a, b); err != nil {
		n.reject("disconnect", a, b, err)
		return false
	}
	return true
}

// WaterStorageAt returns the capacity and stored liquid of c's component.
func (n *Network) WaterStorageAt(c coord.Cell) storage.Stats {
	return n.tracker.StatsAt(c)
}

// StorageGroupAt returns the storage group of c's component and the group
// itself. The group is only valid until the next rebuild.
func (n *Network) StorageGroupAt(c coord.Cell) (storage.GroupID, *storage.Group) {
	id := n.tracker.GroupFor(c)
	return id, n.tracker.Group(id)
}

// OnContentsChanged marks the storage group owning loc dirty. Call it when
// a tank is filled or emptied.
func (n *Network) OnContentsChanged(loc coord.Location) {
	n.tracker.Invalidate(loc)
}

// OnStructureChanged rebuilds the storage group of loc's cell. Call it when
// tanks are built or removed, or topology changes.
func (n *Network) OnStructureChanged(loc coord.Location) {
	n.tracker.Rebuild(loc)
}

// DisconnectTank drains every tank connected to loc into one stack on loc.
func (n *Network) DisconnectTank(loc coord.Location) storage.DrainResult {
	res := n.tracker.Drain(loc)
	n.log.Debug("tanks drained",
		"target", loc.String(),
		"kind", res.Kind,
		"volume_ml", int64(res.Volume),
		"tanks", res.Tanks,
		"placed", res.Placed,
	)
	return res
}

// StorageGroups returns the number of live storage groups.
func (n *Network) StorageGroups() int { return n.tracker.Len() }

// Clear drops every edge and every storage group.
func (n *Network) Clear() {
	n.store.Clear()
	n.tracker.Reset()
	n.log.Debug("network cleared")
}

// edge is a validated pair of endpoints.
type edge struct {
	region         coord.Region
	localA, localB coord.Cell
	bitsA, bitsB   adjacency.Bitset
	dir            adjacency.Direction // a→b
}

// resolve checks that a and b share a region and are orthogonally
// adjacent, and reads their current bitsets.
func (n *Network) resolve(a, b coord.Cell) (edge, error) {
	ra, la := n.scale.RegionOf(a)
	rb, lb := n.scale.RegionOf(b)
	if ra != rb {
		return edge{}, fmt.Errorf("%w: %v in %v, %v in %v", ErrCrossRegion, a, ra, b, rb)
	}
	off := b.Sub(a)
	if off.Manhattan() != 1 {
		return edge{}, fmt.Errorf("%w: %v and %v are %d apart", ErrNotAdjacent, a, b, off.Manhattan())
	}
	dir, _ := adjacency.DirectionOf(off)
	return edge{
		region: ra,
		localA: la,
		localB: lb,
		bitsA:  n.store.At(ra, la),
		bitsB:  n.store.At(rb, lb),
		dir:    dir,
	}, nil
}

func (n *Network) structureChanged(a, b coord.Cell) {
	n.OnStructureChanged(coord.BaseLocation(n.scale, a))
	n.OnStructureChanged(coord.BaseLocation(n.scale, b))
}

func (n *Network) reject(op string, a, b coord.Cell, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ErrAsymmetricEdge) {
		level = slog.LevelError
	}
	n.log.Log(context.Background(), level, "grid connection rejected",
		"op", op,
		"from", a.String(),
		"to", b.String(),
		"error", err,
	)
}
