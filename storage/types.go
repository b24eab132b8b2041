package storage

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

// GroupID addresses a Group inside a Tracker's arena. IDs are recycled
// once a group is no longer referenced, so an ID is only meaningful until
// the next rebuild.
type GroupID uint32

// Stats summarizes one group.
type Stats struct {
	// Capacity is the summed capacity of every tank present.
	Capacity world.Volume `json:"capacity_ml" yaml:"capacity_ml"`
	// Stored is the summed volume of every liquid item in those tanks.
	Stored world.Volume `json:"stored_ml" yaml:"stored_ml"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d ml", int64(s.Stored), int64(s.Capacity))
}

// TankLocation is a tile that held a storage fixture when its group was
// built.
type TankLocation struct {
	SubUnit coord.SubUnit
	Point   coord.Point
}

// DrainResult reports what Drain collected and whether it was placed.
type DrainResult struct {
	// Kind is the first liquid kind encountered; empty when nothing drained.
	Kind string
	// Volume is the total liquid volume collected.
	Volume world.Volume
	// Tanks is the number of tank tiles emptied.
	Tanks int
	// Placed is true when a stack was written to the target tile.
	Placed bool
}

// Group is one storage aggregate. Its fields are owned by the Tracker.
type Group struct {
	subUnits []coord.SubUnit
	tanks    []TankLocation
	stats    Stats
	clean    bool
}

// SubUnits returns a copy of the sub-units covered by g.
func (g *Group) SubUnits() []coord.SubUnit {
	return append([]coord.SubUnit(nil), g.subUnits...)
}

// Tanks returns a copy of the tank locations found when g was built.
func (g *Group) Tanks() []TankLocation {
	return append([]TankLocation(nil), g.tanks...)
}

// HasFixtures reports whether any tank was found when g was built.
func (g *Group) HasFixtures() bool { return len(g.tanks) > 0 }

// Dirty reports whether the cached stats must be recomputed.
func (g *Group) Dirty() bool { return !g.clean }

// Option configures a Tracker.
type Option func(*Options)

// Options holds Tracker collaborators that have defaults.
type Options struct {
	// Catalog decides which fixtures are tanks and their capacity.
	Catalog world.FixtureCatalog
	// Items builds the stack placed by Drain.
	Items world.ItemFactory
	// Logger receives residency and write diagnostics.
	Logger *slog.Logger
}

// DefaultOptions returns the default catalog, a UUID spawner and a logger
// that discards everything.
func DefaultOptions() Options {
	return Options{
		Catalog: world.DefaultCatalog(),
		Items:   world.Spawner{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCatalog sets the fixture catalog.
func WithCatalog(c world.FixtureCatalog) Option {
	return func(o *Options) {
		if c != nil {
			o.Catalog = c
		}
	}
}

// WithItemFactory sets the item factory used by Drain.
func WithItemFactory(f world.ItemFactory) Option {
	return func(o *Options) {
		if f != nil {
			o.Items = f
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
