package plumbing

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

// Option configures a Network.
type Option func(*Options)

// Options holds the Network's collaborators.
type Options struct {
	// Scale projects between cells, sub-units and tiles.
	Scale coord.Scale
	// Catalog lists the fixtures that count as tanks.
	Catalog world.FixtureCatalog
	// Items builds the stack placed by DisconnectTank.
	Items world.ItemFactory
	// Logger is the diagnostic channel.
	Logger *slog.Logger
}

// DefaultOptions returns the default scale and catalog, a UUID spawner and
// a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		Scale:   coord.DefaultScale(),
		Catalog: world.DefaultCatalog(),
		Items:   world.Spawner{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithScale sets the coordinate scale.
func WithScale(s coord.Scale) Option {
	return func(o *Options) { o.Scale = s }
}

// WithCatalog sets the tank fixture catalog.
func WithCatalog(c world.FixtureCatalog) Option {
	return func(o *Options) {
		if c != nil {
			o.Catalog = c
		}
	}
}

// WithItemFactory sets the factory for drained stacks.
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
