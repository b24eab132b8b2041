// Package world declares the collaborator contracts the storage cache
// consumes: resident world data addressed by sub-unit, the items lying on
// its tiles, the fixture catalog, and item construction.
//
// Implementations live in subpackages: memworld (in-memory) and sqlworld
// (SQLite). The storage cache never assumes a sub-unit is resident; a
// Store reports ErrNotResident and callers treat that as "contributes
// nothing".
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/plumbgrid/coord"
)

// ErrNotResident is returned when the backing data of a sub-unit is not
// loaded. It is an expected, transient condition.
var ErrNotResident = errors.New("world: sub-unit not resident")

// Volume is an amount of matter in millilitres.
type Volume int64

func (v Volume) String() string { return fmt.Sprintf("%d ml", int64(v)) }

// Phase is the physical state of an item's material.
type Phase uint8

const (
	Solid Phase = iota
	Liquid
	Gas
)

var phaseNames = [...]string{"solid", "liquid", "gas"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// ParsePhase maps a phase name back to its Phase.
func ParsePhase(s string) (Phase, error) {
	for i, n := range phaseNames {
		if n == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("world: unknown phase %q", s)
}

// Item is one stack lying on a tile.
type Item struct {
	ID     string
	Kind   string
	Phase  Phase
	Volume Volume
}

// IsLiquid is the resource predicate used by the storage cache.
func (it Item) IsLiquid() bool { return it.Phase == Liquid }

// Chunk is the resident content of one sub-unit.
type Chunk interface {
	// Fixture returns the fixture type id on p, if any.
	Fixture(p coord.Point) (string, bool)
	// Items returns the items lying on p. The slice must not be modified.
	Items(p coord.Point) []Item
	// SetItems replaces everything lying on p.
	SetItems(p coord.Point, items []Item) error
}

// Store looks up resident chunks.
type Store interface {
	// Chunk returns the chunk of s, or ErrNotResident.
	Chunk(s coord.SubUnit) (Chunk, error)
}

// FixtureCatalog maps fixture type ids that hold liquid to their capacity.
// Fixture types absent from the catalog are not storage.
type FixtureCatalog map[string]Volume

// Capacity returns the capacity of fixture type id and whether it is a
// storage fixture at all.
func (c FixtureCatalog) Capacity(id string) (Volume, bool) {
	v, ok := c[id]
	return v, ok
}

// DefaultTankFixture is the fixture type of a plumbed standing tank.
const DefaultTankFixture = "f_standing_tank_plumbed"

// DefaultCatalog holds the plumbed standing tank: 240 L.
func DefaultCatalog() FixtureCatalog {
	return FixtureCatalog{DefaultTankFixture: 240000}
}

// ItemFactory constructs new item stacks.
type ItemFactory interface {
	Spawn(kind string, phase Phase, volume Volume) Item
}

// Spawner is the default ItemFactory; every item gets a random UUID.
type Spawner struct{}

// Spawn implements ItemFactory.
func (Spawner) Spawn(kind string, phase Phase, volume Volume) Item {
	return Item{ID: uuid.NewString(), Kind: kind, Phase: phase, Volume: volume}
}
