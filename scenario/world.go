package scenario

import (
	"fmt"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
	"github.com/katalvlaran/plumbgrid/world/memworld"
)

// World is a world.Store a scenario can seed and edit. *sqlworld.Store
// satisfies it directly; wrap a *memworld.Store with Memory.
type World interface {
	world.Store
	Load(su coord.SubUnit) error
	Unload(su coord.SubUnit) error
	SetFixture(su coord.SubUnit, p coord.Point, id string) error
	AddItem(su coord.SubUnit, p coord.Point, it world.Item) error
}

// Memory adapts an in-memory store.
func Memory(s *memworld.Store) World { return memWorld{s} }

type memWorld struct{ s *memworld.Store }

func (m memWorld) Chunk(su coord.SubUnit) (world.Chunk, error) { return m.s.Chunk(su) }

func (m memWorld) Load(su coord.SubUnit) error {
	m.s.Load(su)
	return nil
}

func (m memWorld) Unload(su coord.SubUnit) error {
	m.s.Unload(su)
	return nil
}

func (m memWorld) SetFixture(su coord.SubUnit, p coord.Point, id string) error {
	ch, err := m.chunk(su)
	if err != nil {
		return err
	}
	ch.SetFixture(p, id)
	return nil
}

func (m memWorld) AddItem(su coord.SubUnit, p coord.Point, it world.Item) error {
	ch, err := m.chunk(su)
	if err != nil {
		return err
	}
	ch.AddItem(p, it)
	return nil
}

func (m memWorld) chunk(su coord.SubUnit) (*memworld.Chunk, error) {
	if !m.s.Resident(su) {
		return nil, fmt.Errorf("%w: %v", world.ErrNotResident, su)
	}
	return m.s.Load(su), nil
}
