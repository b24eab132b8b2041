// Package memworld is an in-memory world.Store. Sub-units become resident
// when loaded and stop being resident when unloaded; nothing is persisted.
package memworld

import (
	"fmt"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

// Chunk is the in-memory content of one sub-unit.
type Chunk struct {
	fixtures map[coord.Point]string
	items    map[coord.Point][]world.Item
}

func newChunk() *Chunk {
	return &Chunk{
		fixtures: make(map[coord.Point]string),
		items:    make(map[coord.Point][]world.Item),
	}
}

// Fixture implements world.Chunk.
func (c *Chunk) Fixture(p coord.Point) (string, bool) {
	id, ok := c.fixtures[p]
	return id, ok
}

// Items implements world.Chunk.
func (c *Chunk) Items(p coord.Point) []world.Item {
	return c.items[p]
}

// SetItems implements world.Chunk.
func (c *Chunk) SetItems(p coord.Point, items []world.Item) error {
	if len(items) == 0 {
		delete(c.items, p)
		return nil
	}
	c.items[p] = append([]world.Item(nil), items...)
	return nil
}

// SetFixture places fixture type id on p, replacing any previous one.
func (c *Chunk) SetFixture(p coord.Point, id string) {
	c.fixtures[p] = id
}

// RemoveFixture removes whatever fixture stands on p.
func (c *Chunk) RemoveFixture(p coord.Point) {
	delete(c.fixtures, p)
}

// AddItem appends it to the items on p.
func (c *Chunk) AddItem(p coord.Point, it world.Item) {
	c.items[p] = append(c.items[p], it)
}

// Store is a map-backed world.Store.
type Store struct {
	chunks map[coord.SubUnit]*Chunk
}

// New returns a Store with nothing resident.
func New() *Store {
	return &Store{chunks: make(map[coord.SubUnit]*Chunk)}
}

// Chunk implements world.Store.
func (s *Store) Chunk(su coord.SubUnit) (world.Chunk, error) {
	c, ok := s.chunks[su]
	if !ok {
		return nil, fmt.Errorf("%w: %v", world.ErrNotResident, su)
	}
	return c, nil
}

// Load makes su resident and returns its chunk. Loading a resident
// sub-unit returns the existing chunk.
func (s *Store) Load(su coord.SubUnit) *Chunk {
	c, ok := s.chunks[su]
	if !ok {
		c = newChunk()
		s.chunks[su] = c
	}
	return c
}

// Unload drops su and everything on it.
func (s *Store) Unload(su coord.SubUnit) {
	delete(s.chunks, su)
}

// Resident reports whether su is loaded.
func (s *Store) Resident(su coord.SubUnit) bool {
	_, ok := s.chunks[su]
	return ok
}
