// Package sqlworld is a world.Store backed by SQLite (modernc.org/sqlite,
// no cgo).
//
// A sub-unit is resident when it has a row in sub_units. Chunk reads the
// fixtures and items of one sub-unit into memory; SetItems writes through
// to the database inside a transaction and updates the snapshot.
package sqlworld

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed world.Store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
// The schema is idempotent; opening an existing database keeps its data.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlworld: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Join(fmt.Errorf("sqlworld: connect %s: %w", path, err), db.Close())
	}

	// SQLite has a single writer; pragmas below are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, errors.Join(fmt.Errorf("sqlworld: apply schema: %w", err), db.Close())
	}
	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("sqlworld: %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Chunk implements world.Store.
func (s *Store) Chunk(su coord.SubUnit) (world.Chunk, error) {
	ok, err := s.Resident(su)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", world.ErrNotResident, su)
	}

	c := &chunk{
		db:       s.db,
		su:       su,
		fixtures: make(map[coord.Point]string),
		items:    make(map[coord.Point][]world.Item),
	}
	if err := c.loadFixtures(); err != nil {
		return nil, err
	}
	if err := c.loadItems(); err != nil {
		return nil, err
	}
	return c, nil
}

// Resident reports whether su has been loaded.
func (s *Store) Resident(su coord.SubUnit) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM sub_units WHERE x = ? AND y = ? AND z = ?`,
		su.X, su.Y, su.Z,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlworld: residency of %v: %w", su, err)
	}
	return n > 0, nil
}

// Load marks su resident. Loading twice is a no-op.
func (s *Store) Load(su coord.SubUnit) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO sub_units (x, y, z) VALUES (?, ?, ?)`,
		su.X, su.Y, su.Z,
	)
	if err != nil {
		return fmt.Errorf("sqlworld: load %v: %w", su, err)
	}
	return nil
}

// Unload drops su together with its fixtures and items.
func (s *Store) Unload(su coord.SubUnit) error {
	_, err := s.db.Exec(
		`DELETE FROM sub_units WHERE x = ? AND y = ? AND z = ?`,
		su.X, su.Y, su.Z,
	)
	if err != nil {
		return fmt.Errorf("sqlworld: unload %v: %w", su, err)
	}
	return nil
}

// SetFixture places fixture type id on p of a resident sub-unit.
func (s *Store) SetFixture(su coord.SubUnit, p coord.Point, id string) error {
	_, err := s.db.Exec(
		`INSERT INTO fixtures (x, y, z, px, py, fixture) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (x, y, z, px, py) DO UPDATE SET fixture = excluded.fixture`,
		su.X, su.Y, su.Z, p.X, p.Y, id,
	)
	if err != nil {
		return fmt.Errorf("sqlworld: set fixture at %v%v: %w", su, p, err)
	}
	return nil
}

// RemoveFixture removes the fixture on p, if any.
func (s *Store) RemoveFixture(su coord.SubUnit, p coord.Point) error {
	_, err := s.db.Exec(
		`DELETE FROM fixtures WHERE x = ? AND y = ? AND z = ? AND px = ? AND py = ?`,
		su.X, su.Y, su.Z, p.X, p.Y,
	)
	if err != nil {
		return fmt.Errorf("sqlworld: remove fixture at %v%v: %w", su, p, err)
	}
	return nil
}

// AddItem appends it to the items on p.
func (s *Store) AddItem(su coord.SubUnit, p coord.Point, it world.Item) error {
	_, err := s.db.Exec(
		`INSERT INTO items (id, x, y, z, px, py, seq, kind, phase, volume_ml)
		 VALUES (?, ?, ?, ?, ?, ?,
		         (SELECT COALESCE(MAX(seq), -1) + 1 FROM items
		          WHERE x = ? AND y = ? AND z = ? AND px = ? AND py = ?),
		         ?, ?, ?)`,
		it.ID, su.X, su.Y, su.Z, p.X, p.Y,
		su.X, su.Y, su.Z, p.X, p.Y,
		it.Kind, it.Phase.String(), int64(it.Volume),
	)
	if err != nil {
		return fmt.Errorf("sqlworld: add item at %v%v: %w", su, p, err)
	}
	return nil
}

// chunk is a snapshot of one resident sub-unit.
type chunk struct {
	db       *sql.DB
	su       coord.SubUnit
	fixtures map[coord.Point]string
	items    map[coord.Point][]world.Item
}

func (c *chunk) loadFixtures() error {
	rows, err := c.db.Query(
		`SELECT px, py, fixture FROM fixtures WHERE x = ? AND y = ? AND z = ?`,
		c.su.X, c.su.Y, c.su.Z,
	)
	if err != nil {
		return fmt.Errorf("sqlworld: fixtures of %v: %w", c.su, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p coord.Point
		var id string
		if err := rows.Scan(&p.X, &p.Y, &id); err != nil {
			return fmt.Errorf("sqlworld: scan fixture: %w", err)
		}
		c.fixtures[p] = id
	}
	return rows.Err()
}

func (c *chunk) loadItems() error {
	rows, err := c.db.Query(
		`SELECT px, py, id, kind, phase, volume_ml FROM items
		 WHERE x = ? AND y = ? AND z = ? ORDER BY px, py, seq`,
		c.su.X, c.su.Y, c.su.Z,
	)
	if err != nil {
		return fmt.Errorf("sqlworld: items of %v: %w", c.su, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			p     coord.Point
			it    world.Item
			phase string
			vol   int64
		)
		if err := rows.Scan(&p.X, &p.Y, &it.ID, &it.Kind, &phase, &vol); err != nil {
			return fmt.Errorf("sqlworld: scan item: %w", err)
		}
		if it.Phase, err = world.ParsePhase(phase); err != nil {
			return err
		}
		it.Volume = world.Volume(vol)
		c.items[p] = append(c.items[p], it)
	}
	return rows.Err()
}

// Fixture implements world.Chunk.
func (c *chunk) Fixture(p coord.Point) (string, bool) {
	id, ok := c.fixtures[p]
	return id, ok
}

// Items implements world.Chunk.
func (c *chunk) Items(p coord.Point) []world.Item {
	return c.items[p]
}

// SetItems implements world.Chunk.
func (c *chunk) SetItems(p coord.Point, items []world.Item) (err error) {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlworld: begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec(
		`DELETE FROM items WHERE x = ? AND y = ? AND z = ? AND px = ? AND py = ?`,
		c.su.X, c.su.Y, c.su.Z, p.X, p.Y,
	); err != nil {
		return fmt.Errorf("sqlworld: clear items at %v%v: %w", c.su, p, err)
	}
	for i, it := range items {
		if _, err = tx.Exec(
			`INSERT INTO items (id, x, y, z, px, py, seq, kind, phase, volume_ml)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, c.su.X, c.su.Y, c.su.Z, p.X, p.Y, i, it.Kind, it.Phase.String(), int64(it.Volume),
		); err != nil {
			return fmt.Errorf("sqlworld: insert item at %v%v: %w", c.su, p, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlworld: commit: %w", err)
	}

	if len(items) == 0 {
		delete(c.items, p)
	} else {
		c.items[p] = append([]world.Item(nil), items...)
	}
	return nil
}
