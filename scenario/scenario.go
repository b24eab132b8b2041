package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/world"
)

// Sentinel errors.
var (
	// ErrInvalidScenario wraps every load and validation failure.
	ErrInvalidScenario = errors.New("scenario: invalid scenario")

	// ErrExpectation is returned by Run when at least one step did not
	// match its expect clause.
	ErrExpectation = errors.New("scenario: expectation failed")
)

// Step operations.
const (
	OpConnect          = "connect"
	OpDisconnect       = "disconnect"
	OpGrid             = "grid"
	OpNeighbors        = "neighbors"
	OpStorage          = "storage"
	OpContentsChanged  = "contents_changed"
	OpStructureChanged = "structure_changed"
	OpDrain            = "drain"
	OpFill             = "fill"
	OpClear            = "clear"
)

// Scenario is one scripted run against a fresh network.
type Scenario struct {
	// Name identifies the scenario and names its golden trace.
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	World       Setup  `yaml:"world"`
	Steps       []Step `yaml:"steps"`
}

// Setup seeds the world before the first step.
type Setup struct {
	// Loaded cells have every sub-unit made resident, with nothing on them.
	Loaded []CellRef `yaml:"loaded,omitempty"`
	// Tanks are placed in order on resident sub-units. Every sub-unit named
	// by Loaded or Tanks is emptied once before anything is placed.
	Tanks []Tank `yaml:"tanks,omitempty"`
	// Unloaded cells have every sub-unit dropped after the tanks are placed.
	Unloaded []CellRef `yaml:"unloaded,omitempty"`
}

// Tank is a storage fixture with its initial contents.
type Tank struct {
	At TileRef `yaml:",inline"`
	// Fixture defaults to world.DefaultTankFixture.
	Fixture string     `yaml:"fixture,omitempty"`
	Items   []ItemSpec `yaml:"items,omitempty"`
}

// TileRef addresses a tile as cell, sub-unit index within the cell (in
// SubUnitsOf order) and point within the sub-unit.
type TileRef struct {
	Cell    *CellRef `yaml:"cell,omitempty"`
	SubUnit int      `yaml:"sub_unit,omitempty"`
	Tile    PointRef `yaml:"tile,omitempty"`
}

// ItemSpec describes one item stack.
type ItemSpec struct {
	Kind   string `yaml:"kind"`
	Phase  string `yaml:"phase"`
	Volume int64  `yaml:"volume_ml"`
}

// Step is one operation with an optional expectation.
//
// connect and disconnect use From and To. grid, neighbors and storage use
// the cell of At; contents_changed, structure_changed, drain and fill use
// the whole tile. fill places Fixture (if set) and Items on that tile
// without notifying the network.
type Step struct {
	Op      string     `yaml:"op"`
	From    *CellRef   `yaml:"from,omitempty"`
	To      *CellRef   `yaml:"to,omitempty"`
	At      TileRef    `yaml:",inline"`
	Fixture string     `yaml:"fixture,omitempty"`
	Items   []ItemSpec `yaml:"items,omitempty"`
	Expect  *Expect    `yaml:"expect,omitempty"`
}

// Expect lists the values a step must produce. Unset fields are not
// checked.
type Expect struct {
	// OK and Error apply to connect and disconnect. Error is an error code
	// as reported by ErrorCode.
	OK    *bool  `yaml:"ok,omitempty"`
	Error string `yaml:"error,omitempty"`
	// Cells applies to grid, in any order.
	Cells []CellRef `yaml:"cells,omitempty"`
	// Offsets applies to neighbors, in direction-table order.
	Offsets []CellRef `yaml:"offsets,omitempty"`
	// Capacity and Stored apply to storage.
	Capacity *int64 `yaml:"capacity_ml,omitempty"`
	Stored   *int64 `yaml:"stored_ml,omitempty"`
	// Kind, Volume, Tanks and Placed apply to drain.
	Kind   *string `yaml:"kind,omitempty"`
	Volume *int64  `yaml:"volume_ml,omitempty"`
	Tanks  *int    `yaml:"tanks,omitempty"`
	Placed *bool   `yaml:"placed,omitempty"`
}

// CellRef is a cell written as [x, y, z].
type CellRef [3]int

// Cell converts r.
func (r CellRef) Cell() coord.Cell { return coord.Cell{X: r[0], Y: r[1], Z: r[2]} }

// Offset reads r as an offset.
func (r CellRef) Offset() coord.Offset { return coord.Offset{X: r[0], Y: r[1], Z: r[2]} }

// PointRef is a tile within a sub-unit written as [x, y].
type PointRef [2]int

// Point converts r.
func (r PointRef) Point() coord.Point { return coord.Point{X: r[0], Y: r[1]} }

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario, rejecting unknown fields, and validates it.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks required fields per operation. It does not check
// anything that depends on the grid scale.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: steps must be non-empty", ErrInvalidScenario)
	}
	for i, t := range sc.World.Tanks {
		if err := validateTile(t.At); err != nil {
			return fmt.Errorf("%w: world.tanks[%d]: %v", ErrInvalidScenario, i, err)
		}
		if err := validateItems(t.Items); err != nil {
			return fmt.Errorf("%w: world.tanks[%d]: %v", ErrInvalidScenario, i, err)
		}
	}
	for i, st := range sc.Steps {
		if err := validateStep(st); err != nil {
			return fmt.Errorf("%w: steps[%d] (%s): %v", ErrInvalidScenario, i, st.Op, err)
		}
	}
	return nil
}

func validateStep(st Step) error {
	switch st.Op {
	case OpConnect, OpDisconnect:
		if st.From == nil || st.To == nil {
			return errors.New("from and to are required")
		}
	case OpGrid, OpNeighbors, OpStorage, OpContentsChanged, OpStructureChanged, OpDrain:
		if err := validateTile(st.At); err != nil {
			return err
		}
	case OpFill:
		if err := validateTile(st.At); err != nil {
			return err
		}
		if st.Fixture == "" && len(st.Items) == 0 {
			return errors.New("fixture or items is required")
		}
		if err := validateItems(st.Items); err != nil {
			return err
		}
	case OpClear:
	case "":
		return errors.New("op is required")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func validateTile(t TileRef) error {
	if t.Cell == nil {
		return errors.New("cell is required")
	}
	if t.SubUnit < 0 {
		return fmt.Errorf("sub_unit %d is negative", t.SubUnit)
	}
	if t.Tile[0] < 0 || t.Tile[1] < 0 {
		return fmt.Errorf("tile %v is negative", t.Tile)
	}
	return nil
}

func validateItems(items []ItemSpec) error {
	for i, it := range items {
		if it.Kind == "" {
			return fmt.Errorf("items[%d]: kind is required", i)
		}
		if _, err := world.ParsePhase(it.Phase); err != nil {
			return fmt.Errorf("items[%d]: %v", i, err)
		}
		if it.Volume < 0 {
			return fmt.Errorf("items[%d]: volume_ml is negative", i)
		}
	}
	return nil
}
