package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/plumbgrid/connectivity"
	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/plumbing"
	"github.com/katalvlaran/plumbgrid/world"
)

// Event is one executed step.
type Event struct {
	Seq    int    `json:"seq"`
	Op     string `json:"op"`
	Target string `json:"target,omitempty"`
	Result string `json:"result,omitempty"`
	// Failure lists every expectation the step missed.
	Failure string `json:"failure,omitempty"`
}

// Result is the trace of a run.
type Result struct {
	Name   string  `json:"name"`
	Events []Event `json:"events"`
	Failed int     `json:"failed"`
}

// Trace renders r as text, one event per line. The output is stable for a
// given scenario and is what golden files hold.
func (r *Result) Trace() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "%03d %s", ev.Seq, ev.Op)
		if ev.Target != "" {
			b.WriteString(" " + ev.Target)
		}
		if ev.Result != "" {
			b.WriteString(": " + ev.Result)
		}
		b.WriteByte('\n')
		if ev.Failure != "" {
			fmt.Fprintf(&b, "    FAIL %s\n", ev.Failure)
		}
	}
	return []byte(b.String())
}

// WriteJSON writes r as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ErrorCode names a mutation error for traces and expectations: "ok" for
// nil, the snake_case sentinel name otherwise.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, plumbing.ErrCrossRegion):
		return "cross_region"
	case errors.Is(err, plumbing.ErrNotAdjacent):
		return "not_adjacent"
	case errors.Is(err, plumbing.ErrAlreadyConnected):
		return "already_connected"
	case errors.Is(err, plumbing.ErrNotConnected):
		return "not_connected"
	case errors.Is(err, plumbing.ErrAsymmetricEdge):
		return "asymmetric_edge"
	}
	return "error"
}

// Run seeds w, builds a Network over it with opts and executes every step
// in order. Item ids are derived from the scenario name so that repeated
// runs are identical.
//
// A step that misses its expectation is recorded and the run continues;
// Run then returns the full result together with ErrExpectation. Any other
// error stops the run.
func Run(ctx context.Context, sc *Scenario, w World, opts ...plumbing.Option) (*Result, error) {
	items := newItemFactory(sc.Name)
	opts = append(slices.Clip(opts), plumbing.WithItemFactory(items))
	n, err := plumbing.NewNetwork(w, opts...)
	if err != nil {
		return nil, err
	}
	r := &runner{net: n, w: w, scale: n.Scale(), items: items}
	if err := r.seed(sc.World); err != nil {
		return nil, err
	}

	res := &Result{Name: sc.Name}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ev, err := r.step(st)
		if err != nil {
			return res, fmt.Errorf("scenario: steps[%d] (%s): %w", i, st.Op, err)
		}
		ev.Seq = i + 1
		ev.Op = st.Op
		if ev.Failure != "" {
			res.Failed++
		}
		res.Events = append(res.Events, ev)
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("%w: %d of %d steps", ErrExpectation, res.Failed, len(sc.Steps))
	}
	return res, nil
}

// itemFactory hands out name-based UUIDs in spawn order.
type itemFactory struct {
	ns uuid.UUID
	n  int
}

func newItemFactory(name string) *itemFactory {
	return &itemFactory{ns: uuid.NewSHA1(uuid.NameSpaceURL, []byte("plumbgrid:scenario:"+name))}
}

func (f *itemFactory) Spawn(kind string, phase world.Phase, volume world.Volume) world.Item {
	f.n++
	id := uuid.NewSHA1(f.ns, []byte(strconv.Itoa(f.n)))
	return world.Item{ID: id.String(), Kind: kind, Phase: phase, Volume: volume}
}

type runner struct {
	net   *plumbing.Network
	w     World
	scale coord.Scale
	items world.ItemFactory
}

// seed resets every sub-unit the setup names before placing anything, so
// a world that already holds an earlier run of the same scenario starts
// from the same state. Steps only write to resident sub-units, and in a
// world used by this scenario alone those are the ones reset here, which
// keeps the item ids of a rerun free.
func (r *runner) seed(s Setup) error {
	fresh := make(map[coord.SubUnit]bool)
	reset := func(su coord.SubUnit) error {
		if fresh[su] {
			return nil
		}
		fresh[su] = true
		if err := r.w.Unload(su); err != nil {
			return err
		}
		return r.w.Load(su)
	}

	for _, c := range s.Loaded {
		for _, su := range r.scale.SubUnitsOf(c.Cell()) {
			if err := reset(su); err != nil {
				return err
			}
		}
	}
	for i, t := range s.Tanks {
		su, p, err := r.locate(t.At)
		if err != nil {
			return fmt.Errorf("%w: world.tanks[%d]: %v", ErrInvalidScenario, i, err)
		}
		fixture := t.Fixture
		if fixture == "" {
			fixture = world.DefaultTankFixture
		}
		if err := reset(su); err != nil {
			return err
		}
		if err := r.w.SetFixture(su, p, fixture); err != nil {
			return err
		}
		if err := r.addItems(su, p, t.Items); err != nil {
			return err
		}
	}
	for _, c := range s.Unloaded {
		for _, su := range r.scale.SubUnitsOf(c.Cell()) {
			if err := r.w.Unload(su); err != nil {
				return err
			}
		}
	}
	return nil
}

// locate resolves t under the network's scale.
func (r *runner) locate(t TileRef) (coord.SubUnit, coord.Point, error) {
	sus := r.scale.SubUnitsOf(t.Cell.Cell())
	if t.SubUnit >= len(sus) {
		return coord.SubUnit{}, coord.Point{}, fmt.Errorf("sub_unit %d out of range, cell has %d", t.SubUnit, len(sus))
	}
	p := t.Tile.Point()
	if p.X >= r.scale.Tiles || p.Y >= r.scale.Tiles {
		return coord.SubUnit{}, coord.Point{}, fmt.Errorf("tile %v out of range, sub-unit has %d×%d", p, r.scale.Tiles, r.scale.Tiles)
	}
	return sus[t.SubUnit], p, nil
}

func (r *runner) location(t TileRef) (coord.Location, error) {
	su, p, err := r.locate(t)
	if err != nil {
		return coord.Location{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return r.scale.LocationOf(su, p), nil
}

func (r *runner) addItems(su coord.SubUnit, p coord.Point, items []ItemSpec) error {
	for _, it := range items {
		phase, err := world.ParsePhase(it.Phase)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		if err := r.w.AddItem(su, p, r.items.Spawn(it.Kind, phase, world.Volume(it.Volume))); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) step(st Step) (Event, error) {
	var (
		ev   Event
		miss checks
		want = st.Expect
	)
	if want == nil {
		want = &Expect{}
	}

	switch st.Op {
	case OpConnect, OpDisconnect:
		a, b := st.From.Cell(), st.To.Cell()
		mutate := r.net.Connect
		if st.Op == OpDisconnect {
			mutate = r.net.Disconnect
		}
		err := mutate(a, b)
		code := ErrorCode(err)
		ev.Target, ev.Result = fmt.Sprintf("%v %v", a, b), code
		if want.OK != nil {
			miss.check(*want.OK == (err == nil), "want ok=%t", *want.OK)
		}
		if want.Error != "" {
			miss.check(want.Error == code, "want error %s", want.Error)
		}

	case OpGrid:
		c := st.At.Cell.Cell()
		got := r.net.GridAt(c)
		ev.Target, ev.Result = c.String(), fmt.Sprint(got.Sorted())
		if want.Cells != nil {
			exp := connectivity.NewSet(cellsOf(want.Cells)...)
			miss.check(sameSet(exp, got), "want cells %v", exp.Sorted())
		}

	case OpNeighbors:
		c := st.At.Cell.Cell()
		got := r.net.GridConnectivityAt(c)
		ev.Target, ev.Result = c.String(), fmt.Sprint(got)
		if want.Offsets != nil {
			exp := make([]coord.Offset, len(want.Offsets))
			for i, o := range want.Offsets {
				exp[i] = o.Offset()
			}
			miss.check(slices.Equal(exp, got), "want offsets %v", exp)
		}

	case OpStorage:
		c := st.At.Cell.Cell()
		got := r.net.WaterStorageAt(c)
		ev.Target, ev.Result = c.String(), got.String()
		if want.Capacity != nil {
			miss.check(int64(got.Capacity) == *want.Capacity, "want capacity_ml %d", *want.Capacity)
		}
		if want.Stored != nil {
			miss.check(int64(got.Stored) == *want.Stored, "want stored_ml %d", *want.Stored)
		}

	case OpContentsChanged, OpStructureChanged:
		loc, err := r.location(st.At)
		if err != nil {
			return ev, err
		}
		if st.Op == OpContentsChanged {
			r.net.OnContentsChanged(loc)
		} else {
			r.net.OnStructureChanged(loc)
		}
		ev.Target = loc.String()

	case OpDrain:
		loc, err := r.location(st.At)
		if err != nil {
			return ev, err
		}
		got := r.net.DisconnectTank(loc)
		ev.Target = loc.String()
		if got.Kind == "" {
			ev.Result = "nothing"
		} else {
			ev.Result = fmt.Sprintf("%s %v", got.Kind, got.Volume)
		}
		ev.Result += fmt.Sprintf(" tanks=%d placed=%t", got.Tanks, got.Placed)
		if want.Kind != nil {
			miss.check(got.Kind == *want.Kind, "want kind %q", *want.Kind)
		}
		if want.Volume != nil {
			miss.check(int64(got.Volume) == *want.Volume, "want volume_ml %d", *want.Volume)
		}
		if want.Tanks != nil {
			miss.check(got.Tanks == *want.Tanks, "want tanks %d", *want.Tanks)
		}
		if want.Placed != nil {
			miss.check(got.Placed == *want.Placed, "want placed=%t", *want.Placed)
		}

	case OpFill:
		su, p, err := r.locate(st.At)
		if err != nil {
			return ev, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		var parts []string
		if st.Fixture != "" {
			if err := r.w.SetFixture(su, p, st.Fixture); err != nil {
				return ev, err
			}
			parts = append(parts, "fixture="+st.Fixture)
		}
		if len(st.Items) > 0 {
			if err := r.addItems(su, p, st.Items); err != nil {
				return ev, err
			}
			parts = append(parts, fmt.Sprintf("items=%d", len(st.Items)))
		}
		ev.Target, ev.Result = r.scale.LocationOf(su, p).String(), strings.Join(parts, " ")

	case OpClear:
		r.net.Clear()

	default:
		return ev, fmt.Errorf("%w: unknown op %q", ErrInvalidScenario, st.Op)
	}

	ev.Failure = miss.String()
	return ev, nil
}

// checks collects expectation misses.
type checks []string

func (c *checks) check(ok bool, format string, args ...any) {
	if !ok {
		*c = append(*c, fmt.Sprintf(format, args...))
	}
}

func (c checks) String() string { return strings.Join(c, "; ") }

func cellsOf(refs []CellRef) []coord.Cell {
	out := make([]coord.Cell, len(refs))
	for i, r := range refs {
		out[i] = r.Cell()
	}
	return out
}

func sameSet(a, b connectivity.Set) bool {
	if len(a) != len(b) {
		return false
	}
	for c := range a {
		if !b.Contains(c) {
			return false
		}
	}
	return true
}
