package scenario_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plumbgrid/coord"
	"github.com/katalvlaran/plumbgrid/scenario"
	"github.com/katalvlaran/plumbgrid/world"
	"github.com/katalvlaran/plumbgrid/world/memworld"
	"github.com/katalvlaran/plumbgrid/world/sqlworld"
)

var goldenScenarios = []string{
	"merge_and_drain",
	"split_and_rejects",
	"structure_and_clear",
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRun_Golden(t *testing.T) {
	for _, name := range goldenScenarios {
		t.Run(name, func(t *testing.T) {
			sc, err := scenario.Load(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)

			res, err := scenario.Run(context.Background(), sc, scenario.Memory(memworld.New()))
			require.NoError(t, err)
			assert.Zero(t, res.Failed)

			newGoldie(t).Assert(t, name, res.Trace())
		})
	}
}

func TestRun_SQLiteMatchesMemory(t *testing.T) {
	for _, name := range goldenScenarios {
		t.Run(name, func(t *testing.T) {
			sc, err := scenario.Load(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)

			db, err := sqlworld.Open(filepath.Join(t.TempDir(), "world.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			res, err := scenario.Run(context.Background(), sc, db)
			require.NoError(t, err)

			newGoldie(t).Assert(t, name, res.Trace())
		})
	}
}

func TestRun_RerunOnSameDatabase(t *testing.T) {
	for _, name := range goldenScenarios {
		t.Run(name, func(t *testing.T) {
			sc, err := scenario.Load(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "world.db")
			for run := 1; run <= 2; run++ {
				db, err := sqlworld.Open(path)
				require.NoError(t, err)

				res, err := scenario.Run(context.Background(), sc, db)
				require.NoError(t, err, "run %d", run)
				require.NoError(t, db.Close())

				newGoldie(t).Assert(t, name, res.Trace())
			}
		})
	}
}

func TestRun_RecordsMissedExpectations(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: misses
steps:
  - op: connect
    from: [0, 0, 0]
    to: [2, 0, 0]
    expect: {ok: true}
  - op: storage
    cell: [0, 0, 0]
    expect: {capacity_ml: 1, stored_ml: 0}
  - op: grid
    cell: [0, 0, 0]
    expect: {cells: [[0, 0, 0]]}
`))
	require.NoError(t, err)

	res, err := scenario.Run(context.Background(), sc, scenario.Memory(memworld.New()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, scenario.ErrExpectation), "got %v", err)
	require.Len(t, res.Events, 3, "run continues past a miss")
	assert.Equal(t, 2, res.Failed)

	assert.Equal(t, "not_adjacent", res.Events[0].Result)
	assert.Equal(t, "want ok=true", res.Events[0].Failure)
	assert.Equal(t, "want capacity_ml 1", res.Events[1].Failure)
	assert.Empty(t, res.Events[2].Failure)
	assert.Contains(t, string(res.Trace()), "    FAIL want ok=true\n")
}

func TestRun_ItemIDsAreDeterministic(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "merge_and_drain.yaml"))
	require.NoError(t, err)

	// the drained stack lands on tile [6,6] of cell (2,0,0)'s base sub-unit
	stack := func() world.Item {
		w := memworld.New()
		_, err := scenario.Run(context.Background(), sc, scenario.Memory(w))
		require.NoError(t, err)
		ch, err := w.Chunk(coord.SubUnit{X: 4})
		require.NoError(t, err)
		items := ch.Items(coord.Point{X: 6, Y: 6})
		require.Len(t, items, 1)
		return items[0]
	}

	first, second := stack(), stack()
	assert.Equal(t, first, second)
	assert.Equal(t, world.Volume(3500), first.Volume)
	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err)
}

func TestRun_OutOfRangeAddress(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: bad_tile
steps:
  - op: drain
    cell: [0, 0, 0]
    sub_unit: 4
`))
	require.NoError(t, err, "scale-dependent checks happen at run time")

	_, err = scenario.Run(context.Background(), sc, scenario.Memory(memworld.New()))
	assert.True(t, errors.Is(err, scenario.ErrInvalidScenario), "got %v", err)
}

func TestRun_Canceled(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("testdata", "merge_and_drain.yaml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := scenario.Run(ctx, sc, scenario.Memory(memworld.New()))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, res.Events)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"no name":       "steps:\n  - op: clear\n",
		"no steps":      "name: x\n",
		"unknown field": "name: x\nstepz: []\n",
		"unknown op":    "name: x\nsteps:\n  - op: flood\n",
		"missing op":    "name: x\nsteps:\n  - cell: [0, 0, 0]\n",
		"connect no to": "name: x\nsteps:\n  - op: connect\n    from: [0, 0, 0]\n",
		"grid no cell":  "name: x\nsteps:\n  - op: grid\n",
		"fill nothing":  "name: x\nsteps:\n  - op: fill\n    cell: [0, 0, 0]\n",
		"bad phase":     "name: x\nsteps:\n  - op: fill\n    cell: [0, 0, 0]\n    items:\n      - {kind: w, phase: plasma, volume_ml: 1}\n",
		"short cell":    "name: x\nsteps:\n  - op: grid\n    cell: [0, 0]\n",
		"negative tile": "name: x\nsteps:\n  - op: drain\n    cell: [0, 0, 0]\n    tile: [-1, 0]\n",
		"tank no cell":  "name: x\nworld:\n  tanks:\n    - tile: [0, 0]\nsteps:\n  - op: clear\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(doc))
			assert.True(t, errors.Is(err, scenario.ErrInvalidScenario), "got %v", err)
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "ok", scenario.ErrorCode(nil))
	assert.Equal(t, "error", scenario.ErrorCode(errors.New("boom")))
}
