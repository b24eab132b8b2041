package world_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plumbgrid/world"
)

func TestSpawner_Spawn(t *testing.T) {
	it := world.Spawner{}.Spawn("water_clean", world.Liquid, 1500)
	assert.Equal(t, "water_clean", it.Kind)
	assert.Equal(t, world.Volume(1500), it.Volume)
	assert.True(t, it.IsLiquid())
	_, err := uuid.Parse(it.ID)
	assert.NoError(t, err, "item id should be a UUID")

	other := world.Spawner{}.Spawn("water_clean", world.Liquid, 1500)
	assert.NotEqual(t, it.ID, other.ID)
}

func TestPhase_Parse(t *testing.T) {
	for _, p := range []world.Phase{world.Solid, world.Liquid, world.Gas} {
		got, err := world.ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := world.ParsePhase("plasma")
	assert.Error(t, err)
}

func TestFixtureCatalog(t *testing.T) {
	c := world.DefaultCatalog()
	v, ok := c.Capacity(world.DefaultTankFixture)
	assert.True(t, ok)
	assert.Equal(t, world.Volume(240000), v)
	_, ok = c.Capacity("f_chair")
	assert.False(t, ok)
	assert.Equal(t, "240000 ml", v.String())
}
