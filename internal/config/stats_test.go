package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec4x/engine/internal/config"
)

func TestDefaultConfigIsInternallyConsistent(t *testing.T) {
	cfg := config.Default()

	// Every closed ship class must resolve at WEP level 0 so a
	// freshly-created house never hits MissingTableEntry.
	for class := config.Fighter; class <= config.PlanetBreaker; class++ {
		_, err := cfg.ShipStats.Lookup(class, 0)
		require.NoError(t, err, "class %s should have a level-0 entry", class)
	}

	for class := config.Militia; class <= config.PlanetaryDefenseCorps; class++ {
		_, err := cfg.GroundUnitStats.Lookup(class, 0)
		require.NoError(t, err, "class %s should have a level-0 entry", class)
	}

	for class := config.Spaceport; class <= config.StarbaseFacility; class++ {
		_, err := cfg.FacilityStats.Lookup(class, 0)
		require.NoError(t, err, "class %s should have a level-0 entry", class)
	}
}

func TestShipStatsLookupClampsToHighestDefinedLevel(t *testing.T) {
	table := config.ShipStatsTable{
		config.Destroyer: {
			0: {Attack: 10},
			3: {Attack: 20},
		},
	}

	stats, err := table.Lookup(config.Destroyer, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Attack, "level 1 isn't defined; should clamp down to 0")

	stats, err = table.Lookup(config.Destroyer, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Attack, "level 5 clamps down to the highest defined level, 3")
}

func TestShipStatsLookupMissingClassIsConfigError(t *testing.T) {
	table := config.ShipStatsTable{}
	_, err := table.Lookup(config.Cruiser, 0)
	require.Error(t, err)
	var missing *config.MissingTableEntry
	assert.ErrorAs(t, err, &missing)
}

func TestCapitalClassification(t *testing.T) {
	assert.True(t, config.Cruiser.CapitalClass())
	assert.True(t, config.Dreadnought.CapitalClass())
	assert.True(t, config.PlanetBreaker.CapitalClass())
	assert.False(t, config.Fighter.CapitalClass())
	assert.False(t, config.Scout.CapitalClass())
	assert.False(t, config.Destroyer.CapitalClass())
}

func TestFacilityIsNeoria(t *testing.T) {
	assert.True(t, config.Spaceport.IsNeoria())
	assert.True(t, config.Shipyard.IsNeoria())
	assert.True(t, config.Drydock.IsNeoria())
	assert.False(t, config.StarbaseFacility.IsNeoria())
}
