package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
)

func TestColonyPopulationDerivesFromSouls(t *testing.T) {
	c := &model.Colony{Souls: 4_500_000}
	assert.EqualValues(t, 4, c.Population()) // P3: population == souls / 1_000_000
}

func TestColonyCappedPopulation(t *testing.T) {
	c := &model.Colony{Souls: 9_000_000, PlanetClass: 2}
	caps := map[int]int64{2: 5}
	assert.EqualValues(t, 5, c.CappedPopulation(caps))
}

func squadronLookupFor(squadrons map[ids.SquadronId]*model.Squadron) func(ids.SquadronId) (*model.Squadron, bool) {
	return func(id ids.SquadronId) (*model.Squadron, bool) {
		sq, ok := squadrons[id]
		return sq, ok
	}
}

func TestFleetIsPureIntel(t *testing.T) {
	squadrons := map[ids.SquadronId]*model.Squadron{
		1: {ID: 1, Type: model.IntelSquadron},
		2: {ID: 2, Type: model.CombatSquadron},
	}
	lookup := squadronLookupFor(squadrons)

	pureIntel := &model.Fleet{Squadrons: []ids.SquadronId{1}}
	assert.True(t, pureIntel.IsPureIntel(lookup))
	assert.True(t, pureIntel.HasIntelSquadron(lookup))

	mixed := &model.Fleet{Squadrons: []ids.SquadronId{1, 2}}
	assert.False(t, mixed.IsPureIntel(lookup))
	assert.True(t, mixed.HasIntelSquadron(lookup))

	empty := &model.Fleet{}
	assert.True(t, empty.IsPureIntel(lookup), "an empty fleet has no non-Intel squadron to violate the rule")
}

func TestSquadronTypeForClass(t *testing.T) {
	assert.Equal(t, model.IntelSquadron, model.SquadronTypeForClass(config.Scout))
	assert.Equal(t, model.ExpansionSquadron, model.SquadronTypeForClass(config.ETAC))
	assert.Equal(t, model.AuxiliarySquadron, model.SquadronTypeForClass(config.Freighter))
	assert.Equal(t, model.AuxiliarySquadron, model.SquadronTypeForClass(config.TroopTransport))
	assert.Equal(t, model.FighterSquadron, model.SquadronTypeForClass(config.Fighter))
	assert.Equal(t, model.CombatSquadron, model.SquadronTypeForClass(config.Destroyer))
}

func TestShipApplyDamageCripplingAndDestruction(t *testing.T) {
	sh := &model.Ship{InitialDefense: 100, RemainingDefense: 100, State: model.Undamaged}

	changed := sh.ApplyDamage(40, 0.5)
	assert.False(t, changed, "60/100 remaining is still above the 0.5x cripple threshold")
	assert.Equal(t, model.Undamaged, sh.State)

	changed = sh.ApplyDamage(15, 0.5)
	assert.True(t, changed, "45/100 remaining crosses the 0.5x cripple threshold")
	assert.Equal(t, model.Crippled, sh.State)

	changed = sh.ApplyDamage(100, 0.5)
	assert.True(t, changed)
	assert.Equal(t, model.Destroyed, sh.State)
	assert.Equal(t, 0, sh.RemainingDefense)
}

func TestStarMapShortestPathRespectsRestrictedLanes(t *testing.T) {
	m := model.NewStarMap()
	m.AddLane(1, 2, model.Restricted)
	m.AddLane(2, 3, model.Major)

	// B2: a fleet with an Expansion squadron cannot traverse a
	// Restricted lane.
	blocked := model.TraverserCapabilities{HasExpansionOrAuxiliary: true}
	_, ok := m.ShortestPath(1, 2, blocked)
	assert.False(t, ok)

	// A pure Intel fleet (no crippled ships, no Expansion/Auxiliary
	// squadrons) may use the same lane.
	allowed := model.TraverserCapabilities{}
	path, ok := m.ShortestPath(1, 2, allowed)
	require.True(t, ok)
	assert.Equal(t, []ids.SystemId{1, 2}, path)
}

func TestStarMapShortestPathMultiHop(t *testing.T) {
	m := model.NewStarMap()
	m.AddLane(1, 2, model.Major)
	m.AddLane(2, 3, model.Major)
	m.AddLane(1, 3, model.Minor)

	path, ok := m.ShortestPath(1, 3, model.TraverserCapabilities{})
	require.True(t, ok)
	assert.Equal(t, []ids.SystemId{1, 3}, path, "direct Minor lane is shorter than the two-hop Major route")
}

func TestStarMapNoPath(t *testing.T) {
	m := model.NewStarMap()
	m.AddSystem(1)
	m.AddSystem(2)

	_, ok := m.ShortestPath(1, 2, model.TraverserCapabilities{})
	assert.False(t, ok)
}

func TestDiplomaticMatrixMutuallyHostile(t *testing.T) {
	m := model.NewDiplomaticMatrix()
	h1, h2 := ids.HouseId(1), ids.HouseId(2)

	assert.False(t, m.MutuallyHostile(h1, h2), "default Neutral posture is not hostile")

	m.Set(h1, h2, model.Hostile, 3)
	assert.True(t, m.MutuallyHostile(h1, h2), "one side declaring Hostile is enough")

	m2 := model.NewDiplomaticMatrix()
	m2.Set(h1, h2, model.Enemy, 1)
	assert.True(t, m2.MutuallyHostile(h2, h1), "Enemy posture triggers combat regardless of query direction")
}

func TestOngoingEffectTicksDownToExpiry(t *testing.T) {
	e := &model.OngoingEffect{TurnsRemaining: 2}
	assert.False(t, e.Expired())
	e.Tick()
	assert.False(t, e.Expired())
	e.Tick()
	assert.True(t, e.Expired())
}
