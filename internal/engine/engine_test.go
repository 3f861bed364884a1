package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/engine"
	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/state"
)

// newTestGalaxy builds a two-system star map joined by a Major lane,
// one house with a treasury and a single combat-capable fleet at
// system 1.
func newTestGalaxy(t *testing.T) (*state.GameState, ids.HouseId, *model.Fleet) {
	t.Helper()
	starMap := model.NewStarMap()
	starMap.AddLane(1, 2, model.Major)

	gs := state.New(config.Default(), starMap)
	h := gs.Store.CreateHouse("House Atreides")
	h.Treasury = config.NewPP(10_000)

	f := gs.Store.CreateFleet(h.ID, ids.SystemId(1))
	sh := &model.Ship{Class: config.Destroyer, State: model.Undamaged, InitialDefense: 100, RemainingDefense: 100}
	gs.Store.CreateShip(h.ID, sh)
	require.NoError(t, gs.Store.AssignShipToFleet(sh.ID, f.ID))
	_, err := gs.Store.CreateSquadron(f.ID, model.CombatSquadron, sh.ID)
	require.NoError(t, err)

	return gs, h.ID, f
}

func TestResolveTurnWithNoCommandsStillAdvancesTurn(t *testing.T) {
	// B1: an empty CommandPacket set is a legal no-op turn.
	gs, _, _ := newTestGalaxy(t)
	startTurn := gs.Turn

	result, err := engine.ResolveTurn(gs, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, startTurn+1, gs.Turn)
	assert.False(t, result.VictoryCheck.Achieved)
}

func TestResolveTurnIsDeterministicForIdenticalInputs(t *testing.T) {
	// P5: resolve_turn(state, commands, seed) must be a pure function —
	// two independently constructed, identical starting states produce
	// bit-identical event logs and combat results for the same seed.
	build := func() *state.GameState {
		gs, _, _ := newTestGalaxy(t)
		return gs
	}

	gsA := build()
	gsB := build()

	resA, err := engine.ResolveTurn(gsA, nil, 99)
	require.NoError(t, err)
	resB, err := engine.ResolveTurn(gsB, nil, 99)
	require.NoError(t, err)

	require.Equal(t, len(resA.EventsOrdered), len(resB.EventsOrdered))
	for i := range resA.EventsOrdered {
		assert.Equal(t, resA.EventsOrdered[i].Kind, resB.EventsOrdered[i].Kind)
		assert.Equal(t, resA.EventsOrdered[i].Seq, resB.EventsOrdered[i].Seq)
	}
	assert.Equal(t, gsA.Turn, gsB.Turn)
}

func TestResolveTurnMovesFleetAcrossMajorLane(t *testing.T) {
	// E2: a Move command across a single Major lane transitions the
	// fleet to its destination by the end of the Production phase.
	gs, house, f := newTestGalaxy(t)

	packet := engine.CommandPacket{
		HouseId: house,
		Turn:    gs.Turn,
		FleetCommands: []engine.FleetCommandInput{
			{Fleet: f.ID, Code: model.CmdMove, TargetSystem: ids.SystemId(2)},
		},
	}

	_, err := engine.ResolveTurn(gs, []engine.CommandPacket{packet}, 1)
	require.NoError(t, err)

	moved, err := gs.Store.GetFleet(f.ID)
	require.NoError(t, err)
	assert.Equal(t, ids.SystemId(2), moved.Location)
}

func TestResolveTurnRejectsTransferThatWouldMixIntelAndCombat(t *testing.T) {
	// E6: a zero-turn ship transfer that would merge an Intel squadron
	// into a fleet already carrying a combat squadron is rejected, not
	// silently executed.
	gs, house, combatFleet := newTestGalaxy(t)

	scoutFleet := gs.Store.CreateFleet(house, ids.SystemId(1))
	scout := &model.Ship{Class: config.Scout, State: model.Undamaged, InitialDefense: 10, RemainingDefense: 10}
	gs.Store.CreateShip(house, scout)
	require.NoError(t, gs.Store.AssignShipToFleet(scout.ID, scoutFleet.ID))
	_, err := gs.Store.CreateSquadron(scoutFleet.ID, model.IntelSquadron, scout.ID)
	require.NoError(t, err)

	packet := engine.CommandPacket{
		HouseId: house,
		Turn:    gs.Turn,
		ZeroTurnOps: []engine.ZeroTurnOpInput{
			{Kind: engine.ZeroMergeFleets, SourceFleet: scoutFleet.ID, TargetFleet: combatFleet.ID},
		},
	}

	_, err = engine.ResolveTurn(gs, []engine.CommandPacket{packet}, 1)
	require.NoError(t, err)

	// The merge must not have happened: both fleets still exist
	// independently.
	_, errScout := gs.Store.GetFleet(scoutFleet.ID)
	_, errCombat := gs.Store.GetFleet(combatFleet.ID)
	assert.NoError(t, errScout)
	assert.NoError(t, errCombat)
}

func TestCapacityGracePeriodScrapsOnlyAfterTwoTurnsOver(t *testing.T) {
	// E5: exceeding the total-squadron cap tolerates a 2-turn grace
	// period before the engine auto-scraps the lowest-priority
	// squadron.
	gs, house, _ := newTestGalaxy(t)

	col := &model.Colony{ID: ids.ColonyId(1), HouseId: house, Souls: 1_000_000, PlanetClass: 1, Infrastructure: 1}
	gs.Store.CreateColony(col)

	limit := gs.Config.Economy.TotalSquadronLimitBase
	fleet := gs.Store.CreateFleet(house, ids.SystemId(1))
	for i := 0; i < limit+1; i++ {
		sh := &model.Ship{Class: config.Frigate, State: model.Undamaged, InitialDefense: 10, RemainingDefense: 10}
		gs.Store.CreateShip(house, sh)
		require.NoError(t, gs.Store.AssignShipToFleet(sh.ID, fleet.ID))
		_, err := gs.Store.CreateSquadron(fleet.ID, model.CombatSquadron, sh.ID)
		require.NoError(t, err)
	}

	totalSquadronsBefore := len(gs.Store.SquadronsByFleet(fleet.ID))
	require.Equal(t, limit+1, totalSquadronsBefore)

	// Turn T: over cap, still within grace.
	_, err := engine.ResolveTurn(gs, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, limit+1, len(gs.Store.SquadronsByFleet(fleet.ID)), "grace period turn 1: no scrap yet")

	// Turn T+1: still within grace.
	_, err = engine.ResolveTurn(gs, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, limit+1, len(gs.Store.SquadronsByFleet(fleet.ID)), "grace period turn 2: no scrap yet")

	// Turn T+2: grace period has expired. Colony 1 also holds the
	// squadron of newTestGalaxy's fleet, so it is two over the cap and
	// the two highest-id squadrons, both in this fleet, are scrapped.
	_, err = engine.ResolveTurn(gs, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, limit-1, len(gs.Store.SquadronsByFleet(fleet.ID)), "grace period expired: both excess squadrons scrapped")
}

func TestCapitalSquadronOverageScrapsImmediately(t *testing.T) {
	// spec §4.4 step 7: capital-squadron overage gets no grace period
	// at all.
	gs, house, _ := newTestGalaxy(t)
	col := &model.Colony{ID: ids.ColonyId(1), HouseId: house, Souls: 1_000_000, PlanetClass: 1}
	gs.Store.CreateColony(col)

	limit := gs.Config.Economy.CapitalSquadronLimitBase
	fleet := gs.Store.CreateFleet(house, ids.SystemId(1))
	for i := 0; i < limit+1; i++ {
		sh := &model.Ship{Class: config.Cruiser, State: model.Undamaged, InitialDefense: 500, RemainingDefense: 500}
		gs.Store.CreateShip(house, sh)
		require.NoError(t, gs.Store.AssignShipToFleet(sh.ID, fleet.ID))
		_, err := gs.Store.CreateSquadron(fleet.ID, model.CombatSquadron, sh.ID)
		require.NoError(t, err)
	}

	_, err := engine.ResolveTurn(gs, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, limit, len(gs.Store.SquadronsByFleet(fleet.ID)), "capital overage scraps on the very first Income phase")
}

func TestLoadThenUnloadCargoRestoresSoulsExactly(t *testing.T) {
	// R3: LoadCargo followed by UnloadCargo of the same amount at the
	// same colony must exactly restore the colony's soul count.
	gs, house, f := newTestGalaxy(t)
	col := &model.Colony{ID: ids.ColonyId(1), HouseId: house, Souls: 5_000_000, PlanetClass: 1}
	gs.Store.CreateColony(col)
	require.NoError(t, gs.Store.MoveFleet(f.ID, col.ID))

	bus := events.NewBus(gs.Turn)
	const amount = int64(1_500_000)

	rejected := engine.ExecuteZeroTurnOps(gs, bus, house, []engine.ZeroTurnOpInput{
		{Kind: engine.ZeroLoadCargo, SourceFleet: f.ID, Colony: col.ID, Amount: amount},
	})
	require.Empty(t, rejected)
	assert.Equal(t, int64(5_000_000)-amount, col.Souls)

	rejected = engine.ExecuteZeroTurnOps(gs, bus, house, []engine.ZeroTurnOpInput{
		{Kind: engine.ZeroUnloadCargo, SourceFleet: f.ID, Colony: col.ID, Amount: amount},
	})
	require.Empty(t, rejected)
	assert.Equal(t, int64(5_000_000), col.Souls)
}
