package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/store"
)

func newFleetWithSquadron(t *testing.T, s *store.Store, house ids.HouseId, system ids.SystemId) (*model.Fleet, *model.Squadron, *model.Ship) {
	t.Helper()
	f := s.CreateFleet(house, system)
	sh := &model.Ship{Class: config.Destroyer, State: model.Undamaged}
	s.CreateShip(house, sh)
	require.NoError(t, s.AssignShipToFleet(sh.ID, f.ID))
	sq, err := s.CreateSquadron(f.ID, model.CombatSquadron, sh.ID)
	require.NoError(t, err)
	return f, sq, sh
}

func TestFleetLifecycleKeepsIndicesConsistent(t *testing.T) {
	s := store.New()
	h := s.CreateHouse("House Atreides")
	f, _, sh := newFleetWithSquadron(t, s, h.ID, ids.SystemId(1))

	require.NoError(t, s.ValidateIndices())
	assert.Contains(t, s.FleetsByOwner(h.ID), f.ID)
	assert.Contains(t, s.FleetsBySystem(ids.SystemId(1)), f.ID)
	assert.Contains(t, s.ShipsByFleet(f.ID), sh.ID)

	require.NoError(t, s.MoveFleet(f.ID, ids.SystemId(2)))
	assert.NotContains(t, s.FleetsBySystem(ids.SystemId(1)), f.ID)
	assert.Contains(t, s.FleetsBySystem(ids.SystemId(2)), f.ID)
	require.NoError(t, s.ValidateIndices())

	s.DestroyFleet(f.ID)
	require.NoError(t, s.ValidateIndices())
	assert.NotContains(t, s.FleetsByOwner(h.ID), f.ID)
	assert.NotContains(t, s.FleetsBySystem(ids.SystemId(2)), f.ID)

	// P1: the ship released by the destroyed fleet no longer claims
	// membership in it.
	ship, err := s.GetShip(sh.ID)
	require.NoError(t, err)
	assert.Equal(t, ids.FleetId(ids.InvalidID), ship.FleetId)
}

func TestColonyDestroyCascadesToGroundUnitsAndFacilities(t *testing.T) {
	s := store.New()
	h := s.CreateHouse("House Corrino")
	col := &model.Colony{ID: ids.ColonyId(5), HouseId: h.ID, Souls: 2_000_000, PlanetClass: 3}
	s.CreateColony(col)

	s.CreateNeoria(col.ID, &model.Neoria{Class: config.Shipyard})
	s.CreateKastra(col.ID, &model.Kastra{Class: config.StarbaseFacility})
	s.CreateGroundUnit(&model.GroundUnit{ColonyId: col.ID, Class: config.Infantry})

	require.Len(t, s.NeoriasByColony(col.ID), 1)
	require.Len(t, s.KastrasByColony(col.ID), 1)
	require.Len(t, s.GroundUnitsByColony(col.ID), 1)

	s.DestroyColony(col.ID)
	require.NoError(t, s.ValidateIndices())
	assert.Empty(t, s.NeoriasByColony(col.ID))
	assert.Empty(t, s.KastrasByColony(col.ID))
	assert.Empty(t, s.GroundUnitsByColony(col.ID))

	_, err := s.GetColony(col.ID)
	var nf *ids.NotFound
	assert.ErrorAs(t, err, &nf)
}

func TestTransferColonyUpdatesOwnerIndex(t *testing.T) {
	s := store.New()
	h1 := s.CreateHouse("House Atreides")
	h2 := s.CreateHouse("House Harkonnen")
	col := &model.Colony{ID: ids.ColonyId(9), HouseId: h1.ID, Souls: 1_500_000}
	s.CreateColony(col)

	require.NoError(t, s.TransferColony(col.ID, h2.ID))
	require.NoError(t, s.ValidateIndices())

	assert.Contains(t, s.ColoniesByOwner(h2.ID), col.ID)
	assert.NotContains(t, s.ColoniesByOwner(h1.ID), col.ID)
}

func TestDestroySquadronRefusesWhileShipsRemain(t *testing.T) {
	s := store.New()
	h := s.CreateHouse("House Ordos")
	_, sq, _ := newFleetWithSquadron(t, s, h.ID, ids.SystemId(1))

	err := s.DestroySquadron(sq.ID)
	require.Error(t, err)
}

func TestGetNotFoundOnUnknownIds(t *testing.T) {
	s := store.New()
	_, err := s.GetFleet(ids.FleetId(999))
	var nf *ids.NotFound
	assert.ErrorAs(t, err, &nf)
}
