// Package store is the entity manager (spec §2 C1, §3 "Entity
// manager", §4.1). For every entity kind it keeps a dense primary map
// plus the secondary indices that kind needs, and it is the only
// package allowed to mutate those maps: every create/update/destroy
// goes through a method here so indices can never drift from the
// primary map (spec §4.1, "every mutator keeps every index in sync
// within a single call").
//
// Grounded on the teacher's per-kind modules (oglike_server/internal
// /model/planet.go, fleet.go, player.go) plus the DB-backed lookups in
// oglike_server/internal/game/*_db_utils.go, which play the analogous
// role of "the only code that knows how a row is keyed and indexed"
// for a Postgres-backed planet/fleet/player set; this package keeps
// that shape but holds everything in memory, since the turn engine
// has no database of its own (spec §1, persistence out of scope).
package store

import (
	"fmt"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
)

// Store holds every entity kind the turn engine operates on, plus the
// id counters that mint new ones (spec §3 "Entity manager").
type Store struct {
	Counters *ids.Counters

	houses   map[ids.HouseId]*model.House
	colonies map[ids.ColonyId]*model.Colony
	neorias  map[ids.NeoriaId]*model.Neoria
	kastras  map[ids.KastraId]*model.Kastra
	fleets   map[ids.FleetId]*model.Fleet
	squadrons map[ids.SquadronId]*model.Squadron
	ships    map[ids.ShipId]*model.Ship
	ground   map[ids.GroundUnitId]*model.GroundUnit

	// secondary indices
	colonyByOwner map[ids.HouseId]map[ids.ColonyId]bool
	neoriaByColony map[ids.ColonyId]map[ids.NeoriaId]bool
	kastraByColony map[ids.ColonyId]map[ids.KastraId]bool
	groundByColony map[ids.ColonyId]map[ids.GroundUnitId]bool

	fleetByOwner  map[ids.HouseId]map[ids.FleetId]bool
	fleetBySystem map[ids.SystemId]map[ids.FleetId]bool

	squadronByFleet map[ids.FleetId]map[ids.SquadronId]bool

	shipByFleet map[ids.FleetId]map[ids.ShipId]bool
	shipByOwner map[ids.HouseId]map[ids.ShipId]bool
}

// New builds an empty store with fresh counters.
func New() *Store {
	return &Store{
		Counters:        ids.NewCounters(),
		houses:          map[ids.HouseId]*model.House{},
		colonies:        map[ids.ColonyId]*model.Colony{},
		neorias:         map[ids.NeoriaId]*model.Neoria{},
		kastras:         map[ids.KastraId]*model.Kastra{},
		fleets:          map[ids.FleetId]*model.Fleet{},
		squadrons:       map[ids.SquadronId]*model.Squadron{},
		ships:           map[ids.ShipId]*model.Ship{},
		ground:          map[ids.GroundUnitId]*model.GroundUnit{},
		colonyByOwner:   map[ids.HouseId]map[ids.ColonyId]bool{},
		neoriaByColony:  map[ids.ColonyId]map[ids.NeoriaId]bool{},
		kastraByColony:  map[ids.ColonyId]map[ids.KastraId]bool{},
		groundByColony:  map[ids.ColonyId]map[ids.GroundUnitId]bool{},
		fleetByOwner:    map[ids.HouseId]map[ids.FleetId]bool{},
		fleetBySystem:   map[ids.SystemId]map[ids.FleetId]bool{},
		squadronByFleet: map[ids.FleetId]map[ids.SquadronId]bool{},
		shipByFleet:     map[ids.FleetId]map[ids.ShipId]bool{},
		shipByOwner:     map[ids.HouseId]map[ids.ShipId]bool{},
	}
}

func addIndex2[K1, K2 comparable](idx map[K1]map[K2]bool, a K1, b K2) {
	m, ok := idx[a]
	if !ok {
		m = map[K2]bool{}
		idx[a] = m
	}
	m[b] = true
}

func removeIndex2[K1, K2 comparable](idx map[K1]map[K2]bool, a K1, b K2) {
	if m, ok := idx[a]; ok {
		delete(m, b)
		if len(m) == 0 {
			delete(idx, a)
		}
	}
}

func keys2[K1, K2 comparable](idx map[K1]map[K2]bool, a K1) []K2 {
	m := idx[a]
	out := make([]K2, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// ---- House ----

func (s *Store) CreateHouse(name string) *model.House {
	id := s.Counters.NextHouseId()
	h := model.NewHouse(id, name)
	s.houses[id] = h
	return h
}

func (s *Store) GetHouse(id ids.HouseId) (*model.House, error) {
	h, ok := s.houses[id]
	if !ok {
		return nil, ids.NewNotFound("House", uint32(id))
	}
	return h, nil
}

func (s *Store) IterHouses() []*model.House {
	out := make([]*model.House, 0, len(s.houses))
	for _, h := range s.houses {
		out = append(out, h)
	}
	return out
}

// ---- Colony ----

func (s *Store) CreateColony(c *model.Colony) {
	s.colonies[c.ID] = c
	addIndex2(s.colonyByOwner, c.HouseId, c.ID)
}

func (s *Store) GetColony(id ids.ColonyId) (*model.Colony, error) {
	c, ok := s.colonies[id]
	if !ok {
		return nil, ids.NewNotFound("Colony", uint32(id))
	}
	return c, nil
}

// DestroyColony removes a colony and cascades to its ground units
// (spec §3 "Lifecycles": "a destroyed colony releases its ground
// units"). Neorias/Kastras are destroyed alongside it too since they
// have no existence independent of their colony.
func (s *Store) DestroyColony(id ids.ColonyId) {
	c, ok := s.colonies[id]
	if !ok {
		return
	}
	for _, gid := range keys2(s.groundByColony, id) {
		delete(s.ground, gid)
	}
	delete(s.groundByColony, id)
	for _, nid := range keys2(s.neoriaByColony, id) {
		delete(s.neorias, nid)
	}
	delete(s.neoriaByColony, id)
	for _, kid := range keys2(s.kastraByColony, id) {
		delete(s.kastras, kid)
	}
	delete(s.kastraByColony, id)
	removeIndex2(s.colonyByOwner, c.HouseId, id)
	delete(s.colonies, id)
}

// TransferColony changes a colony's owner in place, keeping the
// by-owner index consistent (used by conquest, spec §4.3 CON2).
func (s *Store) TransferColony(id ids.ColonyId, to ids.HouseId) error {
	c, ok := s.colonies[id]
	if !ok {
		return ids.NewNotFound("Colony", uint32(id))
	}
	removeIndex2(s.colonyByOwner, c.HouseId, id)
	c.HouseId = to
	addIndex2(s.colonyByOwner, to, id)
	return nil
}

func (s *Store) IterColonies() []*model.Colony {
	out := make([]*model.Colony, 0, len(s.colonies))
	for _, c := range s.colonies {
		out = append(out, c)
	}
	return out
}

func (s *Store) ColoniesByOwner(h ids.HouseId) []ids.ColonyId {
	return keys2(s.colonyByOwner, h)
}

// ---- Neoria / Kastra ----

func (s *Store) CreateNeoria(colony ids.ColonyId, n *model.Neoria) {
	id := s.Counters.NextNeoriaId()
	n.ID = id
	n.ColonyId = colony
	s.neorias[id] = n
	addIndex2(s.neoriaByColony, colony, id)
}

func (s *Store) GetNeoria(id ids.NeoriaId) (*model.Neoria, error) {
	n, ok := s.neorias[id]
	if !ok {
		return nil, ids.NewNotFound("Neoria", uint32(id))
	}
	return n, nil
}

func (s *Store) NeoriasByColony(c ids.ColonyId) []ids.NeoriaId {
	return keys2(s.neoriaByColony, c)
}

func (s *Store) CreateKastra(colony ids.ColonyId, k *model.Kastra) {
	id := s.Counters.NextKastraId()
	k.ID = id
	k.ColonyId = colony
	s.kastras[id] = k
	addIndex2(s.kastraByColony, colony, id)
}

func (s *Store) GetKastra(id ids.KastraId) (*model.Kastra, error) {
	k, ok := s.kastras[id]
	if !ok {
		return nil, ids.NewNotFound("Kastra", uint32(id))
	}
	return k, nil
}

func (s *Store) KastrasByColony(c ids.ColonyId) []ids.KastraId {
	return keys2(s.kastraByColony, c)
}

func (s *Store) DestroyKastra(id ids.KastraId) {
	k, ok := s.kastras[id]
	if !ok {
		return
	}
	removeIndex2(s.kastraByColony, k.ColonyId, id)
	delete(s.kastras, id)
}

// ---- Ground unit ----

func (s *Store) CreateGroundUnit(g *model.GroundUnit) {
	id := s.Counters.NextGroundUnitId()
	g.ID = id
	s.ground[id] = g
	addIndex2(s.groundByColony, g.ColonyId, id)
}

func (s *Store) GetGroundUnit(id ids.GroundUnitId) (*model.GroundUnit, error) {
	g, ok := s.ground[id]
	if !ok {
		return nil, ids.NewNotFound("GroundUnit", uint32(id))
	}
	return g, nil
}

func (s *Store) GroundUnitsByColony(c ids.ColonyId) []ids.GroundUnitId {
	return keys2(s.groundByColony, c)
}

func (s *Store) DestroyGroundUnit(id ids.GroundUnitId) {
	g, ok := s.ground[id]
	if !ok {
		return
	}
	removeIndex2(s.groundByColony, g.ColonyId, id)
	delete(s.ground, id)
}

// ---- Fleet ----

func (s *Store) CreateFleet(house ids.HouseId, at ids.SystemId) *model.Fleet {
	id := s.Counters.NextFleetId()
	f := &model.Fleet{ID: id, HouseId: house, Location: at, Status: model.FleetActive}
	s.fleets[id] = f
	addIndex2(s.fleetByOwner, house, id)
	addIndex2(s.fleetBySystem, at, id)
	return f
}

func (s *Store) GetFleet(id ids.FleetId) (*model.Fleet, error) {
	f, ok := s.fleets[id]
	if !ok {
		return nil, ids.NewNotFound("Fleet", uint32(id))
	}
	return f, nil
}

// MoveFleet updates a fleet's location and the by-system index in one
// step (spec §4.6 step 2: fleet movement).
func (s *Store) MoveFleet(id ids.FleetId, to ids.SystemId) error {
	f, ok := s.fleets[id]
	if !ok {
		return ids.NewNotFound("Fleet", uint32(id))
	}
	removeIndex2(s.fleetBySystem, f.Location, id)
	f.Location = to
	addIndex2(s.fleetBySystem, to, id)
	return nil
}

// DestroyFleet removes a fleet and releases its squadrons/ships (spec
// §3 "a destroyed fleet releases its ships and cancels its command").
// Ships are not deleted — callers decide their fate (reassign,
// destroy) before calling this; this only clears FleetId back to
// InvalidID for any ship still pointing at this fleet through a
// squadron that was NOT already detached.
func (s *Store) DestroyFleet(id ids.FleetId) {
	f, ok := s.fleets[id]
	if !ok {
		return
	}
	for _, sqid := range keys2(s.squadronByFleet, id) {
		if sq, ok := s.squadrons[sqid]; ok {
			for _, shid := range sq.Ships {
				if sh, ok := s.ships[shid]; ok {
					sh.FleetId = ids.InvalidID
				}
				removeIndex2(s.shipByFleet, id, shid)
			}
		}
		delete(s.squadrons, sqid)
	}
	delete(s.squadronByFleet, id)
	removeIndex2(s.fleetByOwner, f.HouseId, id)
	removeIndex2(s.fleetBySystem, f.Location, id)
	delete(s.fleets, id)
}

func (s *Store) FleetsByOwner(h ids.HouseId) []ids.FleetId  { return keys2(s.fleetByOwner, h) }
func (s *Store) FleetsBySystem(sy ids.SystemId) []ids.FleetId { return keys2(s.fleetBySystem, sy) }

func (s *Store) IterFleets() []*model.Fleet {
	out := make([]*model.Fleet, 0, len(s.fleets))
	for _, f := range s.fleets {
		out = append(out, f)
	}
	return out
}

// ---- Squadron ----

func (s *Store) CreateSquadron(fleet ids.FleetId, typ model.SquadronType, flagship ids.ShipId) (*model.Squadron, error) {
	f, ok := s.fleets[fleet]
	if !ok {
		return nil, ids.NewNotFound("Fleet", uint32(fleet))
	}
	id := s.Counters.NextSquadronId()
	sq := &model.Squadron{ID: id, Type: typ, Flagship: flagship, Ships: []ids.ShipId{flagship}}
	s.squadrons[id] = sq
	addIndex2(s.squadronByFleet, fleet, id)
	f.Squadrons = append(f.Squadrons, id)
	return sq, nil
}

func (s *Store) GetSquadron(id ids.SquadronId) (*model.Squadron, error) {
	sq, ok := s.squadrons[id]
	if !ok {
		return nil, ids.NewNotFound("Squadron", uint32(id))
	}
	return sq, nil
}

func (s *Store) SquadronsByFleet(f ids.FleetId) []ids.SquadronId { return keys2(s.squadronByFleet, f) }

// DestroySquadron removes an empty squadron from its fleet. Per spec
// §4.1 callers must never leave a dangling reference: this refuses
// (returns an error) if the squadron still has ships attached.
func (s *Store) DestroySquadron(id ids.SquadronId) error {
	sq, ok := s.squadrons[id]
	if !ok {
		return ids.NewNotFound("Squadron", uint32(id))
	}
	if len(sq.Ships) != 0 {
		return fmt.Errorf("squadron %d still has %d ships", id, len(sq.Ships))
	}
	for fleetID, m := range s.squadronByFleet {
		if m[id] {
			removeIndex2(s.squadronByFleet, fleetID, id)
			if f, ok := s.fleets[fleetID]; ok {
				f.Squadrons = removeSquadronID(f.Squadrons, id)
			}
			break
		}
	}
	delete(s.squadrons, id)
	return nil
}

func removeSquadronID(list []ids.SquadronId, id ids.SquadronId) []ids.SquadronId {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ---- Ship ----

func (s *Store) CreateShip(house ids.HouseId, sh *model.Ship) {
	id := s.Counters.NextShipId()
	sh.ID = id
	sh.HouseId = house
	s.ships[id] = sh
	addIndex2(s.shipByOwner, house, id)
	if sh.FleetId != ids.InvalidID {
		addIndex2(s.shipByFleet, sh.FleetId, id)
	}
}

func (s *Store) GetShip(id ids.ShipId) (*model.Ship, error) {
	sh, ok := s.ships[id]
	if !ok {
		return nil, ids.NewNotFound("Ship", uint32(id))
	}
	return sh, nil
}

// AssignShipToFleet moves a ship's FleetId and keeps the by-fleet
// index consistent. Squadron membership is managed separately by the
// caller (internal/engine) since a ship may move squadrons without
// changing fleets.
func (s *Store) AssignShipToFleet(ship ids.ShipId, fleet ids.FleetId) error {
	sh, ok := s.ships[ship]
	if !ok {
		return ids.NewNotFound("Ship", uint32(ship))
	}
	if sh.FleetId != ids.InvalidID {
		removeIndex2(s.shipByFleet, sh.FleetId, ship)
	}
	sh.FleetId = fleet
	if fleet != ids.InvalidID {
		addIndex2(s.shipByFleet, fleet, ship)
	}
	return nil
}

func (s *Store) DestroyShip(id ids.ShipId) {
	sh, ok := s.ships[id]
	if !ok {
		return
	}
	if sh.FleetId != ids.InvalidID {
		removeIndex2(s.shipByFleet, sh.FleetId, id)
	}
	removeIndex2(s.shipByOwner, sh.HouseId, id)
	delete(s.ships, id)
}

func (s *Store) ShipsByFleet(f ids.FleetId) []ids.ShipId { return keys2(s.shipByFleet, f) }
func (s *Store) ShipsByOwner(h ids.HouseId) []ids.ShipId { return keys2(s.shipByOwner, h) }

func (s *Store) IterShips() []*model.Ship {
	out := make([]*model.Ship, 0, len(s.ships))
	for _, sh := range s.ships {
		out = append(out, sh)
	}
	return out
}
