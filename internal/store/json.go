package store

import (
	"encoding/json"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
)

// snapshot is the serializable shape of a Store: every primary entity
// map plus the counters needed to keep minting fresh ids after a
// reload. Secondary indices are never serialized — they are rebuilt
// deterministically from the primary maps on load, the same way
// ValidateIndices already treats them as derived state (spec §4.1).
type snapshot struct {
	Counters  ids.Snapshot                           `json:"counters"`
	Houses    map[ids.HouseId]*model.House           `json:"houses"`
	Colonies  map[ids.ColonyId]*model.Colony         `json:"colonies"`
	Neorias   map[ids.NeoriaId]*model.Neoria         `json:"neorias"`
	Kastras   map[ids.KastraId]*model.Kastra         `json:"kastras"`
	Fleets    map[ids.FleetId]*model.Fleet           `json:"fleets"`
	Squadrons map[ids.SquadronId]*model.Squadron     `json:"squadrons"`
	Ships     map[ids.ShipId]*model.Ship             `json:"ships"`
	Ground    map[ids.GroundUnitId]*model.GroundUnit `json:"ground_units"`
}

// MarshalJSON serializes every primary entity map; secondary indices
// are rebuilt on load rather than persisted (spec §9: "no implicit
// persistence" — a caller choosing to serialize a GameState gets back
// exactly the entities it put in, nothing index-shaped).
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		Counters:  s.Counters.Snapshot(),
		Houses:    s.houses,
		Colonies:  s.colonies,
		Neorias:   s.neorias,
		Kastras:   s.kastras,
		Fleets:    s.fleets,
		Squadrons: s.squadrons,
		Ships:     s.ships,
		Ground:    s.ground,
	})
}

// UnmarshalJSON rebuilds a Store from its serialized entity maps,
// replaying every secondary index the same way the Create* methods
// would have (colony-by-owner, fleet-by-system, ship-by-fleet, etc.).
func (s *Store) UnmarshalJSON(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	*s = *New()
	s.Counters = ids.Restore(snap.Counters)

	for id, h := range snap.Houses {
		h.ID = id
		s.houses[id] = h
	}
	for id, c := range snap.Colonies {
		c.ID = id
		s.colonies[id] = c
		addIndex2(s.colonyByOwner, c.HouseId, c.ID)
	}
	for id, n := range snap.Neorias {
		n.ID = id
		s.neorias[id] = n
		addIndex2(s.neoriaByColony, n.ColonyId, n.ID)
	}
	for id, k := range snap.Kastras {
		k.ID = id
		s.kastras[id] = k
		addIndex2(s.kastraByColony, k.ColonyId, k.ID)
	}
	for id, g := range snap.Ground {
		g.ID = id
		s.ground[id] = g
		addIndex2(s.groundByColony, g.ColonyId, g.ID)
	}
	for id, f := range snap.Fleets {
		f.ID = id
		s.fleets[id] = f
		addIndex2(s.fleetByOwner, f.HouseId, f.ID)
		addIndex2(s.fleetBySystem, f.Location, f.ID)
	}
	for id, sq := range snap.Squadrons {
		sq.ID = id
		s.squadrons[id] = sq
	}
	for id, sh := range snap.Ships {
		sh.ID = id
		s.ships[id] = sh
		addIndex2(s.shipByOwner, sh.HouseId, sh.ID)
		if sh.FleetId != ids.FleetId(ids.InvalidID) {
			addIndex2(s.shipByFleet, sh.FleetId, sh.ID)
		}
	}
	// squadron-by-fleet is keyed by the owning fleet's Squadrons
	// slice, not a field on Squadron itself.
	for fid, f := range s.fleets {
		for _, sqid := range f.Squadrons {
			addIndex2(s.squadronByFleet, fid, sqid)
		}
	}

	return nil
}
