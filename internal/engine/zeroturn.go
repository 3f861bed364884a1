package engine

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/state"
)

// ExecuteZeroTurnOps runs a house's immediate fleet/cargo/fighter
// admin operations inline during submission, not queued for a later
// phase (spec §4.2 "Zero-turn operations (C6)"). Each op either
// succeeds silently (the mutation is its own confirmation) or is
// appended to rejected.
//
// Grounded on the teacher's fleet_component.go/fleet_collecting.go,
// which implement the analogous "merge/split/load" admin endpoints
// for OGame fleets outside of the travel/combat simulation.
func ExecuteZeroTurnOps(gs *state.GameState, bus *events.Bus, house ids.HouseId, ops []ZeroTurnOpInput) []RejectedCommand {
	var rejected []RejectedCommand
	for i, op := range ops {
		if reason, ok := executeZeroTurnOp(gs, bus, house, op); !ok {
			rejected = append(rejected, RejectedCommand{HouseId: house, Reason: reason, Kind: "zeroturn", Index: i})
		}
	}
	return rejected
}

func executeZeroTurnOp(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	switch op.Kind {
	case ZeroTransferShips:
		return zeroTransferShips(gs, bus, house, op)
	case ZeroMergeFleets:
		return zeroMergeFleets(gs, bus, house, op)
	case ZeroDetachShips:
		return zeroDetachShips(gs, bus, house, op)
	case ZeroLoadCargo:
		return zeroLoadCargo(gs, bus, house, op)
	case ZeroUnloadCargo:
		return zeroUnloadCargo(gs, bus, house, op)
	case ZeroTransferFighters:
		return zeroTransferFighters(gs, bus, house, op)
	}
	return "unknown zero-turn op", false
}

// requireFriendlyColony enforces the spec §4.2 rule that embarking or
// disembarking fighters can only happen while the fleet sits at a
// colony the operating house owns (fleet-org ops like merge/detach
// carry no such restriction since they never touch a colony's
// garrison).
func requireFriendlyColony(gs *state.GameState, house ids.HouseId, fleet *model.Fleet) (*model.Colony, bool) {
	col, err := gs.Store.GetColony(fleet.Location)
	if err != nil || col.HouseId != house {
		return nil, false
	}
	return col, true
}

// zeroIsPureIntelAfter simulates the post-transfer composition of a
// fleet gaining `incoming` squadron ids and reports whether it would
// still respect the Intel/non-Intel exclusion (spec P4, §4.2).
func zeroIsPureIntelAfter(gs *state.GameState, fleet *model.Fleet, incoming []ids.SquadronId) bool {
	types := map[bool]bool{}
	for _, sqid := range fleet.Squadrons {
		sq, err := gs.Store.GetSquadron(sqid)
		if err == nil {
			types[sq.Type == model.IntelSquadron] = true
		}
	}
	for _, sqid := range incoming {
		sq, err := gs.Store.GetSquadron(sqid)
		if err == nil {
			types[sq.Type == model.IntelSquadron] = true
		}
	}
	return !(types[true] && types[false])
}

func squadronsOfShips(gs *state.GameState, fleet *model.Fleet, shipIDs []ids.ShipId) ([]ids.SquadronId, bool) {
	want := map[ids.ShipId]bool{}
	for _, s := range shipIDs {
		want[s] = true
	}
	var out []ids.SquadronId
	for _, sqid := range fleet.Squadrons {
		sq, err := gs.Store.GetSquadron(sqid)
		if err != nil {
			continue
		}
		if want[sq.Flagship] {
			out = append(out, sqid)
		}
	}
	return out, len(out) > 0
}

func zeroTransferShips(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	src, err := gs.Store.GetFleet(op.SourceFleet)
	if err != nil || src.HouseId != house {
		return "source fleet not yours", false
	}
	dst, err := gs.Store.GetFleet(op.TargetFleet)
	if err != nil || dst.HouseId != house {
		return "target fleet not yours", false
	}
	if src.Location != dst.Location {
		return "fleets must be in the same system", false
	}

	moving, found := squadronsOfShips(gs, src, op.Ships)
	if !found {
		return "no matching squadrons in source fleet", false
	}

	if !zeroIsPureIntelAfter(gs, dst, moving) {
		return "Transfer would create invalid target fleet (scout/combat mixing)", false
	}
	remaining := map[ids.SquadronId]bool{}
	for _, sqid := range src.Squadrons {
		remaining[sqid] = true
	}
	for _, sqid := range moving {
		delete(remaining, sqid)
	}
	var remainingList []ids.SquadronId
	for sqid := range remaining {
		remainingList = append(remainingList, sqid)
	}
	if !zeroIsPureIntelAfterList(gs, remainingList) {
		return "Transfer would create invalid source fleet (scout/combat mixing)", false
	}

	for _, sqid := range moving {
		src.Squadrons = removeSquadron(src.Squadrons, sqid)
		dst.Squadrons = append(dst.Squadrons, sqid)
	}
	bus.Emit(events.FleetTransferred, house, dst.Location, nil)
	return "", true
}

func zeroIsPureIntelAfterList(gs *state.GameState, squadrons []ids.SquadronId) bool {
	types := map[bool]bool{}
	for _, sqid := range squadrons {
		sq, err := gs.Store.GetSquadron(sqid)
		if err == nil {
			types[sq.Type == model.IntelSquadron] = true
		}
	}
	return !(types[true] && types[false])
}

func removeSquadron(list []ids.SquadronId, id ids.SquadronId) []ids.SquadronId {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func zeroMergeFleets(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	src, err := gs.Store.GetFleet(op.SourceFleet)
	if err != nil || src.HouseId != house {
		return "source fleet not yours", false
	}
	dst, err := gs.Store.GetFleet(op.TargetFleet)
	if err != nil || dst.HouseId != house {
		return "target fleet not yours", false
	}
	if src.Location != dst.Location {
		return "fleets must be in the same system", false
	}
	if !zeroIsPureIntelAfter(gs, dst, src.Squadrons) {
		return "Merge would create invalid fleet (scout/combat mixing)", false
	}

	dst.Squadrons = append(dst.Squadrons, src.Squadrons...)
	src.Squadrons = nil
	gs.Store.DestroyFleet(src.ID)
	bus.Emit(events.FleetMerged, house, dst.Location, events.FleetMergedPayload{Survivor: dst.ID, Absorbed: src.ID})
	return "", true
}

func zeroDetachShips(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	src, err := gs.Store.GetFleet(op.SourceFleet)
	if err != nil || src.HouseId != house {
		return "source fleet not yours", false
	}
	moving, found := squadronsOfShips(gs, src, op.Ships)
	if !found {
		return "no matching squadrons in source fleet", false
	}
	newFleet := gs.Store.CreateFleet(house, src.Location)
	for _, sqid := range moving {
		src.Squadrons = removeSquadron(src.Squadrons, sqid)
		newFleet.Squadrons = append(newFleet.Squadrons, sqid)
	}
	bus.Emit(events.FleetDetached, house, src.Location, nil)
	return "", true
}

func zeroLoadCargo(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	fleet, err := gs.Store.GetFleet(op.SourceFleet)
	if err != nil || fleet.HouseId != house {
		return "fleet not yours", false
	}
	col, err := gs.Store.GetColony(op.Colony)
	if err != nil || col.HouseId != house || col.ID != fleet.Location {
		return "colony not at fleet location or not yours", false
	}
	if col.Souls-op.Amount < 1_000_000 && op.Amount > 0 {
		return "cannot reduce colony below 1,000,000 souls", false
	}
	col.Souls -= op.Amount
	bus.Emit(events.CargoLoaded, house, fleet.Location, events.CargoPayload{Fleet: fleet.ID, Colony: col.ID, Amount: op.Amount})
	return "", true
}

func zeroUnloadCargo(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	fleet, err := gs.Store.GetFleet(op.SourceFleet)
	if err != nil || fleet.HouseId != house {
		return "fleet not yours", false
	}
	col, err := gs.Store.GetColony(op.Colony)
	if err != nil || col.HouseId != house || col.ID != fleet.Location {
		return "colony not at fleet location or not yours", false
	}
	col.Souls += op.Amount
	bus.Emit(events.CargoUnloaded, house, fleet.Location, events.CargoPayload{Fleet: fleet.ID, Colony: col.ID, Amount: op.Amount})
	return "", true
}

// zeroTransferFighters embarks fighters sitting in a colony's
// FighterPool onto a Carrier-capable ship in a fleet at that colony,
// or disembarks fighters already assigned to that fleet back into the
// pool; direction is inferred per ship from where it currently sits
// (spec §3 cross-entity invariant: embarkedFighters.len <=
// carrier_max_capacity).
func zeroTransferFighters(gs *state.GameState, bus *events.Bus, house ids.HouseId, op ZeroTurnOpInput) (string, bool) {
	fleet, err := gs.Store.GetFleet(op.SourceFleet)
	if err != nil || fleet.HouseId != house {
		return "fleet not yours", false
	}
	col, ok := requireFriendlyColony(gs, house, fleet)
	if !ok || col.ID != op.Colony {
		return "fleet is not at a colony you own", false
	}
	if len(op.Ships) == 0 {
		return "no fighters specified", false
	}

	inPool := map[ids.ShipId]bool{}
	for _, shid := range col.FighterPool {
		inPool[shid] = true
	}

	var embarking, disembarking []ids.ShipId
	for _, shid := range op.Ships {
		sh, err := gs.Store.GetShip(shid)
		if err != nil || sh.HouseId != house || sh.Class != config.Fighter {
			return "ship is not a fighter you own", false
		}
		switch {
		case inPool[shid]:
			embarking = append(embarking, shid)
		case sh.FleetId == fleet.ID:
			disembarking = append(disembarking, shid)
		default:
			return "fighter is neither in this colony's pool nor this fleet", false
		}
	}

	if len(embarking) > 0 {
		carrier, capacity, ok := carrierCapacityFor(gs, fleet, house)
		if !ok {
			return "fleet has no carrier capacity", false
		}
		used := 0
		for _, shid := range gs.Store.ShipsByFleet(fleet.ID) {
			sh, err := gs.Store.GetShip(shid)
			if err == nil && sh.AssignedToCarrier == carrier {
				used++
			}
		}
		if used+len(embarking) > capacity {
			return "embarking would exceed carrier capacity", false
		}
		for _, shid := range embarking {
			sh, err := gs.Store.GetShip(shid)
			if err != nil {
				continue
			}
			sh.FleetId = fleet.ID
			sh.AssignedToCarrier = carrier
			col.FighterPool = removeShip(col.FighterPool, shid)
		}
	}

	for _, shid := range disembarking {
		sh, err := gs.Store.GetShip(shid)
		if err != nil {
			continue
		}
		sh.FleetId = ids.FleetId(ids.InvalidID)
		sh.AssignedToCarrier = ids.ShipId(ids.InvalidID)
		col.FighterPool = append(col.FighterPool, shid)
	}

	bus.Emit(events.CargoLoaded, house, col.ID, events.CargoPayload{
		Fleet:  fleet.ID,
		Colony: col.ID,
		Amount: int64(len(embarking) - len(disembarking)),
	})
	return "", true
}

// carrierCapacityFor finds the first Carrier-class ship in a fleet and
// returns its id and effective fighter capacity at the house's current
// ACO tech level.
func carrierCapacityFor(gs *state.GameState, fleet *model.Fleet, house ids.HouseId) (ids.ShipId, int, bool) {
	h, err := gs.Store.GetHouse(house)
	if err != nil {
		return ids.ShipId(ids.InvalidID), 0, false
	}
	for _, shid := range gs.Store.ShipsByFleet(fleet.ID) {
		sh, err := gs.Store.GetShip(shid)
		if err != nil || sh.Class != config.Carrier || sh.State == model.Destroyed {
			continue
		}
		stats, err := gs.Config.ShipStats.Lookup(sh.Class, h.TechTree.Level[config.WEP])
		if err != nil {
			continue
		}
		capacity := gs.Config.Research.CarrierCapacity(stats.CarryLimit, h.TechTree.Level[config.ACO])
		return shid, capacity, true
	}
	return ids.ShipId(ids.InvalidID), 0, false
}

func removeShip(list []ids.ShipId, id ids.ShipId) []ids.ShipId {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
