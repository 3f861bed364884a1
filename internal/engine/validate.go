package engine

import (
	"fmt"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/state"
)

// Validated wraps a CommandPacket once validate_command_packet has
// confirmed every command is admissible (spec §4.2). Fleet commands
// carry their precomputed path so the Production phase never
// re-derives it from a StarMap that may have changed meaning mid-turn.
type Validated struct {
	Packet CommandPacket
	Paths  map[ids.FleetId][]ids.SystemId
}

// Rejection is returned by validate_command_packet when the packet as
// a whole cannot be admitted (spec §4.2: "Checks, in order, first
// failure wins").
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// requiresSystemTarget reports, per spec §4.2's command/target table,
// whether a command requires a system target.
func requiresSystemTarget(code model.FleetCommandCode) bool {
	switch code {
	case model.CmdMove, model.CmdSeek, model.CmdPatrol, model.CmdGuardStarbase,
		model.CmdGuardColony, model.CmdBlockade, model.CmdBombard, model.CmdInvade,
		model.CmdBlitz, model.CmdColonize, model.CmdScoutColony, model.CmdScoutSystem,
		model.CmdHackStarbase, model.CmdRendezvous:
		return true
	}
	return false
}

func requiresFleetTarget(code model.FleetCommandCode) bool {
	return code == model.CmdJoinFleet
}

func requiresPureIntel(code model.FleetCommandCode) bool {
	switch code {
	case model.CmdScoutColony, model.CmdScoutSystem, model.CmdHackStarbase:
		return true
	}
	return false
}

func forbidsIntel(code model.FleetCommandCode) bool {
	switch code {
	case model.CmdBombard, model.CmdInvade, model.CmdBlitz:
		return true
	}
	return false
}

// ValidateCommandPacket runs every check from spec §4.2 in order and
// stops at the first whole-packet failure. Individual fleet/build
// commands that fail their own check are NOT whole-packet failures
// (spec: "Rejected commands are recorded but do not fail the whole
// packet unless they represent a security violation") — those are
// returned in the `rejected` slice alongside a successful Validated.
func ValidateCommandPacket(gs *state.GameState, packet CommandPacket) (*Validated, []RejectedCommand, error) {
	house, err := gs.Store.GetHouse(packet.HouseId)
	if err != nil {
		return nil, nil, &Rejection{Reason: "unknown house"}
	}
	if house.Status != model.Active {
		return nil, nil, &Rejection{Reason: "house is not Active"}
	}
	if packet.Turn != gs.Turn {
		return nil, nil, &Rejection{Reason: "turn mismatch"}
	}

	var rejected []RejectedCommand
	paths := map[ids.FleetId][]ids.SystemId{}

	for i, fc := range packet.FleetCommands {
		reason, path, ok := validateFleetCommand(gs, packet.HouseId, fc)
		if !ok {
			rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: reason, Kind: "fleet", Index: i})
			continue
		}
		if path != nil {
			paths[fc.Fleet] = path
		}
	}

	totalCost := config.Zero
	for i, bc := range packet.BuildCommands {
		reason, cost, ok := validateBuildCommand(gs, packet.HouseId, bc)
		if !ok {
			rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: reason, Kind: "build", Index: i})
			continue
		}
		totalCost = totalCost.Add(cost)
	}

	for field, amount := range packet.ResearchAllocation {
		if amount < 0 {
			return nil, nil, &Rejection{Reason: fmt.Sprintf("negative research allocation for field %d", field)}
		}
		totalCost = totalCost.Add(config.NewPP(amount))
	}

	for i, dc := range packet.DiplomaticCommands {
		if dc.Target == packet.HouseId {
			rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: "cannot target self", Kind: "diplomacy", Index: i})
			continue
		}
		target, err := gs.Store.GetHouse(dc.Target)
		if err != nil || target.Status == model.Eliminated {
			rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: "target house unknown or eliminated", Kind: "diplomacy", Index: i})
		}
	}

	for i, cm := range packet.ColonyManagement {
		if cm.TaxRate < 0 || cm.TaxRate > 100 {
			rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: "tax rate out of [0,100]", Kind: "colony", Index: i})
		}
	}

	if packet.EspionageAction != nil {
		cost, ok := gs.Config.Espionage.ActionCost[packet.EspionageAction.Action]
		if !ok {
			rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: "unknown espionage action", Kind: "espionage"})
		} else {
			totalCost = totalCost.Add(config.NewPP(int64(cost)))
		}
	}
	totalCost = totalCost.Add(config.NewPP(packet.EBPInvestment)).Add(config.NewPP(packet.CIPInvestment))

	if totalCost.Cmp(house.Treasury) > 0 {
		return nil, nil, &Rejection{Reason: "build_cost + research_cost + espionage_cost exceeds treasury"}
	}

	return &Validated{Packet: packet, Paths: paths}, rejected, nil
}

func validateFleetCommand(gs *state.GameState, house ids.HouseId, fc FleetCommandInput) (reason string, path []ids.SystemId, ok bool) {
	fleet, err := gs.Store.GetFleet(fc.Fleet)
	if err != nil {
		return "fleet does not exist", nil, false
	}
	if fleet.HouseId != house {
		return "not your fleet", nil, false
	}
	if fleet.MissionState == model.MissionOnSpyMission {
		return "fleet is on a spy mission", nil, false
	}

	squadronOf := squadronLookup(gs)
	if requiresPureIntel(fc.Code) {
		if !fleet.IsPureIntel(squadronOf) {
			return "command requires a pure Intel fleet", nil, false
		}
	}
	if forbidsIntel(fc.Code) {
		if fleet.HasIntelSquadron(squadronOf) {
			return "command forbids Intel squadrons", nil, false
		}
	}

	if requiresFleetTarget(fc.Code) {
		target, err := gs.Store.GetFleet(fc.TargetFleet)
		if err != nil {
			return "target fleet does not exist", nil, false
		}
		if target.HouseId != house || target.Location != fleet.Location {
			return "join target must be same owner and system", nil, false
		}
		return "", nil, true
	}

	if requiresSystemTarget(fc.Code) {
		traverser := model.TraverserCapabilities{}
		for _, sqid := range fleet.Squadrons {
			sq, err := gs.Store.GetSquadron(sqid)
			if err != nil {
				continue
			}
			if sq.Type == model.ExpansionSquadron || sq.Type == model.AuxiliarySquadron {
				traverser.HasExpansionOrAuxiliary = true
			}
			for _, shid := range sq.Ships {
				sh, err := gs.Store.GetShip(shid)
				if err == nil && sh.State == model.Crippled {
					traverser.HasCrippledShips = true
				}
			}
		}

		p, found := gs.StarMap.ShortestPath(fleet.Location, fc.TargetSystem, traverser)
		if !found {
			return "no path", nil, false
		}

		if fc.Code == model.CmdColonize {
			if _, err := gs.Store.GetColony(fc.TargetSystem); err == nil {
				return "system already colonised", nil, false
			}
			if !hasNonCrippledETAC(gs, fleet) {
				return "colonize requires a non-crippled ETAC squadron", nil, false
			}
		}
		if fc.Code == model.CmdBombard || fc.Code == model.CmdInvade || fc.Code == model.CmdBlitz {
			col, err := gs.Store.GetColony(fc.TargetSystem)
			if err != nil || col.HouseId == house {
				return "target must be a colony owned by another house", nil, false
			}
			if !hasCombatSquadron(gs, fleet) {
				return "requires at least one combat squadron", nil, false
			}
		}

		return "", p, true
	}

	return "", nil, true
}

// squadronLookup adapts store.Store.GetSquadron's (value, error) return
// to the (value, bool) shape model.Fleet's composition helpers expect,
// so model stays free of a store import.
func squadronLookup(gs *state.GameState) func(ids.SquadronId) (*model.Squadron, bool) {
	return func(id ids.SquadronId) (*model.Squadron, bool) {
		sq, err := gs.Store.GetSquadron(id)
		if err != nil {
			return nil, false
		}
		return sq, true
	}
}

func hasNonCrippledETAC(gs *state.GameState, fleet *model.Fleet) bool {
	for _, sqid := range fleet.Squadrons {
		sq, err := gs.Store.GetSquadron(sqid)
		if err != nil || sq.Type != model.ExpansionSquadron {
			continue
		}
		sh, err := gs.Store.GetShip(sq.Flagship)
		if err == nil && sh.State != model.Crippled && sh.State != model.Destroyed {
			return true
		}
	}
	return false
}

func hasCombatSquadron(gs *state.GameState, fleet *model.Fleet) bool {
	for _, sqid := range fleet.Squadrons {
		sq, err := gs.Store.GetSquadron(sqid)
		if err == nil && sq.Type == model.CombatSquadron {
			return true
		}
	}
	return false
}

// squadronCountsAtColony returns house's current capital and total
// squadron counts across every fleet stationed at colony, the same
// counting rule enforceCapacity uses at Income time (spec §4.2 check 3
// / §4.4 step 7).
func squadronCountsAtColony(gs *state.GameState, house ids.HouseId, colony ids.ColonyId) (capital, total int) {
	for _, fid := range gs.Store.FleetsBySystem(colony) {
		f, err := gs.Store.GetFleet(fid)
		if err != nil || f.HouseId != house {
			continue
		}
		for _, sqid := range f.Squadrons {
			sq, err := gs.Store.GetSquadron(sqid)
			if err != nil {
				continue
			}
			total++
			if isCapitalSquadron(gs, sq) {
				capital++
			}
		}
	}
	return capital, total
}

// validateBuildCommand checks tech prerequisites, facility/capacity
// headroom, and computes the previewed cost including the spaceport
// commission penalty (spec §4.2 check 3 and check 7).
func validateBuildCommand(gs *state.GameState, house ids.HouseId, bc BuildCommandInput) (reason string, cost config.PP, ok bool) {
	col, err := gs.Store.GetColony(bc.Colony)
	if err != nil || col.HouseId != house {
		return "colony does not exist or is not owned by you", config.Zero, false
	}
	if bc.Count <= 0 {
		return "count must be positive", config.Zero, false
	}

	h, _ := gs.Store.GetHouse(house)

	switch {
	case bc.ShipClass != nil:
		class := config.ShipClass(*bc.ShipClass)
		stats, err := gs.Config.ShipStats.Lookup(class, h.TechTree.Level[config.WEP])
		if err != nil {
			return "unknown ship class", config.Zero, false
		}
		if h.TechTree.Level[config.CST] < stats.TechMin {
			return "CST tech prerequisite not met", config.Zero, false
		}
		if class == config.PlanetBreaker && h.PlanetBreakerCount+bc.Count > 1 {
			return "planet-breaker limit is 1 per colony", config.Zero, false
		}

		if class == config.Fighter {
			col, _ := gs.Store.GetColony(bc.Colony)
			if len(col.FighterPool)+bc.Count > gs.Config.Economy.FighterLimitBase {
				return "fighter capacity exceeded", config.Zero, false
			}
		} else {
			capital, total := squadronCountsAtColony(gs, house, bc.Colony)
			if total+bc.Count > gs.Config.Economy.TotalSquadronLimitBase {
				return "total squadron capacity exceeded", config.Zero, false
			}
			if class.CapitalClass() && capital+bc.Count > gs.Config.Economy.CapitalSquadronLimitBase {
				return "capital squadron capacity exceeded", config.Zero, false
			}
		}

		neoria, err := gs.Store.GetNeoria(bc.AtNeoria)
		if err != nil || neoria.ColonyId != bc.Colony {
			return "build facility not at this colony", config.Zero, false
		}
		unitCost := stats.BuildCost
		if neoria.Class == config.Spaceport && class != config.Fighter {
			unitCost = unitCost.MulFrac(2.0) // 100% commission surcharge, spec §4.2
		}
		return "", unitCost.Mul(config.NewPP(int64(bc.Count))), true

	case bc.FacilityClass != nil:
		class := config.FacilityClass(*bc.FacilityClass)
		stats, err := gs.Config.FacilityStats.Lookup(class, h.TechTree.Level[config.CST])
		if err != nil {
			return "unknown facility class", config.Zero, false
		}
		return "", stats.BuildCost.Mul(config.NewPP(int64(bc.Count))), true

	case bc.GroundUnitClass != nil:
		class := config.GroundUnitClass(*bc.GroundUnitClass)
		stats, err := gs.Config.GroundUnitStats.Lookup(class, h.TechTree.Level[config.CST])
		if err != nil {
			return "unknown ground unit class", config.Zero, false
		}
		return "", stats.BuildCost.Mul(config.NewPP(int64(bc.Count))), true
	}

	return "build command names no target class", config.Zero, false
}
