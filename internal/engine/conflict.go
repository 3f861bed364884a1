// Conflict phase (spec §2 C7, §4.3). Orchestrates theatered combat,
// colonisation conflict, scouting/espionage/surveillance intel
// gathering, administrative command completion, and per-system
// immediate combat effects, in the step order spec §4.3 names
// (CON1a..CON1g, CON2).
package engine

import (
	"sort"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/rng"
	"github.com/ec4x/engine/internal/state"
)

// RunConflictPhase executes every step of spec §4.3 across every
// system in canonical (system_id asc) order and returns the combat
// reports produced (for TurnResult.combat_results).
func RunConflictPhase(gs *state.GameState, bus *events.Bus, rngSvc *rng.Service) []*CombatReport {
	gs.Phase = state.PhaseConflict

	systems := systemsWithFleetsOrColonies(gs)

	var reports []*CombatReport
	for _, sys := range systems {
		// CON1a-1d: theatered combat, resolved and its immediate
		// effects (CON2) applied per-system right away (spec: "not
		// batched").
		report := ResolveSystemCombat(gs, bus, rngSvc, sys)
		if report != nil {
			reports = append(reports, report)
			applyImmediateCombatEffects(gs, bus, report)
		}
	}

	for _, sys := range systems {
		resolveColonizationConflict(gs, bus, sys)
	}

	for _, sys := range systems {
		runScoutAndEspionage(gs, bus, rngSvc, sys)
	}
	runStarbaseSurveillance(gs, bus, rngSvc)

	completeResolvedCommands(gs)

	return reports
}

func systemsWithFleetsOrColonies(gs *state.GameState) []ids.SystemId {
	set := map[ids.SystemId]bool{}
	for _, f := range gs.Store.IterFleets() {
		set[f.Location] = true
	}
	for _, c := range gs.Store.IterColonies() {
		set[c.ID] = true
	}
	out := make([]ids.SystemId, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// applyImmediateCombatEffects is CON2 (spec §4.3): remove destroyed
// ships (and squadrons/fleets left empty), clear the colony's
// construction queue when it has no Neoria at all, and process colony
// conquest. Crippled Neoria do not lose their queues, and no
// bombardment effects are applied here. Run immediately after each
// system's combat rather than batched across the phase.
func applyImmediateCombatEffects(gs *state.GameState, bus *events.Bus, report *CombatReport) {
	for _, f := range gs.Store.FleetsBySystem(report.System) {
		fleet, err := gs.Store.GetFleet(f)
		if err != nil {
			continue
		}
		var kept []ids.SquadronId
		for _, sqid := range fleet.Squadrons {
			sq, err := gs.Store.GetSquadron(sqid)
			if err != nil {
				continue
			}
			var aliveShips []ids.ShipId
			for _, shid := range sq.Ships {
				sh, err := gs.Store.GetShip(shid)
				if err != nil {
					continue
				}
				if sh.State == model.Destroyed {
					gs.Store.DestroyShip(shid)
					continue
				}
				aliveShips = append(aliveShips, shid)
			}
			sq.Ships = aliveShips
			if len(aliveShips) == 0 {
				_ = gs.Store.DestroySquadron(sqid)
				continue
			}
			// flagship may have been destroyed; promote the lowest-id
			// survivor to keep the squadron well-formed.
			stillHasFlagship := false
			for _, shid := range aliveShips {
				if shid == sq.Flagship {
					stillHasFlagship = true
				}
			}
			if !stillHasFlagship {
				sort.Slice(aliveShips, func(i, j int) bool { return aliveShips[i] < aliveShips[j] })
				sq.Flagship = aliveShips[0]
			}
			kept = append(kept, sqid)
		}
		fleet.Squadrons = kept
		if len(kept) == 0 {
			gs.Store.DestroyFleet(fleet.ID)
		}
	}

	col, err := gs.Store.GetColony(report.System)
	if err == nil {
		if len(gs.Store.NeoriasByColony(col.ID)) == 0 {
			col.ConstructionQueue = nil
		}

		if conqueror, ok := report.ConquestBy[col.ID]; ok {
			from := col.HouseId
			gs.Store.TransferColony(col.ID, conqueror)
			bus.Emit(events.ColonyConquered, conqueror, col.ID, events.ColonyConqueredPayload{Colony: col.ID, From: from, To: conqueror, Razed: false})
		}
	}
}

// resolveColonizationConflict is CON1e (spec §4.3): ETAC-bearing
// fleets at a targeted un-colonised system attempt establishment;
// multiple competing ETACs resolve winner-takes-all by (combat
// strength desc, prestige desc, house_id asc); losers fall back to
// Hold.
func resolveColonizationConflict(gs *state.GameState, bus *events.Bus, system ids.SystemId) {
	if _, err := gs.Store.GetColony(system); err == nil {
		return // already colonised
	}

	type candidate struct {
		fleet    *model.Fleet
		strength int
		prestige int
	}
	var candidates []candidate
	for _, fid := range gs.Store.FleetsBySystem(system) {
		f, err := gs.Store.GetFleet(fid)
		if err != nil || f.Command.Code != model.CmdColonize {
			continue
		}
		if !hasNonCrippledETAC(gs, f) {
			continue
		}
		house, err := gs.Store.GetHouse(f.HouseId)
		if err != nil {
			continue
		}
		strength := 0
		for _, sqid := range f.Squadrons {
			sq, err := gs.Store.GetSquadron(sqid)
			if err != nil {
				continue
			}
			for _, shid := range sq.Ships {
				sh, err := gs.Store.GetShip(shid)
				if err != nil {
					continue
				}
				stats, err := gs.Config.ShipStats.Lookup(sh.Class, house.TechTree.Level[config.WEP])
				if err == nil {
					strength += stats.Attack
				}
			}
		}
		candidates = append(candidates, candidate{fleet: f, strength: strength, prestige: house.Prestige})
	}
	if len(candidates) == 0 {
		return
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.strength != b.strength {
			return a.strength > b.strength
		}
		if a.prestige != b.prestige {
			return a.prestige > b.prestige
		}
		if a.fleet.HouseId != b.fleet.HouseId {
			return a.fleet.HouseId < b.fleet.HouseId
		}
		return a.fleet.ID < b.fleet.ID
	})

	winner := candidates[0]
	col := &model.Colony{
		ID:      system,
		HouseId: winner.fleet.HouseId,
		Souls:   1_000_000,
		PlanetClass: 4,
		TaxRate: 10,
	}
	gs.Store.CreateColony(col)
	bus.Emit(events.ColonyEstablished, winner.fleet.HouseId, system, events.ColonyEstablishedPayload{Colony: system, House: winner.fleet.HouseId})
	winner.fleet.Command = model.FleetCommand{Code: model.CmdHold}
	winner.fleet.MissionState = model.MissionNone

	for _, c := range candidates[1:] {
		c.fleet.Command = model.FleetCommand{Code: model.CmdHold}
		c.fleet.MissionState = model.MissionNone
		bus.Emit(events.CommandAborted, c.fleet.HouseId, system, events.CommandAbortedPayload{Fleet: c.fleet.ID, Reason: "lost colonization race"})
	}
}

// completeResolvedCommands is CON1g (spec §4.3): every command whose
// effects resolved this phase is marked complete on its fleet.
func completeResolvedCommands(gs *state.GameState) {
	for _, f := range gs.Store.IterFleets() {
		switch f.Command.Code {
		case model.CmdBombard, model.CmdInvade, model.CmdBlitz, model.CmdColonize:
			if f.MissionState == model.MissionExecuting {
				f.Command = model.FleetCommand{Code: model.CmdHold}
				f.MissionState = model.MissionNone
			}
		}
	}
}
