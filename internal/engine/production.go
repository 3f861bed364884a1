// Production phase (spec §2 C11, §4.6). Fleets complete travel and
// move their next hop, construction/repair queues advance, pending
// diplomatic declarations take effect, population transfers and
// terraforming projects complete, and research accumulators roll
// toward tech level-ups on the spec's periodic breakthrough check.
//
// Grounded on the teacher's progress_action.go (oglike_server/internal
// /game), which advances OGame's single "one action in flight"
// countdown per planet; this phase generalizes that to every colony's
// construction/repair queue and every fleet's travel countdown in one
// deterministic pass, in ascending id order throughout.
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

// RunProductionPhase executes every step of spec §4.6 in order.
func RunProductionPhase(gs *state.GameState, bus *events.Bus, rngSvc *rng.Service) {
	gs.Phase = state.PhaseProduction

	advanceFleets(gs, bus)
	advanceConstructionQueues(gs, bus)
	advanceRepairQueues(gs)
	applyPendingDiplomacy(gs)
	advancePopulationTransfers(gs, bus)
	advanceTerraforming(gs)
	advanceResearch(gs, bus, rngSvc)
}

// advanceFleets is spec §4.6 step 2: a Traveling fleet moves one hop
// along its precomputed path, or two hops when the first hop is a
// Major lane the fleet's house owns (both endpoints hold a colony of
// that house); reaching the final hop switches it to Executing (or
// leaves it Hold if the command needed no travel at all).
func advanceFleets(gs *state.GameState, bus *events.Bus) {
	fleets := gs.Store.IterFleets()
	sort.Slice(fleets, func(i, j int) bool { return fleets[i].ID < fleets[j].ID })

	for _, f := range fleets {
		if f.MissionState != model.MissionTraveling {
			continue
		}
		if len(f.Command.Path) == 0 {
			f.MissionState = model.MissionExecuting
			continue
		}

		hops := 1
		if len(f.Command.Path) > 1 && ownsMajorLane(gs, f.HouseId, f.Command.Path[0], f.Command.Path[1]) {
			hops = 2
		}
		for hops > 0 && len(f.Command.Path) > 1 {
			next := f.Command.Path[1]
			gs.Store.MoveFleet(f.ID, next)
			f.Command.Path = f.Command.Path[1:]
			hops--
		}

		if len(f.Command.Path) <= 1 {
			f.MissionState = model.MissionExecuting
			bus.Emit(events.FleetArrived, f.HouseId, f.Location, events.FleetArrivedPayload{Fleet: f.ID, System: f.Location})
		}
	}
}

// ownsMajorLane reports whether the lane a-b is Major and house holds
// a colony at both endpoints (spec §4.6 step 2, "Major lanes allow two
// if owned"; spec E2).
func ownsMajorLane(gs *state.GameState, house ids.HouseId, a, b ids.SystemId) bool {
	class, ok := gs.StarMap.LaneBetween(a, b)
	if !ok || class != model.Major {
		return false
	}
	colA, err := gs.Store.GetColony(ids.ColonyId(a))
	if err != nil || colA.HouseId != house {
		return false
	}
	colB, err := gs.Store.GetColony(ids.ColonyId(b))
	if err != nil || colB.HouseId != house {
		return false
	}
	return true
}

// advanceConstructionQueues is spec §4.6 step 3: each colony's queue
// head ticks down; completion either installs the facility/ground
// unit immediately or, for ships, defers commissioning to next turn's
// Command-phase automation (spec §4.6 step 4).
func advanceConstructionQueues(gs *state.GameState, bus *events.Bus) {
	colonies := gs.Store.IterColonies()
	sort.Slice(colonies, func(i, j int) bool { return colonies[i].ID < colonies[j].ID })

	for _, col := range colonies {
		if len(col.ConstructionQueue) == 0 {
			continue
		}
		head := &col.ConstructionQueue[0]
		head.TicksRemaining--
		if head.TicksRemaining > 0 {
			continue
		}

		switch head.Kind {
		case model.ConstructShip:
			gs.PendingCommissions = append(gs.PendingCommissions, state.PendingCommission{
				House: col.HouseId, Colony: col.ID, Class: head.ShipClass, Count: head.Count, AtNeoria: head.AtNeoria,
			})
		case model.ConstructFacility:
			n := &model.Neoria{Class: head.FacilityClass}
			gs.Store.CreateNeoria(col.ID, n)
			col.Neorias = append(col.Neorias, n.ID)
		case model.ConstructGroundUnit:
			h, _ := gs.Store.GetHouse(col.HouseId)
			stats, err := gs.Config.GroundUnitStats.Lookup(head.GroundUnitClass, h.TechTree.Level[config.CST])
			for i := 0; i < head.Count; i++ {
				g := &model.GroundUnit{ColonyId: col.ID, Class: head.GroundUnitClass}
				if err == nil {
					g.InitialDefense = stats.Defense
					g.RemainingDefense = stats.Defense
				}
				gs.Store.CreateGroundUnit(g)
			}
		}
		col.ConstructionQueue = col.ConstructionQueue[1:]
	}
}

// advanceRepairQueues is spec §4.6 step 3's repair-project counterpart:
// a crippled ship under repair returns to Undamaged at full defense
// when its ticks expire.
func advanceRepairQueues(gs *state.GameState) {
	colonies := gs.Store.IterColonies()
	sort.Slice(colonies, func(i, j int) bool { return colonies[i].ID < colonies[j].ID })

	for _, col := range colonies {
		var kept []model.RepairQueueEntry
		for _, r := range col.RepairQueue {
			r.TicksRemaining--
			if r.TicksRemaining > 0 {
				kept = append(kept, r)
				continue
			}
			if sh, err := gs.Store.GetShip(r.ShipId); err == nil {
				sh.State = model.Undamaged
				sh.RemainingDefense = sh.InitialDefense
			}
		}
		col.RepairQueue = kept
	}
}

// applyPendingDiplomacy is spec §4.6 step 5: declarations queued
// during Command phase take effect now.
func applyPendingDiplomacy(gs *state.GameState) {
	pending := gs.PendingDiplomacy
	gs.PendingDiplomacy = nil
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].From != pending[j].From {
			return pending[i].From < pending[j].From
		}
		return pending[i].To < pending[j].To
	})
	for _, pd := range pending {
		gs.Diplomacy.Set(pd.From, pd.To, pd.NewState, gs.Turn)
	}
}

// advancePopulationTransfers is spec §4.6 step 6: PTUs loaded onto a
// carrying fleet in Command phase (engine/command_phase.go's
// executePopulationTransfer) complete once that fleet has reached
// ToColony; transfers whose fleet is still traveling are carried over
// to next turn's pending list.
func advancePopulationTransfers(gs *state.GameState, bus *events.Bus) {
	pending := gs.PendingPopulationTransfers
	gs.PendingPopulationTransfers = nil
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })

	for _, pt := range pending {
		fleet, err := gs.Store.GetFleet(pt.ViaFleet)
		if err != nil || fleet.HouseId != pt.House {
			continue // carrying fleet destroyed in transit: PTUs are lost with it
		}
		if fleet.Location != pt.ToColony {
			gs.PendingPopulationTransfers = append(gs.PendingPopulationTransfers, pt)
			continue
		}
		to, err := gs.Store.GetColony(pt.ToColony)
		if err != nil {
			continue
		}
		souls := int64(pt.PTUs) * gs.Config.PTUSouls
		to.Souls += souls
		bus.Emit(events.CargoUnloaded, pt.House, to.ID, events.CargoPayload{Fleet: fleet.ID, Colony: to.ID, Amount: souls})
	}
}

// advanceTerraforming is spec §4.6 step 7: an active terraform project
// ticks down and, on completion, changes the colony's PlanetClass.
func advanceTerraforming(gs *state.GameState) {
	for _, col := range gs.Store.IterColonies() {
		if !col.Terraform.Active {
			continue
		}
		col.Terraform.TicksRemaining--
		if col.Terraform.TicksRemaining <= 0 {
			col.PlanetClass = col.Terraform.TargetClass
			col.Terraform.Active = false
		}
	}
}

// advanceResearch is spec §4.6 step 9: every BreakthroughEveryNTurns
// turns, each house rolls a breakthrough per field it has accumulated
// points in; success consumes the field's RP cost and advances its
// level by one, over-spilling points carried to the next cycle.
func advanceResearch(gs *state.GameState, bus *events.Bus, rngSvc *rng.Service) {
	if gs.Config.Research.BreakthroughEveryNTurns <= 0 || gs.Turn%gs.Config.Research.BreakthroughEveryNTurns != 0 {
		return
	}

	houses := gs.Store.IterHouses()
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID < houses[j].ID })

	fields := []config.TechField{config.EL, config.SL, config.CST, config.WEP, config.TFM, config.ELI, config.CIC, config.ACO, config.CLK}

	for _, h := range houses {
		for _, field := range fields {
			pts := h.TechTree.Points[field]
			if pts <= 0 {
				continue
			}
			cost, err := gs.Config.Research.Costs.CostToAdvance(field, h.TechTree.Level[field])
			if err != nil || pts < cost {
				continue
			}
			chance := gs.Config.Research.Breakthrough[field]
			roll := int(rngSvc.Espionage(h.ID, ids.SystemId(field)).Float64() * 100)
			if roll >= chance {
				continue
			}
			h.TechTree.Level[field]++
			h.TechTree.Points[field] -= cost
			bus.Emit(events.TechAdvanced, h.ID, 0, events.TechAdvancedPayload{Field: field.String(), NewLevel: h.TechTree.Level[field]})

			bonus := gs.Config.Prestige.TechLevelUpBonus
			h.Prestige += bonus
			bus.Emit(events.PrestigeChanged, h.ID, 0, events.PrestigeChangedPayload{Delta: bonus, Total: h.Prestige})
		}
	}
}
