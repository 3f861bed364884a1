// Command phase (spec §2 C10, §4.5). Part A runs automation that must
// happen before any house's orders are read (commissioning ships
// queued last Production, auto-squadron/auto-fleet assignment). Part B
// validates each house's CommandPacket and runs its zero-turn ops. Part C categorizes the remaining fleet orders onto
// their fleets (starting their travel/mission state machine) and
// debits research allocations into the accumulators ERP/SRP/TRP will
// draw down from during Production.
//
// Grounded on the teacher's action.go/actions.go dispatch table
// (oglike_server/internal/game), which is the closest analogue to
// "take a batch of already-authorized requests and apply each one to
// the model in turn".
package engine

import (
	"sort"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/state"
)

// RunCommandPhasePartA runs the pre-order automation (spec §4.5 Part
// A): commission any ship build that finished construction last
// Production and was deferred to this turn's automation window, then
// auto-assign newly commissioned non-fighter ships into squadrons of an
// auto-balance fleet at their home colony and fighters into that
// colony's fighter pool.
func RunCommandPhasePartA(gs *state.GameState, bus *events.Bus) {
	gs.Phase = state.PhaseCommand

	pending := gs.PendingCommissions
	gs.PendingCommissions = nil
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Colony != pending[j].Colony {
			return pending[i].Colony < pending[j].Colony
		}
		return pending[i].AtNeoria < pending[j].AtNeoria
	})

	for _, pc := range pending {
		commissionShips(gs, bus, pc)
	}
}

func commissionShips(gs *state.GameState, bus *events.Bus, pc state.PendingCommission) {
	col, err := gs.Store.GetColony(pc.Colony)
	if err != nil {
		return
	}

	var homeFleet *model.Fleet
	for _, fid := range gs.Store.FleetsBySystem(col.ID) {
		f, err := gs.Store.GetFleet(fid)
		if err == nil && f.HouseId == pc.House && f.AutoBalance {
			homeFleet = f
			break
		}
	}
	if homeFleet == nil {
		homeFleet = gs.Store.CreateFleet(pc.House, col.ID)
		homeFleet.AutoBalance = true
	}

	owner, _ := gs.Store.GetHouse(pc.House)
	ownerWEP := 0
	if owner != nil {
		ownerWEP = owner.TechTree.Level[config.WEP]
	}
	for i := 0; i < pc.Count; i++ {
		sh := &model.Ship{
			Class:   pc.Class,
			State:   model.Undamaged,
			FleetId: homeFleet.ID,
		}
		stats, err := gs.Config.ShipStats.Lookup(pc.Class, ownerWEP)
		if err == nil {
			sh.InitialDefense = stats.Defense
			sh.RemainingDefense = stats.Defense
		}
		gs.Store.CreateShip(pc.House, sh)

		if pc.Class == config.Fighter {
			col.FighterPool = append(col.FighterPool, sh.ID)
			continue
		}
		typ := model.SquadronTypeForClass(pc.Class)
		if _, err := gs.Store.CreateSquadron(homeFleet.ID, typ, sh.ID); err != nil {
			continue
		}
	}
	bus.Emit(events.FleetArrived, pc.House, col.ID, events.FleetArrivedPayload{Fleet: homeFleet.ID, System: col.ID})
}

// RunCommandPhasePartBC validates and applies one house's submitted
// orders: Part B's zero-turn ops run first (spec §4.2), then Part C
// starts travel/mission state on every admitted fleet command and
// debits research allocation into the house's accumulators.
func RunCommandPhasePartBC(gs *state.GameState, bus *events.Bus, packet CommandPacket) (*Validated, []RejectedCommand, error) {
	validated, rejected, err := ValidateCommandPacket(gs, packet)
	if err != nil {
		return nil, nil, err
	}

	skip := map[string]map[int]bool{"fleet": {}, "build": {}, "diplomacy": {}, "colony": {}, "espionage": {}}
	for _, r := range rejected {
		skip[r.Kind][r.Index] = true
	}

	zrej := ExecuteZeroTurnOps(gs, bus, packet.HouseId, packet.ZeroTurnOps)
	rejected = append(rejected, zrej...)

	house, err := gs.Store.GetHouse(packet.HouseId)
	if err != nil {
		return validated, rejected, nil
	}

	totalCost := config.Zero

	for i, fc := range packet.FleetCommands {
		if skip["fleet"][i] {
			continue
		}
		path, ok := validated.Paths[fc.Fleet]
		f, err := gs.Store.GetFleet(fc.Fleet)
		if err != nil {
			continue
		}
		f.Command = model.FleetCommand{Code: fc.Code, TargetSystem: fc.TargetSystem, TargetFleet: fc.TargetFleet, IssuedTurn: gs.Turn}
		if ok {
			f.Command.Path = path
		}
		switch fc.Code {
		case model.CmdHold, model.CmdReserve, model.CmdMothball, model.CmdView:
			f.MissionState = model.MissionNone
		case model.CmdJoinFleet:
			applyJoinFleet(gs, bus, house.ID, fc)
		default:
			if len(f.Command.Path) > 1 {
				f.MissionState = model.MissionTraveling
			} else {
				f.MissionState = model.MissionExecuting
			}
		}
	}

	for i, bc := range packet.BuildCommands {
		if skip["build"][i] {
			continue
		}
		cost, ok := queueBuild(gs, house.ID, bc)
		if ok {
			totalCost = totalCost.Add(cost)
		}
	}

	for field, amount := range packet.ResearchAllocation {
		if amount <= 0 {
			continue
		}
		f := config.TechField(field)
		house.TechTree.Points[f] += int(amount)
		totalCost = totalCost.Add(config.NewPP(amount))
	}

	for _, pt := range packet.PopulationTransfers {
		executePopulationTransfer(gs, bus, house.ID, pt)
	}

	for _, tc := range packet.TerraformCommands {
		startTerraform(gs, house.ID, tc)
	}

	for i, cm := range packet.ColonyManagement {
		if col, err := gs.Store.GetColony(cm.Colony); err == nil && col.HouseId == house.ID && !skip["colony"][i] {
			col.TaxRate = cm.TaxRate
		}
	}

	for _, dc := range packet.DiplomaticCommands {
		gs.PendingDiplomacy = append(gs.PendingDiplomacy, state.PendingDiplomaticChange{
			From: house.ID, To: dc.Target, NewState: dc.State, IssuedTurn: gs.Turn,
		})
	}

	if packet.EspionageAction != nil {
		if cost, ok := gs.Config.Espionage.ActionCost[packet.EspionageAction.Action]; ok {
			totalCost = totalCost.Add(config.NewPP(int64(cost)))
			house.Espionage.EBP -= cost
			bus.Emit(events.EspionageSucceeded, house.ID, packet.EspionageAction.System, events.EspionagePayload{
				Actor: house.ID, Target: packet.EspionageAction.Target, Action: packet.EspionageAction.Action,
			})
		}
	}

	if packet.EBPInvestment > 0 {
		house.Espionage.EBP += investPoints(gs, packet.EBPInvestment)
		totalCost = totalCost.Add(config.NewPP(packet.EBPInvestment))
	}
	if packet.CIPInvestment > 0 {
		house.Espionage.CIP += investPoints(gs, packet.CIPInvestment)
		totalCost = totalCost.Add(config.NewPP(packet.CIPInvestment))
	}

	house.Treasury = house.Treasury.Sub(totalCost)
	if house.Treasury.IsNegative() {
		house.Treasury = config.Zero
	}

	return validated, rejected, nil
}

// investPoints converts a PP investment into EBP/CIP points (spec
// §4.4 step 2: "points = pp / 40 (integer division), with an
// over-investment penalty above configured caps").
func investPoints(gs *state.GameState, pp int64) int {
	points := int(config.NewPP(pp).DivInt(int64(gs.Config.Espionage.PPPerPoint)))
	if points > gs.Config.Espionage.InvestmentCap {
		excess := points - gs.Config.Espionage.InvestmentCap
		points = gs.Config.Espionage.InvestmentCap + int(float64(excess)*(1-gs.Config.Espionage.OverInvestmentPenalty))
	}
	return points
}

func applyJoinFleet(gs *state.GameState, bus *events.Bus, house ids.HouseId, fc FleetCommandInput) {
	src, err := gs.Store.GetFleet(fc.Fleet)
	if err != nil {
		return
	}
	dst, err := gs.Store.GetFleet(fc.TargetFleet)
	if err != nil {
		return
	}
	dst.Squadrons = append(dst.Squadrons, src.Squadrons...)
	src.Squadrons = nil
	gs.Store.DestroyFleet(src.ID)
	bus.Emit(events.FleetMerged, house, dst.Location, events.FleetMergedPayload{Survivor: dst.ID, Absorbed: src.ID})
}

// executePopulationTransfer is spec §4.5 Part C's administrative-order
// handling of a PopulationTransferInput (spec §3 PopulationTransferId,
// §4.6 step 6). With no ViaFleet it is a direct reallocation between
// two colonies the house owns, applied immediately; with a ViaFleet it
// debits FromColony now and queues the PTUs to land at ToColony once
// that fleet arrives there (spec §4.6 step 6 "complete population
// transfers arriving this turn").
func executePopulationTransfer(gs *state.GameState, bus *events.Bus, house ids.HouseId, pt PopulationTransferInput) {
	if pt.PTUs <= 0 {
		return
	}
	from, err := gs.Store.GetColony(pt.FromColony)
	if err != nil || from.HouseId != house {
		return
	}
	souls := int64(pt.PTUs) * gs.Config.PTUSouls
	if from.Souls-souls < 1_000_000 {
		return
	}

	if pt.ViaFleet == ids.FleetId(ids.InvalidID) {
		to, err := gs.Store.GetColony(pt.ToColony)
		if err != nil || to.HouseId != house {
			return
		}
		from.Souls -= souls
		to.Souls += souls
		bus.Emit(events.CargoUnloaded, house, to.ID, events.CargoPayload{Colony: to.ID, Amount: souls})
		return
	}

	fleet, err := gs.Store.GetFleet(pt.ViaFleet)
	if err != nil || fleet.HouseId != house || fleet.Location != pt.FromColony {
		return
	}
	if to, err := gs.Store.GetColony(pt.ToColony); err != nil || to.HouseId != house {
		return
	}
	from.Souls -= souls
	gs.PendingPopulationTransfers = append(gs.PendingPopulationTransfers, state.PendingPopulationTransfer{
		ID: gs.Store.Counters.NextPopulationTransferId(),
		House: house, FromColony: pt.FromColony, ToColony: pt.ToColony, ViaFleet: pt.ViaFleet, PTUs: pt.PTUs,
	})
	bus.Emit(events.CargoLoaded, house, from.ID, events.CargoPayload{Fleet: fleet.ID, Colony: from.ID, Amount: souls})
}

// startTerraform is spec §4.5 Part C's administrative-order handling
// of a TerraformCommandInput (spec §3 Colony.terraformingProject): it
// (re)starts the colony's terraform project toward TargetClass, reset
// to the configured duration. Production phase's advanceTerraforming
// ticks it down and applies the class change on completion (spec §4.6
// step 7).
func startTerraform(gs *state.GameState, house ids.HouseId, tc TerraformCommandInput) {
	col, err := gs.Store.GetColony(tc.Colony)
	if err != nil || col.HouseId != house {
		return
	}
	col.Terraform = model.TerraformProject{
		Active:         true,
		TargetClass:    tc.TargetClass,
		TicksRemaining: gs.Config.Economy.TerraformTicks,
	}
}

// queueBuild appends a ConstructionQueueEntry to the target colony,
// locking in the cost computed the same way validate_command_packet
// previewed it (spec §4.2 check 3, §4.6 step 3).
func queueBuild(gs *state.GameState, house ids.HouseId, bc BuildCommandInput) (config.PP, bool) {
	col, err := gs.Store.GetColony(bc.Colony)
	if err != nil || col.HouseId != house {
		return config.Zero, false
	}
	h, _ := gs.Store.GetHouse(house)

	entry := model.ConstructionQueueEntry{
		ID:       gs.Store.Counters.NextConstructionProjectId(),
		Count:    bc.Count,
		AtNeoria: bc.AtNeoria,
	}

	switch {
	case bc.ShipClass != nil:
		class := config.ShipClass(*bc.ShipClass)
		stats, err := gs.Config.ShipStats.Lookup(class, h.TechTree.Level[config.WEP])
		if err != nil {
			return config.Zero, false
		}
		entry.Kind = model.ConstructShip
		entry.ShipClass = class
		unitCost := stats.BuildCost
		if neoria, err := gs.Store.GetNeoria(bc.AtNeoria); err == nil && neoria.Class == config.Spaceport && class != config.Fighter {
			unitCost = unitCost.MulFrac(2.0)
		}
		entry.TicksRemaining = 1
		col.ConstructionQueue = append(col.ConstructionQueue, entry)
		return unitCost.Mul(config.NewPP(int64(bc.Count))), true

	case bc.FacilityClass != nil:
		class := config.FacilityClass(*bc.FacilityClass)
		stats, err := gs.Config.FacilityStats.Lookup(class, h.TechTree.Level[config.CST])
		if err != nil {
			return config.Zero, false
		}
		entry.Kind = model.ConstructFacility
		entry.FacilityClass = class
		entry.TicksRemaining = 1
		col.ConstructionQueue = append(col.ConstructionQueue, entry)
		return stats.BuildCost.Mul(config.NewPP(int64(bc.Count))), true

	case bc.GroundUnitClass != nil:
		class := config.GroundUnitClass(*bc.GroundUnitClass)
		stats, err := gs.Config.GroundUnitStats.Lookup(class, h.TechTree.Level[config.CST])
		if err != nil {
			return config.Zero, false
		}
		entry.Kind = model.ConstructGroundUnit
		entry.GroundUnitClass = class
		entry.TicksRemaining = 1
		col.ConstructionQueue = append(col.ConstructionQueue, entry)
		return stats.BuildCost.Mul(config.NewPP(int64(bc.Count))), true
	}
	return config.Zero, false
}
