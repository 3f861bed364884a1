// Income & maintenance phase (spec §2 C9, §4.4). In order: ongoing
// effects tick down, salvage pools are credited, then per house gross
// colony output (with blockade penalty), maintenance and capacity
// enforcement, then prestige, elimination and finally victory checks.
// EBP/CIP investment is handled in the Command phase, not here, and
// ongoing effects do not modify any output, tax or research value.
//
// Grounded on the teacher's building_action.go/progress_action.go
// (the production-tick math for OGame's per-planet resource
// generation), generalized from a per-planet HTTP-triggered tick to a
// whole-galaxy per-turn pass over every colony in id order.
package engine

import (
	"sort"

	"github.com/ec4x/engine/internal/concurrency"
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/state"
)

// RunIncomePhase executes every step of spec §4.4 across every house
// and colony in canonical id order. combatReports is this turn's
// Conflict-phase output, consulted for combat-victory prestige bonuses
// and elimination-bonus attribution (step 9-10).
func RunIncomePhase(gs *state.GameState, bus *events.Bus, combatReports []*CombatReport) {
	gs.Phase = state.PhaseIncome

	tickOngoingEffects(gs)
	creditSalvage(gs)

	houses := gs.Store.IterHouses()
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID < houses[j].ID })

	pool := concurrency.New()

	for _, h := range houses {
		colonies := gs.Store.ColoniesByOwner(h.ID)
		sort.Slice(colonies, func(i, j int) bool { return colonies[i] < colonies[j] })

		// Every colony's gross output is a pure function of already-
		// settled state (no store writes happen until after this
		// gather completes), so the per-colony computation fans out
		// across a worker pool and is then reduced in colony-id order
		// — concurrency never perturbs the deterministic sum (spec P5).
		perColonyGCO := concurrency.Map(pool, colonies, func(cid ids.ColonyId) config.PP {
			col, err := gs.Store.GetColony(cid)
			if err != nil {
				return config.Zero
			}
			gco := grossColonyOutput(gs, h, col)
			if col.Blockade.Blockaded {
				gco = gco.MulFrac(gs.Config.Economy.BlockadePenalty)
			}
			return gco
		})

		totalGCO := config.Zero
		for _, gco := range perColonyGCO {
			totalGCO = totalGCO.Add(gco)
		}

		upkeep := totalMaintenance(gs, h)
		h.Treasury = h.Treasury.Add(totalGCO).Sub(upkeep)
		if h.Treasury.IsNegative() {
			h.Treasury = config.Zero
		}

		enforceCapacity(gs, bus, h, colonies)
	}

	for _, h := range houses {
		applyPrestigeDelta(gs, bus, h, combatReports)
		checkElimination(gs, bus, h, combatReports)
	}

	checkVictory(gs, bus)
}

// grossColonyOutput is spec §4.4 step 3: base output per infrastructure
// unit for the colony's PlanetClass, scaled by population and EL tech.
func grossColonyOutput(gs *state.GameState, h *model.House, col *model.Colony) config.PP {
	base, ok := gs.Config.Economy.GCOBaseByPlanetClass[col.PlanetClass]
	if !ok {
		base = gs.Config.Economy.GCOBaseByPlanetClass[1]
	}
	pop := float64(col.Population())
	elBonus := 1.0 + gs.Config.Economy.ELOutputBonusPerLevel*float64(h.TechTree.Level[config.EL])
	raw := base * float64(col.Infrastructure) * (1.0 + pop*gs.Config.Economy.PopulationOutputFactor) * elBonus
	return config.NewPPFromFloat(raw)
}

// totalMaintenance is spec §4.4 step 5: sum of every ship/facility/
// ground-unit upkeep the house owns, scaled by MaintenanceFactor.
func totalMaintenance(gs *state.GameState, h *model.House) config.PP {
	total := config.Zero
	for _, shid := range gs.Store.ShipsByOwner(h.ID) {
		sh, err := gs.Store.GetShip(shid)
		if err != nil {
			continue
		}
		stats, err := gs.Config.ShipStats.Lookup(sh.Class, h.TechTree.Level[config.WEP])
		if err != nil {
			continue
		}
		total = total.Add(stats.Upkeep)
	}
	for _, cid := range gs.Store.ColoniesByOwner(h.ID) {
		for _, nid := range gs.Store.NeoriasByColony(cid) {
			n, err := gs.Store.GetNeoria(nid)
			if err != nil {
				continue
			}
			stats, err := gs.Config.FacilityStats.Lookup(n.Class, h.TechTree.Level[config.CST])
			if err != nil {
				continue
			}
			total = total.Add(stats.Upkeep)
		}
	}
	return total.MulFrac(gs.Config.Economy.MaintenanceFactor)
}

// creditSalvage is spec §4.4 step 6: every pool recorded last Conflict
// phase is credited to its house's treasury and cleared.
func creditSalvage(gs *state.GameState) {
	for _, pool := range gs.SalvagePools {
		h, err := gs.Store.GetHouse(pool.House)
		if err != nil {
			continue
		}
		h.Treasury = h.Treasury.Add(pool.Amount)
	}
	gs.SalvagePools = nil
}

// tickOngoingEffects advances every OngoingEffect's remaining duration
// and drops expired ones. It runs first in the phase, and nothing in
// the phase reads the effects' magnitudes.
func tickOngoingEffects(gs *state.GameState) {
	var kept []*model.OngoingEffect
	for _, e := range gs.OngoingEffects {
		e.Tick()
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	gs.OngoingEffects = kept
}

// enforceCapacity is spec §4.4 step 7: capital-squadron overage
// (PlanetBreaker counts as a capital hull; it has no separate limit) is
// scrapped immediately; total-squadron and fighter overage is tolerated
// for GracePeriodTurns before the excess is automatically scrapped.
// Squadrons are counted per colony in ascending (fleet id, squadron id)
// order and those past the limit, i.e. the highest ids, are scrapped.
func enforceCapacity(gs *state.GameState, bus *events.Bus, h *model.House, colonies []ids.ColonyId) {
	for _, cid := range colonies {
		col, err := gs.Store.GetColony(cid)
		if err != nil {
			continue
		}

		fleets := gs.Store.FleetsBySystem(cid)
		sort.Slice(fleets, func(i, j int) bool { return fleets[i] < fleets[j] })

		var capital, total []ids.SquadronId
		for _, fid := range fleets {
			f, err := gs.Store.GetFleet(fid)
			if err != nil || f.HouseId != h.ID {
				continue
			}
			sqids := append([]ids.SquadronId{}, f.Squadrons...)
			sort.Slice(sqids, func(i, j int) bool { return sqids[i] < sqids[j] })
			for _, sqid := range sqids {
				sq, err := gs.Store.GetSquadron(sqid)
				if err != nil {
					continue
				}
				total = append(total, sqid)
				if isCapitalSquadron(gs, sq) {
					capital = append(capital, sqid)
				}
			}
		}

		// Capital-squadron overage: immediate, no grace period.
		scrapOverage(gs, bus, capital, gs.Config.Economy.CapitalSquadronLimitBase, "capital squadron limit exceeded")

		// Total-squadron and fighter overage each tolerate
		// GracePeriodTurns consecutive over-cap Income phases before
		// the excess is auto-scrapped (spec §4.4 step 7, E5).
		if len(total) > gs.Config.Economy.TotalSquadronLimitBase {
			col.SquadronOverageTurns++
		} else {
			col.SquadronOverageTurns = 0
		}
		if col.SquadronOverageTurns > gs.Config.Economy.GracePeriodTurns {
			scrapOverage(gs, bus, total, gs.Config.Economy.TotalSquadronLimitBase, "total squadron limit exceeded (grace period expired)")
			col.SquadronOverageTurns = 0
		}

		if len(col.FighterPool) > gs.Config.Economy.FighterLimitBase {
			col.FighterOverageTurns++
		} else {
			col.FighterOverageTurns = 0
		}
		if col.FighterOverageTurns > gs.Config.Economy.GracePeriodTurns {
			scrapFighterOverage(gs, bus, col, gs.Config.Economy.FighterLimitBase)
			col.FighterOverageTurns = 0
		}
	}
}

func isCapitalSquadron(gs *state.GameState, sq *model.Squadron) bool {
	sh, err := gs.Store.GetShip(sq.Flagship)
	if err != nil {
		return false
	}
	return sh.Class.CapitalClass()
}

func scrapOverage(gs *state.GameState, bus *events.Bus, squadrons []ids.SquadronId, limit int, reason string) {
	if limit < 0 || len(squadrons) <= limit {
		return
	}
	for _, sqid := range squadrons[limit:] {
		sq, err := gs.Store.GetSquadron(sqid)
		if err != nil {
			continue
		}
		for _, shid := range append([]ids.ShipId{}, sq.Ships...) {
			gs.Store.DestroyShip(shid)
		}
		sq.Ships = nil
		gs.Store.DestroySquadron(sqid)
		bus.Emit(events.SquadronScrapped, ids.HouseId(0), ids.SystemId(0), events.SquadronScrappedPayload{Squadron: sqid, Reason: reason})
	}
}

// scrapFighterOverage destroys the lowest-priority fighters once a
// colony's FighterPool has sat above its cap for longer than the
// configured grace period.
func scrapFighterOverage(gs *state.GameState, bus *events.Bus, col *model.Colony, limit int) {
	if limit < 0 || len(col.FighterPool) <= limit {
		return
	}
	for _, shid := range col.FighterPool[limit:] {
		gs.Store.DestroyShip(shid)
		bus.Emit(events.SquadronScrapped, ids.HouseId(0), col.ID, events.SquadronScrappedPayload{Reason: "fighter limit exceeded (grace period expired)"})
	}
	col.FighterPool = append([]ids.ShipId{}, col.FighterPool[:limit]...)
}

// applyPrestigeDelta is spec §4.4 step 9: the tax-policy component is
// smoothed over the configured 6-turn moving average (this turn's raw
// tax-band score is pushed onto the history first, then the average of
// that history is what is actually applied), plus a flat bonus per
// combat this house won this turn (spec §4.4 step 9 "combat
// victories"). Tech level-up bonuses are applied immediately when a
// field advances (engine/production.go's advanceResearch); elimination
// bonuses are applied in checkElimination, where the victors of this
// turn's combat are known.
func applyPrestigeDelta(gs *state.GameState, bus *events.Bus, h *model.House, combatReports []*CombatReport) {
	taxDelta := 0
	for _, cid := range gs.Store.ColoniesByOwner(h.ID) {
		col, err := gs.Store.GetColony(cid)
		if err != nil {
			continue
		}
		for _, band := range gs.Config.Economy.TaxBands {
			if col.TaxRate >= band.MinRate && col.TaxRate <= band.MaxRate {
				taxDelta += band.PrestigePerTurn
				break
			}
		}
	}
	h.PushPrestigeDelta(taxDelta, gs.Config.Prestige.MovingAverageWindowTurns)

	delta := int(mathRound(h.MovingAverage()))
	for _, report := range combatReports {
		if report.SpaceSuperiority == h.ID {
			delta += gs.Config.Prestige.CombatVictoryBonus
		}
	}

	h.Prestige += delta
	if delta != 0 {
		bus.Emit(events.PrestigeChanged, h.ID, ids.SystemId(0), events.PrestigeChangedPayload{Delta: delta, Total: h.Prestige})
	}
	if taxDelta < 0 {
		h.ConsecutiveNegativePrestigeTurns++
	} else {
		h.ConsecutiveNegativePrestigeTurns = 0
	}
}

// mathRound rounds half away from zero without pulling in math.Round
// just for this one call site (the house's moving average is a plain
// float64, never NaN/Inf).
func mathRound(v float64) float64 {
	if v < 0 {
		return -mathFloor(-v + 0.5)
	}
	return mathFloor(v + 0.5)
}

func mathFloor(v float64) float64 {
	i := int64(v)
	return float64(i)
}

// checkElimination is spec §4.4 step 10: a house with no colonies and
// no fleets is Eliminated; any house whose combat victory this turn
// contributed to the elimination is credited EliminationBonusToVictor
// prestige.
func checkElimination(gs *state.GameState, bus *events.Bus, h *model.House, combatReports []*CombatReport) {
	if h.Status == model.Eliminated {
		return
	}
	if len(gs.Store.ColoniesByOwner(h.ID)) == 0 && len(gs.Store.FleetsByOwner(h.ID)) == 0 {
		h.Status = model.Eliminated
		bus.Emit(events.HouseEliminated, h.ID, ids.SystemId(0), events.HouseEliminatedPayload{})

		victors := map[ids.HouseId]bool{}
		for _, report := range combatReports {
			if report.SpaceSuperiority == ids.InvalidID || report.SpaceSuperiority == h.ID {
				continue
			}
			for _, p := range report.Participants {
				if p == h.ID {
					victors[report.SpaceSuperiority] = true
				}
			}
		}
		var victorIDs []ids.HouseId
		for v := range victors {
			victorIDs = append(victorIDs, v)
		}
		sort.Slice(victorIDs, func(i, j int) bool { return victorIDs[i] < victorIDs[j] })
		for _, vid := range victorIDs {
			if victor, err := gs.Store.GetHouse(vid); err == nil {
				victor.Prestige += gs.Config.Prestige.EliminationBonusToVictor
				bus.Emit(events.PrestigeChanged, vid, ids.SystemId(0), events.PrestigeChangedPayload{
					Delta: gs.Config.Prestige.EliminationBonusToVictor, Total: victor.Prestige,
				})
			}
		}
		return
	}
	if h.ConsecutiveNegativePrestigeTurns >= gs.Config.Prestige.DefensiveCollapseTurns {
		h.Status = model.DefensiveCollapse
	}
}

// checkVictory is spec §4.4 step 10: prestige-threshold, last-house-
// standing, and turn-limit victory conditions, in that priority order;
// ties broken (prestige desc, colonies desc, house_id asc).
func checkVictory(gs *state.GameState, bus *events.Bus) {
	if gs.VictoryAchieved {
		return
	}

	houses := gs.Store.IterHouses()
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID < houses[j].ID })

	var active []*model.House
	for _, h := range houses {
		if h.Status != model.Eliminated {
			active = append(active, h)
		}
	}

	rank := func(hs []*model.House) []*model.House {
		sort.Slice(hs, func(i, j int) bool {
			if hs[i].Prestige != hs[j].Prestige {
				return hs[i].Prestige > hs[j].Prestige
			}
			ci, cj := len(gs.Store.ColoniesByOwner(hs[i].ID)), len(gs.Store.ColoniesByOwner(hs[j].ID))
			if ci != cj {
				return ci > cj
			}
			return hs[i].ID < hs[j].ID
		})
		return hs
	}

	for _, h := range rank(active) {
		if h.Prestige >= gs.Config.Prestige.VictoryThreshold {
			declareVictory(gs, bus, h, "prestige threshold reached")
			return
		}
	}

	if len(active) == 1 {
		declareVictory(gs, bus, active[0], "last house standing")
		return
	}
	if len(active) == 0 {
		return
	}

	if gs.Config.Prestige.TurnLimit > 0 && gs.Turn >= gs.Config.Prestige.TurnLimit {
		ranked := rank(active)
		declareVictory(gs, bus, ranked[0], "turn limit reached")
	}
}

func declareVictory(gs *state.GameState, bus *events.Bus, h *model.House, reason string) {
	gs.VictoryAchieved = true
	gs.VictoryReason = reason
	gs.VictoryWinner = h.ID
	bus.Emit(events.VictoryAchieved, h.ID, ids.SystemId(0), events.VictoryAchievedPayload{Reason: reason})
}
