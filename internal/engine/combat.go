// Combat kernel (spec §2 C8, §4.3). Builds a multi-house battle for
// one system, resolves it theater by theater in simultaneous rounds,
// and produces a CombatReport.
//
// Grounded on the teacher's fleet_fight.go (shipInFight/defenseInFight/
// attacker/fight), which assembles augmented ship/defense stat lines
// and resolves them round by round; this kernel keeps the "augment
// stats once per battle, then iterate rounds applying accumulated
// damage" shape but replaces OGame's two-fleet duel with spec §4.3's
// theatered, N-house, simultaneous-target-selection design.
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

// Theater is the closed set of combat arenas resolved in strict order
// (spec §4.3: "Space -> Orbital -> Blockade -> Planetary").
type Theater int

const (
	TheaterSpace Theater = iota
	TheaterOrbital
	TheaterBlockade
	TheaterPlanetary
)

func (t Theater) String() string {
	switch t {
	case TheaterSpace:
		return "Space"
	case TheaterOrbital:
		return "Orbital"
	case TheaterBlockade:
		return "Blockade"
	case TheaterPlanetary:
		return "Planetary"
	}
	return "UnknownTheater"
}

// CombatReport is a first-class summary of one system's battle this
// turn (SPEC_FULL.md §4 "Combat reports as first-class values"),
// surfaced in TurnResult.combat_results.
type CombatReport struct {
	System           ids.SystemId
	Turn             int
	Participants      []ids.HouseId
	TheatersFought    []Theater
	ShipsDestroyed    map[ids.HouseId]int
	ShipsCrippled     map[ids.HouseId]int
	SpaceSuperiority  ids.HouseId // InvalidID if no clear winner
	SalvageGenerated  config.PP

	// ConquestBy records, per colony, which house's invasion broke
	// every garrisoned ground unit this battle (spec §4.3 CON1f/CON2).
	// Consulted by the Conflict phase's immediate-effects step right
	// after this report is produced.
	ConquestBy map[ids.ColonyId]ids.HouseId
}

// houseForces is one house's combat-capable ships present in a system
// for this battle, materialised in canonical order (spec §5: "sort by
// (system_id asc, house_id asc, fleet_id asc) before applying effects").
type houseForces struct {
	house ids.HouseId
	ships []ids.ShipId // sorted ascending by id
}

// BuildMultiHouseBattle decides whether combat occurs in a system
// (spec §4.3 CON1a) from the diplomatic matrix alone: it does when any
// two houses present are MutuallyHostile. Fleet commands are not
// consulted, so a Hostile declaration leads to combat whatever the
// fleets in the system are ordered to do.
func BuildMultiHouseBattle(gs *state.GameState, system ids.SystemId) []houseForces {
	fleetIDs := gs.Store.FleetsBySystem(system)
	sort.Slice(fleetIDs, func(i, j int) bool { return fleetIDs[i] < fleetIDs[j] })

	byHouse := map[ids.HouseId][]ids.ShipId{}
	var houseOrder []ids.HouseId
	for _, fid := range fleetIDs {
		f, err := gs.Store.GetFleet(fid)
		if err != nil {
			continue
		}
		if _, seen := byHouse[f.HouseId]; !seen {
			houseOrder = append(houseOrder, f.HouseId)
		}
		for _, sqid := range f.Squadrons {
			sq, err := gs.Store.GetSquadron(sqid)
			if err != nil || sq.Type == model.IntelSquadron {
				continue
			}
			for _, shid := range sq.Ships {
				sh, err := gs.Store.GetShip(shid)
				if err == nil && sh.IsCombatCapable() {
					byHouse[f.HouseId] = append(byHouse[f.HouseId], shid)
				}
			}
		}
	}

	sort.Slice(houseOrder, func(i, j int) bool { return houseOrder[i] < houseOrder[j] })

	hostilePairs := false
	for i := 0; i < len(houseOrder); i++ {
		for j := i + 1; j < len(houseOrder); j++ {
			if gs.Diplomacy.MutuallyHostile(houseOrder[i], houseOrder[j]) {
				hostilePairs = true
			}
		}
	}
	if !hostilePairs || len(houseOrder) < 2 {
		return nil
	}

	out := make([]houseForces, 0, len(houseOrder))
	for _, h := range houseOrder {
		ships := byHouse[h]
		sort.Slice(ships, func(i, j int) bool { return ships[i] < ships[j] })
		out = append(out, houseForces{house: h, ships: ships})
	}
	return out
}

// ResolveSystemCombat runs every theater for one system in order,
// feeding each theater's survivors into the next (spec §4.3: "each
// theater's outcome feeds the next; e.g., loss of space superiority
// skips Orbital and Planetary for the attacker"). It returns a
// CombatReport and emits events as it goes.
func ResolveSystemCombat(gs *state.GameState, bus *events.Bus, rngSvc *rng.Service, system ids.SystemId) *CombatReport {
	forces := BuildMultiHouseBattle(gs, system)
	if forces == nil {
		return nil
	}

	report := &CombatReport{
		System:         system,
		Turn:           gs.Turn,
		ShipsDestroyed: map[ids.HouseId]int{},
		ShipsCrippled:  map[ids.HouseId]int{},
		ConquestBy:     map[ids.ColonyId]ids.HouseId{},
	}
	for _, f := range forces {
		report.Participants = append(report.Participants, f.house)
	}

	spaceSurvivors := resolveSpaceTheater(gs, bus, rngSvc, system, forces, report)
	report.TheatersFought = append(report.TheatersFought, TheaterSpace)

	winner := ids.InvalidID
	if len(spaceSurvivors) == 1 {
		winner = spaceSurvivors[0].house
	} else if len(spaceSurvivors) == 0 {
		winner = ids.InvalidID
	}
	report.SpaceSuperiority = winner

	if len(spaceSurvivors) >= 1 {
		resolveOrbitalTheater(gs, bus, system, spaceSurvivors, report)
		report.TheatersFought = append(report.TheatersFought, TheaterOrbital)

		resolveBlockadeTheater(gs, bus, system, spaceSurvivors, report)
		report.TheatersFought = append(report.TheatersFought, TheaterBlockade)

		resolvePlanetaryTheater(gs, bus, system, spaceSurvivors, report, report.ConquestBy)
		report.TheatersFought = append(report.TheatersFought, TheaterPlanetary)
	}

	bus.Emit(events.CombatPhaseCompleted, ids.InvalidID, system, nil)
	return report
}

// resolveSpaceTheater runs simultaneous combat rounds among every
// participating house's combat-capable ships until at most one house
// has survivors or the configured round cap is hit (spec §4.3: "all
// participants choose targets before any damage is applied; damage is
// accumulated then applied in one step").
func resolveSpaceTheater(gs *state.GameState, bus *events.Bus, rngSvc *rng.Service, system ids.SystemId, forces []houseForces, report *CombatReport) []houseForces {
	cfg := gs.Config
	round := 0
	for round < cfg.MaxCombatRounds {
		forces = pruneEmpty(gs, forces)
		if len(forces) < 2 {
			break
		}
		round++
		bus.Emit(events.WeaponFired, ids.InvalidID, system, events.WeaponFiredPayload{System: system, Round: round})

		damageByShip := map[ids.ShipId]int{}
		for i := range forces {
			attacker := forces[i]
			var targets []houseForces
			for j := range forces {
				if j != i {
					targets = append(targets, forces[j])
				}
			}
			if len(targets) == 0 {
				continue
			}
			totalAttack := 0
			for _, shid := range attacker.ships {
				sh, err := gs.Store.GetShip(shid)
				if err != nil {
					continue
				}
				house, _ := gs.Store.GetHouse(attacker.house)
				stats, err := cfg.ShipStats.Lookup(sh.Class, house.TechTree.Level[config.WEP])
				if err != nil {
					continue
				}
				totalAttack += stats.Attack
			}
			// deterministic target pool: all enemy ships sorted
			// (attack_strength desc, ship_id asc) per spec tie-break,
			// but since we apply aggregate damage we only need a
			// stable id-ascending order to walk while spending the pool.
			var pool []ids.ShipId
			for _, t := range targets {
				pool = append(pool, t.ships...)
			}
			sort.Slice(pool, func(a, b int) bool { return pool[a] < pool[b] })

			remaining := totalAttack
			for _, shid := range pool {
				if remaining <= 0 {
					break
				}
				sh, err := gs.Store.GetShip(shid)
				if err != nil {
					continue
				}
				take := sh.RemainingDefense - damageByShip[shid]
				if take < 0 {
					take = 0
				}
				if take > remaining {
					take = remaining
				}
				damageByShip[shid] += take
				remaining -= take
			}
		}

		for _, f := range forces {
			for _, shid := range f.ships {
				dmg, ok := damageByShip[shid]
				if !ok || dmg == 0 {
					continue
				}
				sh, err := gs.Store.GetShip(shid)
				if err != nil {
					continue
				}
				changed := sh.ApplyDamage(dmg, cfg.CrippleThreshold)
				if changed && sh.State == model.Destroyed {
					report.ShipsDestroyed[f.house]++
					bus.Emit(events.ShipDestroyed, f.house, system, events.ShipDestroyedPayload{Ship: shid, Fleet: sh.FleetId, System: system})
					report.SalvageGenerated = report.SalvageGenerated.Add(salvageValue(gs, sh))
				} else if changed && sh.State == model.Crippled {
					report.ShipsCrippled[f.house]++
				}
			}
		}
	}

	return pruneEmpty(gs, forces)
}

// pruneEmpty is called on the forces slice, not dereferenced from
// gs.Store, so it needs to resolve each ship's state itself to drop
// houses with no surviving (non-Destroyed) ships left.
func pruneEmpty(gs *state.GameState, forces []houseForces) []houseForces {
	var out []houseForces
	for _, f := range forces {
		var alive []ids.ShipId
		for _, shid := range f.ships {
			sh, err := gs.Store.GetShip(shid)
			if err == nil && sh.IsCombatCapable() {
				alive = append(alive, shid)
			}
		}
		if len(alive) > 0 {
			out = append(out, houseForces{house: f.house, ships: alive})
		}
	}
	return out
}

func salvageValue(gs *state.GameState, sh *model.Ship) config.PP {
	house, err := gs.Store.GetHouse(sh.HouseId)
	if err != nil {
		return config.Zero
	}
	stats, err := gs.Config.ShipStats.Lookup(sh.Class, house.TechTree.Level[config.WEP])
	if err != nil {
		return config.Zero
	}
	return stats.BuildCost.MulFrac(gs.Config.Economy.SalvageRecoveryFraction)
}

// resolveOrbitalTheater fights remaining ships against any friendly
// starbases belonging to houses other than the space-superiority
// winner (spec §4.3: Orbital follows Space). Simplified single-round
// exchange against the colony's Kastra combat state.
func resolveOrbitalTheater(gs *state.GameState, bus *events.Bus, system ids.SystemId, survivors []houseForces, report *CombatReport) {
	col, err := gs.Store.GetColony(system)
	if err != nil {
		return
	}
	for _, kid := range gs.Store.KastrasByColony(col.ID) {
		k, err := gs.Store.GetKastra(kid)
		if err != nil || k.Combat.Destroyed {
			continue
		}
		for _, f := range survivors {
			if f.house == col.HouseId {
				continue
			}
			totalAttack := 0
			house, _ := gs.Store.GetHouse(f.house)
			for _, shid := range f.ships {
				sh, err := gs.Store.GetShip(shid)
				if err != nil {
					continue
				}
				stats, err := gs.Config.ShipStats.Lookup(sh.Class, house.TechTree.Level[config.WEP])
				if err == nil {
					totalAttack += stats.Attack
				}
			}
			k.Combat.RemainingDefense -= totalAttack
			if k.Combat.RemainingDefense <= 0 {
				k.Combat.RemainingDefense = 0
				k.Combat.Destroyed = true
			} else if float64(k.Combat.RemainingDefense) <= gs.Config.CrippleThreshold*float64(k.Combat.InitialDefense) {
				k.Combat.Crippled = true
			}
		}
	}
}

// resolveBlockadeTheater marks a colony blockaded if hostile
// combat-capable ships survive in-system at the end of Space/Orbital
// (spec §4.3, §4.4 step 4).
func resolveBlockadeTheater(gs *state.GameState, bus *events.Bus, system ids.SystemId, survivors []houseForces, report *CombatReport) {
	col, err := gs.Store.GetColony(system)
	if err != nil {
		return
	}
	var blockaders []ids.HouseId
	for _, f := range survivors {
		if f.house != col.HouseId {
			blockaders = append(blockaders, f.house)
		}
	}
	wasBlockaded := col.Blockade.Blockaded
	if len(blockaders) > 0 {
		col.Blockade = model.BlockadeStatus{Blockaded: true, Blockaders: blockaders}
		if !wasBlockaded {
			bus.Emit(events.BlockadeEstablished, col.HouseId, system, events.BlockadeEstablishedPayload{Defender: col.HouseId, Blockaders: blockaders, System: system})
		}
	} else if wasBlockaded {
		col.Blockade = model.BlockadeStatus{}
		bus.Emit(events.BlockadeLifted, col.HouseId, system, events.BlockadeLiftedPayload{Defender: col.HouseId, System: system})
	}
}

// resolvePlanetaryTheater fights invading ground-capable squadrons
// (from Invade/Blitz commands) against the colony's garrisoned ground
// units (spec §4.3 Planetary theater).
func resolvePlanetaryTheater(gs *state.GameState, bus *events.Bus, system ids.SystemId, survivors []houseForces, report *CombatReport, conquestBy map[ids.ColonyId]ids.HouseId) {
	col, err := gs.Store.GetColony(system)
	if err != nil {
		return
	}
	for _, f := range survivors {
		if f.house == col.HouseId {
			continue
		}
		invading := false
		for _, fid := range gs.Store.FleetsBySystem(system) {
			fl, err := gs.Store.GetFleet(fid)
			if err == nil && fl.HouseId == f.house &&
				(fl.Command.Code == model.CmdInvade || fl.Command.Code == model.CmdBlitz) {
				invading = true
			}
		}
		if !invading {
			continue
		}

		house, _ := gs.Store.GetHouse(f.house)
		totalAttack := 0
		for _, shid := range f.ships {
			sh, err := gs.Store.GetShip(shid)
			if err != nil {
				continue
			}
			stats, err := gs.Config.ShipStats.Lookup(sh.Class, house.TechTree.Level[config.WEP])
			if err == nil {
				totalAttack += stats.Attack / 4 // bombardment-equivalent fraction vs ground
			}
		}

		for _, guid := range gs.Store.GroundUnitsByColony(col.ID) {
			if totalAttack <= 0 {
				break
			}
			gu, err := gs.Store.GetGroundUnit(guid)
			if err != nil || gu.Destroyed {
				continue
			}
			take := gu.RemainingDefense
			if take > totalAttack {
				take = totalAttack
			}
			gu.RemainingDefense -= take
			totalAttack -= take
			if gu.RemainingDefense <= 0 {
				gu.Destroyed = true
				gs.Store.DestroyGroundUnit(guid)
			}
		}

		if totalAttack > 0 && len(gs.Store.GroundUnitsByColony(col.ID)) == 0 {
			// spec §4.3 CON2: conquest handled immediately after this
			// system's combat by the Conflict phase, reading this map.
			conquestBy[col.ID] = f.house
		}
	}
}
