package model

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
)

// ConstructionKind distinguishes what a queued ConstructionQueueEntry
// will produce when it completes.
type ConstructionKind int

const (
	ConstructShip ConstructionKind = iota
	ConstructFacility
	ConstructGroundUnit
)

// BlockadeStatus records whether a colony is currently blockaded and
// by whom (spec §3, §4.4 step 4).
type BlockadeStatus struct {
	Blockaded  bool
	Blockaders []ids.HouseId
}

// TerraformProject tracks an in-progress terraforming effort (spec
// §4.6 step 7).
type TerraformProject struct {
	Active        bool
	TargetClass   int
	TicksRemaining int
}

// ConstructionQueueEntry is one queued build order on a colony (spec
// §4.2, §4.6 step 3).
type ConstructionQueueEntry struct {
	ID              ids.ConstructionProjectId
	TicksRemaining  int
	Kind            ConstructionKind
	ShipClass       config.ShipClass
	FacilityClass   config.FacilityClass
	GroundUnitClass config.GroundUnitClass
	Count           int
	// AtNeoria is the facility a ship build is assigned to; used to
	// determine whether the spaceport commission penalty (spec §4.2)
	// already applied to this entry's locked-in cost.
	AtNeoria ids.NeoriaId
}

// RepairQueueEntry is one queued repair order (spec §4.6 step 3).
type RepairQueueEntry struct {
	ID             ids.RepairProjectId
	ShipId         ids.ShipId
	TicksRemaining int
}

// Colony is the sole settlement in a system, owned by exactly one
// house (spec §3). Grounded on the teacher's Planet
// (oglike_server/internal/model/planet.go, internal/game/planet.go),
// adapted to drop moons/coordinates (not part of this spec's map
// model) and to carry the souls/infrastructure/tax/queue fields the
// spec actually names.
type Colony struct {
	ID          ids.ColonyId // == the owning SystemId
	HouseId     ids.HouseId
	Souls       int64 // exact population count (spec: >= 1,000,000)
	PlanetClass int   // I..VII, caps population
	Infrastructure int // industrial units (IU)
	TaxRate     int   // 0-100

	Terraform TerraformProject

	Neorias     []ids.NeoriaId
	Kastras     []ids.KastraId
	GroundUnits []ids.GroundUnitId
	FighterPool []ids.ShipId

	ConstructionQueue []ConstructionQueueEntry
	RepairQueue       []RepairQueueEntry

	Blockade BlockadeStatus

	// SquadronOverageTurns / FighterOverageTurns count consecutive
	// Income phases this colony has been found over its total-squadron
	// or fighter cap (spec §4.4 step 7's 2-turn grace period). Reset to
	// zero as soon as the colony is back at or under its cap, or once
	// the overage is scrapped.
	SquadronOverageTurns int
	FighterOverageTurns  int
}

// Population derives millions-of-souls from the exact soul count
// (spec §3, P3: population == souls / 1_000_000).
func (c *Colony) Population() int64 {
	return c.Souls / 1_000_000
}

// CappedPopulation returns the population clamped to the maximum this
// colony's PlanetClass allows, given a class->cap table supplied by
// the caller (kept out of model to avoid an import of config here).
func (c *Colony) CappedPopulation(capByClass map[int]int64) int64 {
	pop := c.Population()
	if cap, ok := capByClass[c.PlanetClass]; ok && pop > cap {
		return cap
	}
	return pop
}
