package model

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
)

// ShipState is the closed set of combat-damage states a ship can be
// in (spec §3).
type ShipState int

const (
	Undamaged ShipState = iota
	Crippled
	Destroyed
)

func (s ShipState) String() string {
	switch s {
	case Undamaged:
		return "Undamaged"
	case Crippled:
		return "Crippled"
	case Destroyed:
		return "Destroyed"
	}
	return "UnknownShipState"
}

// Ship is a single hull with its current combat state. Stats are not
// cached on the Ship itself: the engine resolves config.ShipStats
// fresh from the owning house's WEP level whenever it needs them, so
// a Ship never goes stale when tech advances mid-campaign.
type Ship struct {
	ID      ids.ShipId
	HouseId ids.HouseId
	Class   config.ShipClass
	State   ShipState

	// FleetId is InvalidID when the ship is colony-garrisoned
	// (fighters held in a colony's fighter pool) or embarked on a
	// carrier rather than belonging to a fleet directly (spec §3
	// cross-entity invariant).
	FleetId ids.FleetId

	// AssignedToCarrier is the ShipId of the Carrier this ship is
	// embarked on, or InvalidID if not embarked.
	AssignedToCarrier ids.ShipId

	// CargoUsed tracks how much of the hull's CargoCapacity is
	// currently loaded (spec §4.2 zero-turn cargo ops).
	CargoUsed int

	// RemainingDefense is the ship's current hit points, tracked in
	// absolute terms so crippling/destruction thresholds (spec §4.3:
	// <=0.5x initial, <=0) can be evaluated without re-deriving the
	// initial value from config every time.
	RemainingDefense int
	InitialDefense   int
}

// IsCombatCapable reports whether this ship can participate in the
// Space/Orbital theaters (i.e. is not destroyed).
func (s *Ship) IsCombatCapable() bool {
	return s.State != Destroyed
}

// ApplyDamage reduces RemainingDefense and updates State according to
// the configured crippling/destruction thresholds. Returns true if
// this call caused a state transition (used by the combat kernel to
// decide whether to emit a ShipDestroyed/crippled event).
func (s *Ship) ApplyDamage(damage int, crippleThreshold float64) bool {
	before := s.State
	s.RemainingDefense -= damage
	if s.RemainingDefense <= 0 {
		s.RemainingDefense = 0
		s.State = Destroyed
	} else if float64(s.RemainingDefense) <= crippleThreshold*float64(s.InitialDefense) {
		if s.State == Undamaged {
			s.State = Crippled
		}
	}
	return s.State != before
}
