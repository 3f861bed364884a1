package config

import "github.com/ec4x/engine/internal/ids"

// ShipClass enumerates the closed set of hull types a ship can have.
// Like the teacher's ShipsModule (oglike_server/internal/model/ships_module.go),
// this is a pure lookup key into a stats table; unlike the teacher,
// the set is closed (spec §3 names "a closed set of 17"); a value
// outside it renders as "UnknownShipClass" rather than panicking.
type ShipClass int

const (
	Fighter ShipClass = iota
	Scout
	Raider
	Corvette
	Destroyer
	Frigate
	Cruiser
	HeavyCruiser
	Battlecruiser
	Battleship
	Dreadnought
	Carrier
	Starbase
	ETAC
	TroopTransport
	Freighter
	PlanetBreaker

	numShipClasses
)

// String implements Stringer for readable logs and reports.
func (c ShipClass) String() string {
	switch c {
	case Fighter:
		return "Fighter"
	case Scout:
		return "Scout"
	case Raider:
		return "Raider"
	case Corvette:
		return "Corvette"
	case Destroyer:
		return "Destroyer"
	case Frigate:
		return "Frigate"
	case Cruiser:
		return "Cruiser"
	case HeavyCruiser:
		return "HeavyCruiser"
	case Battlecruiser:
		return "Battlecruiser"
	case Battleship:
		return "Battleship"
	case Dreadnought:
		return "Dreadnought"
	case Carrier:
		return "Carrier"
	case Starbase:
		return "Starbase"
	case ETAC:
		return "ETAC"
	case TroopTransport:
		return "TroopTransport"
	case Freighter:
		return "Freighter"
	case PlanetBreaker:
		return "PlanetBreaker"
	}
	return "UnknownShipClass"
}

// CapitalClass reports whether a class counts against the
// capital-squadron limit enforced in the Income phase (spec §4.4
// step 7). Capital hulls are the line-of-battle classes from Cruiser
// up through Dreadnought and the PlanetBreaker.
func (c ShipClass) CapitalClass() bool {
	switch c {
	case Cruiser, HeavyCruiser, Battlecruiser, Battleship, Dreadnought, PlanetBreaker:
		return true
	}
	return false
}

// SpecialCapability enumerates the non-combat special abilities a
// ship class can carry. A class has at most one.
type SpecialCapability int

const (
	NoCapability SpecialCapability = iota
	CapabilityELI
	CapabilityCLK
)

// ShipStats is the tuning data for one ship class at one WEP tech
// level. Every numeric field is produced by the WEP/CST progression
// and is immutable once loaded (spec §6: "the engine reads but never
// writes" config tables).
type ShipStats struct {
	Attack            int
	Defense           int
	CommandCost       int
	CommandRating     int
	TechMin           int
	BuildCost         ResourceAmount
	Upkeep            ResourceAmount
	Special           SpecialCapability
	CarryLimit        int // max embarked fighters for Carrier-capable hulls, 0 otherwise
	CargoCapacity     int // hold space in cargo units, 0 for pure combat hulls
	RapidFirePriority int // lower fires first within a simultaneous round (spec §9 "rapid fire" ordering)
}

// ShipStatsTable maps ShipClass -> WEP tech level -> ShipStats. WEP
// level 0 must always be present; levels are looked up by clamping to
// the highest level at or below the house's researched WEP.
type ShipStatsTable map[ShipClass]map[int]ShipStats

// Lookup resolves the effective stats for a class at a given WEP
// level, clamping down to the closest level the table actually
// defines. Returns *MissingTableEntry if the class has no entries at all —
// a programmer/data error per spec §7 kind 3.
func (t ShipStatsTable) Lookup(class ShipClass, wepLevel int) (ShipStats, error) {
	levels, ok := t[class]
	if !ok || len(levels) == 0 {
		return ShipStats{}, &MissingTableEntry{Table: "ship_stats", Key: class.String()}
	}

	best := -1
	for lvl := range levels {
		if lvl <= wepLevel && lvl > best {
			best = lvl
		}
	}
	if best == -1 {
		// No level at or below wepLevel; fall back to the lowest
		// defined level rather than failing a combat-critical lookup.
		for lvl := range levels {
			if best == -1 || lvl < best {
				best = lvl
			}
		}
	}

	return levels[best], nil
}

// RapidFire records a bonus-shot multiplier one ship class has
// against another, carried from the teacher's combat model
// (oglike_server/internal/game/fleet_fight.go: shipInFight.RFVSShips).
type RapidFire struct {
	Receiver ShipClass
	RF       int
}

// ShipIdentity is the immutable portion of a Ship entity derived from
// its class — kept separate from config.ShipStats so that the entity
// store (internal/store) never has to re-resolve tech levels to know
// "is this a capital hull".
type ShipIdentity struct {
	Class ShipClass
}

// ResourceAmount is a typed production-point quantity, expressed with
// exact decimal arithmetic (see internal/config/decimal.go) so that
// Income-phase math stays bit-identical across platforms (spec P5).
type ResourceAmount = PP

// HouseEntityCount is a convenience alias used by capacity checks;
// kept here rather than in internal/store to avoid a store->config
// import cycle.
type HouseEntityCount map[ids.HouseId]int
