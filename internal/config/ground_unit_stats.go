package config

// GroundUnitClass enumerates the ground-combat unit types garrisoned
// on a colony and engaged during the Planetary theater (spec §4.3).
type GroundUnitClass int

const (
	Militia GroundUnitClass = iota
	Infantry
	Armor
	Artillery
	PlanetaryDefenseCorps

	numGroundUnitClasses
)

func (c GroundUnitClass) String() string {
	switch c {
	case Militia:
		return "Militia"
	case Infantry:
		return "Infantry"
	case Armor:
		return "Armor"
	case Artillery:
		return "Artillery"
	case PlanetaryDefenseCorps:
		return "PlanetaryDefenseCorps"
	}
	return "UnknownGroundUnitClass"
}

// GroundUnitStats is the tuning data for one ground unit class at one
// CST tech level.
type GroundUnitStats struct {
	Attack    int
	Defense   int
	BuildCost PP
	Upkeep    PP
}

// GroundUnitStatsTable maps GroundUnitClass -> CST level -> stats.
type GroundUnitStatsTable map[GroundUnitClass]map[int]GroundUnitStats

// Lookup resolves effective stats, clamping down to the nearest
// defined CST level (same policy as ShipStatsTable.Lookup).
func (t GroundUnitStatsTable) Lookup(class GroundUnitClass, cstLevel int) (GroundUnitStats, error) {
	levels, ok := t[class]
	if !ok || len(levels) == 0 {
		return GroundUnitStats{}, &MissingTableEntry{Table: "ground_unit_stats", Key: class.String()}
	}

	best := -1
	for lvl := range levels {
		if lvl <= cstLevel && lvl > best {
			best = lvl
		}
	}
	if best == -1 {
		for lvl := range levels {
			if best == -1 || lvl < best {
				best = lvl
			}
		}
	}
	return levels[best], nil
}
