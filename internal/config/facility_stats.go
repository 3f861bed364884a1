package config

// FacilityClass enumerates the closed set of facility kinds: the
// three Neoria (production) buildings plus the single Kastra
// (defensive) building, per spec §3.
type FacilityClass int

const (
	Spaceport FacilityClass = iota
	Shipyard
	Drydock
	StarbaseFacility

	numFacilityClasses
)

func (c FacilityClass) String() string {
	switch c {
	case Spaceport:
		return "Spaceport"
	case Shipyard:
		return "Shipyard"
	case Drydock:
		return "Drydock"
	case StarbaseFacility:
		return "Starbase"
	}
	return "UnknownFacilityClass"
}

// IsNeoria reports whether the class is one of the three production
// facilities (as opposed to the Kastra/Starbase defensive facility).
func (c FacilityClass) IsNeoria() bool {
	return c == Spaceport || c == Shipyard || c == Drydock
}

// FacilityStats is the tuning data for one facility class at one CST
// level: how many effective docks/slots it grants, and (for the
// Starbase) its own combat profile.
type FacilityStats struct {
	DockCount     int // effective concurrent construction/repair slots
	BuildCost     PP
	Upkeep        PP
	StarbaseAttack  int // meaningful only for StarbaseFacility
	StarbaseDefense int // meaningful only for StarbaseFacility
	SurveillanceBonus int // starbase bonus added to scout-detection/raider-cloak rolls (spec §4.3)
}

// FacilityStatsTable maps FacilityClass -> CST level -> stats.
type FacilityStatsTable map[FacilityClass]map[int]FacilityStats

// Lookup resolves effective stats, clamping down to the nearest
// defined CST level.
func (t FacilityStatsTable) Lookup(class FacilityClass, cstLevel int) (FacilityStats, error) {
	levels, ok := t[class]
	if !ok || len(levels) == 0 {
		return FacilityStats{}, &MissingTableEntry{Table: "facility_stats", Key: class.String()}
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
