// Package intel is the per-house intelligence database (spec §3
// "Intel database (per house)", §4.7 C12). It stores the last
// observation of every entity a house has ever seen, at whatever
// quality it was gathered, plus the append-only scout/blockade report
// logs.
//
// Grounded on the teacher's read-side DB utilities
// (oglike_server/internal/game/planet_db_utils.go,
// player_db_utils.go), which assemble a client-facing snapshot of an
// entity from stored rows; EC4X's per-house intel plays the same
// "what this house is allowed to know about entity X" role, except
// the snapshot is stored turn-over-turn instead of re-queried, since
// fog-of-war means a house's most recent information can predate the
// current turn (spec §3: "Observations carry gatheredTurn").
package intel

import "github.com/ec4x/engine/internal/ids"

// Quality is the closed set of observation fidelities (spec §3).
type Quality int

const (
	Visual Quality = iota
	Spy
	Perfect
)

func (q Quality) String() string {
	switch q {
	case Visual:
		return "Visual"
	case Spy:
		return "Spy"
	case Perfect:
		return "Perfect"
	}
	return "UnknownQuality"
}

// SystemObservation records what a house knows about a system as a
// whole: who is present, what they're doing.
type SystemObservation struct {
	System       ids.SystemId
	GatheredTurn int
	Quality      Quality
	HousesPresent []ids.HouseId
}

// FleetObservation records what a house knows about another house's
// fleet.
type FleetObservation struct {
	Fleet        ids.FleetId
	GatheredTurn int
	Quality      Quality
	Owner        ids.HouseId
	Location     ids.SystemId
	SquadronCount int
	ShipCount    int
	// Spy/Perfect-only fields; zero value if not gathered at that
	// quality (spec §4.7: "Spy — adds construction queues, embarked
	// fighters, tech levels, hull integrity, economic data").
	EmbarkedFighters int
	HullIntegrityPct int
}

// ColonyObservation records what a house knows about another house's
// colony.
type ColonyObservation struct {
	Colony       ids.ColonyId
	GatheredTurn int
	Quality      Quality
	Owner        ids.HouseId
	PopulationMillions int64
	PlanetClass  int
	// Spy/Perfect-only:
	Infrastructure   int
	TaxRate          int
	ConstructionQueueLen int
	NetProductionPP  int64
}

// OrbitalObservation records what a house knows about ships/squadrons
// stationed in orbit of a system (as distinct from a moving fleet).
type OrbitalObservation struct {
	System       ids.SystemId
	GatheredTurn int
	Quality      Quality
	FighterCount int
}

// StarbaseObservation records what a house knows about a starbase.
type StarbaseObservation struct {
	Kastra       ids.KastraId
	GatheredTurn int
	Quality      Quality
	Owner        ids.HouseId
	Crippled     bool
	Destroyed    bool
	HullIntegrityPct int
}

// SquadronObservation records what a house knows about a single
// squadron (used by spy-quality scout intel finer-grained than a
// whole-fleet roll-up).
type SquadronObservation struct {
	Squadron     ids.SquadronId
	GatheredTurn int
	Quality      Quality
	Owner        ids.HouseId
	ShipCount    int
}

// ScoutEncounterReport is appended (never overwritten) whenever a
// house's scout mission resolves, detected or not (spec §3).
type ScoutEncounterReport struct {
	Turn     int
	Fleet    ids.FleetId
	System   ids.SystemId
	Detected bool
}

// BlockadeReport is appended whenever a blockade a house is party to
// (as defender or blockader) changes state.
type BlockadeReport struct {
	Turn       int
	System     ids.SystemId
	Defender   ids.HouseId
	Blockaders []ids.HouseId
	Established bool
}

// Database is one house's intel store (spec §3 "Intel database (per
// house)"). Observations are keyed by the observed entity's id and
// overwritten by a fresher gather; report logs only ever grow within
// a game (spec §4.7 step (d) "storage").
type Database struct {
	Systems   map[ids.SystemId]SystemObservation
	Fleets    map[ids.FleetId]FleetObservation
	Colonies  map[ids.ColonyId]ColonyObservation
	Orbitals  map[ids.SystemId]OrbitalObservation
	Starbases map[ids.KastraId]StarbaseObservation
	Squadrons map[ids.SquadronId]SquadronObservation

	ScoutEncounters []ScoutEncounterReport
	BlockadeReports []BlockadeReport
}

// NewDatabase builds an empty intel database for one house.
func NewDatabase() *Database {
	return &Database{
		Systems:   map[ids.SystemId]SystemObservation{},
		Fleets:    map[ids.FleetId]FleetObservation{},
		Colonies:  map[ids.ColonyId]ColonyObservation{},
		Orbitals:  map[ids.SystemId]OrbitalObservation{},
		Starbases: map[ids.KastraId]StarbaseObservation{},
		Squadrons: map[ids.SquadronId]SquadronObservation{},
	}
}

// RecordSystem overwrites (or inserts) this house's observation of a
// system iff the new observation is at least as fresh as any existing
// one (spec §4.7 step (d): "overwrite older entries").
func (d *Database) RecordSystem(o SystemObservation) {
	if prev, ok := d.Systems[o.System]; ok && prev.GatheredTurn > o.GatheredTurn {
		return
	}
	d.Systems[o.System] = o
}

func (d *Database) RecordFleet(o FleetObservation) {
	if prev, ok := d.Fleets[o.Fleet]; ok && prev.GatheredTurn > o.GatheredTurn {
		return
	}
	d.Fleets[o.Fleet] = o
}

func (d *Database) RecordColony(o ColonyObservation) {
	if prev, ok := d.Colonies[o.Colony]; ok && prev.GatheredTurn > o.GatheredTurn {
		return
	}
	d.Colonies[o.Colony] = o
}

func (d *Database) RecordOrbital(o OrbitalObservation) {
	if prev, ok := d.Orbitals[o.System]; ok && prev.GatheredTurn > o.GatheredTurn {
		return
	}
	d.Orbitals[o.System] = o
}

func (d *Database) RecordStarbase(o StarbaseObservation) {
	if prev, ok := d.Starbases[o.Kastra]; ok && prev.GatheredTurn > o.GatheredTurn {
		return
	}
	d.Starbases[o.Kastra] = o
}

func (d *Database) RecordSquadron(o SquadronObservation) {
	if prev, ok := d.Squadrons[o.Squadron]; ok && prev.GatheredTurn > o.GatheredTurn {
		return
	}
	d.Squadrons[o.Squadron] = o
}
