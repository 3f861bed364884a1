// Package config defines the immutable tuning tables the turn engine
// reads but never writes (spec §6). It plays the role the teacher's
// internal/model package plays for oglike_server — one file per
// table kind — but collapses them into a single Config value passed
// explicitly everywhere, per spec §9 ("Global state... MUST be
// re-architected as a single Config value passed explicitly to the
// engine; no hidden statics").
package config

// Config is the single immutable value the engine accepts. It must
// never be mutated after construction; every lookup method on its
// tables returns a value, never a pointer into engine-owned state.
type Config struct {
	ShipStats       ShipStatsTable
	GroundUnitStats GroundUnitStatsTable
	FacilityStats   FacilityStatsTable
	TechCosts       TechCostTable
	RapidFire       RapidFireTable
	Economy         EconomyConfig
	Prestige        PrestigeConfig
	Espionage       EspionageConfig
	Research        ResearchConfig

	// PTUSouls is the fixed number of souls moved by one Population
	// Transport Unit (spec GLOSSARY: 50 000).
	PTUSouls int64

	// MaxCombatRounds bounds a single theater's simultaneous-round
	// loop (grounded in the teacher's maxCombatRounds in
	// oglike_server/internal/game/fleet_fight.go).
	MaxCombatRounds int

	// CrippleThreshold is a fraction of initial defense strength at or
	// below which a unit is crippled (spec §4.3: crippling at <=0.5x);
	// destruction at <=0 is fixed, not configured.
	CrippleThreshold float64
}

// RapidFireTable maps an attacking ShipClass to the list of classes
// it has bonus shots against, mirroring shipInFight.RFVSShips /
// RFVSDefenses in the teacher's combat kernel.
type RapidFireTable map[ShipClass][]RapidFire
