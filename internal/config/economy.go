package config

// TaxBand gives the prestige bonus/penalty associated with a
// contiguous range of tax rates, used when scoring the 6-turn moving
// average described in spec §4.4 step 9.
type TaxBand struct {
	MinRate, MaxRate int // inclusive, 0-100
	PrestigePerTurn  int
}

// EconomyConfig bundles the tuning values the Income phase (C9) reads
// every turn. Grounded on the teacher's ResourcesModule
// (oglike_server/internal/model/resources_module.go), which plays the
// analogous role of "the table the production math reads from" for
// OGame's planet output formula.
type EconomyConfig struct {
	// BlockadePenalty multiplies a blockaded colony's gross output
	// (spec §4.4 step 4). Default 0.4.
	BlockadePenalty float64

	// TaxBands drives the prestige bonus/penalty for a house's
	// chosen tax policy.
	TaxBands []TaxBand

	// GCOBaseByPlanetClass gives the base output per infrastructure
	// unit for each of the seven planet classes (I-VII), before
	// population and tech multipliers are applied.
	GCOBaseByPlanetClass map[int]float64

	// PopulationOutputFactor scales GCO by colony population
	// (millions of souls).
	PopulationOutputFactor float64

	// ELOutputBonusPerLevel scales GCO by the house's EL tech level.
	ELOutputBonusPerLevel float64

	// MaintenanceFactor scales total fleet/facility/ground-unit
	// upkeep applied during Income step 5.
	MaintenanceFactor float64

	// SalvageRecoveryFraction is the fraction of a destroyed
	// entity's build cost recovered as PP by salvage orders (spec
	// §4.4 step 6; see SPEC_FULL.md §4 "deterministic debris/salvage
	// economics").
	SalvageRecoveryFraction float64

	// CapitalSquadronLimitBase / TotalSquadronLimitBase / FighterLimitBase
	// give the per-colony caps. Capacity enforcement (spec §4.4 step 7)
	// and build validation read these values directly; a colony's
	// infrastructure does not modify them.
	CapitalSquadronLimitBase int
	TotalSquadronLimitBase   int
	FighterLimitBase         int

	// GracePeriodTurns is the number of turns a total-squadron or
	// fighter overage is tolerated before automatic scrapping (spec
	// §4.4 step 7). Default 2.
	GracePeriodTurns int

	// TerraformTicks is the number of Production-phase ticks a
	// terraforming project takes to complete once started (spec §3
	// Colony.terraformingProject, §4.6 step 7).
	TerraformTicks int
}

// PrestigeConfig bundles the constants feeding the prestige delta
// computation (spec §4.4 step 9) and the victory/elimination
// thresholds (spec §4.4 step 10).
type PrestigeConfig struct {
	CombatVictoryBonus        int
	TechLevelUpBonus          int
	EliminationBonusToVictor  int
	VictoryThreshold          int
	DefensiveCollapseTurns    int // consecutive negative-prestige turns required (spec: 3)
	MovingAverageWindowTurns  int // 6, per spec §4.4 step 9

	// TurnLimit is the final turn number; reaching it without an
	// earlier victory ends the game with the highest-prestige house
	// declared the winner (spec §4.4 step 10). Zero disables the
	// check.
	TurnLimit int
}

// EspionageConfig bundles the EBP/CIP economics (spec §4.2 step 7,
// §4.4 step 2).
type EspionageConfig struct {
	// PPPerPoint is the PP cost to buy one EBP/CIP point: spec's
	// "points = pp / 40" names the divisor 40 directly; kept
	// configurable since the spec flags it as config-driven ("§4.4
	// step 2... with an over-investment penalty above configured
	// caps").
	PPPerPoint int

	// InvestmentCap is the maximum EBP/CIP points a house may hold
	// before additional investment is penalized.
	InvestmentCap int

	// OverInvestmentPenalty is the fraction of over-cap points lost
	// (e.g. 0.5 means only half of the excess is credited).
	OverInvestmentPenalty float64

	// ActionCost gives the EBP cost of each espionage action kind,
	// keyed by action name (spec §6 "espionage.action_cost").
	ActionCost map[string]int
}
