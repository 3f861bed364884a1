package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads a YAML configuration file and returns an assembled,
// immutable Config. Grounded on the teacher's parseConfiguration()
// helpers (e.g. oglike_server/pkg/logger/std_logger.go,
// oglike_server/internal/locker/concurrent_lock.go), which use
// viper.IsSet/viper.Get* against a single loaded file; like those call
// sites, it patches a handful of scalar fields (one IsSet/Get pair
// each) onto Default(). The per-class/per-level stat tables, tech
// costs, tax bands and action costs always come from Default(); the
// file cannot override them.
//
// configPath is passed without extension, exactly like the teacher's
// arguments.Parse(configFile string): viper.SetConfigName + AddConfigPath.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetConfigName(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("data/config")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("could not parse engine configuration %q: %w", configPath, err)
	}

	cfg := Default()

	if v.IsSet("economy.blockade_penalty") {
		cfg.Economy.BlockadePenalty = v.GetFloat64("economy.blockade_penalty")
	}
	if v.IsSet("economy.maintenance_factor") {
		cfg.Economy.MaintenanceFactor = v.GetFloat64("economy.maintenance_factor")
	}
	if v.IsSet("economy.salvage_recovery_fraction") {
		cfg.Economy.SalvageRecoveryFraction = v.GetFloat64("economy.salvage_recovery_fraction")
	}
	if v.IsSet("economy.grace_period_turns") {
		cfg.Economy.GracePeriodTurns = v.GetInt("economy.grace_period_turns")
	}
	if v.IsSet("prestige.victory_threshold") {
		cfg.Prestige.VictoryThreshold = v.GetInt("prestige.victory_threshold")
	}
	if v.IsSet("espionage.pp_per_point") {
		cfg.Espionage.PPPerPoint = v.GetInt("espionage.pp_per_point")
	}
	if v.IsSet("engine.max_combat_rounds") {
		cfg.MaxCombatRounds = v.GetInt("engine.max_combat_rounds")
	}

	return cfg, nil
}

// Default returns a complete, internally-consistent Config suitable
// for tests and for bootstrapping a game before any YAML override is
// applied. Every table has at least tech level/WEP level 0 entries so
// that ShipStatsTable.Lookup et al. never hit MissingTableEntry for a
// freshly-created house.
func Default() Config {
	return Config{
		ShipStats:       defaultShipStats(),
		GroundUnitStats: defaultGroundUnitStats(),
		FacilityStats:   defaultFacilityStats(),
		TechCosts:       defaultTechCosts(),
		RapidFire:       defaultRapidFire(),
		Economy: EconomyConfig{
			BlockadePenalty: 0.4,
			TaxBands: []TaxBand{
				{MinRate: 0, MaxRate: 10, PrestigePerTurn: 1},
				{MinRate: 11, MaxRate: 30, PrestigePerTurn: 0},
				{MinRate: 31, MaxRate: 60, PrestigePerTurn: -1},
				{MinRate: 61, MaxRate: 100, PrestigePerTurn: -2},
			},
			GCOBaseByPlanetClass: map[int]float64{
				1: 12, 2: 10, 3: 9, 4: 7, 5: 5, 6: 3, 7: 2,
			},
			PopulationOutputFactor:  1.0,
			ELOutputBonusPerLevel:   0.05,
			MaintenanceFactor:       1.0,
			SalvageRecoveryFraction: 0.25,
			CapitalSquadronLimitBase: 6,
			TotalSquadronLimitBase:   20,
			FighterLimitBase:         40,
			GracePeriodTurns:         2,
			TerraformTicks:           3,
		},
		Prestige: PrestigeConfig{
			CombatVictoryBonus:       5,
			TechLevelUpBonus:         2,
			EliminationBonusToVictor: 10,
			VictoryThreshold:         500,
			DefensiveCollapseTurns:   3,
			MovingAverageWindowTurns: 6,
			TurnLimit:                500,
		},
		Espionage: EspionageConfig{
			PPPerPoint:            40,
			InvestmentCap:         200,
			OverInvestmentPenalty: 0.5,
			ActionCost: map[string]int{
				"SpyColony":    10,
				"SpySystem":    15,
				"HackStarbase": 25,
				"Disinformation": 20,
			},
		},
		Research: ResearchConfig{
			Costs:        defaultTechCosts(),
			Breakthrough: BreakthroughTable{EL: 20, SL: 20, CST: 15, WEP: 15, TFM: 10, ELI: 15, CIC: 15, ACO: 10, CLK: 10},
			TreasuryScaling: map[TechField]float64{
				EL: 1.0, SL: 1.0, CST: 1.1, WEP: 1.2, TFM: 1.0, ELI: 1.1, CIC: 1.1, ACO: 1.2, CLK: 1.3,
			},
			BreakthroughEveryNTurns: 5,
		},
		PTUSouls:         50_000,
		MaxCombatRounds:  6,
		CrippleThreshold: 0.5,
	}
}

func defaultShipStats() ShipStatsTable {
	base := func(attack, defense, cmd, cmdRating, tech, build, upkeep int, special SpecialCapability, carry, cargo, rf int) ShipStats {
		return ShipStats{
			Attack: attack, Defense: defense, CommandCost: cmd, CommandRating: cmdRating,
			TechMin: tech, BuildCost: NewPP(int64(build)), Upkeep: NewPP(int64(upkeep)),
			Special: special, CarryLimit: carry, CargoCapacity: cargo, RapidFirePriority: rf,
		}
	}

	t := ShipStatsTable{
		Fighter:        {0: base(5, 3, 1, 1, 0, 100, 1, NoCapability, 0, 0, 0)},
		Scout:          {0: base(1, 2, 1, 1, 0, 150, 1, NoCapability, 0, 0, 5)},
		Raider:         {0: base(8, 6, 2, 2, 1, 400, 2, CapabilityCLK, 0, 10, 3)},
		Corvette:       {0: base(10, 10, 2, 2, 0, 500, 2, NoCapability, 0, 20, 4)},
		Destroyer:      {0: base(18, 16, 3, 3, 1, 900, 4, NoCapability, 0, 30, 4)},
		Frigate:        {0: base(24, 22, 4, 3, 2, 1300, 5, NoCapability, 0, 40, 4)},
		Cruiser:        {0: base(34, 30, 6, 4, 3, 2200, 8, NoCapability, 0, 60, 5)},
		HeavyCruiser:   {0: base(48, 42, 8, 5, 4, 3200, 11, NoCapability, 0, 80, 5)},
		Battlecruiser:  {0: base(60, 52, 10, 6, 5, 4400, 15, NoCapability, 0, 100, 6)},
		Battleship:     {0: base(80, 70, 14, 7, 6, 6200, 20, NoCapability, 0, 140, 6)},
		Dreadnought:    {0: base(110, 95, 20, 9, 8, 9500, 30, NoCapability, 0, 180, 7)},
		Carrier:        {0: base(20, 40, 10, 5, 5, 5200, 16, CapabilityELI, 6, 200, 6)},
		Starbase:       {0: base(90, 140, 0, 0, 4, 8000, 25, NoCapability, 0, 0, 2)},
		ETAC:           {0: base(0, 8, 2, 1, 0, 700, 3, NoCapability, 0, 300, 9)},
		TroopTransport: {0: base(0, 10, 2, 1, 0, 800, 3, NoCapability, 0, 500, 9)},
		Freighter:      {0: base(0, 6, 2, 1, 0, 600, 3, NoCapability, 0, 800, 9)},
		PlanetBreaker:  {0: base(260, 180, 40, 12, 10, 40000, 120, NoCapability, 0, 0, 1)},
	}
	return t
}

func defaultGroundUnitStats() GroundUnitStatsTable {
	return GroundUnitStatsTable{
		Militia:               {0: {Attack: 2, Defense: 3, BuildCost: NewPP(40), Upkeep: NewPP(1)}},
		Infantry:              {0: {Attack: 5, Defense: 6, BuildCost: NewPP(90), Upkeep: NewPP(2)}},
		Armor:                 {0: {Attack: 12, Defense: 10, BuildCost: NewPP(220), Upkeep: NewPP(4)}},
		Artillery:             {0: {Attack: 18, Defense: 4, BuildCost: NewPP(300), Upkeep: NewPP(5)}},
		PlanetaryDefenseCorps: {0: {Attack: 8, Defense: 20, BuildCost: NewPP(260), Upkeep: NewPP(4)}},
	}
}

func defaultFacilityStats() FacilityStatsTable {
	return FacilityStatsTable{
		Spaceport:        {0: {DockCount: 1, BuildCost: NewPP(500), Upkeep: NewPP(5)}},
		Shipyard:         {0: {DockCount: 2, BuildCost: NewPP(1500), Upkeep: NewPP(15)}},
		Drydock:          {0: {DockCount: 1, BuildCost: NewPP(1200), Upkeep: NewPP(12)}},
		StarbaseFacility: {0: {DockCount: 0, BuildCost: NewPP(6000), Upkeep: NewPP(40), StarbaseAttack: 90, StarbaseDefense: 140, SurveillanceBonus: 2}},
	}
}

func defaultTechCosts() TechCostTable {
	costs := TechCostTable{}
	for _, f := range []TechField{EL, SL, CST, WEP, TFM, ELI, CIC, ACO, CLK} {
		costs[f] = map[int]int{}
		for lvl := 0; lvl < 20; lvl++ {
			costs[f][lvl] = 100 * (lvl + 1)
		}
	}
	return costs
}

func defaultRapidFire() RapidFireTable {
	return RapidFireTable{
		Raider:      {{Receiver: Freighter, RF: 3}, {Receiver: ETAC, RF: 3}, {Receiver: TroopTransport, RF: 3}},
		Destroyer:   {{Receiver: Fighter, RF: 2}, {Receiver: Scout, RF: 3}},
		Battleship:  {{Receiver: Corvette, RF: 2}},
		Dreadnought: {{Receiver: Destroyer, RF: 2}, {Receiver: Frigate, RF: 2}},
	}
}
