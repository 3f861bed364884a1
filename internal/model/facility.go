package model

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
)

// Neoria is a production facility: Spaceport, Shipyard, or Drydock
// (spec §3). Its effective dock count is modulated by crippled state,
// mirrored here by CrippledDocks.
type Neoria struct {
	ID            ids.NeoriaId
	ColonyId      ids.ColonyId
	Class         config.FacilityClass
	CrippledDocks int // docks currently out of action
}

// EffectiveDocks returns the number of docks this facility can
// actually use this turn, given its base dock count at the owning
// house's current CST level.
func (n *Neoria) EffectiveDocks(baseDocks int) int {
	eff := baseDocks - n.CrippledDocks
	if eff < 0 {
		return 0
	}
	return eff
}

// KastraCombatState tracks a Starbase's own combat condition,
// separate from the ships stationed over it (spec §3).
type KastraCombatState struct {
	RemainingDefense int
	InitialDefense   int
	Crippled         bool
	Destroyed        bool
}

// Kastra is a defensive facility: only Starbase exists today, but the
// type is kept distinct from Neoria because spec §3 enumerates it
// separately and it carries its own combat state.
type Kastra struct {
	ID       ids.KastraId
	ColonyId ids.ColonyId
	Class    config.FacilityClass // always config.StarbaseFacility
	Combat   KastraCombatState
}
