package model

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
)

// GroundUnit is a garrisoned combat unit engaged during the
// Planetary theater (spec §4.3, §3).
type GroundUnit struct {
	ID               ids.GroundUnitId
	ColonyId         ids.ColonyId
	Class            config.GroundUnitClass
	RemainingDefense int
	InitialDefense   int
	Destroyed        bool
}
