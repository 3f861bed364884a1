package model

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
)

// SquadronType is the closed set of squadron roles (spec §3). A
// squadron's type is fixed at creation by its flagship's class and
// drives lane eligibility and transport capacity.
type SquadronType int

const (
	CombatSquadron SquadronType = iota
	IntelSquadron
	ExpansionSquadron
	AuxiliarySquadron
	FighterSquadron
)

func (t SquadronType) String() string {
	switch t {
	case CombatSquadron:
		return "Combat"
	case IntelSquadron:
		return "Intel"
	case ExpansionSquadron:
		return "Expansion"
	case AuxiliarySquadron:
		return "Auxiliary"
	case FighterSquadron:
		return "Fighter"
	}
	return "UnknownSquadronType"
}

// SquadronTypeForClass returns the squadron type a flagship class
// implies, per spec §3 ("Flagship class determines combat role; type
// drives lane eligibility and transport capacity").
func SquadronTypeForClass(class config.ShipClass) SquadronType {
	switch class {
	case config.Scout:
		return IntelSquadron
	case config.ETAC:
		return ExpansionSquadron
	case config.Freighter, config.TroopTransport:
		return AuxiliarySquadron
	case config.Fighter:
		return FighterSquadron
	default:
		return CombatSquadron
	}
}

// Squadron groups a flagship with its escort ships (spec §3).
type Squadron struct {
	ID       ids.SquadronId
	Type     SquadronType
	Flagship ids.ShipId
	Ships    []ids.ShipId
}
