package model

import "github.com/ec4x/engine/internal/ids"

// EffectType is the closed set of ongoing effects that can be applied
// to a house or entity (spec §3).
type EffectType int

const (
	EffectIntelCorruption EffectType = iota
	EffectNCVReduction
	EffectSRPReduction
	EffectTaxReduction
)

func (t EffectType) String() string {
	switch t {
	case EffectIntelCorruption:
		return "IntelCorruption"
	case EffectNCVReduction:
		return "NCVReduction"
	case EffectSRPReduction:
		return "SRPReduction"
	case EffectTaxReduction:
		return "TaxReduction"
	}
	return "UnknownEffectType"
}

// OngoingEffect is a timed modifier on a house (spec §3). Magnitude's
// unit depends on EffectType: a fraction in [0,1] for
// IntelCorruption/NCVReduction/TaxReduction, an absolute RP penalty
// for SRPReduction.
type OngoingEffect struct {
	Type          EffectType
	TargetHouse   ids.HouseId
	Magnitude     float64
	TurnsRemaining int
}

// Expired reports whether this effect has run out.
func (e *OngoingEffect) Expired() bool {
	return e.TurnsRemaining <= 0
}

// Tick advances the effect's remaining duration by one turn.
func (e *OngoingEffect) Tick() {
	if e.TurnsRemaining > 0 {
		e.TurnsRemaining--
	}
}
