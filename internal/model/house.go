// Package model defines the entities that make up a GameState: houses,
// colonies, facilities, fleets, squadrons, ships, ground units,
// ongoing effects, the diplomatic matrix, and the star map. It plays
// the role the teacher's internal/model package plays for
// oglike_server, but every entity here is keyed by the typed integer
// ids in internal/ids instead of google/uuid strings, and ownership
// is expressed purely by id reference — no entity ever holds a
// pointer to another (spec §9, "Cyclic references").
package model

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
)

// HouseStatus is the closed set of lifecycle states a house can be in.
type HouseStatus int

const (
	Active HouseStatus = iota
	DefensiveCollapse
	Autopilot
	Eliminated
)

func (s HouseStatus) String() string {
	switch s {
	case Active:
		return "Active"
	case DefensiveCollapse:
		return "DefensiveCollapse"
	case Autopilot:
		return "Autopilot"
	case Eliminated:
		return "Eliminated"
	}
	return "UnknownHouseStatus"
}

// TechTree tracks a house's researched level and accumulated research
// points for each tech field (spec §3, House.techTree).
type TechTree struct {
	Level      map[config.TechField]int
	Points     map[config.TechField]int // accumulated RP not yet converted to a level
}

// NewTechTree builds a tech tree with every field at level 0.
func NewTechTree() TechTree {
	fields := []config.TechField{config.EL, config.SL, config.CST, config.WEP, config.TFM, config.ELI, config.CIC, config.ACO, config.CLK}
	t := TechTree{Level: make(map[config.TechField]int, len(fields)), Points: make(map[config.TechField]int, len(fields))}
	for _, f := range fields {
		t.Level[f] = 0
		t.Points[f] = 0
	}
	return t
}

// EspionageBudget tracks a house's accumulated EBP (offensive) and
// CIP (counter-intelligence) points (spec §3, GLOSSARY).
type EspionageBudget struct {
	EBP int
	CIP int
}

// House is a player's nation: treasury, prestige, tech tree,
// diplomatic posture, and the intel a house has gathered on the rest
// of the galaxy (spec §3).
type House struct {
	ID       ids.HouseId
	Name     string
	Treasury config.PP
	Prestige int
	Status   HouseStatus

	TechTree TechTree

	Espionage EspionageBudget

	PlanetBreakerCount int

	// ConsecutiveNegativePrestigeTurns feeds the defensive-collapse
	// eligibility check (spec §4.4 step 10: >= 3 consecutive turns).
	ConsecutiveNegativePrestigeTurns int

	// PrestigeHistory holds the trailing prestige deltas used by the
	// 6-turn moving average tax-policy score (spec §4.4 step 9). It
	// is capped at PrestigeConfig.MovingAverageWindowTurns entries,
	// oldest first.
	PrestigeHistory []int
}

// NewHouse creates a fresh Active house with an empty tech tree and
// zero treasury/prestige.
func NewHouse(id ids.HouseId, name string) *House {
	return &House{
		ID:       id,
		Name:     name,
		Treasury: config.Zero,
		Status:   Active,
		TechTree: NewTechTree(),
	}
}

// PushPrestigeDelta records this turn's prestige delta into the
// moving-average history, evicting the oldest entry once the window
// is full.
func (h *House) PushPrestigeDelta(delta int, windowTurns int) {
	h.PrestigeHistory = append(h.PrestigeHistory, delta)
	if len(h.PrestigeHistory) > windowTurns {
		h.PrestigeHistory = h.PrestigeHistory[len(h.PrestigeHistory)-windowTurns:]
	}
}

// MovingAverage returns the arithmetic mean of the recorded prestige
// history (0 if no history yet).
func (h *House) MovingAverage() float64 {
	if len(h.PrestigeHistory) == 0 {
		return 0
	}
	sum := 0
	for _, d := range h.PrestigeHistory {
		sum += d
	}
	return float64(sum) / float64(len(h.PrestigeHistory))
}
