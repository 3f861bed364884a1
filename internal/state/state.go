// Package state defines GameState, the root aggregate the turn engine
// resolves (spec §2 C3, §3). It owns the entity store, the star map,
// the diplomatic matrix, each house's intel database, ongoing
// effects, pending ship commissions, and the last turn's event log.
//
// Grounded on the teacher's Universe
// (oglike_server/internal/model/universe.go,
// oglike_server/internal/game/universe.go), which is the closest
// thing oglike_server has to a single root aggregate (a universe
// bundles its planets/players/fleets); GameState plays the same role
// but for a single deterministic turn-resolution call rather than a
// long-lived DB-backed server process.
package state

import (
	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/intel"
	"github.com/ec4x/engine/internal/model"
	"github.com/ec4x/engine/internal/store"
)

// Phase is the closed set of phases a turn moves through (spec §2,
// data-flow diagram: Conflict -> Income -> Command -> Production).
type Phase int

const (
	PhaseConflict Phase = iota
	PhaseIncome
	PhaseCommand
	PhaseProduction
)

func (p Phase) String() string {
	switch p {
	case PhaseConflict:
		return "Conflict"
	case PhaseIncome:
		return "Income"
	case PhaseCommand:
		return "Command"
	case PhaseProduction:
		return "Production"
	}
	return "UnknownPhase"
}

// PendingCommission is a ship build that completed construction during
// Production but is deferred to next turn's Command-phase automation
// so docks free up before automation runs (spec §4.6 step 4, §4.5
// Part A).
type PendingCommission struct {
	House    ids.HouseId
	Colony   ids.ColonyId
	Class    config.ShipClass
	Count    int
	AtNeoria ids.NeoriaId
}

// SalvagePool accumulates PP recovered from wrecks in one system,
// available to the owning house's colony the following Income phase
// (spec §4.4 step 6; SPEC_FULL.md §4 "deterministic debris/salvage
// economics", grounded on the teacher's debris.go).
type SalvagePool struct {
	System ids.SystemId
	House  ids.HouseId
	Amount config.PP
}

// GameState is the root aggregate: everything resolve_turn reads and
// produces a next version of (spec §3).
type GameState struct {
	Turn  int
	Phase Phase

	Config  config.Config
	Store   *store.Store
	StarMap *model.StarMap

	Diplomacy *model.DiplomaticMatrix

	// PendingDiplomacy holds declarations made during Command phase
	// that take effect in Production's Maintenance step (spec §4.2
	// diplomatic commands; §4.6 step 5).
	PendingDiplomacy []PendingDiplomaticChange

	Intel map[ids.HouseId]*intel.Database

	OngoingEffects []*model.OngoingEffect

	PendingCommissions []PendingCommission
	SalvagePools       []SalvagePool

	// PendingPopulationTransfers holds fleet-borne PTU shipments queued
	// during Command phase that complete once their carrying fleet
	// reaches ToColony (spec §3 PopulationTransferId, §4.6 step 6:
	// "complete population transfers arriving this turn").
	PendingPopulationTransfers []PendingPopulationTransfer

	LastTurnEvents []LoggedEvent

	VictoryAchieved bool
	VictoryReason   string
	VictoryWinner   ids.HouseId
}

// PendingPopulationTransfer is a PTU shipment loaded onto a traveling
// fleet during Command phase (spec §3 PopulationTransferId); it
// completes in the following Production phase once ViaFleet reaches
// ToColony.
type PendingPopulationTransfer struct {
	ID         ids.PopulationTransferId
	House      ids.HouseId
	FromColony ids.ColonyId
	ToColony   ids.ColonyId
	ViaFleet   ids.FleetId
	PTUs       int
}

// PendingDiplomaticChange is a not-yet-effective diplomatic
// declaration queued during Command phase (spec §4.2, §4.6 step 5).
type PendingDiplomaticChange struct {
	From, To ids.HouseId
	NewState model.DiplomaticState
	IssuedTurn int
}

// LoggedEvent is the serializable shape of an events.Event once
// flushed into GameState (spec §4.8: "flushed to
// state.last_turn_events"). Kept as a thin re-export in this package
// (rather than importing internal/events into every state consumer)
// via SetLastTurnEvents.
type LoggedEvent struct {
	Seq     uint64
	Turn    int
	Kind    string
	HouseId ids.HouseId
	System  ids.SystemId
	Payload interface{}
}

// New builds an empty GameState at turn 1 with the given config and
// star map.
func New(cfg config.Config, starMap *model.StarMap) *GameState {
	return &GameState{
		Turn:      1,
		Phase:     PhaseConflict,
		Config:    cfg,
		Store:     store.New(),
		StarMap:   starMap,
		Diplomacy: model.NewDiplomaticMatrix(),
		Intel:     map[ids.HouseId]*intel.Database{},
	}
}

// IntelFor returns (creating if necessary) the intel database for a
// house.
func (s *GameState) IntelFor(h ids.HouseId) *intel.Database {
	db, ok := s.Intel[h]
	if !ok {
		db = intel.NewDatabase()
		s.Intel[h] = db
	}
	return db
}
