// Package engine is the turn-resolution engine itself: validation and
// command intake (C5), zero-turn operations (C6), the Conflict phase
// and combat kernel (C7/C8), Income & maintenance (C9), the Command
// phase (C10), the Production phase (C11), and the intelligence
// report generator (C12) that rides on top of internal/intel and
// internal/events. resolve_turn (engine.go) is the single external
// entry point (spec §6).
//
// Grounded throughout on the teacher's per-action files under
// oglike_server/internal/game (actions.go, action.go, fleet_*.go,
// building_action.go, technology_action.go, progress_action.go): the
// teacher resolves one HTTP-triggered action against the DB at a
// time, while this package resolves an entire turn's worth of
// commands against an in-memory GameState in one deterministic pass,
// but the categorize-then-execute shape (validate, then act, then
// emit a message/event) is the same.
package engine

import (
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/model"
)

// FleetCommandInput is one queued order against a fleet, as submitted
// by a house (spec §4.2, §6 "CommandPacket wire shape").
type FleetCommandInput struct {
	Fleet        ids.FleetId
	Code         model.FleetCommandCode
	TargetSystem ids.SystemId
	TargetFleet  ids.FleetId
}

// BuildCommandInput requests construction of ships, a facility, or a
// ground unit at a colony (spec §4.2 check 3).
type BuildCommandInput struct {
	Colony ids.ColonyId

	ShipClass       *int // config.ShipClass, pointer so zero value (Fighter) isn't ambiguous with "unset"
	FacilityClass   *int
	GroundUnitClass *int

	Count    int
	AtNeoria ids.NeoriaId
}

// ResearchAllocationInput is a house's PP allocation toward each tech
// field's ERP/SRP/TRP accumulator this turn (spec §4.2 check 4, §4.5
// Part C).
type ResearchAllocationInput map[int]int64 // config.TechField -> PP

// DiplomaticCommandInput declares a new posture toward another house
// (spec §4.2 check 5).
type DiplomaticCommandInput struct {
	Target ids.HouseId
	State  model.DiplomaticState
}

// PopulationTransferInput moves PTUs between a house's own colonies,
// or loads/unloads them onto an ETAC fleet (spec §3 PopulationTransferId).
type PopulationTransferInput struct {
	FromColony ids.ColonyId
	ToColony   ids.ColonyId
	ViaFleet   ids.FleetId
	PTUs       int
}

// TerraformCommandInput starts or continues a terraforming project on
// a colony (spec §3 Colony.terraformingProject, §4.6 step 7).
type TerraformCommandInput struct {
	Colony      ids.ColonyId
	TargetClass int
}

// ColonyManagementInput adjusts a colony's tax rate (spec §4.2 check
// 6).
type ColonyManagementInput struct {
	Colony  ids.ColonyId
	TaxRate int
}

// EspionageActionInput is the single espionage action a house may
// take this turn via its pure-Intel fleet (spec §4.3 CON1f(iii)).
type EspionageActionInput struct {
	Action string // matches config.EspionageConfig.ActionCost key
	Fleet  ids.FleetId
	Target ids.HouseId
	System ids.SystemId
}

// ZeroTurnOpInput is an immediate (non-queued) fleet/cargo/fighter
// admin operation executed inline during submission (spec §4.2
// "Zero-turn operations (C6)").
type ZeroTurnOpInput struct {
	Kind ZeroTurnKind

	SourceFleet ids.FleetId
	TargetFleet ids.FleetId
	Ships       []ids.ShipId

	Colony  ids.ColonyId
	Amount  int64
}

// ZeroTurnKind enumerates the closed set of zero-turn operations.
type ZeroTurnKind int

const (
	ZeroTransferShips ZeroTurnKind = iota
	ZeroMergeFleets
	ZeroDetachShips
	ZeroLoadCargo
	ZeroUnloadCargo
	ZeroTransferFighters
)

// CommandPacket is one house's full set of orders for a turn (spec
// §4.2, §6).
type CommandPacket struct {
	HouseId               ids.HouseId
	Turn                  int
	TreasuryAtSubmission  int64

	FleetCommands       []FleetCommandInput
	BuildCommands       []BuildCommandInput
	ResearchAllocation  ResearchAllocationInput
	DiplomaticCommands  []DiplomaticCommandInput
	PopulationTransfers []PopulationTransferInput
	TerraformCommands   []TerraformCommandInput
	ColonyManagement    []ColonyManagementInput
	EspionageAction     *EspionageActionInput
	EBPInvestment       int64
	CIPInvestment       int64

	ZeroTurnOps []ZeroTurnOpInput
}

// RejectedCommand is a spec §7 kind-1 validation failure: the command
// did not execute, but the turn still advances (spec §8 B-series,
// TurnResult.rejected_commands).
type RejectedCommand struct {
	HouseId ids.HouseId
	Reason  string
	// Index identifies which command within its list failed, for
	// callers that want to correlate a rejection back to the
	// original packet.
	Kind  string
	Index int
}
