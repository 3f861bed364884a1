package model

import "github.com/ec4x/engine/internal/ids"

// FleetStatus is the closed set of administrative states a fleet can
// be in, independent of any queued command (spec §3).
type FleetStatus int

const (
	FleetActive FleetStatus = iota
	FleetReserve
	FleetMothballed
)

// MissionState tracks progress on a fleet's current queued command
// (spec §3).
type MissionState int

const (
	MissionNone MissionState = iota
	MissionTraveling
	MissionExecuting
	MissionOnSpyMission
	MissionScoutLocked
)

// FleetCommandCode is the two-digit command code enumerated in spec
// §6.
type FleetCommandCode int

const (
	CmdHold FleetCommandCode = iota
	CmdMove
	CmdSeek
	CmdPatrol
	CmdGuardStarbase
	CmdGuardColony
	CmdBlockade
	CmdBombard
	CmdInvade
	CmdBlitz
	CmdColonize
	CmdScoutColony
	CmdScoutSystem
	CmdHackStarbase
	CmdJoinFleet
	CmdRendezvous
	CmdSalvage
	CmdReserve
	CmdMothball
	CmdView
)

func (c FleetCommandCode) String() string {
	names := [...]string{
		"Hold", "Move", "Seek", "Patrol", "GuardStarbase", "GuardColony",
		"Blockade", "Bombard", "Invade", "Blitz", "Colonize", "ScoutColony",
		"ScoutSystem", "HackStarbase", "JoinFleet", "Rendezvous", "Salvage",
		"Reserve", "Mothball", "View",
	}
	if int(c) >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "UnknownCommand"
}

// FleetCommand is a queued command on a fleet: what to do and, where
// relevant, the target system or fleet.
type FleetCommand struct {
	Code         FleetCommandCode
	TargetSystem ids.SystemId
	TargetFleet  ids.FleetId
	Path         []ids.SystemId // precomputed remaining hops, front is next hop
	IssuedTurn   int
}

// Fleet is a collection of squadrons under unified movement and
// command (spec §3). Grounded on the teacher's Fleet
// (oglike_server/internal/model/fleet.go, internal/game/fleet.go),
// which plays the analogous "a bag of ships in flight with one
// destination and one objective" role for OGame.
type Fleet struct {
	ID        ids.FleetId
	HouseId   ids.HouseId
	Location  ids.SystemId
	Status    FleetStatus
	Squadrons []ids.SquadronId

	Command      FleetCommand
	MissionState MissionState

	// AutoBalance enables the Command-phase automation (spec §4.5
	// Part A) to rebalance squadron composition on commission.
	AutoBalance bool
}

// IsPureIntel reports whether every squadron resolved by squadronOf
// is Intel-typed — used to enforce the mixing-exclusion invariant
// (spec P4) wherever a caller is about to add/move ships into or out
// of a fleet. squadronOf is supplied by the caller (internal/store)
// since Fleet itself never dereferences entity ids.
func (f *Fleet) IsPureIntel(squadronOf func(ids.SquadronId) (*Squadron, bool)) bool {
	if len(f.Squadrons) == 0 {
		return true
	}
	for _, sid := range f.Squadrons {
		sq, ok := squadronOf(sid)
		if !ok {
			continue
		}
		if sq.Type != IntelSquadron {
			return false
		}
	}
	return true
}

// HasIntelSquadron reports whether any squadron is Intel-typed.
func (f *Fleet) HasIntelSquadron(squadronOf func(ids.SquadronId) (*Squadron, bool)) bool {
	for _, sid := range f.Squadrons {
		sq, ok := squadronOf(sid)
		if ok && sq.Type == IntelSquadron {
			return true
		}
	}
	return false
}
