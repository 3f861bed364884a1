package events

import "github.com/ec4x/engine/internal/ids"

// FleetArrivedPayload accompanies Kind FleetArrived.
type FleetArrivedPayload struct {
	Fleet  ids.FleetId
	System ids.SystemId
}

// FleetMergedPayload accompanies Kind FleetMerged.
type FleetMergedPayload struct {
	Survivor ids.FleetId
	Absorbed ids.FleetId
}

// CargoPayload accompanies CargoLoaded/CargoUnloaded.
type CargoPayload struct {
	Fleet  ids.FleetId
	Colony ids.ColonyId
	Amount int64
}

// ColonyEstablishedPayload accompanies ColonyEstablished.
type ColonyEstablishedPayload struct {
	Colony ids.ColonyId
	House  ids.HouseId
}

// ColonyConqueredPayload accompanies ColonyConquered.
type ColonyConqueredPayload struct {
	Colony    ids.ColonyId
	From, To  ids.HouseId
	Razed     bool
}

func (p ColonyConqueredPayload) Parties() []ids.HouseId { return []ids.HouseId{p.From, p.To} }

// ScoutDetectedPayload accompanies ScoutDetected.
type ScoutDetectedPayload struct {
	ScoutFleet ids.FleetId
	Defender   ids.HouseId
	System     ids.SystemId
}

func (p ScoutDetectedPayload) Parties() []ids.HouseId { return []ids.HouseId{p.Defender} }

// ScoutIntelGatheredPayload accompanies ScoutIntelGathered.
type ScoutIntelGatheredPayload struct {
	ScoutFleet ids.FleetId
	System     ids.SystemId
}

// ShipDestroyedPayload accompanies ShipDestroyed.
type ShipDestroyedPayload struct {
	Ship   ids.ShipId
	Fleet  ids.FleetId
	System ids.SystemId
}

// WeaponFiredPayload accompanies WeaponFired — emitted once per
// theater round rather than per shot, to keep the log proportional to
// rounds fought rather than ship counts.
type WeaponFiredPayload struct {
	System ids.SystemId
	Round  int
}

// BlockadeEstablishedPayload / BlockadeLiftedPayload accompany the
// corresponding kinds. An Established event is visible to the
// defender and every blockader (spec §4.4 step 4); a Lifted event
// names no blockaders and is visible only to the defender, its emitter.
type BlockadeEstablishedPayload struct {
	Defender   ids.HouseId
	Blockaders []ids.HouseId
	System     ids.SystemId
}

func (p BlockadeEstablishedPayload) Parties() []ids.HouseId {
	return append([]ids.HouseId{p.Defender}, p.Blockaders...)
}

type BlockadeLiftedPayload struct {
	Defender ids.HouseId
	System   ids.SystemId
}

// EspionagePayload accompanies EspionageSucceeded/EspionageDetected.
type EspionagePayload struct {
	Actor, Target ids.HouseId
	Action        string
}

func (p EspionagePayload) Parties() []ids.HouseId { return []ids.HouseId{p.Actor, p.Target} }

// TechAdvancedPayload accompanies TechAdvanced.
type TechAdvancedPayload struct {
	Field    string
	NewLevel int
}

// PrestigeChangedPayload accompanies PrestigeChanged.
type PrestigeChangedPayload struct {
	Delta int
	Total int
}

// HouseEliminatedPayload accompanies HouseEliminated.
type HouseEliminatedPayload struct{}

// VictoryAchievedPayload accompanies VictoryAchieved.
type VictoryAchievedPayload struct {
	Reason string
}

// CommandAbortedPayload accompanies CommandAborted (spec §7 kind 2:
// soft game-rule failure — an admitted command fails at execution
// time because the world changed).
type CommandAbortedPayload struct {
	Fleet  ids.FleetId
	Reason string
}

// SquadronScrappedPayload accompanies SquadronScrapped (spec §4.4
// step 7: automatic scrap after the capacity grace period expires).
type SquadronScrappedPayload struct {
	Squadron ids.SquadronId
	Reason   string
}
