// Package events defines the typed event union emitted during turn
// resolution and the per-turn buffered bus that orders them (spec §3
// Event, §4.8 C13). Events are not copied into per-house intel
// databases; Event.VisibleToHouse only answers whether a house may see
// a given event.
//
// The teacher encodes "things that happened" as persisted Message
// rows (oglike_server/internal/game/message.go) read back out over
// HTTP. The turn engine has no HTTP boundary and no persistence of
// its own; instead every event lives only in the ordered buffer
// returned to the caller as part of a TurnResult, per spec §9
// ("Scoped resources... per-turn event buffer... scoped to
// resolve_turn").
package events

import "github.com/ec4x/engine/internal/ids"

// Kind is the closed set of event kinds named in spec §3. A sum type
// (rather than open interfaces) keeps every consumer's switch
// exhaustive, per spec §9 Dynamic dispatch.
type Kind int

const (
	FleetArrived Kind = iota
	FleetDetached
	FleetTransferred
	FleetMerged
	CargoLoaded
	CargoUnloaded
	ColonyEstablished
	ColonyConquered
	ScoutDetected
	ScoutIntelGathered
	CombatPhaseCompleted
	ShipDestroyed
	WeaponFired
	BlockadeEstablished
	BlockadeLifted
	EspionageSucceeded
	EspionageDetected
	TechAdvanced
	PrestigeChanged
	HouseEliminated
	VictoryAchieved
	CommandAborted
	SquadronScrapped
)

func (k Kind) String() string {
	names := [...]string{
		"FleetArrived", "FleetDetached", "FleetTransferred", "FleetMerged",
		"CargoLoaded", "CargoUnloaded", "ColonyEstablished", "ColonyConquered",
		"ScoutDetected", "ScoutIntelGathered", "CombatPhaseCompleted",
		"ShipDestroyed", "WeaponFired", "BlockadeEstablished", "BlockadeLifted",
		"EspionageSucceeded", "EspionageDetected", "TechAdvanced",
		"PrestigeChanged", "HouseEliminated", "VictoryAchieved",
		"CommandAborted", "SquadronScrapped",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "UnknownEventKind"
}

// Event is a single occurrence during turn resolution. HouseId is the
// emitting house, if any (zero value InvalidID means "no single
// emitter", e.g. a system-wide CombatPhaseCompleted). Seq is assigned
// by the Bus in strict emission order and is what makes the turn log
// replayable (spec §5, "Events carry sequence numbers; the turn log
// is replayable").
type Event struct {
	Seq     uint64
	Turn    int
	Kind    Kind
	HouseId ids.HouseId
	System  ids.SystemId

	// Payload carries kind-specific data. Concrete payload types live
	// in payloads.go; callers type-assert on Kind before reading it.
	Payload interface{}
}

// VisibleToHouse reports whether this event names `house` as its
// emitter or as a party recorded in its payload's HouseParties().
func (e Event) VisibleToHouse(house ids.HouseId) bool {
	if e.HouseId == house {
		return true
	}
	if p, ok := e.Payload.(HouseParties); ok {
		for _, h := range p.Parties() {
			if h == house {
				return true
			}
		}
	}
	return false
}

// HouseParties is implemented by payload types naming more than one
// house (e.g. BlockadeEstablishedPayload names both the defender and
// every blockader) so the visibility filter (spec §4.7) can see all
// of them without a kind-specific switch.
type HouseParties interface {
	Parties() []ids.HouseId
}
