// Package ids defines the typed identifiers shared by every entity
// kind in the turn engine and the counters that mint them.
//
// The teacher (oglike_server) keys every row with a google/uuid string
// because its entities live in Postgres and the id doubles as a
// primary key clients can pass back over HTTP. The turn engine has
// neither a database nor an HTTP boundary: entities live in dense,
// array-friendly maps for the lifetime of a single resolve_turn call,
// so each id is a plain 32-bit unsigned integer instead, per spec.
package ids

import "fmt"

// HouseId identifies a player's house (nation/faction).
type HouseId uint32

// SystemId identifies a star system node in the jump graph.
type SystemId uint32

// ColonyId identifies a colony. Numerically equal to the SystemId it
// occupies, since at most one colony exists per system.
type ColonyId = SystemId

// FleetId identifies a fleet.
type FleetId uint32

// ShipId identifies a single ship.
type ShipId uint32

// SquadronId identifies a squadron (a flagship plus its escorts).
type SquadronId uint32

// NeoriaId identifies a production facility (Spaceport/Shipyard/Drydock).
type NeoriaId uint32

// KastraId identifies a defensive facility (Starbase).
type KastraId uint32

// GroundUnitId identifies a ground combat unit garrisoned on a colony.
type GroundUnitId uint32

// ConstructionProjectId identifies a queued construction project.
type ConstructionProjectId uint32

// RepairProjectId identifies a queued repair project.
type RepairProjectId uint32

// PopulationTransferId identifies an in-flight population transfer.
type PopulationTransferId uint32

// ProposalId identifies a pending diplomatic proposal.
type ProposalId uint32

// InvalidID is the zero value for every id kind: no entity is ever
// minted with id 0, so it doubles as a "no entity" sentinel.
const InvalidID = 0

// Counters mints monotonically increasing identifiers for every
// entity kind, one counter per kind so that ids of different kinds
// can collide numerically without ambiguity (a FleetId and a ShipId
// may both be 7; they are never compared to each other).
//
// Counters must be round-tripped with GameState across a save/reload
// so that newly created entities after a reload never reuse an id
// still referenced by surviving entities (spec §6, Persistence).
type Counters struct {
	nextHouse       uint32
	nextSystem      uint32
	nextFleet       uint32
	nextShip        uint32
	nextSquadron    uint32
	nextNeoria      uint32
	nextKastra      uint32
	nextGroundUnit  uint32
	nextConstructProject uint32
	nextRepairProject    uint32
	nextPopTransfer uint32
	nextProposal    uint32
}

// NewCounters builds a fresh set of counters, all starting at 1 (0 is
// reserved as InvalidID).
func NewCounters() *Counters {
	return &Counters{
		nextHouse:            1,
		nextSystem:           1,
		nextFleet:            1,
		nextShip:             1,
		nextSquadron:         1,
		nextNeoria:           1,
		nextKastra:           1,
		nextGroundUnit:       1,
		nextConstructProject: 1,
		nextRepairProject:    1,
		nextPopTransfer:      1,
		nextProposal:         1,
	}
}

// Snapshot captures the current counter values, e.g. for persistence.
type Snapshot struct {
	NextHouse, NextSystem, NextFleet, NextShip, NextSquadron         uint32
	NextNeoria, NextKastra, NextGroundUnit                           uint32
	NextConstructProject, NextRepairProject, NextPopTransfer, NextProposal uint32
}

// Snapshot returns the current state of every counter.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		NextHouse:            c.nextHouse,
		NextSystem:           c.nextSystem,
		NextFleet:            c.nextFleet,
		NextShip:             c.nextShip,
		NextSquadron:         c.nextSquadron,
		NextNeoria:           c.nextNeoria,
		NextKastra:           c.nextKastra,
		NextGroundUnit:       c.nextGroundUnit,
		NextConstructProject: c.nextConstructProject,
		NextRepairProject:    c.nextRepairProject,
		NextPopTransfer:      c.nextPopTransfer,
		NextProposal:         c.nextProposal,
	}
}

// Restore reinstates counters from a Snapshot, e.g. after a reload.
func Restore(s Snapshot) *Counters {
	return &Counters{
		nextHouse:            s.NextHouse,
		nextSystem:           s.NextSystem,
		nextFleet:            s.NextFleet,
		nextShip:             s.NextShip,
		nextSquadron:         s.NextSquadron,
		nextNeoria:           s.NextNeoria,
		nextKastra:           s.NextKastra,
		nextGroundUnit:       s.NextGroundUnit,
		nextConstructProject: s.NextConstructProject,
		nextRepairProject:    s.NextRepairProject,
		nextPopTransfer:      s.NextPopTransfer,
		nextProposal:         s.NextProposal,
	}
}

func (c *Counters) NextHouseId() HouseId { c.nextHouse++; return HouseId(c.nextHouse - 1) }
func (c *Counters) NextSystemId() SystemId { c.nextSystem++; return SystemId(c.nextSystem - 1) }
func (c *Counters) NextFleetId() FleetId { c.nextFleet++; return FleetId(c.nextFleet - 1) }
func (c *Counters) NextShipId() ShipId { c.nextShip++; return ShipId(c.nextShip - 1) }
func (c *Counters) NextSquadronId() SquadronId { c.nextSquadron++; return SquadronId(c.nextSquadron - 1) }
func (c *Counters) NextNeoriaId() NeoriaId { c.nextNeoria++; return NeoriaId(c.nextNeoria - 1) }
func (c *Counters) NextKastraId() KastraId { c.nextKastra++; return KastraId(c.nextKastra - 1) }
func (c *Counters) NextGroundUnitId() GroundUnitId {
	c.nextGroundUnit++
	return GroundUnitId(c.nextGroundUnit - 1)
}
func (c *Counters) NextConstructionProjectId() ConstructionProjectId {
	c.nextConstructProject++
	return ConstructionProjectId(c.nextConstructProject - 1)
}
func (c *Counters) NextRepairProjectId() RepairProjectId {
	c.nextRepairProject++
	return RepairProjectId(c.nextRepairProject - 1)
}
func (c *Counters) NextPopulationTransferId() PopulationTransferId {
	c.nextPopTransfer++
	return PopulationTransferId(c.nextPopTransfer - 1)
}
func (c *Counters) NextProposalId() ProposalId { c.nextProposal++; return ProposalId(c.nextProposal - 1) }

// NotFound is returned by every entity-store lookup when an id has no
// corresponding entity. Per spec §4.1 this is the only failure mode a
// lookup may produce; higher layers decide whether that is a logic
// error (production) or a recovered no-op (validation contexts).
type NotFound struct {
	Kind string
	ID   uint32
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %d: not found", e.Kind, e.ID)
}

// NewNotFound builds a NotFound for the given entity kind and id.
func NewNotFound(kind string, id uint32) error {
	return &NotFound{Kind: kind, ID: id}
}
