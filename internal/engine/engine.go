// Package engine's single external entry point: ResolveTurn implements
// resolve_turn(state, commands, seed) -> TurnResult (spec §6). It runs
// the four phases in their fixed order — Conflict, Income, Command,
// Production — then validates every store index is still consistent
// before handing back the advanced state, per spec §7's kind-4
// contract: on an invariant violation the caller gets an error and the
// original state argument is left untouched (Go's pass-by-pointer
// semantics mean callers that want that guarantee must deep-copy
// GameState before calling ResolveTurn, same as the teacher's HTTP
// layer snapshotting a row before letting an action mutate it).
//
// Grounded on the teacher's actions.go dispatch loop
// (oglike_server/internal/game), which is the closest thing
// oglike_server has to "the one function a caller invokes to make a
// turn's worth of requests happen"; this is that function generalized
// to a whole deterministic turn instead of one HTTP request.
package engine

import (
	"sort"

	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/rng"
	"github.com/ec4x/engine/internal/state"
)

// VictoryCheck reports whether this turn produced a winner (spec §6
// TurnResult.victory_check).
type VictoryCheck struct {
	Achieved bool
	Reason   string
	Winner   ids.HouseId
}

// TurnResult is resolve_turn's return value (spec §6).
type TurnResult struct {
	NextState        *state.GameState
	EventsOrdered    []events.Event
	CombatResults    []*CombatReport
	VictoryCheck     VictoryCheck
	RejectedCommands []RejectedCommand
}

// ResolveTurn advances gs by exactly one turn, applying every
// submitted CommandPacket during the Command phase. gs is mutated in
// place and also returned via TurnResult.NextState — callers that need
// to retry on an InvariantViolation must have snapshotted gs
// themselves beforehand (spec §9, "no implicit persistence").
func ResolveTurn(gs *state.GameState, commands []CommandPacket, seed int64) (*TurnResult, error) {
	bus := events.NewBus(gs.Turn)
	rngSvc := rng.New(gs.Turn, seed)

	combatReports := RunConflictPhase(gs, bus, rngSvc)

	RunIncomePhase(gs, bus, combatReports)

	RunCommandPhasePartA(gs, bus)

	sorted := append([]CommandPacket{}, commands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].HouseId < sorted[j].HouseId })

	var rejected []RejectedCommand
	for _, packet := range sorted {
		_, rej, err := RunCommandPhasePartBC(gs, bus, packet)
		if err != nil {
			if _, ok := err.(*Rejection); ok {
				rejected = append(rejected, RejectedCommand{HouseId: packet.HouseId, Reason: err.Error(), Kind: "packet"})
				continue
			}
			return nil, err
		}
		rejected = append(rejected, rej...)
	}

	RunProductionPhase(gs, bus, rngSvc)

	if err := gs.Store.ValidateIndices(); err != nil {
		return nil, &InvariantViolation{Detail: err.Error()}
	}

	turnEvents := bus.All()
	gs.LastTurnEvents = make([]state.LoggedEvent, len(turnEvents))
	for i, e := range turnEvents {
		gs.LastTurnEvents[i] = state.LoggedEvent{
			Seq: e.Seq, Turn: e.Turn, Kind: e.Kind.String(), HouseId: e.HouseId, System: e.System, Payload: e.Payload,
		}
	}

	vc := VictoryCheck{Achieved: gs.VictoryAchieved, Reason: gs.VictoryReason, Winner: gs.VictoryWinner}

	gs.Turn++

	return &TurnResult{
		NextState:        gs,
		EventsOrdered:    turnEvents,
		CombatResults:    combatReports,
		VictoryCheck:     vc,
		RejectedCommands: rejected,
	}, nil
}

// EventsVisibleTo filters an ordered event slice down to the ones a
// given house is entitled to see (spec §4.7 visibility filter).
func EventsVisibleTo(all []events.Event, house ids.HouseId) []events.Event {
	var out []events.Event
	for _, e := range all {
		if e.VisibleToHouse(house) {
			out = append(out, e)
		}
	}
	return out
}
