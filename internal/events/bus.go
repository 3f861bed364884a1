package events

import "github.com/ec4x/engine/internal/ids"

// Bus is the ordered per-turn event buffer (spec §4.8). It is scoped
// to a single resolve_turn call: a fresh Bus is created at turn start
// and its contents are flushed to GameState.LastTurnEvents at end of
// turn (spec §9, "Scoped resources"); they are not copied into any
// house's intel database.
type Bus struct {
	turn   int
	seq    uint64
	buffer []Event
}

// NewBus creates an empty bus for the given turn number.
func NewBus(turn int) *Bus {
	return &Bus{turn: turn}
}

// Emit appends an event, stamping it with the next sequence number
// and the bus's turn.
func (b *Bus) Emit(kind Kind, house ids.HouseId, system ids.SystemId, payload interface{}) Event {
	e := Event{
		Seq:     b.seq,
		Turn:    b.turn,
		Kind:    kind,
		HouseId: house,
		System:  system,
		Payload: payload,
	}
	b.seq++
	b.buffer = append(b.buffer, e)
	return e
}

// All returns every event emitted so far, in sequence order.
func (b *Bus) All() []Event {
	out := make([]Event, len(b.buffer))
	copy(out, b.buffer)
	return out
}

// Len reports how many events have been emitted.
func (b *Bus) Len() int { return len(b.buffer) }
