package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec4x/engine/internal/events"
	"github.com/ec4x/engine/internal/ids"
)

func TestBusAssignsMonotonicSequenceNumbers(t *testing.T) {
	b := events.NewBus(3)

	e1 := b.Emit(events.FleetArrived, ids.HouseId(1), ids.SystemId(1), nil)
	e2 := b.Emit(events.FleetDetached, ids.HouseId(1), ids.SystemId(1), nil)
	e3 := b.Emit(events.CargoLoaded, ids.HouseId(2), ids.SystemId(2), nil)

	assert.Equal(t, uint64(0), e1.Seq)
	assert.Equal(t, uint64(1), e2.Seq)
	assert.Equal(t, uint64(2), e3.Seq)

	all := b.All()
	require.Len(t, all, 3)
	assert.Equal(t, []events.Kind{events.FleetArrived, events.FleetDetached, events.CargoLoaded},
		[]events.Kind{all[0].Kind, all[1].Kind, all[2].Kind})
	assert.Equal(t, 3, b.Len())

	for _, e := range all {
		assert.Equal(t, 3, e.Turn)
	}
}

func TestBusAllReturnsACopy(t *testing.T) {
	b := events.NewBus(1)
	b.Emit(events.FleetArrived, ids.HouseId(1), ids.SystemId(1), nil)

	snapshot := b.All()
	b.Emit(events.FleetDetached, ids.HouseId(1), ids.SystemId(1), nil)

	assert.Len(t, snapshot, 1, "mutating the bus after All() must not retroactively change the snapshot")
	assert.Equal(t, 2, b.Len())
}

func TestEventVisibleToHouseByEmitter(t *testing.T) {
	e := events.Event{HouseId: ids.HouseId(5), Kind: events.TechAdvanced}
	assert.True(t, e.VisibleToHouse(ids.HouseId(5)))
	assert.False(t, e.VisibleToHouse(ids.HouseId(6)))
}

func TestEventVisibleToHouseByPayloadParties(t *testing.T) {
	e := events.Event{
		HouseId: ids.HouseId(1),
		Kind:    events.ColonyConquered,
		Payload: events.ColonyConqueredPayload{Colony: 10, From: 1, To: 2},
	}

	assert.True(t, e.VisibleToHouse(ids.HouseId(1)), "emitter is always a party")
	assert.True(t, e.VisibleToHouse(ids.HouseId(2)), "conquering house is named in the payload")
	assert.False(t, e.VisibleToHouse(ids.HouseId(3)), "uninvolved house sees nothing")
}

func TestBlockadeEstablishedVisibleToAllBlockaders(t *testing.T) {
	e := events.Event{
		Kind: events.BlockadeEstablished,
		Payload: events.BlockadeEstablishedPayload{
			Defender:   ids.HouseId(1),
			Blockaders: []ids.HouseId{2, 3},
		},
	}

	assert.True(t, e.VisibleToHouse(ids.HouseId(1)))
	assert.True(t, e.VisibleToHouse(ids.HouseId(2)))
	assert.True(t, e.VisibleToHouse(ids.HouseId(3)))
	assert.False(t, e.VisibleToHouse(ids.HouseId(4)))
}

func TestKindStringCoversKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "FleetArrived", events.FleetArrived.String())
	assert.Equal(t, "SquadronScrapped", events.SquadronScrapped.String())
	assert.Equal(t, "UnknownEventKind", events.Kind(999).String())
}
