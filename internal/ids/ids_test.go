package ids_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec4x/engine/internal/ids"
)

func TestCountersStartAtOne(t *testing.T) {
	c := ids.NewCounters()
	assert.EqualValues(t, 1, c.NextHouseId())
	assert.EqualValues(t, 2, c.NextHouseId())
	assert.EqualValues(t, 1, c.NextFleetId(), "each kind has its own counter")
	assert.EqualValues(t, 1, c.NextShipId())
}

func TestCountersSnapshotRoundTrip(t *testing.T) {
	c := ids.NewCounters()
	c.NextHouseId()
	c.NextHouseId()
	c.NextFleetId()

	snap := c.Snapshot()
	restored := ids.Restore(snap)

	// Continuing from a restored snapshot must never reuse an id
	// still referenced by surviving entities (spec §6 Persistence).
	assert.Equal(t, c.NextHouseId(), restored.NextHouseId())
	assert.Equal(t, c.NextFleetId(), restored.NextFleetId())
}

func TestNotFoundError(t *testing.T) {
	err := ids.NewNotFound("Fleet", 7)
	require.Error(t, err)
	assert.Equal(t, "Fleet 7: not found", err.Error())

	var nf *ids.NotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Fleet", nf.Kind)
	assert.EqualValues(t, 7, nf.ID)
}
