package intel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ec4x/engine/internal/ids"
	"github.com/ec4x/engine/internal/intel"
)

func TestCorruptIntZeroStaysZero(t *testing.T) {
	// B4: v == 0 => result == 0, regardless of magnitude or roll.
	assert.Equal(t, 0, intel.CorruptInt(0, 0.5, 0.99))
	assert.Equal(t, 0, intel.CorruptInt(0, 1.0, 0.0))
}

func TestCorruptIntStaysWithinBounds(t *testing.T) {
	// B4: result in [max(0, floor(v*(1-m))), ceil(v*(1+m))].
	v, m := 100, 0.2
	lo, hi := 80, 120
	for _, roll := range []float64{0.0, 0.25, 0.5, 0.75, 0.999} {
		got := intel.CorruptInt(v, m, roll)
		assert.GreaterOrEqual(t, got, lo)
		assert.LessOrEqual(t, got, hi)
	}
}

func TestCorruptIntNeverNegative(t *testing.T) {
	// A small v with a large magnitude would floor below zero without
	// the max(0, ...) clamp.
	got := intel.CorruptInt(5, 0.9, 0.0)
	assert.GreaterOrEqual(t, got, 0)
}

func TestCorruptInt64Delegates(t *testing.T) {
	assert.EqualValues(t, 0, intel.CorruptInt64(0, 0.3, 0.5))
}

func TestDatabaseRecordColonyOverwritesOnlyWithFresherData(t *testing.T) {
	db := intel.NewDatabase()
	colonyID := ids.ColonyId(7)

	db.RecordColony(intel.ColonyObservation{Colony: colonyID, GatheredTurn: 5, Quality: intel.Visual, PlanetClass: 3})
	db.RecordColony(intel.ColonyObservation{Colony: colonyID, GatheredTurn: 3, Quality: intel.Spy, PlanetClass: 9})

	got := db.Colonies[colonyID]
	assert.Equal(t, 5, got.GatheredTurn, "an older observation must never overwrite a fresher one")
	assert.Equal(t, intel.Visual, got.Quality)

	db.RecordColony(intel.ColonyObservation{Colony: colonyID, GatheredTurn: 6, Quality: intel.Spy, PlanetClass: 4})
	got = db.Colonies[colonyID]
	assert.Equal(t, 6, got.GatheredTurn)
	assert.Equal(t, intel.Spy, got.Quality)
}

func TestScoutEncountersAppendRatherThanOverwrite(t *testing.T) {
	db := intel.NewDatabase()
	db.ScoutEncounters = append(db.ScoutEncounters, intel.ScoutEncounterReport{Turn: 1, Fleet: 1, System: 2, Detected: false})
	db.ScoutEncounters = append(db.ScoutEncounters, intel.ScoutEncounterReport{Turn: 2, Fleet: 1, System: 2, Detected: true})
	assert.Len(t, db.ScoutEncounters, 2)
}
