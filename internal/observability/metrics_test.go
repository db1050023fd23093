package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"wanderlust/internal/models/trip_models"
)

func TestRecordRepair(t *testing.T) {
	shiftedBefore := testutil.ToFloat64(repairChanges.WithLabelValues("shifted"))
	removedBefore := testutil.ToFloat64(repairChanges.WithLabelValues("removed"))
	unresolvedBefore := testutil.ToFloat64(unresolvedRepairs)

	RecordRepair(trip_models.RepairReport{
		Passes:   2,
		Resolved: false,
		Changes: []trip_models.Change{
			{Pass: 1, Kind: trip_models.ChangeShifted},
			{Pass: 1, Kind: trip_models.ChangeCascaded},
			{Pass: 2, Kind: trip_models.ChangeShifted},
			{Pass: 2, Kind: trip_models.ChangeRemoved},
		},
	})

	assert.Equal(t, shiftedBefore+2, testutil.ToFloat64(repairChanges.WithLabelValues("shifted")))
	assert.Equal(t, removedBefore+1, testutil.ToFloat64(repairChanges.WithLabelValues("removed")))
	assert.Equal(t, unresolvedBefore+1, testutil.ToFloat64(unresolvedRepairs))
}

func TestRecordValidationAndLookups(t *testing.T) {
	before := testutil.ToFloat64(conflictsDetected)
	RecordValidation(3)
	assert.Equal(t, before+3, testutil.ToFloat64(conflictsDetected))

	hitsBefore := testutil.ToFloat64(hoursLookups.WithLabelValues(LookupCacheHit))
	RecordHoursLookup(LookupCacheHit)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(hoursLookups.WithLabelValues(LookupCacheHit)))
}
