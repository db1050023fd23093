package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/pkg/utils"
)

func TestDayTypeFor(t *testing.T) {
	tests := []struct {
		index, total int
		want         DayType
	}{
		{0, 1, DayTypeArrival},
		{0, 4, DayTypeArrival},
		{1, 4, DayTypeFull},
		{2, 4, DayTypeFull},
		{3, 4, DayTypeDeparture},
		{1, 2, DayTypeDeparture},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DayTypeFor(tt.index, tt.total), "day %d of %d", tt.index, tt.total)
	}
}

func TestPolicyFor_Defaults(t *testing.T) {
	table := DefaultDayPolicyTable()

	full, err := table.PolicyFor(1, 3, PacePacked)
	require.NoError(t, err)
	assert.Equal(t, DayTypeFull, full.Type)
	assert.Equal(t, 6, full.MinActivities)
	assert.Equal(t, 7, full.MaxActivities)
	assert.Equal(t, "9:00 AM - 9:00 PM", full.Window())

	arrival, err := table.PolicyFor(0, 3, "")
	require.NoError(t, err)
	assert.Equal(t, PaceModerate, arrival.Pace)
	assert.Equal(t, utils.TimeOfDay{Hour: 14}, arrival.Start)
	assert.Less(t, arrival.MaxActivities, full.MaxActivities)

	departure, err := table.PolicyFor(2, 3, PaceRelaxed)
	require.NoError(t, err)
	assert.Equal(t, utils.TimeOfDay{Hour: 12}, departure.End)
}

func TestPolicyFor_Rejects(t *testing.T) {
	table := DefaultDayPolicyTable()

	_, err := table.PolicyFor(3, 3, PaceModerate)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = table.PolicyFor(0, 0, PaceModerate)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = table.PolicyFor(0, 2, Pace("frantic"))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestParsePace(t *testing.T) {
	p, err := ParsePace(" Packed ")
	require.NoError(t, err)
	assert.Equal(t, PacePacked, p)

	p, err = ParsePace("")
	require.NoError(t, err)
	assert.Equal(t, PaceModerate, p)

	_, err = ParsePace("leisurely")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func writePolicyFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "day_policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDayPolicyTable(t *testing.T) {
	path := writePolicyFile(t, `
day_types:
  arrival:
    start: "3:00 PM"
    activities:
      relaxed: {min: 1, max: 1}
`)

	table, err := LoadDayPolicyTable(path)
	require.NoError(t, err)

	relaxed, err := table.PolicyFor(0, 3, PaceRelaxed)
	require.NoError(t, err)
	assert.Equal(t, "3:00 PM - 9:00 PM", relaxed.Window())
	assert.Equal(t, 1, relaxed.MaxActivities)

	packed, err := table.PolicyFor(0, 3, PacePacked)
	require.NoError(t, err)
	assert.Equal(t, 4, packed.MaxActivities, "untouched paces keep defaults")

	// the override must not leak into the shared default bands
	departure, err := table.PolicyFor(2, 3, PaceRelaxed)
	require.NoError(t, err)
	assert.Equal(t, 2, departure.MaxActivities)
}

func TestLoadDayPolicyTable_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown day type": "day_types:\n  holiday: {start: \"9:00 AM\"}\n",
		"bad clock":        "day_types:\n  full: {start: \"09:00\"}\n",
		"inverted window":  "day_types:\n  full: {start: \"10:00 PM\", end: \"9:00 AM\"}\n",
		"inverted band":    "day_types:\n  full:\n    activities:\n      packed: {min: 5, max: 2}\n",
		"not yaml":         "day_types: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadDayPolicyTable(writePolicyFile(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadDayPolicyTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDayPolicyTable_EmptyPathUsesDefaults(t *testing.T) {
	table, err := LoadDayPolicyTable("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDayPolicyTable(), table)
}
