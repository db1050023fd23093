package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/internal/models/trip_models"
	"wanderlust/pkg/utils"
)

func TestValidateActivityTiming_ClosedDay(t *testing.T) {
	v, err := ValidateActivityTiming("10:00 AM - 11:00 AM", *museumHours(), monday)
	require.NoError(t, err)

	assert.False(t, v.IsValid)
	assert.Equal(t, "closed on Monday", v.Reason)
	assert.Empty(t, v.SuggestedTime)
}

func TestValidateActivityTiming_InsideWindow(t *testing.T) {
	v, err := ValidateActivityTiming("10:00 AM - 11:00 AM", *museumHours(), tuesday)
	require.NoError(t, err)

	assert.True(t, v.IsValid)
	require.NotNil(t, v.OpeningTime)
	require.NotNil(t, v.ClosingTime)
	assert.Equal(t, utils.TimeOfDay{Hour: 9}, *v.OpeningTime)
	assert.Equal(t, utils.TimeOfDay{Hour: 17}, *v.ClosingTime)
	assert.False(t, v.ClosesNextDay)
}

func TestValidateActivityTiming_Suggestions(t *testing.T) {
	tests := []struct {
		name      string
		timeRange string
		hours     *trip_models.WeeklyHours
		reason    string
		suggested string
	}{
		{
			name:      "ends after closing",
			timeRange: "4:00 PM - 6:00 PM",
			hours:     museumHours(),
			reason:    "ends after closing time (5:00 PM)",
			suggested: "3:00 PM - 5:00 PM",
		},
		{
			name:      "starts before opening",
			timeRange: "8:00 AM - 9:30 AM",
			hours:     museumHours(),
			reason:    "starts before opening time (9:00 AM)",
			suggested: "9:00 AM - 10:30 AM",
		},
		{
			name:      "between two windows prefers the earlier on a tie",
			timeRange: "3:00 PM - 4:00 PM",
			hours:     hoursOn("Tuesday", "11:00 AM – 2:00 PM, 5:00 – 10:00 PM"),
			reason:    "ends after closing time (2:00 PM)",
			suggested: "1:00 PM - 2:00 PM",
		},
		{
			name:      "between two windows picks the nearer",
			timeRange: "3:30 PM - 4:30 PM",
			hours:     hoursOn("Tuesday", "11:00 AM – 2:00 PM, 5:00 – 10:00 PM"),
			reason:    "starts before opening time (5:00 PM)",
			suggested: "5:00 PM - 6:00 PM",
		},
		{
			name:      "late activity pulled back before closing",
			timeRange: "11:00 PM - 11:59 PM",
			hours:     hoursOn("Tuesday", "6:00 PM – 11:30 PM"),
			reason:    "ends after closing time (11:30 PM)",
			suggested: "10:31 PM - 11:30 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValidateActivityTiming(tt.timeRange, *tt.hours, tuesday)
			require.NoError(t, err)

			assert.False(t, v.IsValid)
			assert.Equal(t, tt.reason, v.Reason)
			assert.Equal(t, tt.suggested, v.SuggestedTime)
			assert.Equal(t, "shift to "+tt.suggested, v.SuggestedAdjustment)

			want, err := utils.RangeDuration(tt.timeRange)
			require.NoError(t, err)
			got, err := utils.RangeDuration(v.SuggestedTime)
			require.NoError(t, err)
			assert.Equal(t, want, got, "suggestion keeps the duration")
		})
	}
}

func TestValidateActivityTiming_LongerThanWindow(t *testing.T) {
	v, err := ValidateActivityTiming("8:00 AM - 6:00 PM", *museumHours(), tuesday)
	require.NoError(t, err)

	assert.False(t, v.IsValid)
	assert.Empty(t, v.SuggestedTime)
	assert.Equal(t, "needs 10 hours but the longest opening window is 8 hours (9:00 AM - 5:00 PM)", v.SuggestedAdjustment)
	require.NotNil(t, v.OpeningTime)
	assert.Equal(t, 9, v.OpeningTime.Hour)
}

func TestValidateActivityTiming_OpenAroundTheClock(t *testing.T) {
	v, err := ValidateActivityTiming("2:00 AM - 4:00 AM", *hoursOn("Tuesday", "Open 24 hours"), tuesday)
	require.NoError(t, err)
	assert.True(t, v.IsValid)
	assert.Equal(t, ReasonOpen24Hours, v.Reason)
}

func TestValidateActivityTiming_NoHoursForDay(t *testing.T) {
	v, err := ValidateActivityTiming("10:00 AM - 11:00 AM", *hoursOn("Tuesday", "9:00 AM – 5:00 PM"), sunday)
	require.NoError(t, err)
	assert.False(t, v.IsValid)
	assert.Equal(t, ReasonNoHoursForDay, v.Reason)
	assert.Empty(t, v.SuggestedTime)
}

func TestValidateActivityTiming_Overnight(t *testing.T) {
	bar := trip_models.WeeklyHours{Periods: []trip_models.Period{
		{Open: trip_models.PeriodPoint{Day: 5, Time: "1800"}, Close: &trip_models.PeriodPoint{Day: 6, Time: "0200"}},
	}}

	v, err := ValidateActivityTiming("10:00 PM - 11:30 PM", bar, friday)
	require.NoError(t, err)
	assert.True(t, v.IsValid)
	assert.True(t, v.ClosesNextDay)
	assert.Equal(t, utils.TimeOfDay{Hour: 2}, *v.ClosingTime)

	v, err = ValidateActivityTiming("12:30 AM - 1:30 AM", bar, saturday)
	require.NoError(t, err)
	assert.True(t, v.IsValid)
}

func TestValidateActivityTiming_Malformed(t *testing.T) {
	_, err := ValidateActivityTiming("sometime after lunch", *museumHours(), tuesday)
	assert.ErrorIs(t, err, utils.ErrInvalidTimeRange)

	_, err = ValidateActivityTiming("13:00 PM - 2:00 PM", *museumHours(), tuesday)
	assert.ErrorIs(t, err, utils.ErrInvalidClock)

	_, err = ValidateActivityTiming("11:00 PM - 1:00 AM", *museumHours(), tuesday)
	assert.ErrorIs(t, err, utils.ErrInvalidTimeRange)
}
