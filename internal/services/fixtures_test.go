package services

import (
	"time"

	"wanderlust/internal/models/trip_models"
)

var (
	monday    = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	wednesday = monday.AddDate(0, 0, 2)
	friday    = monday.AddDate(0, 0, 4)
	saturday  = monday.AddDate(0, 0, 5)
	sunday    = monday.AddDate(0, 0, 6)
)

// museumHours is closed on Mondays and open 9 to 5 the rest of the week.
func museumHours() *trip_models.WeeklyHours {
	return &trip_models.WeeklyHours{WeekdayText: []string{
		"Monday: Closed",
		"Tuesday: 9:00\u202fAM \u2013 5:00\u202fPM",
		"Wednesday: 9:00 AM – 5:00 PM",
		"Thursday: 9:00 AM – 5:00 PM",
		"Friday: 9:00 AM – 5:00 PM",
		"Saturday: 9:00 AM – 5:00 PM",
		"Sunday: 9:00 AM – 5:00 PM",
	}}
}

func hoursOn(day, window string) *trip_models.WeeklyHours {
	return &trip_models.WeeklyHours{WeekdayText: []string{day + ": " + window}}
}

func activity(id, timeRange string, hours *trip_models.WeeklyHours) trip_models.Activity {
	return trip_models.Activity{ID: id, Name: "Stop " + id, Time: timeRange, Hours: hours}
}
