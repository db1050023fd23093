package services

import (
	"wanderlust/internal/models/trip_models"
)

// ScanTrip validates every activity that carries an hours snapshot and collects the
// failures in trip order (day ascending, activity ascending). Activities without a
// snapshot have nothing to be judged against and are skipped.
func ScanTrip(trip *trip_models.Trip) trip_models.ScanResult {
	result := trip_models.ScanResult{Conflicts: []trip_models.ConflictRecord{}}
	for dayIndex := range trip.Days {
		scanDay(&result, dayIndex, &trip.Days[dayIndex])
	}
	return result
}

func scanDay(result *trip_models.ScanResult, dayIndex int, day *trip_models.Day) {
	for i := range day.Activities {
		act := &day.Activities[i]
		if act.Hours.IsEmpty() {
			continue
		}

		verdict, err := ValidateActivityTiming(act.Time, *act.Hours, day.Date)
		if err != nil {
			result.Malformed = append(result.Malformed, trip_models.MalformedActivity{
				DayIndex:      dayIndex,
				ActivityIndex: i,
				ActivityID:    act.ID,
				ActivityName:  act.Name,
				Time:          act.Time,
				Error:         err.Error(),
			})
			continue
		}
		if verdict.IsValid {
			continue
		}

		result.Conflicts = append(result.Conflicts, trip_models.ConflictRecord{
			DayIndex:      dayIndex,
			ActivityIndex: i,
			ActivityID:    act.ID,
			ActivityName:  act.Name,
			Time:          act.Time,
			Verdict:       verdict,
		})
	}
}
