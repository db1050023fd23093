package request_models

import (
	"fmt"

	"github.com/google/uuid"

	"wanderlust/internal/models/trip_models"
	"wanderlust/pkg/utils"
)

type ActivityRequest struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name" binding:"required"`
	Address    string                   `json:"address"`
	Time       string                   `json:"time" binding:"required"`
	Duration   string                   `json:"duration"`
	Type       string                   `json:"type"`
	TravelTime string                   `json:"travel_time"`
	Hours      *trip_models.WeeklyHours `json:"hours"`
}

type DayRequest struct {
	// YYYY-MM-DD at the destination
	Date       string            `json:"date" binding:"required"`
	Activities []ActivityRequest `json:"activities" binding:"dive"`
}

type TripRequest struct {
	ID          string       `json:"id"`
	Destination string       `json:"destination"`
	Pace        string       `json:"pace"`
	Interests   []string     `json:"interests"`
	Days        []DayRequest `json:"days" binding:"required,min=1,dive"`
}

type AutoFixDayRequest struct {
	Date       string            `json:"date" binding:"required"`
	Activities []ActivityRequest `json:"activities" binding:"required,dive"`
}

type GenerateItineraryRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	Days        int      `json:"days" binding:"required,min=1,max=14"`
	Pace        string   `json:"pace"`
	Interests   []string `json:"interests"`
	Notes       string   `json:"notes"`
}

// ToActivity gives activities without an id a fresh uuid.
func (a ActivityRequest) ToActivity() trip_models.Activity {
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	return trip_models.Activity{
		ID:         id,
		Name:       a.Name,
		Address:    a.Address,
		Time:       a.Time,
		Duration:   a.Duration,
		Type:       a.Type,
		TravelTime: a.TravelTime,
		Hours:      a.Hours,
	}
}

func ToActivities(in []ActivityRequest) []trip_models.Activity {
	out := make([]trip_models.Activity, 0, len(in))
	for _, a := range in {
		out = append(out, a.ToActivity())
	}
	return out
}

func (r TripRequest) ToTrip() (*trip_models.Trip, error) {
	trip := &trip_models.Trip{
		ID:          r.ID,
		Destination: r.Destination,
		Pace:        r.Pace,
		Interests:   r.Interests,
		Days:        make([]trip_models.Day, 0, len(r.Days)),
	}
	for i, d := range r.Days {
		date, err := utils.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		trip.Days = append(trip.Days, trip_models.Day{Date: date, Activities: ToActivities(d.Activities)})
	}
	return trip, nil
}
