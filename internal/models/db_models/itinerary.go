package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"wanderlust/internal/models/trip_models"
)

// RepairSummary is the outcome of the last auto-fix run, kept with the itinerary.
type RepairSummary struct {
	Passes    int  `json:"passes"`
	Resolved  bool `json:"resolved"`
	Shifted   int  `json:"shifted"`
	Cascaded  int  `json:"cascaded"`
	Removed   int  `json:"removed"`
	Remaining int  `json:"remaining"`
}

func SummarizeRepair(report trip_models.RepairReport) RepairSummary {
	return RepairSummary{
		Passes:    report.Passes,
		Resolved:  report.Resolved,
		Shifted:   report.CountChanges(trip_models.ChangeShifted),
		Cascaded:  report.CountChanges(trip_models.ChangeCascaded),
		Removed:   len(report.Removed),
		Remaining: len(report.Remaining),
	}
}

type Itinerary struct {
	BaseModel
	UserID      uuid.UUID      `gorm:"type:uuid;index"`
	Destination string
	Pace        string
	Interests   pq.StringArray `gorm:"type:text[]"`
	StartDate   time.Time      `gorm:"type:date"`
	LastRepair  datatypes.JSONType[RepairSummary] `gorm:"type:jsonb"`

	Days []ItineraryDay
}

type ItineraryDay struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	DayNumber   int
	Date        time.Time `gorm:"type:date"`

	Activities []ItineraryActivity
}

type ItineraryActivity struct {
	BaseModel
	ItineraryDayID uuid.UUID `gorm:"type:uuid;index"`
	Position       int
	// ActivityKey is the id the client knows the activity by.
	ActivityKey string `gorm:"index"`
	Name        string
	Address     string
	Time        string
	Duration    string
	Type        string
	TravelTime  string
	Hours       datatypes.JSONType[trip_models.WeeklyHours] `gorm:"type:jsonb"`
}

// NewItinerary maps a trip to rows. A trip id that is not a uuid gets a fresh one.
func NewItinerary(userID uuid.UUID, trip *trip_models.Trip, report trip_models.RepairReport) *Itinerary {
	it := &Itinerary{
		UserID:      userID,
		Destination: trip.Destination,
		Pace:        trip.Pace,
		Interests:   pq.StringArray(trip.Interests),
		LastRepair:  datatypes.NewJSONType(SummarizeRepair(report)),
		Days:        make([]ItineraryDay, 0, len(trip.Days)),
	}
	if id, err := uuid.Parse(trip.ID); err == nil {
		it.ID = id
	}
	if len(trip.Days) > 0 {
		it.StartDate = trip.Days[0].Date
	}

	for d, day := range trip.Days {
		row := ItineraryDay{
			DayNumber:  d + 1,
			Date:       day.Date,
			Activities: make([]ItineraryActivity, 0, len(day.Activities)),
		}
		for i, a := range day.Activities {
			act := ItineraryActivity{
				Position:    i,
				ActivityKey: a.ID,
				Name:        a.Name,
				Address:     a.Address,
				Time:        a.Time,
				Duration:    a.Duration,
				Type:        a.Type,
				TravelTime:  a.TravelTime,
			}
			if !a.Hours.IsEmpty() {
				act.Hours = datatypes.NewJSONType(*a.Hours)
			}
			row.Activities = append(row.Activities, act)
		}
		it.Days = append(it.Days, row)
	}
	return it
}

// ToTrip expects Days and Days.Activities to be preloaded in order.
func (it *Itinerary) ToTrip() *trip_models.Trip {
	trip := &trip_models.Trip{
		ID:          it.ID.String(),
		Destination: it.Destination,
		Pace:        it.Pace,
		Interests:   []string(it.Interests),
		Days:        make([]trip_models.Day, 0, len(it.Days)),
	}
	for _, day := range it.Days {
		out := trip_models.Day{
			Date:       day.Date,
			Activities: make([]trip_models.Activity, 0, len(day.Activities)),
		}
		for _, a := range day.Activities {
			act := trip_models.Activity{
				ID:         a.ActivityKey,
				Name:       a.Name,
				Address:    a.Address,
				Time:       a.Time,
				Duration:   a.Duration,
				Type:       a.Type,
				TravelTime: a.TravelTime,
			}
			if hours := a.Hours.Data(); !hours.IsEmpty() {
				act.Hours = &hours
			}
			out.Activities = append(out.Activities, act)
		}
		trip.Days = append(trip.Days, out)
	}
	return trip
}
