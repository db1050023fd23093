package trip_models

import (
	"time"

	"wanderlust/pkg/utils"
)

// PeriodPoint is one edge of an opening period as the places API reports it:
// Day is 0=Sunday..6=Saturday, Time is "HHMM" on a 24-hour clock.
type PeriodPoint struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Period is an open/close pair. A nil Close means open around the clock from Open.
type Period struct {
	Open  PeriodPoint  `json:"open"`
	Close *PeriodPoint `json:"close,omitempty"`
}

// WeeklyHours is the opening-hours snapshot captured when an activity was enriched.
// WeekdayText may be keyed by name ("Monday: 9:00 AM – 5:00 PM") in any order, or
// seven unprefixed lines in places-API order (Monday first).
type WeeklyHours struct {
	WeekdayText []string `json:"weekday_text,omitempty"`
	Periods     []Period `json:"periods,omitempty"`
}

func (w *WeeklyHours) IsEmpty() bool {
	return w == nil || (len(w.WeekdayText) == 0 && len(w.Periods) == 0)
}

type Activity struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Address    string       `json:"address,omitempty"`
	Time       string       `json:"time"`
	Duration   string       `json:"duration,omitempty"`
	Type       string       `json:"type,omitempty"`
	TravelTime string       `json:"travel_time,omitempty"`
	Hours      *WeeklyHours `json:"hours,omitempty"`
}

// Day owns an ordered schedule. Order is chronological and significant.
type Day struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

type Trip struct {
	ID          string   `json:"id,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Pace        string   `json:"pace,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Days        []Day    `json:"days"`
}

func (t *Trip) ActivityCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Activities)
	}
	return n
}

// EnrichmentSummary counts an hours lookup run. Activities that could not be looked up
// keep a nil snapshot and are simply not validated.
type EnrichmentSummary struct {
	Attached int `json:"attached"`
	Missing  int `json:"missing"`
	Failed   int `json:"failed"`
}

// TimingVerdict is the outcome of validating one activity against its date's hours.
type TimingVerdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`

	OpeningTime *utils.TimeOfDay `json:"opening_time,omitempty"`
	ClosingTime *utils.TimeOfDay `json:"closing_time,omitempty"`
	// ClosesNextDay marks a ClosingTime that falls after midnight.
	ClosesNextDay bool `json:"closes_next_day,omitempty"`

	// SuggestedTime is the nearest same-duration range that fits, empty when none does.
	SuggestedTime       string `json:"suggested_time,omitempty"`
	SuggestedAdjustment string `json:"suggested_adjustment,omitempty"`
}

type ConflictRecord struct {
	DayIndex      int           `json:"day_index"`
	ActivityIndex int           `json:"activity_index"`
	ActivityID    string        `json:"activity_id"`
	ActivityName  string        `json:"activity_name"`
	Time          string        `json:"time"`
	Verdict       TimingVerdict `json:"verdict"`
}

// MalformedActivity is an activity whose time text could not be parsed.
// It is skipped by validation and left untouched by repair.
type MalformedActivity struct {
	DayIndex      int    `json:"day_index"`
	ActivityIndex int    `json:"activity_index"`
	ActivityID    string `json:"activity_id"`
	ActivityName  string `json:"activity_name"`
	Time          string `json:"time"`
	Error         string `json:"error"`
}

type ScanResult struct {
	Conflicts []ConflictRecord    `json:"conflicts"`
	Malformed []MalformedActivity `json:"malformed,omitempty"`
}

type TripValidation struct {
	HasConflicts bool                `json:"has_conflicts"`
	Conflicts    []ConflictRecord    `json:"conflicts"`
	Malformed    []MalformedActivity `json:"malformed,omitempty"`
}

type ChangeKind string

const (
	ChangeShifted  ChangeKind = "shifted"
	ChangeCascaded ChangeKind = "cascaded"
	ChangeRemoved  ChangeKind = "removed"
)

type Change struct {
	Pass         int        `json:"pass"`
	Kind         ChangeKind `json:"kind"`
	DayIndex     int        `json:"day_index"`
	ActivityID   string     `json:"activity_id"`
	ActivityName string     `json:"activity_name"`
	PreviousTime string     `json:"previous_time"`
	NewTime      string     `json:"new_time,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

// RepairReport describes one auto-fix run. Resolved is false when conflicts survived
// every pass; callers decide whether to re-run, accept or escalate.
type RepairReport struct {
	Passes    int                 `json:"passes"`
	Resolved  bool                `json:"resolved"`
	Changes   []Change            `json:"changes"`
	Removed   []Activity          `json:"removed,omitempty"`
	Remaining []ConflictRecord    `json:"remaining,omitempty"`
	Malformed []MalformedActivity `json:"malformed,omitempty"`
}

func (r *RepairReport) CountChanges(kind ChangeKind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
