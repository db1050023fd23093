package services

import (
	"time"

	"go.uber.org/zap"

	"wanderlust/internal/models/trip_models"
	"wanderlust/pkg/utils"
)

const (
	DefaultTravelBuffer = 15 * time.Minute
	DefaultMaxPasses    = 3

	ReasonPushedPastEndOfDay = "pushed past end of day"
)

type RepairOptions struct {
	// TravelBuffer is the gap inserted between consecutive activities when a fix cascades.
	TravelBuffer time.Duration
	// MaxPasses bounds the scan/repair loop. A cascade can push a later activity out of
	// its own hours, which only the next pass notices.
	MaxPasses int
}

func DefaultRepairOptions() RepairOptions {
	return RepairOptions{TravelBuffer: DefaultTravelBuffer, MaxPasses: DefaultMaxPasses}
}

func (o RepairOptions) withDefaults() RepairOptions {
	if o.TravelBuffer <= 0 {
		o.TravelBuffer = DefaultTravelBuffer
	}
	if o.MaxPasses <= 0 {
		o.MaxPasses = DefaultMaxPasses
	}
	return o
}

// AutoFixResolver retimes activities that fall outside their opening hours. It is a
// greedy local repair: it never reorders activities, never creates them, and only
// removes those that cannot fit. It is not safe to run two repairs on the same trip
// concurrently.
type AutoFixResolver struct {
	opts   RepairOptions
	logger *zap.Logger
}

func NewAutoFixResolver(opts RepairOptions, logger *zap.Logger) *AutoFixResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoFixResolver{opts: opts.withDefaults(), logger: logger}
}

func (r *AutoFixResolver) Options() RepairOptions {
	return r.opts
}

// FixTrip repairs trip in place and reports what changed. Resolved is false when
// conflicts survive MaxPasses passes; that is a normal outcome, not an error.
func (r *AutoFixResolver) FixTrip(trip *trip_models.Trip) trip_models.RepairReport {
	report := trip_models.RepairReport{Changes: []trip_models.Change{}}

	scan := ScanTrip(trip)
	for len(scan.Conflicts) > 0 && report.Passes < r.opts.MaxPasses {
		report.Passes++
		if !r.runPass(trip, scan.Conflicts, report.Passes, &report) {
			break
		}
		scan = ScanTrip(trip)
	}

	report.Resolved = len(scan.Conflicts) == 0
	report.Malformed = scan.Malformed
	if !report.Resolved {
		report.Remaining = scan.Conflicts
		r.logger.Warn("conflicts remain after auto-fix",
			zap.String("trip_id", trip.ID),
			zap.Int("passes", report.Passes),
			zap.Int("remaining", len(scan.Conflicts)))
	}
	return report
}

// FixDay is the single-day form of FixTrip. The returned slice replaces activities.
func (r *AutoFixResolver) FixDay(activities []trip_models.Activity, date time.Time) ([]trip_models.Activity, trip_models.RepairReport) {
	trip := &trip_models.Trip{Days: []trip_models.Day{{Date: date, Activities: activities}}}
	report := r.FixTrip(trip)
	return trip.Days[0].Activities, report
}

// runPass works on the conflicts found by one scan. Positions stay valid for the whole
// pass because removals are only marked here and applied once every conflict of the
// day has been handled.
func (r *AutoFixResolver) runPass(trip *trip_models.Trip, conflicts []trip_models.ConflictRecord, pass int, report *trip_models.RepairReport) bool {
	byDay := make(map[int][]trip_models.ConflictRecord)
	for _, c := range conflicts {
		byDay[c.DayIndex] = append(byDay[c.DayIndex], c)
	}

	changed := false
	for dayIndex := range trip.Days {
		dayConflicts, ok := byDay[dayIndex]
		if !ok {
			continue
		}
		if r.repairDay(pass, dayIndex, &trip.Days[dayIndex], dayConflicts, report) {
			changed = true
		}
	}
	return changed
}

func (r *AutoFixResolver) repairDay(pass, dayIndex int, day *trip_models.Day, conflicts []trip_models.ConflictRecord, report *trip_models.RepairReport) bool {
	removed := make([]bool, len(day.Activities))
	changed := false

	for _, c := range conflicts {
		i := c.ActivityIndex
		if i >= len(day.Activities) || removed[i] {
			continue
		}
		act := &day.Activities[i]

		// Re-check against the current time: a cascade from an earlier fix may already
		// have moved this activity.
		verdict, err := ValidateActivityTiming(act.Time, *act.Hours, day.Date)
		if err != nil || verdict.IsValid {
			continue
		}
		changed = true

		if verdict.SuggestedTime == "" {
			removed[i] = true
			report.Changes = append(report.Changes, r.change(pass, trip_models.ChangeRemoved, dayIndex, act, "", verdict.Reason))
			r.logger.Debug("activity removed",
				zap.Int("day", dayIndex), zap.String("activity", act.Name), zap.String("reason", verdict.Reason))
			continue
		}

		shift := r.change(pass, trip_models.ChangeShifted, dayIndex, act, verdict.SuggestedTime, verdict.Reason)
		act.Time = verdict.SuggestedTime
		report.Changes = append(report.Changes, shift)
		r.logger.Debug("activity shifted",
			zap.Int("day", dayIndex), zap.String("activity", act.Name),
			zap.String("from", shift.PreviousTime), zap.String("to", shift.NewTime))

		r.cascade(pass, dayIndex, day, i, removed, report)
	}

	if changed {
		day.Activities = r.applyRemovals(day.Activities, removed, report)
	}
	return changed
}

// cascade retimes every later activity of the day to start one travel buffer after the
// previous one ends, keeping its own duration. It does not re-check opening hours.
func (r *AutoFixResolver) cascade(pass, dayIndex int, day *trip_models.Day, from int, removed []bool, report *trip_models.RepairReport) {
	anchor, err := utils.ParseTimeRange(day.Activities[from].Time)
	if err != nil {
		return
	}

	buffer := int(r.opts.TravelBuffer / time.Minute)
	bufferLabel := utils.FormatDurationText(buffer)
	prevEnd := anchor.End.Minutes()

	for j := from + 1; j < len(day.Activities); j++ {
		if removed[j] {
			continue
		}
		act := &day.Activities[j]
		current, err := utils.ParseTimeRange(act.Time)
		if err != nil {
			// Malformed times are never rewritten.
			continue
		}

		start := prevEnd + buffer
		end := start + current.DurationMinutes()
		if end > utils.LastMinuteOfDay {
			removed[j] = true
			report.Changes = append(report.Changes, r.change(pass, trip_models.ChangeRemoved, dayIndex, act, "", ReasonPushedPastEndOfDay))
			continue
		}

		act.TravelTime = bufferLabel
		newTime := utils.FormatTimeRange(start, end)
		if newTime != act.Time {
			report.Changes = append(report.Changes, r.change(pass, trip_models.ChangeCascaded, dayIndex, act, newTime, ""))
			act.Time = newTime
		}
		prevEnd = end
	}
}

func (r *AutoFixResolver) applyRemovals(activities []trip_models.Activity, removed []bool, report *trip_models.RepairReport) []trip_models.Activity {
	kept := make([]trip_models.Activity, 0, len(activities))
	for i, act := range activities {
		if removed[i] {
			report.Removed = append(report.Removed, act)
			continue
		}
		kept = append(kept, act)
	}
	return kept
}

func (r *AutoFixResolver) change(pass int, kind trip_models.ChangeKind, dayIndex int, act *trip_models.Activity, newTime, reason string) trip_models.Change {
	return trip_models.Change{
		Pass:         pass,
		Kind:         kind,
		DayIndex:     dayIndex,
		ActivityID:   act.ID,
		ActivityName: act.Name,
		PreviousTime: act.Time,
		NewTime:      newTime,
		Reason:       reason,
	}
}
