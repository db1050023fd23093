package services

import (
	"fmt"
	"time"

	"wanderlust/internal/models/trip_models"
	"wanderlust/pkg/utils"
)

const (
	ReasonNoHoursForDay = "no hours data for this day"
	ReasonOpen24Hours   = "open 24 hours"
)

// placement is a candidate same-duration slot inside one opening window.
type placement struct {
	window HoursWindow
	start  int
	end    int
}

// ValidateActivityTiming checks a "9:00 AM - 10:30 AM" range against the hours that
// apply on date. A malformed range is returned as an error, never as a verdict.
func ValidateActivityTiming(timeRange string, hours trip_models.WeeklyHours, date time.Time) (trip_models.TimingVerdict, error) {
	r, err := utils.ParseTimeRange(timeRange)
	if err != nil {
		return trip_models.TimingVerdict{}, err
	}
	return validateRange(r, ResolveHoursForDate(hours, date)), nil
}

func validateRange(r utils.TimeRange, resolved ResolvedHours) trip_models.TimingVerdict {
	switch {
	case resolved.Closed:
		return trip_models.TimingVerdict{Reason: fmt.Sprintf("closed on %s", resolved.Weekday)}
	case resolved.Open24:
		return trip_models.TimingVerdict{IsValid: true, Reason: ReasonOpen24Hours}
	case len(resolved.Windows) == 0:
		return trip_models.TimingVerdict{Reason: ReasonNoHoursForDay}
	}

	start, end := r.Start.Minutes(), r.End.Minutes()
	for _, w := range resolved.Windows {
		if w.Contains(start, end) {
			v := trip_models.TimingVerdict{IsValid: true}
			setWindow(&v, w)
			return v
		}
	}

	duration := end - start
	best, ok := nearestPlacement(start, duration, resolved.Windows)
	if !ok {
		longest := longestWindow(resolved.Windows)
		v := trip_models.TimingVerdict{
			Reason: fmt.Sprintf("outside opening hours (%s)", longest),
			SuggestedAdjustment: fmt.Sprintf("needs %s but the longest opening window is %s (%s)",
				utils.FormatDurationText(duration), utils.FormatDurationText(usableLength(longest)), longest),
		}
		setWindow(&v, longest)
		return v
	}

	v := trip_models.TimingVerdict{
		Reason:              mismatchReason(start, end, best.window),
		SuggestedTime:       utils.FormatTimeRange(best.start, best.end),
		SuggestedAdjustment: fmt.Sprintf("shift to %s", utils.FormatTimeRange(best.start, best.end)),
	}
	setWindow(&v, best.window)
	return v
}

// nearestPlacement slides the activity the shortest distance that fits it inside a
// window: open-anchored when it starts too early, close-anchored when it ends too late.
// Ties go to the earlier window.
func nearestPlacement(start, duration int, windows []HoursWindow) (placement, bool) {
	var best placement
	found := false
	bestShift := 0

	for _, w := range windows {
		latestStart := usableClose(w) - duration
		if latestStart < w.Open {
			continue
		}
		s := min(max(start, w.Open), latestStart)
		shift := abs(s - start)
		if !found || shift < bestShift {
			best = placement{window: w, start: s, end: s + duration}
			bestShift = shift
			found = true
		}
	}
	return best, found
}

// usableClose caps a window at the last minute of the day; activities never run past midnight.
func usableClose(w HoursWindow) int {
	return min(w.Close, utils.LastMinuteOfDay)
}

func usableLength(w HoursWindow) int {
	return max(usableClose(w)-w.Open, 0)
}

func longestWindow(windows []HoursWindow) HoursWindow {
	longest := windows[0]
	for _, w := range windows[1:] {
		if usableLength(w) > usableLength(longest) {
			longest = w
		}
	}
	return longest
}

func mismatchReason(start, end int, w HoursWindow) string {
	switch {
	case start < w.Open && end <= w.Close:
		return fmt.Sprintf("starts before opening time (%s)", utils.ClockFromMinutes(w.Open))
	case start >= w.Open && end > w.Close:
		return fmt.Sprintf("ends after closing time (%s)", utils.ClockFromMinutes(w.Close))
	default:
		return fmt.Sprintf("outside opening hours (%s)", w)
	}
}

func setWindow(v *trip_models.TimingVerdict, w HoursWindow) {
	opening := utils.ClockFromMinutes(w.Open)
	closing := utils.ClockFromMinutes(w.Close)
	v.OpeningTime = &opening
	v.ClosingTime = &closing
	v.ClosesNextDay = w.Close >= utils.MinutesPerDay
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
