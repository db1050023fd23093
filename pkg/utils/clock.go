package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinutesPerDay = 24 * 60
	// LastMinuteOfDay is the latest clock value an activity may end at.
	LastMinuteOfDay = MinutesPerDay - 1
)

// TimeOfDay is a local wall-clock time at the destination.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String renders the time as "3:05 PM".
func (t TimeOfDay) String() string {
	return FormatClock(t)
}

// ClockFromMinutes converts minutes since midnight back to a TimeOfDay.
// Values outside a single day wrap around midnight.
func ClockFromMinutes(m int) TimeOfDay {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// TimeRange is a same-day [Start, End] pair.
type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

func (r TimeRange) String() string {
	return FormatTimeRange(r.Start.Minutes(), r.End.Minutes())
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp])\.?\s*[Mm]\.?$`)

// rangeSeparators covers what the planner emits (" - ") and what place APIs emit (en/em dash).
var rangeSeparators = []string{"\u2013", "\u2014", " - ", "-"}

// normalizeSpaces folds the narrow and no-break spaces used by place APIs into ASCII spaces.
func normalizeSpaces(s string) string {
	s = strings.NewReplacer("\u202f", " ", "\u00a0", " ", "\u2009", " ").Replace(s)
	return strings.TrimSpace(s)
}

// ParseClock parses "h:mm AM/PM".
func ParseClock(text string) (TimeOfDay, error) {
	m := clockPattern.FindStringSubmatch(normalizeSpaces(text))
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidClock, text)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidClock, text)
	}

	pm := strings.EqualFold(m[3], "p")
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(t TimeOfDay) string {
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, suffix)
}

// FormatTimeRange renders two minute offsets as "9:00 AM - 10:30 AM".
func FormatTimeRange(startMinutes, endMinutes int) string {
	return FormatClock(ClockFromMinutes(startMinutes)) + " - " + FormatClock(ClockFromMinutes(endMinutes))
}

// SplitRange splits a range on the first separator it finds.
func SplitRange(text string) (string, string, bool) {
	text = normalizeSpaces(text)
	for _, sep := range rangeSeparators {
		if i := strings.Index(text, sep); i >= 0 {
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(sep):]), true
		}
	}
	return "", "", false
}

// ParseTimeRange parses "9:00 AM - 10:30 AM". Overnight ranges are rejected.
func ParseTimeRange(text string) (TimeRange, error) {
	left, right, ok := SplitRange(text)
	if !ok {
		return TimeRange{}, fmt.Errorf("%w: %q has no separator", ErrInvalidTimeRange, text)
	}

	start, err := ParseClock(left)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseClock(right)
	if err != nil {
		return TimeRange{}, err
	}

	if end.Minutes() <= start.Minutes() {
		return TimeRange{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidTimeRange, text)
	}
	return TimeRange{Start: start, End: end}, nil
}

// RangeDuration returns the length of a range text in minutes.
func RangeDuration(text string) (int, error) {
	r, err := ParseTimeRange(text)
	if err != nil {
		return 0, err
	}
	return r.DurationMinutes(), nil
}

var durationPartPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)

// ParseDurationText converts labels such as "2 hours", "1.5 hours", "90 minutes" or
// "1h 30m" into minutes.
func ParseDurationText(text string) (int, error) {
	lower := strings.ToLower(normalizeSpaces(text))
	parts := durationPartPattern.FindAllStringSubmatch(lower, -1)
	if len(parts) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
	}

	total := 0.0
	for _, p := range parts {
		value, err := strconv.ParseFloat(p[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
		}
		if strings.HasPrefix(p[2], "h") {
			value *= 60
		}
		total += value
	}
	return int(math.Round(total)), nil
}

// FormatDurationText renders minutes the way the planner labels durations.
func FormatDurationText(minutes int) string {
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d minutes", mins)
	case mins == 0 && hours == 1:
		return "1 hour"
	case mins == 0:
		return fmt.Sprintf("%d hours", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}
