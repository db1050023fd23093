package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"wanderlust/internal/models/trip_models"
	"wanderlust/pkg/utils"
)

// HoursWindow is one opening window in minutes since midnight of the resolved date.
// Close exceeds utils.MinutesPerDay when the place closes after midnight.
type HoursWindow struct {
	Open  int
	Close int
}

func (w HoursWindow) Contains(start, end int) bool {
	return start >= w.Open && end <= w.Close
}

func (w HoursWindow) String() string {
	return utils.FormatTimeRange(w.Open, w.Close)
}

// ResolvedHours is a weekly schedule narrowed to one calendar date.
type ResolvedHours struct {
	Weekday time.Weekday
	Text    string
	Closed  bool
	Open24  bool
	Windows []HoursWindow
}

// ResolveHoursForDate picks the schedule that applies on date. Structured periods win
// over the free-text line; the text is only parsed when the day has no periods.
func ResolveHoursForDate(hours trip_models.WeeklyHours, date time.Time) ResolvedHours {
	wd := date.Weekday()
	text, _ := weekdayLine(hours.WeekdayText, wd)
	resolved := ResolvedHours{Weekday: wd, Text: text}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "closed") {
		resolved.Closed = true
		return resolved
	}
	if strings.Contains(lower, "24 hours") {
		resolved.Open24 = true
		return resolved
	}

	resolved.Windows, resolved.Open24 = windowsFromPeriods(hours.Periods, wd)
	if resolved.Open24 {
		resolved.Windows = nil
		return resolved
	}
	if len(resolved.Windows) == 0 && text != "" {
		resolved.Windows = windowsFromText(text)
	}

	sort.Slice(resolved.Windows, func(i, j int) bool {
		return resolved.Windows[i].Open < resolved.Windows[j].Open
	})
	return resolved
}

var mondayFirst = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// weekdayLine returns the text after "Monday:" for the requested weekday. Unprefixed
// lines are read in places-API order, Monday first.
func weekdayLine(lines []string, wd time.Weekday) (string, bool) {
	prefixed := false
	for _, line := range lines {
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		for _, day := range mondayFirst {
			if strings.EqualFold(strings.TrimSpace(name), day.String()) {
				prefixed = true
				if day == wd {
					return strings.TrimSpace(rest), true
				}
			}
		}
	}
	if prefixed || len(lines) != len(mondayFirst) {
		return "", false
	}
	return strings.TrimSpace(lines[(int(wd)+6)%7]), true
}

func windowsFromPeriods(periods []trip_models.Period, wd time.Weekday) ([]HoursWindow, bool) {
	var windows []HoursWindow
	day := int(wd)
	previous := (day + 6) % 7

	for _, p := range periods {
		open, err := parsePeriodTime(p.Open.Time)
		if err != nil {
			continue
		}

		if p.Close == nil {
			// A lone open point with no close is the places API's round-the-clock marker.
			if p.Open.Day == day || len(periods) == 1 {
				if open == 0 {
					return nil, true
				}
				windows = append(windows, HoursWindow{Open: open, Close: open + utils.MinutesPerDay})
			}
			continue
		}

		closeAt, err := parsePeriodTime(p.Close.Time)
		if err != nil {
			continue
		}
		spill := (p.Close.Day - p.Open.Day + 7) % 7

		switch {
		case p.Open.Day == day:
			windows = append(windows, HoursWindow{Open: open, Close: closeAt + spill*utils.MinutesPerDay})
		case p.Open.Day == previous && p.Close.Day == day && spill == 1 && closeAt > 0:
			windows = append(windows, HoursWindow{Open: 0, Close: closeAt})
		}
	}
	return windows, false
}

func parsePeriodTime(hhmm string) (int, error) {
	hhmm = strings.ReplaceAll(strings.TrimSpace(hhmm), ":", "")
	if len(hhmm) != 4 {
		return 0, fmt.Errorf("%w: period time %q", utils.ErrInvalidClock, hhmm)
	}
	hour, errH := strconv.Atoi(hhmm[:2])
	minute, errM := strconv.Atoi(hhmm[2:])
	if errH != nil || errM != nil || hour > 24 || minute > 59 {
		return 0, fmt.Errorf("%w: period time %q", utils.ErrInvalidClock, hhmm)
	}
	return hour*60 + minute, nil
}

// windowsFromText parses lines such as "9:00 AM – 5:00 PM" or
// "11:00 AM – 2:00 PM, 5:00 – 10:00 PM". Unparseable segments are dropped.
func windowsFromText(text string) []HoursWindow {
	var windows []HoursWindow
	for _, segment := range strings.Split(text, ",") {
		left, right, ok := utils.SplitRange(segment)
		if !ok {
			continue
		}
		closeAt, err := utils.ParseClock(right)
		if err != nil {
			continue
		}
		open, err := utils.ParseClock(left)
		if err != nil {
			// Places APIs drop the meridiem on the opening side when both sides share it.
			open, err = utils.ParseClock(left + " " + meridiem(right))
			if err != nil {
				continue
			}
		}

		w := HoursWindow{Open: open.Minutes(), Close: closeAt.Minutes()}
		if w.Close <= w.Open {
			w.Close += utils.MinutesPerDay
		}
		windows = append(windows, w)
	}
	return windows
}

func meridiem(clock string) string {
	upper := strings.ToUpper(clock)
	if strings.Contains(upper, "PM") {
		return "PM"
	}
	return "AM"
}
