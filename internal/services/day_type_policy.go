package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"wanderlust/pkg/utils"
)

type DayType string

const (
	DayTypeArrival   DayType = "arrival"
	DayTypeFull      DayType = "full"
	DayTypeDeparture DayType = "departure"
)

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PacePacked   Pace = "packed"
)

func ParsePace(s string) (Pace, error) {
	switch p := Pace(strings.ToLower(strings.TrimSpace(s))); p {
	case PaceRelaxed, PaceModerate, PacePacked:
		return p, nil
	case "":
		return PaceModerate, nil
	default:
		return "", fmt.Errorf("%w: unknown pace %q", utils.ErrInvalidInput, s)
	}
}

// DayPolicy bounds what a generated day may contain. It constrains generation only;
// the repair engine never reads it.
type DayPolicy struct {
	Type          DayType         `json:"type"`
	Pace          Pace            `json:"pace"`
	MinActivities int             `json:"min_activities"`
	MaxActivities int             `json:"max_activities"`
	Start         utils.TimeOfDay `json:"start"`
	End           utils.TimeOfDay `json:"end"`
}

func (p DayPolicy) Window() string {
	return utils.FormatTimeRange(p.Start.Minutes(), p.End.Minutes())
}

// DayTypeFor: the first day is arrival, the last of a multi-day trip is departure.
func DayTypeFor(index, total int) DayType {
	switch {
	case index == 0:
		return DayTypeArrival
	case total > 1 && index == total-1:
		return DayTypeDeparture
	default:
		return DayTypeFull
	}
}

type activityBand struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type dayTypeRule struct {
	Start string                  `yaml:"start"`
	End   string                  `yaml:"end"`
	Bands map[string]activityBand `yaml:"activities"`
}

// DayPolicyTable maps day types to their window and per-pace activity bands.
type DayPolicyTable struct {
	Rules map[string]dayTypeRule `yaml:"day_types"`
}

func DefaultDayPolicyTable() *DayPolicyTable {
	short := map[string]activityBand{
		string(PaceRelaxed):  {Min: 1, Max: 2},
		string(PaceModerate): {Min: 2, Max: 3},
		string(PacePacked):   {Min: 3, Max: 4},
	}
	return &DayPolicyTable{Rules: map[string]dayTypeRule{
		string(DayTypeArrival): {Start: "2:00 PM", End: "9:00 PM", Bands: short},
		string(DayTypeFull): {Start: "9:00 AM", End: "9:00 PM", Bands: map[string]activityBand{
			string(PaceRelaxed):  {Min: 3, Max: 4},
			string(PaceModerate): {Min: 4, Max: 5},
			string(PacePacked):   {Min: 6, Max: 7},
		}},
		string(DayTypeDeparture): {Start: "8:00 AM", End: "12:00 PM", Bands: short},
	}}
}

// LoadDayPolicyTable reads overrides from a YAML file. Day types or paces the file
// leaves out keep their defaults.
func LoadDayPolicyTable(path string) (*DayPolicyTable, error) {
	table := DefaultDayPolicyTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read day policy file: %w", err)
	}

	var override DayPolicyTable
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse day policy file: %w", err)
	}

	for name, rule := range override.Rules {
		base, ok := table.Rules[name]
		if !ok {
			return nil, fmt.Errorf("day policy file: unknown day type %q", name)
		}
		if rule.Start != "" {
			base.Start = rule.Start
		}
		if rule.End != "" {
			base.End = rule.End
		}
		bands := make(map[string]activityBand, len(base.Bands))
		for pace, band := range base.Bands {
			bands[pace] = band
		}
		for pace, band := range rule.Bands {
			bands[pace] = band
		}
		base.Bands = bands
		table.Rules[name] = base
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("validate day policy file: %w", err)
	}
	return table, nil
}

func (t *DayPolicyTable) Validate() error {
	for name, rule := range t.Rules {
		start, err := utils.ParseClock(rule.Start)
		if err != nil {
			return fmt.Errorf("%s.start: %w", name, err)
		}
		end, err := utils.ParseClock(rule.End)
		if err != nil {
			return fmt.Errorf("%s.end: %w", name, err)
		}
		if end.Minutes() <= start.Minutes() {
			return fmt.Errorf("%s: end must be after start", name)
		}
		for pace, band := range rule.Bands {
			if band.Min < 0 || band.Max < band.Min {
				return fmt.Errorf("%s.activities.%s: invalid band %d-%d", name, pace, band.Min, band.Max)
			}
		}
	}
	return nil
}

// PolicyFor looks up the policy for day index of total at the given pace.
func (t *DayPolicyTable) PolicyFor(index, total int, pace Pace) (DayPolicy, error) {
	if total <= 0 || index < 0 || index >= total {
		return DayPolicy{}, fmt.Errorf("%w: day %d of %d", utils.ErrInvalidInput, index, total)
	}
	if pace == "" {
		pace = PaceModerate
	}

	dayType := DayTypeFor(index, total)
	rule, ok := t.Rules[string(dayType)]
	if !ok {
		return DayPolicy{}, fmt.Errorf("%w: no policy for %s days", utils.ErrInvalidInput, dayType)
	}
	band, ok := rule.Bands[string(pace)]
	if !ok {
		return DayPolicy{}, fmt.Errorf("%w: no %s band for %s days", utils.ErrInvalidInput, pace, dayType)
	}

	start, err := utils.ParseClock(rule.Start)
	if err != nil {
		return DayPolicy{}, err
	}
	end, err := utils.ParseClock(rule.End)
	if err != nil {
		return DayPolicy{}, err
	}

	return DayPolicy{
		Type:          dayType,
		Pace:          pace,
		MinActivities: band.Min,
		MaxActivities: band.Max,
		Start:         start,
		End:           end,
	}, nil
}
