package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wanderlust/internal/models/trip_models"
	"wanderlust/pkg/utils"
)

const maxPlanDays = 14

type GenerateTripRequest struct {
	Destination string
	StartDate   time.Time
	Days        int
	Pace        Pace
	Interests   []string
	Notes       string
}

func (r GenerateTripRequest) validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if r.Days < 1 || r.Days > maxPlanDays {
		return fmt.Errorf("%w: days must be between 1 and %d", utils.ErrInvalidInput, maxPlanDays)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", utils.ErrInvalidDate)
	}
	return nil
}

type PlanGeneratorInterface interface {
	GenerateTrip(ctx context.Context, req GenerateTripRequest) (*trip_models.Trip, error)
}

// PlanGenerator asks the language model for a draft itinerary. The draft carries no
// opening hours; enrichment and repair happen afterwards.
type PlanGenerator struct {
	llm         utils.LLMClientInterface
	policies    *DayPolicyTable
	logger      *zap.Logger
	maxAttempts int
}

func NewPlanGenerator(llm utils.LLMClientInterface, policies *DayPolicyTable, logger *zap.Logger) PlanGeneratorInterface {
	if policies == nil {
		policies = DefaultDayPolicyTable()
	}
	return &PlanGenerator{llm: llm, policies: policies, logger: logger, maxAttempts: 2}
}

func (g *PlanGenerator) GenerateTrip(ctx context.Context, req GenerateTripRequest) (*trip_models.Trip, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Pace == "" {
		req.Pace = PaceModerate
	}

	policies := make([]DayPolicy, req.Days)
	for i := range policies {
		p, err := g.policies.PolicyFor(i, req.Days, req.Pace)
		if err != nil {
			return nil, err
		}
		policies[i] = p
	}

	prompt := g.buildPrompt(req, policies, false)
	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		raw, err := g.llm.GenerateJSON(ctx, prompt)
		if err != nil {
			return nil, err
		}

		trip, err := parsePlan(raw, req)
		if err == nil {
			g.logger.Info("trip generated",
				zap.String("destination", req.Destination),
				zap.Int("days", req.Days),
				zap.Int("activities", trip.ActivityCount()),
				zap.Int("attempt", attempt))
			return trip, nil
		}

		lastErr = err
		g.logger.Warn("unusable plan reply", zap.Int("attempt", attempt), zap.Error(err))
		prompt = g.buildPrompt(req, policies, true)
	}
	return nil, lastErr
}

func (g *PlanGenerator) buildPrompt(req GenerateTripRequest, policies []DayPolicy, strict bool) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Create a %d-day travel itinerary for %s at a %s pace.\n\n", req.Days, req.Destination, req.Pace))
	if len(req.Interests) > 0 {
		prompt.WriteString(fmt.Sprintf("Traveler interests: %s\n", strings.Join(req.Interests, ", ")))
	}
	if req.Notes != "" {
		prompt.WriteString(fmt.Sprintf("Traveler notes: %s\n", req.Notes))
	}

	prompt.WriteString("\nDays:\n")
	for i, p := range policies {
		date := req.StartDate.AddDate(0, 0, i)
		prompt.WriteString(fmt.Sprintf("- Day %d (%s, %s, %s day): %d-%d activities within %s\n",
			i+1, date.Format("2006-01-02"), date.Weekday(), p.Type, p.MinActivities, p.MaxActivities, p.Window()))
	}

	prompt.WriteString("\nRULES:\n")
	prompt.WriteString(fmt.Sprintf("1. Return exactly %d days, in order\n", req.Days))
	prompt.WriteString("2. Use real, specific places with a street address\n")
	prompt.WriteString("3. Times use the form \"9:00 AM - 11:00 AM\" and activities within a day do not overlap\n")
	prompt.WriteString("4. Leave travel time between consecutive activities\n")
	prompt.WriteString("5. Return ONLY valid JSON, no extra text\n\n")
	if strict {
		prompt.WriteString(fmt.Sprintf("Your previous reply was unusable. The \"days\" array MUST have %d entries.\n\n", req.Days))
	}

	prompt.WriteString("Return JSON in this EXACT format:\n")
	prompt.WriteString(`{
  "days": [
    {
      "day": 1,
      "activities": [
        {
          "name": "Place name",
          "address": "Street address, city",
          "time": "2:00 PM - 4:00 PM",
          "duration": "2 hours",
          "type": "museum"
        }
      ]
    }
  ]
}`)
	return prompt.String()
}

type plannedTrip struct {
	Days []struct {
		Day        int `json:"day"`
		Activities []struct {
			Name     string `json:"name"`
			Address  string `json:"address"`
			Time     string `json:"time"`
			Duration string `json:"duration"`
			Type     string `json:"type"`
		} `json:"activities"`
	} `json:"days"`
}

// parsePlan turns a reply into a Trip. Activities keep their time text as given so
// that the validator can report malformed entries.
func parsePlan(raw string, req GenerateTripRequest) (*trip_models.Trip, error) {
	var plan plannedTrip
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &plan); err != nil {
		return nil, fmt.Errorf("%w: invalid plan JSON: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	if len(plan.Days) != req.Days {
		return nil, fmt.Errorf("%w: expected %d days, got %d", utils.ErrUnexpectedBehaviorOfAI, req.Days, len(plan.Days))
	}

	trip := &trip_models.Trip{
		ID:          uuid.NewString(),
		Destination: req.Destination,
		Pace:        string(req.Pace),
		Interests:   req.Interests,
		Days:        make([]trip_models.Day, 0, len(plan.Days)),
	}

	for i, day := range plan.Days {
		activities := make([]trip_models.Activity, 0, len(day.Activities))
		for _, a := range day.Activities {
			if strings.TrimSpace(a.Name) == "" {
				continue
			}
			duration := a.Duration
			if minutes, err := utils.RangeDuration(a.Time); err == nil {
				duration = utils.FormatDurationText(minutes)
			}
			activities = append(activities, trip_models.Activity{
				ID:       uuid.NewString(),
				Name:     strings.TrimSpace(a.Name),
				Address:  a.Address,
				Time:     strings.TrimSpace(a.Time),
				Duration: duration,
				Type:     a.Type,
			})
		}
		trip.Days = append(trip.Days, trip_models.Day{
			Date:       req.StartDate.AddDate(0, 0, i),
			Activities: activities,
		})
	}

	if trip.ActivityCount() == 0 {
		return nil, fmt.Errorf("%w: plan has no activities", utils.ErrUnexpectedBehaviorOfAI)
	}
	return trip, nil
}
