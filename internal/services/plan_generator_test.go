package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wanderlust/pkg/utils"
)

type fakeLLM struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeLLM) Close() error { return nil }

const twoDayPlan = "```json\n" + `{
  "days": [
    {"day": 1, "activities": [
      {"name": "Louvre", "address": "Rue de Rivoli", "time": "2:00 PM - 4:30 PM", "duration": "2 hours", "type": "museum"},
      {"name": "  ", "time": "5:00 PM - 6:00 PM"}
    ]},
    {"day": 2, "activities": [
      {"name": "Cafe de Flore", "time": "around nine", "duration": "1 hour"}
    ]}
  ]
}` + "\n```"

func TestPlanGenerator_GenerateTrip(t *testing.T) {
	llm := &fakeLLM{replies: []string{twoDayPlan}}
	gen := NewPlanGenerator(llm, nil, zaptest.NewLogger(t))

	trip, err := gen.GenerateTrip(context.Background(), GenerateTripRequest{
		Destination: "Paris",
		StartDate:   monday,
		Days:        2,
		Pace:        PaceRelaxed,
		Interests:   []string{"art", "food"},
	})
	require.NoError(t, err)

	require.Len(t, trip.Days, 2)
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, "Paris", trip.Destination)
	assert.Equal(t, "relaxed", trip.Pace)
	assert.Equal(t, monday, trip.Days[0].Date)
	assert.Equal(t, tuesday, trip.Days[1].Date)

	require.Len(t, trip.Days[0].Activities, 1, "nameless activities are dropped")
	louvre := trip.Days[0].Activities[0]
	assert.NotEmpty(t, louvre.ID)
	assert.Equal(t, "2h 30m", louvre.Duration, "duration follows the time range")
	assert.Equal(t, "museum", louvre.Type)

	cafe := trip.Days[1].Activities[0]
	assert.Equal(t, "around nine", cafe.Time, "unparseable times are kept for the validator")
	assert.Equal(t, "1 hour", cafe.Duration)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "Day 1 (2024-01-01, Monday, arrival day): 1-2 activities within 2:00 PM - 9:00 PM")
	assert.Contains(t, prompt, "Day 2 (2024-01-02, Tuesday, departure day): 1-2 activities within 8:00 AM - 12:00 PM")
	assert.Contains(t, prompt, "Traveler interests: art, food")
}

func TestPlanGenerator_RetriesOnWrongDayCount(t *testing.T) {
	llm := &fakeLLM{replies: []string{
		`{"days": [{"day": 1, "activities": [{"name": "Louvre", "time": "2:00 PM - 4:00 PM"}]}]}`,
		twoDayPlan,
	}}
	gen := NewPlanGenerator(llm, nil, zaptest.NewLogger(t))

	trip, err := gen.GenerateTrip(context.Background(), GenerateTripRequest{Destination: "Paris", StartDate: monday, Days: 2})
	require.NoError(t, err)
	assert.Len(t, trip.Days, 2)
	assert.Equal(t, "moderate", trip.Pace)

	require.Len(t, llm.prompts, 2)
	assert.NotContains(t, llm.prompts[0], "previous reply was unusable")
	assert.Contains(t, llm.prompts[1], "MUST have 2 entries")
}

func TestPlanGenerator_Failures(t *testing.T) {
	t.Run("unusable after retries", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{"not json at all"}}
		_, err := NewPlanGenerator(llm, nil, zaptest.NewLogger(t)).
			GenerateTrip(context.Background(), GenerateTripRequest{Destination: "Paris", StartDate: monday, Days: 1})
		assert.ErrorIs(t, err, utils.ErrUnexpectedBehaviorOfAI)
		assert.Len(t, llm.prompts, 2)
	})

	t.Run("empty plan", func(t *testing.T) {
		llm := &fakeLLM{replies: []string{`{"days": [{"day": 1, "activities": []}]}`}}
		_, err := NewPlanGenerator(llm, nil, zaptest.NewLogger(t)).
			GenerateTrip(context.Background(), GenerateTripRequest{Destination: "Paris", StartDate: monday, Days: 1})
		assert.ErrorIs(t, err, utils.ErrUnexpectedBehaviorOfAI)
	})

	t.Run("provider error is not retried", func(t *testing.T) {
		boom := errors.New("boom")
		llm := &fakeLLM{err: boom}
		_, err := NewPlanGenerator(llm, nil, zaptest.NewLogger(t)).
			GenerateTrip(context.Background(), GenerateTripRequest{Destination: "Paris", StartDate: monday, Days: 1})
		assert.ErrorIs(t, err, boom)
		assert.Len(t, llm.prompts, 1)
	})

	t.Run("invalid request", func(t *testing.T) {
		llm := &fakeLLM{}
		gen := NewPlanGenerator(llm, nil, zaptest.NewLogger(t))

		_, err := gen.GenerateTrip(context.Background(), GenerateTripRequest{StartDate: monday, Days: 1})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)

		_, err = gen.GenerateTrip(context.Background(), GenerateTripRequest{Destination: "Paris", StartDate: monday, Days: 0})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)

		_, err = gen.GenerateTrip(context.Background(), GenerateTripRequest{Destination: "Paris", Days: 1})
		assert.ErrorIs(t, err, utils.ErrInvalidDate)

		assert.Empty(t, llm.prompts)
	})
}
