package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wanderlust/internal/models/response_models"
	"wanderlust/internal/models/trip_models"
	"wanderlust/internal/services"
	"wanderlust/pkg/middleware"
	"wanderlust/pkg/utils"
)

type stubItineraries struct {
	userID  string
	request services.GenerateTripRequest
	saved   *trip_models.Trip
	err     error
}

func (s *stubItineraries) Generate(_ context.Context, userID string, req services.GenerateTripRequest) (*response_models.ItineraryResponse, error) {
	s.userID, s.request = userID, req
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.ItineraryResponse{Trip: &trip_models.Trip{ID: "new"}}, nil
}

func (s *stubItineraries) Save(_ context.Context, userID string, trip *trip_models.Trip) (*response_models.ItineraryResponse, error) {
	s.userID, s.saved = userID, trip
	return &response_models.ItineraryResponse{Trip: trip}, s.err
}

func (s *stubItineraries) Get(_ context.Context, userID, id string) (*trip_models.Trip, error) {
	s.userID = userID
	if s.err != nil {
		return nil, s.err
	}
	return &trip_models.Trip{ID: id}, nil
}

func (s *stubItineraries) List(_ context.Context, userID string, page, pageSize int) (*response_models.ItineraryPage, error) {
	s.userID = userID
	return &response_models.ItineraryPage{Page: page, PageSize: pageSize}, s.err
}

func (s *stubItineraries) Delete(_ context.Context, userID, _ string) error {
	s.userID = userID
	return s.err
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	router *gin.Engine
	stub   *stubItineraries
	jwt    *utils.JWTManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stub := &stubItineraries{}
	jwt := utils.NewJWTManager("secret", time.Hour)
	ctrl := NewItineraryController(
		services.NewTimingService(services.DefaultRepairOptions(), zap.NewNop()),
		stub,
		services.DefaultDayPolicyTable(),
	)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	RegisterRoutes(r, jwt, ctrl)
	return &harness{router: r, stub: stub, jwt: jwt}
}

func (h *harness) do(t *testing.T, method, path string, body any, user *uuid.UUID) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := h.jwt.CreateToken(*user, "")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

// museumWeek opens 9 to 5 every day but Monday.
var museumWeek = map[string]any{"weekday_text": []string{
	"Monday: Closed",
	"Tuesday: 9:00 AM - 5:00 PM",
	"Wednesday: 9:00 AM - 5:00 PM",
	"Thursday: 9:00 AM - 5:00 PM",
	"Friday: 9:00 AM - 5:00 PM",
	"Saturday: 9:00 AM - 5:00 PM",
	"Sunday: 9:00 AM - 5:00 PM",
}}

func tripBody() map[string]any {
	return map[string]any{
		"destination": "Paris",
		"days": []map[string]any{{
			"date": "2024-01-02",
			"activities": []map[string]any{
				{"id": "louvre", "name": "Louvre", "time": "4:00 PM - 6:00 PM", "hours": museumWeek},
				{"id": "dinner", "name": "Dinner", "time": "6:15 PM - 7:15 PM"},
			},
		}},
	}
}

func TestValidateTrip(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(t, http.MethodPost, "/itineraries/validate", tripBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, env.TraceID)

	var validation trip_models.TripValidation
	require.NoError(t, json.Unmarshal(env.Data, &validation))
	assert.True(t, validation.HasConflicts)
	require.Len(t, validation.Conflicts, 1)
	assert.Equal(t, "louvre", validation.Conflicts[0].ActivityID)
	assert.Equal(t, "3:00 PM - 5:00 PM", validation.Conflicts[0].Verdict.SuggestedTime)
}

func TestAutoFixTrip(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(t, http.MethodPost, "/itineraries/auto-fix", tripBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out response_models.AutoFixResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.Report.Resolved)
	acts := out.Trip.Days[0].Activities
	assert.Equal(t, "3:00 PM - 5:00 PM", acts[0].Time)
	assert.Equal(t, "5:15 PM - 6:15 PM", acts[1].Time)
	assert.Equal(t, "15 minutes", acts[1].TravelTime)
}

func TestAutoFixDay(t *testing.T) {
	h := newHarness(t)
	body := map[string]any{
		"date": "2024-01-01",
		"activities": []map[string]any{
			{"name": "Louvre", "time": "10:00 AM - 11:00 AM", "hours": museumWeek},
		},
	}
	w, env := h.do(t, http.MethodPost, "/itineraries/auto-fix-day", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out response_models.AutoFixDayResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Empty(t, out.Activities)
	require.Len(t, out.Report.Removed, 1)
	assert.NotEmpty(t, out.Report.Removed[0].ID, "ids are assigned to anonymous activities")
}

func TestBadRequests(t *testing.T) {
	h := newHarness(t)

	body := tripBody()
	body["days"].([]map[string]any)[0]["date"] = "01/02/2024"
	w, env := h.do(t, http.MethodPost, "/itineraries/validate", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "invalid date")

	w, _ = h.do(t, http.MethodPost, "/itineraries/validate", map[string]any{"days": []any{}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodGet, "/itineraries/day-policy?index=3&total=2", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodGet, "/itineraries/day-policy?index=0&total=2&pace=frantic", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDayPolicy(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(t, http.MethodGet, "/itineraries/day-policy?index=1&total=3&pace=packed", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var policy services.DayPolicy
	require.NoError(t, json.Unmarshal(env.Data, &policy))
	assert.Equal(t, services.DayTypeFull, policy.Type)
	assert.Equal(t, 6, policy.MinActivities)
	assert.Equal(t, 7, policy.MaxActivities)
	assert.Equal(t, "9:00 AM - 9:00 PM", policy.Window())
}

func TestAuthenticatedRoutes(t *testing.T) {
	h := newHarness(t)
	user := uuid.New()

	w, _ := h.do(t, http.MethodGet, "/itineraries", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := h.do(t, http.MethodPost, "/itineraries/generate", map[string]any{
		"destination": "Paris", "start_date": "2024-01-02", "days": 3, "pace": "Relaxed",
	}, &user)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Equal(t, user.String(), h.stub.userID)
	assert.Equal(t, services.PaceRelaxed, h.stub.request.Pace)
	assert.Equal(t, time.Tuesday, h.stub.request.StartDate.Weekday())

	w, _ = h.do(t, http.MethodPost, "/itineraries", tripBody(), &user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paris", h.stub.saved.Destination)

	w, env = h.do(t, http.MethodGet, "/itineraries?page=2&pageSize=5", nil, &user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":null,"page":2,"page_size":5,"total":0}`, string(env.Data))

	h.stub.err = utils.ErrItineraryNotFound
	w, _ = h.do(t, http.MethodGet, "/itineraries/"+uuid.NewString(), nil, &user)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = h.do(t, http.MethodDelete, "/itineraries/"+uuid.NewString(), nil, &user)
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.stub.err = utils.ErrUnexpectedBehaviorOfAI
	w, _ = h.do(t, http.MethodPost, "/itineraries/generate", map[string]any{
		"destination": "Paris", "start_date": "2024-01-02", "days": 1,
	}, &user)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)
}
