package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wanderlust/internal/models/request_models"
	"wanderlust/internal/models/response_models"
	"wanderlust/internal/services"
	"wanderlust/pkg/utils"
)

type ItineraryController struct {
	timing      services.TimingServiceInterface
	itineraries services.ItineraryServiceInterface
	policies    *services.DayPolicyTable
}

func NewItineraryController(
	timing services.TimingServiceInterface,
	itineraries services.ItineraryServiceInterface,
	policies *services.DayPolicyTable,
) *ItineraryController {
	return &ItineraryController{timing: timing, itineraries: itineraries, policies: policies}
}

// ValidateTrip godoc
// @Summary Check every activity against its opening hours
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Trip"
// @Success 200 {object} trip_models.TripValidation
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/validate [post]
func (ic *ItineraryController) ValidateTrip(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	trip, err := req.ToTrip()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, ic.timing.ValidateTrip(trip), "Trip validated")
}

// AutoFixTrip godoc
// @Summary Retime or drop activities that fall outside opening hours
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Trip"
// @Success 200 {object} response_models.AutoFixResponse
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/auto-fix [post]
func (ic *ItineraryController) AutoFixTrip(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	trip, err := req.ToTrip()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	report := ic.timing.AutoFixTrip(trip)
	utils.RespondSuccess(c, response_models.AutoFixResponse{Trip: trip, Report: report}, "Trip auto-fixed")
}

// AutoFixDay godoc
// @Summary Auto-fix a single day's schedule
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.AutoFixDayRequest true "Day"
// @Success 200 {object} response_models.AutoFixDayResponse
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/auto-fix-day [post]
func (ic *ItineraryController) AutoFixDay(c *gin.Context) {
	var req request_models.AutoFixDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	fixed, report := ic.timing.AutoFixDay(request_models.ToActivities(req.Activities), date)
	utils.RespondSuccess(c, response_models.AutoFixDayResponse{
		Date:       utils.FormatDate(date),
		Activities: fixed,
		Report:     report,
	}, "Day auto-fixed")
}

// GetDayPolicy godoc
// @Summary Activity band and time window for a day of a trip
// @Tags Itinerary
// @Produce json
// @Param index query int true "Zero-based day index"
// @Param total query int true "Number of days in the trip"
// @Param pace query string false "relaxed, moderate or packed"
// @Success 200 {object} services.DayPolicy
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/day-policy [get]
func (ic *ItineraryController) GetDayPolicy(c *gin.Context) {
	index, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day index")
		return
	}
	total, err := strconv.Atoi(c.Query("total"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day total")
		return
	}
	pace, err := services.ParsePace(c.Query("pace"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	policy, err := ic.policies.PolicyFor(index, total, pace)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, policy, "Day policy fetched")
}

// GenerateItinerary godoc
// @Summary Generate, enrich, repair and store a new itinerary
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Preferences"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/generate [post]
func (ic *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	pace, err := services.ParsePace(req.Pace)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := ic.itineraries.Generate(c.Request.Context(), c.GetString("user_id"), services.GenerateTripRequest{
		Destination: req.Destination,
		StartDate:   start,
		Days:        req.Days,
		Pace:        pace,
		Interests:   req.Interests,
		Notes:       req.Notes,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Itinerary generated")
}

// SaveItinerary godoc
// @Summary Repair and store a trip
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Trip"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries [post]
func (ic *ItineraryController) SaveItinerary(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	trip, err := req.ToTrip()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := ic.itineraries.Save(c.Request.Context(), c.GetString("user_id"), trip)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Itinerary saved")
}

// GetItinerary godoc
// @Summary Fetch a stored itinerary
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} trip_models.Trip
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{id} [get]
func (ic *ItineraryController) GetItinerary(c *gin.Context) {
	trip, err := ic.itineraries.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Itinerary fetched")
}

// ListItineraries godoc
// @Summary List the caller's itineraries
// @Tags Itinerary
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} response_models.ItineraryPage
// @Security BearerAuth
// @Router /itineraries [get]
func (ic *ItineraryController) ListItineraries(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	out, err := ic.itineraries.List(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Itineraries fetched")
}

// DeleteItinerary godoc
// @Summary Delete a stored itinerary
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{id} [delete]
func (ic *ItineraryController) DeleteItinerary(c *gin.Context) {
	if err := ic.itineraries.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Itinerary deleted")
}
