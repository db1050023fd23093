package response_models

import (
	"wanderlust/internal/models/db_models"
	"wanderlust/internal/models/trip_models"
)

type AutoFixResponse struct {
	Trip   *trip_models.Trip        `json:"trip"`
	Report trip_models.RepairReport `json:"report"`
}

type AutoFixDayResponse struct {
	Date       string                   `json:"date"`
	Activities []trip_models.Activity   `json:"activities"`
	Report     trip_models.RepairReport `json:"report"`
}

type ItineraryResponse struct {
	Trip       *trip_models.Trip              `json:"trip"`
	Repair     trip_models.RepairReport       `json:"repair"`
	Enrichment *trip_models.EnrichmentSummary `json:"enrichment,omitempty"`
}

type ItinerarySummary struct {
	ID          string                  `json:"id"`
	Destination string                  `json:"destination"`
	Pace        string                  `json:"pace"`
	StartDate   string                  `json:"start_date"`
	CreatedAt   int64                   `json:"created_at"`
	LastRepair  db_models.RepairSummary `json:"last_repair"`
}

type ItineraryPage struct {
	Items    []ItinerarySummary `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    int64              `json:"total"`
}
