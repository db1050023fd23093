package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wanderlust/internal/models/db_models"
	"wanderlust/internal/models/response_models"
	"wanderlust/internal/models/trip_models"
	"wanderlust/internal/repositories"
	"wanderlust/pkg/utils"
)

const maxPageSize = 100

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, userID string, req GenerateTripRequest) (*response_models.ItineraryResponse, error)
	Save(ctx context.Context, userID string, trip *trip_models.Trip) (*response_models.ItineraryResponse, error)
	Get(ctx context.Context, userID, itineraryID string) (*trip_models.Trip, error)
	List(ctx context.Context, userID string, page, pageSize int) (*response_models.ItineraryPage, error)
	Delete(ctx context.Context, userID, itineraryID string) error
}

type ItineraryService struct {
	planner    PlanGeneratorInterface
	enrichment EnrichmentServiceInterface
	timing     TimingServiceInterface
	repo       repositories.ItineraryRepository
	logger     *zap.Logger
}

// NewItineraryService wires the pipeline. planner and enrichment may be nil when no
// language model or places key is configured; Generate then fails and Save skips lookups.
func NewItineraryService(
	planner PlanGeneratorInterface,
	enrichment EnrichmentServiceInterface,
	timing TimingServiceInterface,
	repo repositories.ItineraryRepository,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		planner:    planner,
		enrichment: enrichment,
		timing:     timing,
		repo:       repo,
		logger:     logger,
	}
}

func (s *ItineraryService) Generate(ctx context.Context, userID string, req GenerateTripRequest) (*response_models.ItineraryResponse, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if s.planner == nil {
		return nil, fmt.Errorf("%w: no language model configured", utils.ErrUnexpectedBehaviorOfAI)
	}

	trip, err := s.planner.GenerateTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, owner, trip)
}

func (s *ItineraryService) Save(ctx context.Context, userID string, trip *trip_models.Trip) (*response_models.ItineraryResponse, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if trip == nil || len(trip.Days) == 0 {
		return nil, fmt.Errorf("%w: trip has no days", utils.ErrInvalidInput)
	}
	return s.finalize(ctx, owner, trip)
}

// finalize attaches hours, repairs the timing and stores the result.
func (s *ItineraryService) finalize(ctx context.Context, owner uuid.UUID, trip *trip_models.Trip) (*response_models.ItineraryResponse, error) {
	out := &response_models.ItineraryResponse{Trip: trip}

	if s.enrichment != nil {
		summary, err := s.enrichment.AttachHours(ctx, trip)
		if err != nil {
			return nil, err
		}
		out.Enrichment = &summary
	}

	out.Repair = s.timing.AutoFixTrip(trip)

	id, err := s.repo.Save(ctx, db_models.NewItinerary(owner, trip, out.Repair))
	if err != nil {
		s.logger.Error("save itinerary", zap.String("user_id", owner.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	trip.ID = id.String()
	return out, nil
}

func (s *ItineraryService) Get(ctx context.Context, userID, itineraryID string) (*trip_models.Trip, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(itineraryID)
	if err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if it == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return it.ToTrip(), nil
}

func (s *ItineraryService) List(ctx context.Context, userID string, page, pageSize int) (*response_models.ItineraryPage, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	items, total, err := s.repo.ListByUser(ctx, owner, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := &response_models.ItineraryPage{
		Items:    make([]response_models.ItinerarySummary, 0, len(items)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for _, it := range items {
		out.Items = append(out.Items, response_models.ItinerarySummary{
			ID:          it.ID.String(),
			Destination: it.Destination,
			Pace:        it.Pace,
			StartDate:   utils.FormatDate(it.StartDate),
			CreatedAt:   it.CreatedAt,
			LastRepair:  it.LastRepair.Data(),
		})
	}
	return out, nil
}

func (s *ItineraryService) Delete(ctx context.Context, userID, itineraryID string) error {
	owner, err := parseID(userID)
	if err != nil {
		return err
	}
	id, err := parseID(itineraryID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id, owner)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrItineraryNotFound
	}
	return nil
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad id %q", utils.ErrInvalidInput, s)
	}
	return id, nil
}
