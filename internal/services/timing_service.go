package services

import (
	"time"

	"go.uber.org/zap"

	"wanderlust/internal/models/trip_models"
	"wanderlust/internal/observability"
)

// TimingServiceInterface checks itineraries against opening hours and repairs them.
// Nothing here does I/O: hours must already be attached to the activities.
type TimingServiceInterface interface {
	ValidateTrip(trip *trip_models.Trip) trip_models.TripValidation
	AutoFixTrip(trip *trip_models.Trip) trip_models.RepairReport
	AutoFixDay(activities []trip_models.Activity, date time.Time) ([]trip_models.Activity, trip_models.RepairReport)
}

type TimingService struct {
	resolver *AutoFixResolver
	logger   *zap.Logger
}

func NewTimingService(opts RepairOptions, logger *zap.Logger) TimingServiceInterface {
	return &TimingService{
		resolver: NewAutoFixResolver(opts, logger.Named("auto_fix")),
		logger:   logger,
	}
}

func (s *TimingService) ValidateTrip(trip *trip_models.Trip) trip_models.TripValidation {
	scan := ScanTrip(trip)
	observability.RecordValidation(len(scan.Conflicts))
	return trip_models.TripValidation{
		HasConflicts: len(scan.Conflicts) > 0,
		Conflicts:    scan.Conflicts,
		Malformed:    scan.Malformed,
	}
}

func (s *TimingService) AutoFixTrip(trip *trip_models.Trip) trip_models.RepairReport {
	report := s.resolver.FixTrip(trip)
	observability.RecordRepair(report)
	s.logger.Info("trip auto-fixed",
		zap.String("trip_id", trip.ID),
		zap.Int("passes", report.Passes),
		zap.Int("changes", len(report.Changes)),
		zap.Int("removed", len(report.Removed)),
		zap.Bool("resolved", report.Resolved))
	return report
}

func (s *TimingService) AutoFixDay(activities []trip_models.Activity, date time.Time) ([]trip_models.Activity, trip_models.RepairReport) {
	fixed, report := s.resolver.FixDay(activities, date)
	observability.RecordRepair(report)
	return fixed, report
}
