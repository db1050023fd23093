package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wanderlust/internal/models/trip_models"
)

type EnrichmentServiceInterface interface {
	AttachHours(ctx context.Context, trip *trip_models.Trip) (trip_models.EnrichmentSummary, error)
}

type EnrichmentService struct {
	places      PlacesClientInterface
	concurrency int
	logger      *zap.Logger
}

func NewEnrichmentService(places PlacesClientInterface, concurrency int, logger *zap.Logger) EnrichmentServiceInterface {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &EnrichmentService{places: places, concurrency: concurrency, logger: logger}
}

// AttachHours fills in the hours snapshot of every activity that lacks one. Lookup
// failures are logged and counted, never returned; only context cancellation is.
func (e *EnrichmentService) AttachHours(ctx context.Context, trip *trip_models.Trip) (trip_models.EnrichmentSummary, error) {
	var (
		mu      sync.Mutex
		summary trip_models.EnrichmentSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for d := range trip.Days {
		for i := range trip.Days[d].Activities {
			act := &trip.Days[d].Activities[i]
			if !act.Hours.IsEmpty() || act.Name == "" {
				continue
			}

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				place, err := e.places.LookupHours(gctx, act.Name, act.Address)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					summary.Failed++
					e.logger.Debug("hours lookup failed",
						zap.String("activity", act.Name), zap.Error(err))
				case place.Hours == nil:
					summary.Missing++
				default:
					act.Hours = place.Hours
					summary.Attached++
				}
				if err == nil && act.Type == "" && len(place.Types) > 0 {
					act.Type = place.Types[0]
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	e.logger.Info("hours attached",
		zap.String("trip_id", trip.ID),
		zap.Int("attached", summary.Attached),
		zap.Int("missing", summary.Missing),
		zap.Int("failed", summary.Failed))
	return summary, nil
}
