package itinerary_fx

import (
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderlust/internal/config"
	"wanderlust/internal/repositories"
	"wanderlust/internal/services"
	"wanderlust/pkg/utils"
)

var Module = fx.Provide(provideItineraryService, provideJWTManager)

func provideItineraryService(
	planner services.PlanGeneratorInterface,
	enrichment services.EnrichmentServiceInterface,
	timing services.TimingServiceInterface,
	repo repositories.ItineraryRepository,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(planner, enrichment, timing, repo, logger.Named("itinerary"))
}

func provideJWTManager(cfg config.Config) (*utils.JWTManager, error) {
	if cfg.JWTSecret == "" && cfg.IsProduction() {
		return nil, errors.New("JWT_SECRET is required in production")
	}
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL), nil
}
