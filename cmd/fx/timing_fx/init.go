package timing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderlust/internal/config"
	"wanderlust/internal/services"
	mem "wanderlust/pkg/memcache"
)

var Module = fx.Provide(
	provideTimingService,
	provideDayPolicies,
	providePlacesClient,
	provideEnrichmentService,
)

func provideTimingService(cfg config.Config, logger *zap.Logger) services.TimingServiceInterface {
	return services.NewTimingService(services.RepairOptions{
		TravelBuffer: cfg.TravelBuffer,
		MaxPasses:    cfg.MaxRepairPasses,
	}, logger.Named("timing"))
}

func provideDayPolicies(cfg config.Config) (*services.DayPolicyTable, error) {
	return services.LoadDayPolicyTable(cfg.DayPolicyFile)
}

// providePlacesClient yields nil without an API key; enrichment is then skipped.
func providePlacesClient(cfg config.Config, cache mem.HoursCache, logger *zap.Logger) services.PlacesClientInterface {
	if cfg.PlacesAPIKey == "" {
		logger.Warn("GOOGLE_PLACES_API_KEY not set, opening hours will not be looked up")
		return nil
	}
	return services.NewGooglePlacesClient(cfg.PlacesAPIKey, cfg.PlacesBaseURL, cache, cfg.HoursCacheTTL, logger.Named("places"))
}

func provideEnrichmentService(cfg config.Config, places services.PlacesClientInterface, logger *zap.Logger) services.EnrichmentServiceInterface {
	if places == nil {
		return nil
	}
	return services.NewEnrichmentService(places, cfg.EnrichConcurrency, logger.Named("enrichment"))
}
