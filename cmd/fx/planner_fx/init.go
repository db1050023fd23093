package planner_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderlust/internal/config"
	"wanderlust/internal/services"
	"wanderlust/pkg/utils"
)

var Module = fx.Provide(provideLLMClient, providePlanGenerator)

// provideLLMClient yields nil when the chosen provider has no key, so the rest of the
// API still starts.
func provideLLMClient(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.LLMClientInterface, error) {
	apiKey, model := cfg.GeminiAPIKey, cfg.GeminiModel
	if cfg.LLMProvider == "openai" {
		apiKey, model = cfg.OpenAIAPIKey, cfg.OpenAIModel
	}
	if apiKey == "" {
		logger.Warn("no language model key, itinerary generation disabled", zap.String("provider", cfg.LLMProvider))
		return nil, nil
	}

	client, err := utils.NewLLMClient(cfg.LLMProvider, apiKey, model)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return client.Close() },
	})
	logger.Info("language model ready", zap.String("provider", cfg.LLMProvider), zap.String("model", model))
	return client, nil
}

func providePlanGenerator(llm utils.LLMClientInterface, policies *services.DayPolicyTable, logger *zap.Logger) services.PlanGeneratorInterface {
	if llm == nil {
		return nil
	}
	return services.NewPlanGenerator(llm, policies, logger.Named("planner"))
}
