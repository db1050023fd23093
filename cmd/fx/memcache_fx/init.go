package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderlust/internal/config"
	"wanderlust/internal/infra"
	mem "wanderlust/pkg/memcache"
)

// localTTL bounds how stale a process-local entry can be when redis is shared.
const localTTL = 10 * time.Minute

var Module = fx.Provide(provideHoursCache)

func provideHoursCache(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (mem.HoursCache, error) {
	local := mem.NewInMemoryHoursCache()

	client, err := infra.InitRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("hours cache: in-process only")
		return local, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	logger.Info("hours cache: redis", zap.String("addr", cfg.RedisAddr))
	return mem.NewTieredHoursCache(local, mem.NewRedisHoursCache(client), localTTL), nil
}
