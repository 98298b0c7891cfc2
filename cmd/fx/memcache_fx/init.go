package memcache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wayfarer/internal/config"
	"wayfarer/internal/infra"
	mem "wayfarer/pkg/memcache"
)

var Module = fx.Provide(
	provideRedis,
	provideStateStore,
	provideJSONCache)

// sharedRedis is empty when REDIS_ADDR is not set.
type sharedRedis struct {
	client *redis.Client
}

func provideRedis(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (sharedRedis, error) {
	client, err := infra.InitRedis(cfg)
	if err != nil {
		return sharedRedis{}, err
	}
	if client == nil {
		logger.Info("REDIS_ADDR not set, keeping caches and sign-in states in memory")
		return sharedRedis{}, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	logger.Info("using redis", zap.String("addr", cfg.Redis.Addr))
	return sharedRedis{client: client}, nil
}

func provideStateStore(r sharedRedis) mem.StateStore {
	if r.client == nil {
		return mem.NewOAuthStates()
	}
	return mem.NewRedisStates(r.client, "wayfarer:oauth_state:")
}

func provideJSONCache(r sharedRedis) mem.JSONCache {
	if r.client == nil {
		return mem.NewMemoryCache()
	}
	return mem.NewRedisCache(r.client, "wayfarer:")
}
