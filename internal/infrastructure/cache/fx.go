package cache

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
)

// Module provides the Redis cache for fx DI
var Module = fx.Module("cache",
	fx.Provide(NewCacheFx),
)

// NewCacheFx creates the cache and closes it on shutdown
func NewCacheFx(lc fx.Lifecycle, cfg *config.RedisConfig, logger zerolog.Logger) (*Cache, error) {
	c, err := NewCache(cfg, logger.With().Str("component", "cache").Logger())
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})

	return c, nil
}
