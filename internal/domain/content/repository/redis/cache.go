package redis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/entities"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	"github.com/Conte777/brewquest/internal/infrastructure/cache"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// visibleStatuses are the only statuses whose beers get cached
var visibleStatuses = []journeyentities.Status{journeyentities.StatusCurrent, journeyentities.StatusCompleted}

type BeerCache struct {
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewBeerCache(c *cache.Cache, m *metrics.Metrics, logger zerolog.Logger) deps.BeerCache {
	return &BeerCache{
		cache:   c,
		metrics: m,
		logger:  logger.With().Str("component", "beer_cache").Logger(),
	}
}

func generationKey(code string) string {
	return fmt.Sprintf("beers:%s:gen", code)
}

func key(code string, generation int64, status journeyentities.Status) string {
	return fmt.Sprintf("beers:%s:%d:%s", code, generation, status)
}

// Get reports a miss on any cache error. A failed generation read returns -1 so Set skips the write.
func (b *BeerCache) Get(ctx context.Context, code string, status journeyentities.Status) ([]entities.Beer, int64, bool) {
	if !b.cache.Enabled() {
		return nil, 0, false
	}

	generation, err := b.cache.GetInt(ctx, generationKey(code))
	if err != nil {
		b.logger.Warn().Err(err).Str("state", code).Msg("beer cache generation read failed")
		b.metrics.RecordCacheLookup(false)
		return nil, -1, false
	}

	var beers []entities.Beer
	found, err := b.cache.GetJSON(ctx, key(code, generation, status), &beers)
	if err != nil {
		b.logger.Warn().Err(err).Str("state", code).Msg("beer cache read failed")
		found = false
	}
	b.metrics.RecordCacheLookup(found)
	return beers, generation, found
}

func (b *BeerCache) Set(ctx context.Context, code string, status journeyentities.Status, generation int64, beers []entities.Beer) {
	if generation < 0 {
		return
	}
	if err := b.cache.SetJSON(ctx, key(code, generation, status), beers); err != nil {
		b.logger.Warn().Err(err).Str("state", code).Msg("beer cache write failed")
	}
}

// Invalidate bumps each state's generation and drops the entries of the retired one
func (b *BeerCache) Invalidate(ctx context.Context, codes ...string) {
	if !b.cache.Enabled() {
		return
	}

	for _, code := range codes {
		generation, err := b.cache.Incr(ctx, generationKey(code))
		if err != nil {
			b.logger.Warn().Err(err).Str("state", code).Msg("beer cache invalidation failed")
			continue
		}

		keys := make([]string, 0, len(visibleStatuses))
		for _, status := range visibleStatuses {
			keys = append(keys, key(code, generation-1, status))
		}
		if err := b.cache.Delete(ctx, keys...); err != nil {
			b.logger.Debug().Err(err).Str("state", code).Msg("retired beer cache entries not deleted")
		}
	}
}
