package content

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
	contenthttp "github.com/Conte777/brewquest/internal/domain/content/delivery/http"
	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/repository/kafka"
	"github.com/Conte777/brewquest/internal/domain/content/repository/postgres"
	"github.com/Conte777/brewquest/internal/domain/content/repository/redis"
	"github.com/Conte777/brewquest/internal/domain/content/usecase/business"
	journeydeps "github.com/Conte777/brewquest/internal/domain/journey/deps"
	"github.com/Conte777/brewquest/internal/infrastructure/http/server"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	"github.com/Conte777/brewquest/internal/infrastructure/scheduler"
)

// Module provides the weekly content scheduler for fx DI
var Module = fx.Module("content",
	fx.Provide(
		postgres.NewRepository,
		redis.NewBeerCache,
		kafka.NewProducer,
		NewStateReaderFx,
		NewSchedulerFx,
		contenthttp.NewHandler,
		contenthttp.NewRouter,
	),
	fx.Invoke(registerRoutes, registerJobs),
)

// NewStateReaderFx narrows the journey tracker to what the scheduler reads
func NewStateReaderFx(tracker journeydeps.Tracker) deps.StateReader {
	return tracker
}

// NewSchedulerFx creates the content scheduler use case for fx DI
func NewSchedulerFx(
	beers deps.BeerRepository,
	states deps.StateReader,
	cache deps.BeerCache,
	events deps.EventPublisher,
	cfg *config.JourneyConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.Scheduler {
	return business.NewScheduler(beers, states, cache, events, cfg, m, logger)
}

func registerRoutes(srv *server.Server, router *contenthttp.Router) {
	router.RegisterRoutes(srv.Router)
}

func registerJobs(s *scheduler.Scheduler, cfg *config.SchedulerConfig, uc deps.Scheduler) error {
	if !cfg.Enabled {
		return nil
	}

	return s.AddJob("publish_due_items", cfg.PublishSpec, func(ctx context.Context) error {
		_, _, err := uc.PublishDueForCurrent(ctx, time.Now())
		return err
	})
}
