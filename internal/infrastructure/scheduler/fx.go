package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
)

// Module provides the in-process cron scheduler for fx DI.
// Jobs are added by domain modules; nothing runs unless SCHEDULER_ENABLED is set.
var Module = fx.Module("scheduler",
	fx.Provide(NewSchedulerFx),
)

// NewSchedulerFx creates the scheduler and ties it to the app lifecycle
func NewSchedulerFx(
	lc fx.Lifecycle,
	cfg *config.SchedulerConfig,
	journeyCfg *config.JourneyConfig,
	logger zerolog.Logger,
) *Scheduler {
	s := New(journeyCfg.Location, 10*time.Minute, logger.With().Str("component", "scheduler").Logger())

	if !cfg.Enabled {
		return s
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			logger.Info().Int("jobs", s.Len()).Msg("scheduler started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})

	return s
}
