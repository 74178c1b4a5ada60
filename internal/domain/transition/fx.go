package transition

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
	contentdeps "github.com/Conte777/brewquest/internal/domain/content/deps"
	journeydeps "github.com/Conte777/brewquest/internal/domain/journey/deps"
	newsletterdeps "github.com/Conte777/brewquest/internal/domain/newsletter/deps"
	"github.com/Conte777/brewquest/internal/domain/transition/consts"
	transitionhttp "github.com/Conte777/brewquest/internal/domain/transition/delivery/http"
	transitionkafka "github.com/Conte777/brewquest/internal/domain/transition/delivery/kafka"
	"github.com/Conte777/brewquest/internal/domain/transition/deps"
	"github.com/Conte777/brewquest/internal/domain/transition/entities"
	"github.com/Conte777/brewquest/internal/domain/transition/repository/kafka"
	"github.com/Conte777/brewquest/internal/domain/transition/usecase/business"
	"github.com/Conte777/brewquest/internal/infrastructure/http/server"
	kafkaInfra "github.com/Conte777/brewquest/internal/infrastructure/kafka"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	"github.com/Conte777/brewquest/internal/infrastructure/scheduler"
)

// Module provides the weekly transition trigger for fx DI
var Module = fx.Module("transition",
	fx.Provide(
		kafka.NewProducer,
		NewTriggerFx,
		transitionhttp.NewHandler,
		transitionhttp.NewRouter,
		transitionkafka.NewCommandHandler,
	),
	fx.Invoke(registerRoutes, registerJobs, registerKafkaConsumer),
)

// NewTriggerFx creates the transition trigger use case for fx DI
func NewTriggerFx(
	tracker journeydeps.Tracker,
	content contentdeps.Scheduler,
	dispatcher newsletterdeps.Dispatcher,
	events deps.EventPublisher,
	cfg *config.JourneyConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.Trigger {
	return business.NewTrigger(tracker, content, dispatcher, events, cfg, m, logger)
}

func registerRoutes(srv *server.Server, router *transitionhttp.Router) {
	router.RegisterRoutes(srv.Router)
}

func registerJobs(s *scheduler.Scheduler, cfg *config.SchedulerConfig, trigger deps.Trigger) error {
	if !cfg.Enabled {
		return nil
	}

	if err := s.AddJob(consts.CommandRunWeeklyTransition, cfg.TransitionSpec, func(ctx context.Context) error {
		_, err := trigger.RunWeeklyTransition(ctx, entities.Options{})
		return err
	}); err != nil {
		return err
	}

	return s.AddJob(consts.CommandSendWeeklyDigest, cfg.DigestSpec, func(ctx context.Context) error {
		_, err := trigger.RunWeeklyDigest(ctx)
		return err
	})
}

func registerKafkaConsumer(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	handler *transitionkafka.CommandHandler,
	log zerolog.Logger,
) error {
	if !cfg.Enabled {
		log.Info().Msg("kafka disabled, command consumer not started")
		return nil
	}

	consumer, err := kafkaInfra.NewConsumer(
		cfg.Brokers,
		cfg.GroupID,
		[]string{cfg.CommandsTopic},
		handler,
		log,
	)
	if err != nil {
		return err
	}

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			consumer.Start(consumerCtx)
			log.Info().Msg("kafka consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping kafka consumer...")
			cancelConsumer()
			return consumer.Close()
		},
	})

	return nil
}
