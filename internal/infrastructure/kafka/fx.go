package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// Module provides the Kafka producer for fx DI. Consumers are registered by the domains that own their handlers.
var Module = fx.Module("kafka",
	fx.Provide(NewProducerFx),
)

// NewProducerFx creates the producer and closes it on shutdown
func NewProducerFx(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Producer {
	producer := NewProducer(cfg, logger.With().Str("component", "kafka_producer").Logger(), m)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("closing kafka producer")
			return producer.Close()
		},
	})

	return producer
}
