package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// Producer writes JSON events to Kafka. A producer built with Kafka disabled drops events.
type Producer struct {
	writer  *kafka.Writer
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger, m *metrics.Metrics) *Producer {
	p := &Producer{
		logger:  logger,
		metrics: m,
	}

	if !cfg.Enabled {
		logger.Info().Msg("kafka disabled, events will not be published")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Msg("kafka producer initialized")

	return p
}

// Enabled reports whether events are actually written
func (p *Producer) Enabled() bool {
	return p.writer != nil
}

// Publish marshals payload as JSON and writes it to topic
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	if p.writer == nil {
		p.logger.Debug().Str("topic", topic).Str("key", key).Msg("kafka disabled, event dropped")
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		p.metrics.RecordKafkaError(topic)
		p.logger.Error().Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("failed to send kafka message")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.metrics.RecordKafkaMessage(topic)
	p.logger.Debug().
		Str("topic", topic).
		Str("key", key).
		Msg("kafka message sent")

	return nil
}

// Close flushes and closes the writer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
