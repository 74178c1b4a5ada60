package kafka

import (
	"context"

	"github.com/Conte777/brewquest/internal/domain/content/consts"
	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/dto"
	"github.com/Conte777/brewquest/internal/infrastructure/kafka"
)

// Producer implements deps.EventPublisher on the shared Kafka producer
type Producer struct {
	producer *kafka.Producer
}

func NewProducer(producer *kafka.Producer) deps.EventPublisher {
	return &Producer{producer: producer}
}

func (p *Producer) PublishBeersPublished(ctx context.Context, event dto.BeersPublishedEvent) error {
	return p.producer.Publish(ctx, consts.TopicBeersPublished, event.StateCode, event)
}
