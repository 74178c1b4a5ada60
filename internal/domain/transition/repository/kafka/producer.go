package kafka

import (
	"context"

	"github.com/Conte777/brewquest/internal/domain/transition/consts"
	"github.com/Conte777/brewquest/internal/domain/transition/deps"
	"github.com/Conte777/brewquest/internal/domain/transition/dto"
	"github.com/Conte777/brewquest/internal/infrastructure/kafka"
)

// Producer implements deps.EventPublisher on the shared Kafka producer
type Producer struct {
	producer *kafka.Producer
}

func NewProducer(producer *kafka.Producer) deps.EventPublisher {
	return &Producer{producer: producer}
}

func (p *Producer) PublishStateTransitioned(ctx context.Context, event dto.StateTransitionedEvent) error {
	return p.producer.Publish(ctx, consts.TopicStateTransitioned, event.EventID, event)
}
