package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

const (
	maxRetries   = 3
	retryBackoff = 500 * time.Millisecond
)

// MessageHandler processes a single consumed message
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error
}

// Consumer runs a sarama consumer group and hands messages to a MessageHandler
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	handler       MessageHandler
	logger        zerolog.Logger
	wg            sync.WaitGroup
	closeOnce     sync.Once
	closeErr      error
}

// NewConsumer creates a new consumer group member
func NewConsumer(
	brokers []string,
	groupID string,
	topics []string,
	handler MessageHandler,
	logger zerolog.Logger,
) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers specified")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler is required")
	}

	config := sarama.NewConfig()
	config.Version = sarama.V3_6_0_0
	config.ClientID = groupID
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Offsets.AutoCommit.Enable = true
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	// Commands can run a full weekly transition including email fan-out.
	config.Consumer.MaxProcessingTime = 5 * time.Minute

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	logger.Info().
		Strs("brokers", brokers).
		Strs("topics", topics).
		Str("group_id", groupID).
		Msg("kafka consumer initialized")

	return &Consumer{
		consumerGroup: consumerGroup,
		topics:        topics,
		handler:       handler,
		logger:        logger,
	}, nil
}

// Start consumes in background goroutines until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(2)

	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-c.consumerGroup.Errors():
				if !ok {
					return
				}
				c.logger.Error().Err(err).Msg("consumer group error")
			}
		}
	}()

	go func() {
		defer c.wg.Done()
		handler := &consumerGroupHandler{handler: c.handler, logger: c.logger}
		for {
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				c.logger.Error().Err(err).Msg("error from consumer group consume")
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// Close stops the consumer group and waits for background goroutines
func (c *Consumer) Close() error {
	c.closeOnce.Do(func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.closeErr = fmt.Errorf("failed to close consumer group: %w", err)
		}
		c.wg.Wait()
		c.logger.Info().Msg("kafka consumer closed")
	})
	return c.closeErr
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	handler MessageHandler
	logger  zerolog.Logger
}

func (h *consumerGroupHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.logger.Info().
		Int32("generation_id", session.GenerationID()).
		Str("member_id", session.MemberID()).
		Msg("consumer group session started")
	return nil
}

func (h *consumerGroupHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	h.logger.Info().
		Int32("generation_id", session.GenerationID()).
		Msg("consumer group session ended")
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			if err := processWithRetry(ctx, h.handler, msg); err != nil {
				// Commands are best effort: a poisoned message is logged and skipped.
				h.logger.Error().
					Err(err).
					Str("topic", msg.Topic).
					Int32("partition", msg.Partition).
					Int64("offset", msg.Offset).
					Msg("failed to process message, skipping")
			}

			session.MarkMessage(msg, "")
		}
	}
}

// processWithRetry retries transient handler failures. Errors wrapped with Permanent are not retried.
func processWithRetry(ctx context.Context, handler MessageHandler, msg *sarama.ConsumerMessage) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = handler.HandleMessage(ctx, msg)
		if err == nil || IsPermanent(err) {
			return err
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
