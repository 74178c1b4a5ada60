package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	contentdeps "github.com/Conte777/brewquest/internal/domain/content/deps"
	journeyerrors "github.com/Conte777/brewquest/internal/domain/journey/errors"
	newslettererrors "github.com/Conte777/brewquest/internal/domain/newsletter/errors"
	"github.com/Conte777/brewquest/internal/domain/transition/consts"
	"github.com/Conte777/brewquest/internal/domain/transition/deps"
	"github.com/Conte777/brewquest/internal/domain/transition/dto"
	"github.com/Conte777/brewquest/internal/domain/transition/entities"
	transitionerrors "github.com/Conte777/brewquest/internal/domain/transition/errors"
	"github.com/Conte777/brewquest/internal/infrastructure/kafka"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// CommandHandler runs scheduled operations requested over Kafka
type CommandHandler struct {
	trigger deps.Trigger
	content contentdeps.Scheduler
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewCommandHandler(
	trigger deps.Trigger,
	content contentdeps.Scheduler,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *CommandHandler {
	return &CommandHandler{
		trigger: trigger,
		content: content,
		metrics: m,
		logger:  logger.With().Str("handler", "journey_commands").Logger(),
		now:     time.Now,
	}
}

// HandleMessage implements kafka.MessageHandler. Rejections that a retry cannot fix are marked permanent.
func (h *CommandHandler) HandleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var cmd dto.Command
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		h.metrics.RecordCommand("invalid", false)
		return kafka.Permanent(fmt.Errorf("%w: %v", transitionerrors.ErrInvalidCommand, err))
	}

	err := h.dispatch(ctx, cmd)
	h.metrics.RecordCommand(cmd.Command, err == nil)
	if err != nil {
		h.logger.Error().Err(err).
			Str("command", cmd.Command).
			Int64("offset", msg.Offset).
			Msg("command failed")
		if isPermanent(err) {
			return kafka.Permanent(err)
		}
		return err
	}

	h.logger.Info().Str("command", cmd.Command).Int64("offset", msg.Offset).Msg("command processed")
	return nil
}

func (h *CommandHandler) dispatch(ctx context.Context, cmd dto.Command) error {
	switch cmd.Command {
	case consts.CommandRunWeeklyTransition:
		result, err := h.trigger.RunWeeklyTransition(ctx, entities.Options{Force: cmd.Force})
		if err != nil {
			return err
		}
		h.logger.Info().
			Str("completed_state", result.CompletedState).
			Str("new_state", result.NewState).
			Bool("journey_complete", result.JourneyComplete).
			Msg("weekly transition run from command")
		return nil

	case consts.CommandPublishDueItems:
		asOf := h.now()
		if cmd.AsOf != nil {
			asOf = *cmd.AsOf
		}
		_, _, err := h.content.PublishDueForCurrent(ctx, asOf)
		return err

	case consts.CommandSendWeeklyDigest:
		_, err := h.trigger.RunWeeklyDigest(ctx)
		return err

	default:
		return fmt.Errorf("%w: %q", transitionerrors.ErrUnknownCommand, cmd.Command)
	}
}

func isPermanent(err error) bool {
	return errors.Is(err, transitionerrors.ErrUnknownCommand) ||
		errors.Is(err, transitionerrors.ErrTransitionTooSoon) ||
		errors.Is(err, journeyerrors.ErrInvalidTransition) ||
		errors.Is(err, journeyerrors.ErrStateNotFound) ||
		errors.Is(err, newslettererrors.ErrEmailNotConfigured)
}
