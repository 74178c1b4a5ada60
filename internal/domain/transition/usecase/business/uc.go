package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
	contentdeps "github.com/Conte777/brewquest/internal/domain/content/deps"
	journeydeps "github.com/Conte777/brewquest/internal/domain/journey/deps"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	newsletterdeps "github.com/Conte777/brewquest/internal/domain/newsletter/deps"
	newsletterentities "github.com/Conte777/brewquest/internal/domain/newsletter/entities"
	"github.com/Conte777/brewquest/internal/domain/transition/deps"
	"github.com/Conte777/brewquest/internal/domain/transition/dto"
	"github.com/Conte777/brewquest/internal/domain/transition/entities"
	transitionerrors "github.com/Conte777/brewquest/internal/domain/transition/errors"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

type Trigger struct {
	tracker    journeydeps.Tracker
	content    contentdeps.Scheduler
	dispatcher newsletterdeps.Dispatcher
	events     deps.EventPublisher
	cfg        *config.JourneyConfig
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

func NewTrigger(
	tracker journeydeps.Tracker,
	content contentdeps.Scheduler,
	dispatcher newsletterdeps.Dispatcher,
	events deps.EventPublisher,
	cfg *config.JourneyConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Trigger {
	return &Trigger{
		tracker:    tracker,
		content:    content,
		dispatcher: dispatcher,
		events:     events,
		cfg:        cfg,
		metrics:    m,
		logger:     logger.With().Str("component", "transition_trigger").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (t *Trigger) RunWeeklyTransition(ctx context.Context, opts entities.Options) (*entities.Result, error) {
	start := time.Now()

	result, err := t.run(ctx, opts)
	if err != nil {
		t.metrics.RecordTransitionError(errorCode(err))
		t.logger.Error().Err(err).Bool("force", opts.Force).Msg("weekly transition failed")
		return nil, err
	}

	t.metrics.RecordTransition(result.Outcome(), time.Since(start).Seconds())
	t.logger.Info().
		Bool("transitioned", result.Transitioned).
		Str("completed_state", result.CompletedState).
		Str("new_state", result.NewState).
		Int("catch_up_published", result.CatchUpPublished).
		Int("emails_sent", result.EmailsSent).
		Int("emails_failed", result.EmailsFailed).
		Bool("journey_complete", result.JourneyComplete).
		Msg("weekly transition finished")

	return result, nil
}

// run completes the current state and promotes the next one. Steps are strictly sequential.
func (t *Trigger) run(ctx context.Context, opts entities.Options) (*entities.Result, error) {
	current, err := t.tracker.GetCurrentState(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		t.logger.Warn().Err(transitionerrors.ErrNoCurrentState).Msg("no current state, promoting next upcoming state")
	}

	next, err := t.tracker.GetNextUpcomingState(ctx)
	if err != nil {
		return nil, err
	}

	if next == nil {
		if current == nil {
			return &entities.Result{JourneyComplete: true}, nil
		}
		return t.completeFinal(ctx, current, opts)
	}

	if current != nil && !opts.Force {
		if err := t.checkInterval(current); err != nil {
			return nil, err
		}
	}

	var fromCode string
	if current != nil {
		fromCode = current.Code
	}
	if err := t.tracker.Advance(ctx, fromCode, next.Code); err != nil {
		return nil, err
	}

	result := &entities.Result{
		Transitioned: true,
		NewState:     next.Code,
		NoPriorState: current == nil,
	}

	var completedName string
	if current != nil {
		result.CompletedState = current.Code
		completedName = current.Name
		result.CatchUpPublished = t.catchUp(ctx, current.Code)
	}
	t.content.InvalidateStates(ctx, next.Code)

	t.notify(ctx, result, completedName, next.Name)
	t.publishEvent(ctx, result)

	return result, nil
}

// completeFinal closes the last state of the journey. There is nobody to announce, so no email is sent.
func (t *Trigger) completeFinal(ctx context.Context, current *journeyentities.State, opts entities.Options) (*entities.Result, error) {
	if !opts.Force {
		if err := t.checkInterval(current); err != nil {
			return nil, err
		}
	}

	if err := t.tracker.MarkCompleted(ctx, current.Code); err != nil {
		return nil, err
	}

	result := &entities.Result{
		Transitioned:    true,
		CompletedState:  current.Code,
		JourneyComplete: true,
	}
	result.CatchUpPublished = t.catchUp(ctx, current.Code)
	t.publishEvent(ctx, result)

	t.logger.Info().Str("state", current.Code).Msg("final state completed, journey finished")
	return result, nil
}

// checkInterval rejects a second run within the same week
func (t *Trigger) checkInterval(current *journeyentities.State) error {
	if t.cfg.MinTransitionInterval <= 0 || current.BecameCurrentAt == nil {
		return nil
	}

	elapsed := t.now().Sub(*current.BecameCurrentAt)
	if elapsed < t.cfg.MinTransitionInterval {
		return fmt.Errorf("%w: %s became current %s ago, minimum is %s",
			transitionerrors.ErrTransitionTooSoon, current.Code,
			elapsed.Truncate(time.Minute), t.cfg.MinTransitionInterval)
	}
	return nil
}

// catchUp publishes whatever per-day publishing missed. Failure is logged only.
func (t *Trigger) catchUp(ctx context.Context, code string) int {
	published, err := t.content.PublishAll(ctx, code)
	if err != nil {
		t.logger.Error().Err(err).Str("state", code).Msg("catch-up publish failed")
	}
	t.content.InvalidateStates(ctx, code)
	return published
}

// notify sends the transition email under its own timeout. Failure never rolls back the transition.
func (t *Trigger) notify(ctx context.Context, result *entities.Result, completedName, newName string) {
	emailCtx, cancel := t.emailContext(ctx)
	defer cancel()

	dispatch, err := t.dispatcher.SendStateTransitionEmail(emailCtx, completedName, newName)
	result.EmailsSent = dispatch.Successful
	result.EmailsFailed = dispatch.Failed
	result.EmailsTotal = dispatch.Total
	if err != nil {
		result.EmailError = err.Error()
		t.logger.Error().Err(err).Str("new_state", newName).Msg("state transition email failed")
	}
}

func (t *Trigger) publishEvent(ctx context.Context, result *entities.Result) {
	event := dto.StateTransitionedEvent{
		EventID:         uuid.NewString(),
		CompletedState:  result.CompletedState,
		NewState:        result.NewState,
		JourneyComplete: result.JourneyComplete,
		OccurredAt:      t.now(),
	}
	if err := t.events.PublishStateTransitioned(ctx, event); err != nil {
		t.logger.Warn().Err(err).Msg("failed to publish state_transitioned event")
	}
}

// RunWeeklyDigest sends the digest under the email timeout
func (t *Trigger) RunWeeklyDigest(ctx context.Context) (newsletterentities.DispatchResult, error) {
	emailCtx, cancel := t.emailContext(ctx)
	defer cancel()

	result, err := t.dispatcher.SendWeeklyDigest(emailCtx)
	if err != nil {
		t.logger.Error().Err(err).Msg("weekly digest failed")
		return result, err
	}
	return result, nil
}

func (t *Trigger) emailContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.cfg.EmailTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.cfg.EmailTimeout)
}

func errorCode(err error) string {
	var coded pkgerrors.Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return "unknown"
}
