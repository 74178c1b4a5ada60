package business

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/internal/domain/content/consts"
	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/dto"
	"github.com/Conte777/brewquest/internal/domain/content/entities"
	contenterrors "github.com/Conte777/brewquest/internal/domain/content/errors"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	"github.com/Conte777/brewquest/pkg/mapfn"
)

type Scheduler struct {
	beers   deps.BeerRepository
	states  deps.StateReader
	cache   deps.BeerCache
	events  deps.EventPublisher
	cfg     *config.JourneyConfig
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewScheduler(
	beers deps.BeerRepository,
	states deps.StateReader,
	cache deps.BeerCache,
	events deps.EventPublisher,
	cfg *config.JourneyConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		beers:   beers,
		states:  states,
		cache:   cache,
		events:  events,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "content_scheduler").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Scheduler) GetPublishedBeers(ctx context.Context, code string) []entities.Beer {
	state, err := s.states.GetState(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("state", code).Msg("published beers lookup failed")
		return []entities.Beer{}
	}

	if state.Status == journeyentities.StatusUpcoming {
		return []entities.Beer{}
	}

	// the generation is taken before the store read so an invalidation in between retires this entry
	cached, generation, ok := s.cache.Get(ctx, state.Code, state.Status)
	if ok {
		return cached
	}

	beers, err := s.beers.ListByState(ctx, state.Code)
	if err != nil {
		s.logger.Warn().Err(err).Str("state", state.Code).Msg("published beers lookup failed")
		return []entities.Beer{}
	}

	if !entities.HasFullWeek(beers) {
		s.logger.Warn().
			Str("state", state.Code).
			Int("count", len(beers)).
			Msg("state does not have exactly seven beers")
	}

	visible := beers
	if state.Status == journeyentities.StatusCurrent {
		visible = mapfn.FilterSlice(beers, func(b entities.Beer) bool { return b.IsPublished() })
	}

	s.cache.Set(ctx, state.Code, state.Status, generation, visible)
	return visible
}

func (s *Scheduler) PublishDueItems(ctx context.Context, code string, asOf time.Time) (int, error) {
	state, err := s.states.GetState(ctx, code)
	if err != nil {
		return 0, err
	}

	if state.Status != journeyentities.StatusCurrent {
		s.logger.Debug().Str("state", state.Code).Str("status", string(state.Status)).Msg("state not current, nothing to publish")
		return 0, nil
	}

	anchor, ok := WeekAnchor(state, s.cfg.StartDate)
	if !ok {
		s.metrics.RecordPublishError()
		return 0, contenterrors.ErrNoAnchor
	}

	due := DueDay(anchor, asOf, s.cfg.Location)
	if due == 0 {
		return 0, nil
	}

	return s.publish(ctx, state.Code, due, consts.TriggerScheduled)
}

// PublishAll publishes every remaining item of a current or completed state
func (s *Scheduler) PublishAll(ctx context.Context, code string) (int, error) {
	state, err := s.states.GetState(ctx, code)
	if err != nil {
		return 0, err
	}

	if state.Status == journeyentities.StatusUpcoming {
		return 0, nil
	}

	return s.publish(ctx, state.Code, entities.DaysPerWeek, consts.TriggerCatchUp)
}

func (s *Scheduler) PublishDueForCurrent(ctx context.Context, asOf time.Time) (string, int, error) {
	current, err := s.states.GetCurrentState(ctx)
	if err != nil {
		return "", 0, err
	}
	if current == nil {
		s.logger.Info().Msg("no current state, nothing to publish")
		return "", 0, nil
	}

	n, err := s.PublishDueItems(ctx, current.Code, asOf)
	return current.Code, n, err
}

func (s *Scheduler) InvalidateStates(ctx context.Context, codes ...string) {
	s.cache.Invalidate(ctx, codes...)
}

func (s *Scheduler) publish(ctx context.Context, code string, throughDay int, trigger string) (int, error) {
	if count, err := s.beers.CountByState(ctx, code); err != nil {
		s.logger.Warn().Err(err).Str("state", code).Msg("beer count failed")
	} else if count < entities.DaysPerWeek {
		s.logger.Warn().Str("state", code).Int64("count", count).Msg("state has fewer than seven beers")
	}

	at := s.now()
	affected, err := s.beers.PublishThroughDay(ctx, code, throughDay, at)
	if err != nil {
		s.metrics.RecordPublishError()
		return 0, err
	}

	published := int(affected)
	if published == 0 {
		return 0, nil
	}

	s.cache.Invalidate(ctx, code)
	s.metrics.RecordPublished(trigger, published)

	event := dto.BeersPublishedEvent{
		StateCode:   code,
		Trigger:     trigger,
		ThroughDay:  throughDay,
		Published:   published,
		PublishedAt: at,
	}
	if err := s.events.PublishBeersPublished(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("state", code).Msg("failed to publish beers_published event")
	}

	s.logger.Info().
		Str("state", code).
		Str("trigger", trigger).
		Int("through_day", throughDay).
		Int("published", published).
		Msg("beers published")

	return published, nil
}
