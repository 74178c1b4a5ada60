package business

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/internal/domain/journey/deps"
	"github.com/Conte777/brewquest/internal/domain/journey/entities"
	journeyerrors "github.com/Conte777/brewquest/internal/domain/journey/errors"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	"github.com/Conte777/brewquest/pkg/mapfn"
)

type Tracker struct {
	repo    deps.StateRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewTracker(repo deps.StateRepository, m *metrics.Metrics, logger zerolog.Logger) *Tracker {
	return &Tracker{
		repo:    repo,
		metrics: m,
		logger:  logger.With().Str("component", "journey_tracker").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeStateCode upper-cases code and checks it is two ASCII letters
func NormalizeStateCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || !isUpperLetter(code[0]) || !isUpperLetter(code[1]) {
		return "", fmt.Errorf("%w: %q", journeyerrors.ErrInvalidStateCode, code)
	}
	return code, nil
}

func isUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func (t *Tracker) GetCurrentState(ctx context.Context) (*entities.State, error) {
	return t.repo.GetCurrent(ctx)
}

func (t *Tracker) GetNextUpcomingState(ctx context.Context) (*entities.State, error) {
	return t.repo.GetNextUpcoming(ctx)
}

func (t *Tracker) GetState(ctx context.Context, code string) (*entities.State, error) {
	code, err := NormalizeStateCode(code)
	if err != nil {
		return nil, err
	}
	return t.repo.GetByCode(ctx, code)
}

func (t *Tracker) ListStates(ctx context.Context) ([]entities.State, error) {
	return t.repo.List(ctx)
}

func (t *Tracker) Progress(ctx context.Context) (*entities.Progress, error) {
	states, err := t.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := mapfn.CountBy(states, func(s entities.State) entities.Status { return s.Status })
	progress := &entities.Progress{
		Total:     len(states),
		Upcoming:  counts[entities.StatusUpcoming],
		Current:   counts[entities.StatusCurrent],
		Completed: counts[entities.StatusCompleted],
	}

	// states are ordered by week, so the first upcoming one is next
	for i := range states {
		switch states[i].Status {
		case entities.StatusCurrent:
			if progress.CurrentState == nil {
				progress.CurrentState = &states[i]
			}
		case entities.StatusUpcoming:
			if progress.NextState == nil {
				progress.NextState = &states[i]
			}
		}
	}

	if progress.Current > 1 {
		t.logger.Error().Int("current", progress.Current).Msg("journey has more than one current state")
	}
	return progress, nil
}

func (t *Tracker) MarkCompleted(ctx context.Context, code string) error {
	code, err := NormalizeStateCode(code)
	if err != nil {
		return err
	}

	if err := t.repo.MarkCompleted(ctx, code, t.now()); err != nil {
		return err
	}

	t.logger.Info().Str("state", code).Msg("state completed")
	return nil
}

func (t *Tracker) MarkCurrent(ctx context.Context, code string) error {
	code, err := NormalizeStateCode(code)
	if err != nil {
		return err
	}

	if err := t.repo.MarkCurrent(ctx, code, t.now()); err != nil {
		return err
	}

	t.logger.Info().Str("state", code).Msg("state promoted to current")
	return nil
}

func (t *Tracker) Advance(ctx context.Context, fromCode, toCode string) error {
	to, err := NormalizeStateCode(toCode)
	if err != nil {
		return err
	}
	var from string
	if fromCode != "" {
		if from, err = NormalizeStateCode(fromCode); err != nil {
			return err
		}
	}

	now := t.now()
	err = t.repo.WithinTransaction(ctx, func(repo deps.StateRepository) error {
		if from != "" {
			if err := repo.MarkCompleted(ctx, from, now); err != nil {
				return err
			}
		}
		if err := repo.MarkCurrent(ctx, to, now); err != nil {
			return err
		}

		promoted, err := repo.GetByCode(ctx, to)
		if err != nil {
			return err
		}
		t.metrics.SetCurrentWeek(promoted.WeekNumber)
		return nil
	})
	if err != nil {
		t.logger.Warn().Err(err).Str("from", from).Str("to", to).Msg("journey advance rejected")
		return err
	}

	t.logger.Info().Str("from", from).Str("to", to).Msg("journey advanced")
	return nil
}
