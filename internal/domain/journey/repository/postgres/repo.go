package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Conte777/brewquest/internal/domain/journey/deps"
	"github.com/Conte777/brewquest/internal/domain/journey/entities"
	journeyerrors "github.com/Conte777/brewquest/internal/domain/journey/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.StateRepository {
	return &Repository{db: db}
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*entities.State, error) {
	var state entities.State
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", journeyerrors.ErrStateNotFound, code)
		}
		return nil, dbError(result.Error)
	}
	return &state, nil
}

func (r *Repository) GetCurrent(ctx context.Context) (*entities.State, error) {
	var states []entities.State
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusCurrent)).
		Order("week_number ASC").
		Limit(2).
		Find(&states)
	if result.Error != nil {
		return nil, dbError(result.Error)
	}

	switch len(states) {
	case 0:
		return nil, nil
	case 1:
		return &states[0], nil
	default:
		return nil, fmt.Errorf("%w: %s and %s", journeyerrors.ErrMultipleCurrentStates, states[0].Code, states[1].Code)
	}
}

func (r *Repository) GetNextUpcoming(ctx context.Context) (*entities.State, error) {
	var states []entities.State
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entities.StatusUpcoming)).
		Order("week_number ASC").
		Limit(1).
		Find(&states)
	if result.Error != nil {
		return nil, dbError(result.Error)
	}

	if len(states) == 0 {
		return nil, nil
	}
	return &states[0], nil
}

func (r *Repository) List(ctx context.Context) ([]entities.State, error) {
	var states []entities.State
	result := r.db.WithContext(ctx).Order("week_number ASC").Find(&states)
	if result.Error != nil {
		return nil, dbError(result.Error)
	}
	return states, nil
}

// MarkCompleted flips current -> completed in a single conditional UPDATE
func (r *Repository) MarkCompleted(ctx context.Context, code string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.State{}).
		Where("code = ? AND status = ?", code, string(entities.StatusCurrent)).
		Updates(map[string]interface{}{
			"status":       string(entities.StatusCompleted),
			"completed_at": at,
			"updated_at":   at,
		})
	if result.Error != nil {
		return dbError(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.rejection(ctx, code, entities.StatusCurrent)
	}
	return nil
}

// MarkCurrent flips upcoming -> current only while no state is current and the
// previous week is completed. The partial unique index catches concurrent writers.
func (r *Repository) MarkCurrent(ctx context.Context, code string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.State{}).
		Where("code = ? AND status = ?", code, string(entities.StatusUpcoming)).
		Where("NOT EXISTS (SELECT 1 FROM journey_states cur WHERE cur.status = ?)", string(entities.StatusCurrent)).
		Where("(week_number = 1 OR EXISTS (SELECT 1 FROM journey_states prev WHERE prev.week_number = journey_states.week_number - 1 AND prev.status = ?))",
			string(entities.StatusCompleted)).
		Updates(map[string]interface{}{
			"status":            string(entities.StatusCurrent),
			"became_current_at": at,
			"updated_at":        at,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: another state became current concurrently", journeyerrors.ErrInvalidTransition)
		}
		return dbError(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.rejection(ctx, code, entities.StatusUpcoming)
	}
	return nil
}

func (r *Repository) WithinTransaction(ctx context.Context, fn func(repo deps.StateRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// rejection explains why a conditional write matched no row
func (r *Repository) rejection(ctx context.Context, code string, expected entities.Status) error {
	state, err := r.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	if state.Status != expected {
		return fmt.Errorf("%w: %s is %s, expected %s", journeyerrors.ErrInvalidTransition, code, state.Status, expected)
	}
	if state.WeekNumber == 1 {
		return fmt.Errorf("%w: cannot promote %s while another state is current", journeyerrors.ErrInvalidTransition, code)
	}
	return fmt.Errorf("%w: cannot promote %s while another state is current or week %d is not completed",
		journeyerrors.ErrInvalidTransition, code, state.WeekNumber-1)
}

func dbError(err error) error {
	return fmt.Errorf("%w: %v", journeyerrors.ErrDatabaseOperation, err)
}
