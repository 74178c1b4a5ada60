package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/entities"
	contenterrors "github.com/Conte777/brewquest/internal/domain/content/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.BeerRepository {
	return &Repository{db: db}
}

func (r *Repository) ListByState(ctx context.Context, code string) ([]entities.Beer, error) {
	var beers []entities.Beer
	result := r.db.WithContext(ctx).
		Where("state_code = ?", code).
		Order("day_of_week ASC").
		Find(&beers)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", contenterrors.ErrDatabaseOperation, result.Error)
	}
	return beers, nil
}

func (r *Repository) CountByState(ctx context.Context, code string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entities.Beer{}).Where("state_code = ?", code).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", contenterrors.ErrDatabaseOperation, result.Error)
	}
	return count, nil
}

// PublishThroughDay only touches rows whose published_at is still null, so repeats change nothing
func (r *Repository) PublishThroughDay(ctx context.Context, code string, day int, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Beer{}).
		Where("state_code = ? AND day_of_week <= ? AND published_at IS NULL", code, day).
		Update("published_at", at)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", contenterrors.ErrDatabaseOperation, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) PublishAll(ctx context.Context, code string, at time.Time) (int64, error) {
	return r.PublishThroughDay(ctx, code, entities.DaysPerWeek, at)
}
