package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Conte777/brewquest/internal/domain/newsletter/deps"
	"github.com/Conte777/brewquest/internal/domain/newsletter/entities"
	newslettererrors "github.com/Conte777/brewquest/internal/domain/newsletter/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.SubscriberRepository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context, pref entities.Preference) ([]entities.Subscriber, error) {
	var subscribers []entities.Subscriber
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(fmt.Sprintf("%s = ?", preferenceColumn(pref)), true).
		Order("subscribed_at ASC").
		Find(&subscribers)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", newslettererrors.ErrDatabaseOperation, result.Error)
	}
	return subscribers, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	var subscriber entities.Subscriber
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&subscriber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", newslettererrors.ErrDatabaseOperation, result.Error)
	}
	return &subscriber, nil
}

func (r *Repository) Create(ctx context.Context, subscriber *entities.Subscriber) error {
	if err := r.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		return fmt.Errorf("%w: %v", newslettererrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (r *Repository) Reactivate(ctx context.Context, id uuid.UUID, token uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Subscriber{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":         true,
			"unsubscribe_token": token,
			"subscribed_at":     at,
			"unsubscribed_at":   nil,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", newslettererrors.ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return newslettererrors.ErrSubscriberNotFound
	}
	return nil
}

func (r *Repository) DeactivateByToken(ctx context.Context, token uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Subscriber{}).
		Where("unsubscribe_token = ? AND is_active = ?", token, true).
		Updates(map[string]interface{}{
			"is_active":       false,
			"unsubscribed_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("%w: %v", newslettererrors.ErrDatabaseOperation, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// preferenceColumn keeps the column name out of caller control
func preferenceColumn(pref entities.Preference) string {
	if pref == entities.PreferenceWeeklyDigest {
		return "weekly_digest"
	}
	return "state_updates"
}
