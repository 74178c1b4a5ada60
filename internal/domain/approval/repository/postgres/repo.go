package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Conte777/brewquest/internal/domain/approval/deps"
	"github.com/Conte777/brewquest/internal/domain/approval/entities"
	approvalerrors "github.com/Conte777/brewquest/internal/domain/approval/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.ApprovalRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, approval *entities.Approval) error {
	if err := r.db.WithContext(ctx).Create(approval).Error; err != nil {
		return fmt.Errorf("%w: %v", approvalerrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uint64) (*entities.Approval, error) {
	var approval entities.Approval
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&approval)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, approvalerrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", approvalerrors.ErrDatabaseOperation, result.Error)
	}
	return &approval, nil
}

func (r *Repository) List(ctx context.Context, status entities.Status) ([]entities.Approval, error) {
	var approvals []entities.Approval
	query := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&approvals).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", approvalerrors.ErrDatabaseOperation, err)
	}
	return approvals, nil
}

func (r *Repository) Review(
	ctx context.Context,
	id uint64,
	status entities.Status,
	reviewer, notes string,
	at time.Time,
) (bool, error) {
	updates := map[string]interface{}{
		"status":      status,
		"reviewer":    reviewer,
		"reviewed_at": at,
		"updated_at":  at,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Approval{}).
		Where("id = ? AND status = ?", id, entities.StatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %v", approvalerrors.ErrDatabaseOperation, result.Error)
	}
	return result.RowsAffected > 0, nil
}
