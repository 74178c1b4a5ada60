package deps

import (
	"context"
	"time"

	"github.com/Conte777/brewquest/internal/domain/approval/entities"
)

// ApprovalRepository persists content approvals
type ApprovalRepository interface {
	Create(ctx context.Context, approval *entities.Approval) error
	GetByID(ctx context.Context, id uint64) (*entities.Approval, error)
	// List returns entries oldest first. An empty status lists everything.
	List(ctx context.Context, status entities.Status) ([]entities.Approval, error)
	// Review moves a pending entry to status. It reports false when the entry was not pending.
	Review(ctx context.Context, id uint64, status entities.Status, reviewer, notes string, at time.Time) (bool, error)
}

// Reviewer is the admin approval workflow
type Reviewer interface {
	Submit(ctx context.Context, contentType entities.ContentType, ref string) (*entities.Approval, error)
	List(ctx context.Context, status entities.Status) ([]entities.Approval, error)
	Approve(ctx context.Context, id uint64, reviewer, notes string) (*entities.Approval, error)
	Reject(ctx context.Context, id uint64, reviewer, notes string) (*entities.Approval, error)
}
