package business

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/internal/domain/approval/deps"
	"github.com/Conte777/brewquest/internal/domain/approval/entities"
	approvalerrors "github.com/Conte777/brewquest/internal/domain/approval/errors"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// Reviewer runs the admin approval workflow. Only pending entries can be decided, and the
// first decision wins.
type Reviewer struct {
	repo    deps.ApprovalRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewReviewer(repo deps.ApprovalRepository, m *metrics.Metrics, logger zerolog.Logger) *Reviewer {
	return &Reviewer{
		repo:    repo,
		metrics: m,
		logger:  logger.With().Str("component", "approval_reviewer").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *Reviewer) Submit(ctx context.Context, contentType entities.ContentType, ref string) (*entities.Approval, error) {
	if !contentType.Valid() {
		return nil, approvalerrors.ErrInvalidContentType
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, approvalerrors.ErrContentRefRequired
	}

	approval := &entities.Approval{
		ContentType: contentType,
		ContentRef:  ref,
		Status:      entities.StatusPending,
	}
	if err := r.repo.Create(ctx, approval); err != nil {
		r.logger.Error().Err(err).Str("content_ref", ref).Msg("failed to submit content for approval")
		return nil, err
	}

	r.logger.Info().
		Uint64("id", approval.ID).
		Str("content_type", string(contentType)).
		Str("content_ref", ref).
		Msg("content submitted for approval")
	return approval, nil
}

func (r *Reviewer) List(ctx context.Context, status entities.Status) ([]entities.Approval, error) {
	if status != "" && !status.Valid() {
		return nil, approvalerrors.ErrInvalidStatus
	}
	return r.repo.List(ctx, status)
}

func (r *Reviewer) Approve(ctx context.Context, id uint64, reviewer, notes string) (*entities.Approval, error) {
	return r.review(ctx, id, entities.StatusApproved, reviewer, notes)
}

func (r *Reviewer) Reject(ctx context.Context, id uint64, reviewer, notes string) (*entities.Approval, error) {
	return r.review(ctx, id, entities.StatusRejected, reviewer, notes)
}

func (r *Reviewer) review(
	ctx context.Context,
	id uint64,
	status entities.Status,
	reviewer, notes string,
) (*entities.Approval, error) {
	if id == 0 {
		return nil, approvalerrors.ErrInvalidID
	}
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return nil, approvalerrors.ErrReviewerRequired
	}

	applied, err := r.repo.Review(ctx, id, status, reviewer, strings.TrimSpace(notes), r.now())
	if err != nil {
		return nil, err
	}

	approval, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !applied {
		r.logger.Warn().
			Uint64("id", id).
			Str("status", string(approval.Status)).
			Msg("approval already reviewed")
		return nil, approvalerrors.ErrAlreadyReviewed
	}

	r.metrics.RecordApproval(string(approval.ContentType), string(status))
	r.logger.Info().
		Uint64("id", id).
		Str("status", string(status)).
		Str("reviewer", reviewer).
		Msg("approval reviewed")
	return approval, nil
}
