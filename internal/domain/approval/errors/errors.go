package errors

import (
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

var (
	ErrInvalidContentType = pkgerrors.NewValidationError("invalid_content_type", "content type must be beer_review, state_intro or social_post")
	ErrContentRefRequired = pkgerrors.NewValidationError("content_ref_required", "content reference is required")
	ErrInvalidStatus      = pkgerrors.NewValidationError("invalid_status", "status must be pending, approved or rejected")
	ErrInvalidID          = pkgerrors.NewValidationError("invalid_approval_id", "invalid approval id")
	ErrReviewerRequired   = pkgerrors.NewValidationError("reviewer_required", "reviewer is required")
	ErrNotFound           = pkgerrors.NewNotFoundError("approval_not_found", "approval not found")
	ErrAlreadyReviewed    = pkgerrors.NewConflictError("already_reviewed", "approval has already been reviewed")
	ErrDatabaseOperation  = pkgerrors.NewInternalError("database_error", "database operation failed")
)
