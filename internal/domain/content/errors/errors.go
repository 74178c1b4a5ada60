package errors

import (
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

var (
	ErrStateRequired     = pkgerrors.NewValidationError("state_required", "state query parameter is required")
	ErrNoAnchor          = pkgerrors.NewInternalError("no_week_anchor", "state has no week anchor")
	ErrDatabaseOperation = pkgerrors.NewInternalError("database_error", "database operation failed")
)
