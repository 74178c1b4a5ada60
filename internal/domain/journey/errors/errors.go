package errors

import (
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

var (
	ErrStateNotFound         = pkgerrors.NewNotFoundError("state_not_found", "state not found")
	ErrInvalidTransition     = pkgerrors.NewConflictError("invalid_transition", "invalid state transition")
	ErrInvalidStateCode      = pkgerrors.NewValidationError("invalid_state_code", "state code must be two letters")
	ErrMultipleCurrentStates = pkgerrors.NewInternalError("multiple_current_states", "more than one state is current")
	ErrDatabaseOperation     = pkgerrors.NewInternalError("database_error", "database operation failed")
)
