package errors

import (
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

var (
	ErrInvalidEmail       = pkgerrors.NewValidationError("invalid_email", "invalid email address")
	ErrInvalidToken       = pkgerrors.NewValidationError("invalid_token", "invalid unsubscribe token")
	ErrSubscriberNotFound = pkgerrors.NewNotFoundError("subscriber_not_found", "subscriber not found")
	ErrEmailNotConfigured = pkgerrors.NewServiceUnavailableError("email_not_configured", "email delivery is not configured")
	ErrDatabaseOperation  = pkgerrors.NewInternalError("database_error", "database operation failed")
)
