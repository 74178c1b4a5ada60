package errors

import (
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
)

var (
	// ErrNoCurrentState is logged, not returned: the run goes on to promote the next state.
	ErrNoCurrentState    = pkgerrors.NewNotFoundError("no_current_state", "no state is current")
	ErrTransitionTooSoon = pkgerrors.NewConflictError("transition_too_soon", "current state became current too recently")
	ErrUnknownCommand    = pkgerrors.NewValidationError("unknown_command", "unknown command")
	ErrInvalidCommand    = pkgerrors.NewValidationError("invalid_command", "invalid command payload")
)
