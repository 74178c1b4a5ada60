package deps

import (
	"context"
	"time"

	"github.com/Conte777/brewquest/internal/domain/journey/entities"
)

// StateRepository persists journey states. Mutators are conditional writes that reject invariant violations.
type StateRepository interface {
	GetByCode(ctx context.Context, code string) (*entities.State, error)
	// GetCurrent returns nil, nil when no state is current.
	GetCurrent(ctx context.Context) (*entities.State, error)
	// GetNextUpcoming returns nil, nil when no state is upcoming.
	GetNextUpcoming(ctx context.Context) (*entities.State, error)
	List(ctx context.Context) ([]entities.State, error)

	MarkCompleted(ctx context.Context, code string, at time.Time) error
	MarkCurrent(ctx context.Context, code string, at time.Time) error

	// WithinTransaction runs fn against a repository bound to one database transaction.
	WithinTransaction(ctx context.Context, fn func(repo StateRepository) error) error
}

// Tracker is the single source of truth for the journey position
type Tracker interface {
	GetCurrentState(ctx context.Context) (*entities.State, error)
	GetNextUpcomingState(ctx context.Context) (*entities.State, error)
	GetState(ctx context.Context, code string) (*entities.State, error)
	ListStates(ctx context.Context) ([]entities.State, error)
	Progress(ctx context.Context) (*entities.Progress, error)

	MarkCompleted(ctx context.Context, code string) error
	MarkCurrent(ctx context.Context, code string) error
	// Advance completes fromCode and promotes toCode in one transaction. Empty fromCode only promotes.
	Advance(ctx context.Context, fromCode, toCode string) error
}
