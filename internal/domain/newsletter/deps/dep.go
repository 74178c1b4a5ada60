package deps

import (
	"context"
	"time"

	"github.com/google/uuid"

	contententities "github.com/Conte777/brewquest/internal/domain/content/entities"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	"github.com/Conte777/brewquest/internal/domain/newsletter/entities"
	"github.com/Conte777/brewquest/internal/infrastructure/email"
)

// SubscriberRepository persists subscribers
type SubscriberRepository interface {
	// ListActive returns active subscribers that opted into pref.
	ListActive(ctx context.Context, pref entities.Preference) ([]entities.Subscriber, error)
	// GetByEmail returns nil, nil when the address is unknown.
	GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error)
	Create(ctx context.Context, subscriber *entities.Subscriber) error
	Reactivate(ctx context.Context, id uuid.UUID, token uuid.UUID, at time.Time) error
	// DeactivateByToken reports whether an active subscriber matched.
	DeactivateByToken(ctx context.Context, token uuid.UUID, at time.Time) (bool, error)
}

// EmailSender delivers single emails
type EmailSender interface {
	email.Sender
	Configured() bool
}

// DigestSource provides the content of the weekly digest
type DigestSource interface {
	GetCurrentState(ctx context.Context) (*journeyentities.State, error)
	GetPublishedBeers(ctx context.Context, code string) []contententities.Beer
}

// Dispatcher fans newsletter mail out to subscribers
type Dispatcher interface {
	SendStateTransitionEmail(ctx context.Context, completedStateName, newStateName string) (entities.DispatchResult, error)
	SendWeeklyDigest(ctx context.Context) (entities.DispatchResult, error)
	Subscribe(ctx context.Context, address string) (*entities.Subscriber, error)
	Unsubscribe(ctx context.Context, token string) error
}
