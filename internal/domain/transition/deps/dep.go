package deps

import (
	"context"

	newsletterentities "github.com/Conte777/brewquest/internal/domain/newsletter/entities"
	"github.com/Conte777/brewquest/internal/domain/transition/dto"
	"github.com/Conte777/brewquest/internal/domain/transition/entities"
)

// EventPublisher announces journey transitions
type EventPublisher interface {
	PublishStateTransitioned(ctx context.Context, event dto.StateTransitionedEvent) error
}

// Trigger advances the journey once a week and notifies subscribers
type Trigger interface {
	RunWeeklyTransition(ctx context.Context, opts entities.Options) (*entities.Result, error)
	RunWeeklyDigest(ctx context.Context) (newsletterentities.DispatchResult, error)
}
