package deps

import (
	"context"
	"time"

	"github.com/Conte777/brewquest/internal/domain/content/dto"
	"github.com/Conte777/brewquest/internal/domain/content/entities"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
)

// BeerRepository persists beer reviews
type BeerRepository interface {
	// ListByState returns a state's reviews ordered by day.
	ListByState(ctx context.Context, code string) ([]entities.Beer, error)
	CountByState(ctx context.Context, code string) (int64, error)
	// PublishThroughDay stamps unpublished reviews with day_of_week <= day and returns rows changed.
	PublishThroughDay(ctx context.Context, code string, day int, at time.Time) (int64, error)
	PublishAll(ctx context.Context, code string, at time.Time) (int64, error)
}

// StateReader is the slice of the journey tracker the scheduler reads
type StateReader interface {
	GetState(ctx context.Context, code string) (*journeyentities.State, error)
	GetCurrentState(ctx context.Context) (*journeyentities.State, error)
}

// BeerCache caches visible beers per state and status. Entries are stored under a per-state
// generation; Invalidate retires the generation so a list read before it is never served.
type BeerCache interface {
	// Get returns the cached beers and the generation a fresh list must be stored under
	Get(ctx context.Context, code string, status journeyentities.Status) (beers []entities.Beer, generation int64, found bool)
	Set(ctx context.Context, code string, status journeyentities.Status, generation int64, beers []entities.Beer)
	Invalidate(ctx context.Context, codes ...string)
}

// EventPublisher announces content publication
type EventPublisher interface {
	PublishBeersPublished(ctx context.Context, event dto.BeersPublishedEvent) error
}

// Scheduler decides which beers are visible and publishes them day by day
type Scheduler interface {
	// GetPublishedBeers never fails; lookup problems yield an empty slice.
	GetPublishedBeers(ctx context.Context, code string) []entities.Beer
	PublishDueItems(ctx context.Context, code string, asOf time.Time) (int, error)
	PublishAll(ctx context.Context, code string) (int, error)
	// PublishDueForCurrent publishes due items of whichever state is current. Empty code means none is.
	PublishDueForCurrent(ctx context.Context, asOf time.Time) (string, int, error)
	InvalidateStates(ctx context.Context, codes ...string)
}
