package deps

import (
	"context"

	"github.com/Conte777/brewquest/internal/domain/health/entities"
)

// DatabasePinger is satisfied by *sql.DB
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is satisfied by the Redis cache
type CachePinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// Checker builds the service health report
type Checker interface {
	Check(ctx context.Context) entities.Report
}
