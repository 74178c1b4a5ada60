package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReporter keeps the gRPC health status in sync with the database
type HealthReporter struct {
	server   *health.Server
	db       Pinger
	service  string
	interval time.Duration
	logger   zerolog.Logger
}

// NewHealthReporter creates a reporter for the named service
func NewHealthReporter(server *health.Server, db Pinger, service string, logger zerolog.Logger) *HealthReporter {
	return &HealthReporter{
		server:   server,
		db:       db,
		service:  service,
		interval: 10 * time.Second,
		logger:   logger,
	}
}

// Check pings the database once and updates the serving status
func (r *HealthReporter) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := r.db.PingContext(pingCtx); err != nil {
		r.logger.Warn().Err(err).Msg("database ping failed, reporting NOT_SERVING")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(r.service, status)
	return status
}

// Run checks on an interval until ctx is cancelled
func (r *HealthReporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Check(ctx)
		}
	}
}
