package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(context.Context) error { return m.err }

func TestHealthReporter_Check(t *testing.T) {
	ctx := context.Background()
	srv := health.NewServer()
	db := &mockPinger{}
	r := NewHealthReporter(srv, db, "journey-service", zerolog.Nop())

	if got := r.Check(ctx); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", got)
	}
	resp, err := srv.Check(ctx, &healthpb.HealthCheckRequest{Service: "journey-service"})
	if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("Check = (%v, %v), want SERVING", resp, err)
	}

	db.err = errors.New("connection refused")
	if got := r.Check(ctx); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v, want NOT_SERVING", got)
	}
	resp, err = srv.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil || resp.Status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("Check = (%v, %v), want NOT_SERVING", resp, err)
	}
}
