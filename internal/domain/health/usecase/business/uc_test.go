package business

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/internal/domain/health/entities"
)

type pinger struct {
	err error
}

func (p pinger) PingContext(context.Context) error { return p.err }

type cachePinger struct {
	enabled bool
	err     error
}

func (c cachePinger) Enabled() bool              { return c.enabled }
func (c cachePinger) Ping(context.Context) error { return c.err }

func TestChecker_Check(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name  string
		db    pinger
		cache cachePinger
		want  entities.Status
	}{
		{"all up", pinger{}, cachePinger{enabled: true}, entities.StatusHealthy},
		{"cache disabled", pinger{}, cachePinger{}, entities.StatusHealthy},
		{"cache down", pinger{}, cachePinger{enabled: true, err: down}, entities.StatusDegraded},
		{"database down", pinger{err: down}, cachePinger{enabled: true}, entities.StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker("journey-service", tt.db, tt.cache, false, zerolog.Nop())
			report := c.Check(context.Background())
			if report.Status != tt.want {
				t.Errorf("status = %s, want %s", report.Status, tt.want)
			}
			if len(report.Components) != 3 {
				t.Errorf("components = %d, want 3", len(report.Components))
			}
			if report.Service != "journey-service" {
				t.Errorf("service = %q", report.Service)
			}
		})
	}
}

func TestOverall(t *testing.T) {
	if got := entities.Overall(nil); got != entities.StatusHealthy {
		t.Errorf("empty = %s, want healthy", got)
	}
}
