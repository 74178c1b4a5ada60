package business

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/internal/domain/health/deps"
	"github.com/Conte777/brewquest/internal/domain/health/entities"
)

const checkTimeout = 2 * time.Second

type Checker struct {
	service      string
	db           deps.DatabasePinger
	cache        deps.CachePinger
	kafkaEnabled bool
	logger       zerolog.Logger
	now          func() time.Time
}

func NewChecker(
	service string,
	db deps.DatabasePinger,
	cache deps.CachePinger,
	kafkaEnabled bool,
	logger zerolog.Logger,
) *Checker {
	return &Checker{
		service:      service,
		db:           db,
		cache:        cache,
		kafkaEnabled: kafkaEnabled,
		logger:       logger.With().Str("component", "health_checker").Logger(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (c *Checker) Check(ctx context.Context) entities.Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	components := []entities.ComponentHealth{
		c.checkDatabase(ctx),
		c.checkCache(ctx),
		c.checkKafka(),
	}
	status := entities.Overall(components)

	logEvent := c.logger.Debug()
	if status == entities.StatusUnhealthy {
		logEvent = c.logger.Warn()
	} else if status == entities.StatusDegraded {
		logEvent = c.logger.Info()
	}
	logEvent.
		Str("status", string(status)).
		Interface("components", components).
		Msg("health check completed")

	return entities.Report{
		Status:     status,
		Service:    c.service,
		Timestamp:  c.now(),
		Components: components,
	}
}

func (c *Checker) checkDatabase(ctx context.Context) entities.ComponentHealth {
	component := entities.ComponentHealth{Name: "database", Healthy: true, Critical: true}
	if err := c.db.PingContext(ctx); err != nil {
		component.Healthy = false
		component.Message = err.Error()
	}
	return component
}

// checkCache is non-critical: the read path falls back to the database
func (c *Checker) checkCache(ctx context.Context) entities.ComponentHealth {
	component := entities.ComponentHealth{Name: "cache", Healthy: true}
	if c.cache == nil || !c.cache.Enabled() {
		component.Message = "disabled"
		return component
	}
	if err := c.cache.Ping(ctx); err != nil {
		component.Healthy = false
		component.Message = err.Error()
	}
	return component
}

func (c *Checker) checkKafka() entities.ComponentHealth {
	component := entities.ComponentHealth{Name: "kafka", Healthy: true}
	if !c.kafkaEnabled {
		component.Message = "disabled"
	}
	return component
}
