package journey

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	journeyhttp "github.com/Conte777/brewquest/internal/domain/journey/delivery/http"
	"github.com/Conte777/brewquest/internal/domain/journey/deps"
	"github.com/Conte777/brewquest/internal/domain/journey/repository/postgres"
	"github.com/Conte777/brewquest/internal/domain/journey/usecase/business"
	"github.com/Conte777/brewquest/internal/infrastructure/http/server"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// Module provides the state progress tracker for fx DI
var Module = fx.Module("journey",
	fx.Provide(
		postgres.NewRepository,
		NewTrackerFx,
		journeyhttp.NewHandler,
		journeyhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// NewTrackerFx creates the tracker use case for fx DI
func NewTrackerFx(repo deps.StateRepository, m *metrics.Metrics, logger zerolog.Logger) deps.Tracker {
	return business.NewTracker(repo, m, logger)
}

func registerRoutes(srv *server.Server, router *journeyhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
