package approval

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	approvalhttp "github.com/Conte777/brewquest/internal/domain/approval/delivery/http"
	"github.com/Conte777/brewquest/internal/domain/approval/deps"
	"github.com/Conte777/brewquest/internal/domain/approval/repository/postgres"
	"github.com/Conte777/brewquest/internal/domain/approval/usecase/business"
	"github.com/Conte777/brewquest/internal/infrastructure/http/server"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// Module provides the admin content approval workflow for fx DI
var Module = fx.Module("approval",
	fx.Provide(
		postgres.NewRepository,
		NewReviewerFx,
		approvalhttp.NewHandler,
		approvalhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

func NewReviewerFx(repo deps.ApprovalRepository, m *metrics.Metrics, logger zerolog.Logger) deps.Reviewer {
	return business.NewReviewer(repo, m, logger)
}

func registerRoutes(srv *server.Server, router *approvalhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
