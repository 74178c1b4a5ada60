package health

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/brewquest/config"
	healthhttp "github.com/Conte777/brewquest/internal/domain/health/delivery/http"
	"github.com/Conte777/brewquest/internal/domain/health/deps"
	"github.com/Conte777/brewquest/internal/domain/health/usecase/business"
	"github.com/Conte777/brewquest/internal/infrastructure/cache"
	"github.com/Conte777/brewquest/internal/infrastructure/http/server"
)

// Module provides the HTTP health check for fx DI
var Module = fx.Module("health",
	fx.Provide(
		NewCheckerFx,
		healthhttp.NewHandler,
		healthhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// NewCheckerFx creates the health checker over the shared database and cache
func NewCheckerFx(
	db *gorm.DB,
	c *cache.Cache,
	service *config.ServiceConfig,
	kafka *config.KafkaConfig,
	logger zerolog.Logger,
) (deps.Checker, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return business.NewChecker(service.Name, sqlDB, c, kafka.Enabled, logger), nil
}

func registerRoutes(srv *server.Server, router *healthhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
