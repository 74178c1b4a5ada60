package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/internal/infrastructure/cache"
	"github.com/Conte777/brewquest/internal/infrastructure/database"
	"github.com/Conte777/brewquest/internal/infrastructure/email"
	"github.com/Conte777/brewquest/internal/infrastructure/grpc"
	httpfx "github.com/Conte777/brewquest/internal/infrastructure/http"
	"github.com/Conte777/brewquest/internal/infrastructure/kafka"
	"github.com/Conte777/brewquest/internal/infrastructure/logger"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	"github.com/Conte777/brewquest/internal/infrastructure/scheduler"
)

// Module aggregates all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	database.Module,
	cache.Module,
	kafka.Module,
	email.Module,
	scheduler.Module,
	httpfx.Module,
	grpc.Module,
)
