package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/pkg/httputil"
)

// Router registers cron HTTP routes
type Router struct {
	handler *Handler
	auth    *config.AuthConfig
	logger  zerolog.Logger
}

func NewRouter(handler *Handler, auth *config.AuthConfig, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterRoutes registers cron routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	cron := httputil.NewMiddlewareGroup(rt.Group("/api/cron")).Use(httputil.BearerAuth(r.auth.CronSecret))
	cron.POST("/weekly-transition", r.handler.WeeklyTransition)
	cron.POST("/weekly-digest", r.handler.WeeklyDigest)

	r.logger.Info().Msg("cron routes registered")
}
