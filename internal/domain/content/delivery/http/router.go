package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/pkg/httputil"
)

// Router registers content HTTP routes
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

// RegisterRoutes registers content routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.GET("/api/beers", r.handler.GetBeers)

	cron := httputil.NewMiddlewareGroup(rt.Group("/api/cron")).Use(httputil.BearerAuth(r.auth.CronSecret))
	cron.POST("/publish-due", r.handler.PublishDue)

	r.logger.Info().Msg("content routes registered")
}
