package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/pkg/httputil"
)

// Router registers admin approval HTTP routes
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

// RegisterRoutes registers approval routes on the router. Without ADMIN_SECRET every request is rejected.
func (r *Router) RegisterRoutes(rt *router.Router) {
	admin := httputil.NewMiddlewareGroup(rt.Group("/api/admin")).Use(httputil.BearerAuth(r.auth.AdminSecret))
	admin.GET("/approvals", r.handler.List)
	admin.POST("/approvals", r.handler.Submit)
	admin.POST("/approvals/{id}/approve", r.handler.Approve)
	admin.POST("/approvals/{id}/reject", r.handler.Reject)

	r.logger.Info().Msg("approval routes registered")
}
