package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers newsletter HTTP routes
type Router struct {
	handler *Handler
	logger  zerolog.Logger
}

func NewRouter(handler *Handler, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
	}
}

// RegisterRoutes registers newsletter routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.POST("/api/newsletter/subscribe", r.handler.Subscribe)
	rt.GET("/api/newsletter/unsubscribe", r.handler.Unsubscribe)
	// one-click unsubscribe from the List-Unsubscribe-Post header
	rt.POST("/api/newsletter/unsubscribe", r.handler.Unsubscribe)

	r.logger.Info().Msg("newsletter routes registered")
}
