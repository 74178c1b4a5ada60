package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers journey HTTP routes
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

// RegisterRoutes registers journey routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.GET("/api/journey", r.handler.GetProgress)
	rt.GET("/api/journey/states", r.handler.ListStates)
	rt.GET("/api/journey/states/{code}", r.handler.GetState)

	r.logger.Info().Msg("journey routes registered")
}
