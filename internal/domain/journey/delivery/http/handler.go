package http

import (
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/journey/deps"
	"github.com/Conte777/brewquest/internal/domain/journey/dto"
	"github.com/Conte777/brewquest/internal/domain/journey/entities"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
	"github.com/Conte777/brewquest/pkg/httputil"
	"github.com/Conte777/brewquest/pkg/mapfn"
)

// Handler serves read-only journey endpoints
type Handler struct {
	tracker deps.Tracker
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

func NewHandler(tracker deps.Tracker, mapper *pkgerrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		tracker: tracker,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "journey").Logger(),
	}
}

// GetProgress handles GET /api/journey
func (h *Handler) GetProgress(ctx *fasthttp.RequestCtx) {
	progress, err := h.tracker.Progress(ctx)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, dto.FromProgress(progress))
}

// ListStates handles GET /api/journey/states
func (h *Handler) ListStates(ctx *fasthttp.RequestCtx) {
	states, err := h.tracker.ListStates(ctx)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, mapfn.ConvertSlice(states, func(s entities.State) *dto.StateResponse {
		return dto.FromState(&s)
	}))
}

// GetState handles GET /api/journey/states/{code}
func (h *Handler) GetState(ctx *fasthttp.RequestCtx) {
	code, _ := ctx.UserValue("code").(string)

	state, err := h.tracker.GetState(ctx, code)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, dto.FromState(state))
}
