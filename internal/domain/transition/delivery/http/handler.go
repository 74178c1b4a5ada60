package http

import (
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/transition/deps"
	"github.com/Conte777/brewquest/internal/domain/transition/dto"
	"github.com/Conte777/brewquest/internal/domain/transition/entities"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
	"github.com/Conte777/brewquest/pkg/httputil"
)

// Handler serves the cron endpoints that drive the journey
type Handler struct {
	trigger deps.Trigger
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

func NewHandler(trigger deps.Trigger, mapper *pkgerrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		trigger: trigger,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "transition").Logger(),
	}
}

// WeeklyTransition handles POST /api/cron/weekly-transition[?force=true]
func (h *Handler) WeeklyTransition(ctx *fasthttp.RequestCtx) {
	opts := entities.Options{Force: ctx.QueryArgs().GetBool("force")}

	result, err := h.trigger.RunWeeklyTransition(ctx, opts)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, result)
}

// WeeklyDigest handles POST /api/cron/weekly-digest
func (h *Handler) WeeklyDigest(ctx *fasthttp.RequestCtx) {
	result, err := h.trigger.RunWeeklyDigest(ctx)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, dto.DigestResponse{DispatchResult: result})
}
