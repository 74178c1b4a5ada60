package http

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/dto"
	contenterrors "github.com/Conte777/brewquest/internal/domain/content/errors"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
	"github.com/Conte777/brewquest/pkg/httputil"
)

var errInvalidAsOf = pkgerrors.NewValidationError("invalid_as_of", "as_of must be an RFC 3339 timestamp")

// Handler serves beer content endpoints
type Handler struct {
	scheduler deps.Scheduler
	mapper    *pkgerrors.Mapper
	logger    zerolog.Logger
	now       func() time.Time
}

func NewHandler(scheduler deps.Scheduler, mapper *pkgerrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		scheduler: scheduler,
		mapper:    mapper,
		logger:    logger.With().Str("handler", "content").Logger(),
		now:       time.Now,
	}
}

// GetBeers handles GET /api/beers?state=AZ
func (h *Handler) GetBeers(ctx *fasthttp.RequestCtx) {
	code := string(ctx.QueryArgs().Peek("state"))
	if code == "" {
		httputil.WriteError(ctx, h.mapper, contenterrors.ErrStateRequired)
		return
	}

	beers := h.scheduler.GetPublishedBeers(ctx, code)
	httputil.WriteResponse(ctx, dto.BeersResponse{
		StateCode: code,
		Count:     len(beers),
		Beers:     beers,
	})
}

// PublishDue handles POST /api/cron/publish-due[?as_of=RFC3339]
func (h *Handler) PublishDue(ctx *fasthttp.RequestCtx) {
	asOf := h.now()
	if raw := ctx.QueryArgs().Peek("as_of"); len(raw) > 0 {
		parsed, err := time.Parse(time.RFC3339, string(raw))
		if err != nil {
			httputil.WriteError(ctx, h.mapper, errInvalidAsOf)
			return
		}
		asOf = parsed
	}

	code, published, err := h.scheduler.PublishDueForCurrent(ctx, asOf)
	if err != nil {
		h.logger.Error().Err(err).Msg("publish due items failed")
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, dto.PublishDueResponse{
		StateCode: code,
		Published: published,
	})
}
