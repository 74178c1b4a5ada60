package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/newsletter/deps"
	"github.com/Conte777/brewquest/internal/domain/newsletter/dto"
	newslettererrors "github.com/Conte777/brewquest/internal/domain/newsletter/errors"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
	"github.com/Conte777/brewquest/pkg/httputil"
)

var errInvalidBody = pkgerrors.NewValidationError("invalid_body", "invalid request body")

// Handler serves newsletter subscription endpoints
type Handler struct {
	dispatcher deps.Dispatcher
	mapper     *pkgerrors.Mapper
	logger     zerolog.Logger
}

func NewHandler(dispatcher deps.Dispatcher, mapper *pkgerrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		mapper:     mapper,
		logger:     logger.With().Str("handler", "newsletter").Logger(),
	}
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *Handler) Subscribe(ctx *fasthttp.RequestCtx) {
	var req dto.SubscribeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteError(ctx, h.mapper, errInvalidBody)
		return
	}

	sub, err := h.dispatcher.Subscribe(ctx, req.Email)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponseWithStatus(ctx, dto.SubscribeResponse{
		Email:  sub.Email,
		Active: sub.IsActive,
	}, fasthttp.StatusCreated)
}

// Unsubscribe handles GET /api/newsletter/unsubscribe?token=
func (h *Handler) Unsubscribe(ctx *fasthttp.RequestCtx) {
	token := string(ctx.QueryArgs().Peek("token"))
	if token == "" {
		httputil.WriteError(ctx, h.mapper, newslettererrors.ErrInvalidToken)
		return
	}

	if err := h.dispatcher.Unsubscribe(ctx, token); err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, dto.UnsubscribeResponse{Unsubscribed: true})
}
