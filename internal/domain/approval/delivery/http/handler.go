package http

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/approval/deps"
	"github.com/Conte777/brewquest/internal/domain/approval/dto"
	"github.com/Conte777/brewquest/internal/domain/approval/entities"
	approvalerrors "github.com/Conte777/brewquest/internal/domain/approval/errors"
	pkgerrors "github.com/Conte777/brewquest/pkg/errors"
	"github.com/Conte777/brewquest/pkg/httputil"
)

var errInvalidBody = pkgerrors.NewValidationError("invalid_body", "invalid request body")

// Handler serves admin content approval endpoints
type Handler struct {
	reviewer deps.Reviewer
	mapper   *pkgerrors.Mapper
	logger   zerolog.Logger
}

func NewHandler(reviewer deps.Reviewer, mapper *pkgerrors.Mapper, logger zerolog.Logger) *Handler {
	return &Handler{
		reviewer: reviewer,
		mapper:   mapper,
		logger:   logger.With().Str("handler", "approval").Logger(),
	}
}

// List handles GET /api/admin/approvals?status=
func (h *Handler) List(ctx *fasthttp.RequestCtx) {
	status := entities.Status(ctx.QueryArgs().Peek("status"))

	approvals, err := h.reviewer.List(ctx, status)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, dto.ListResponse{
		Count:     len(approvals),
		Approvals: approvals,
	})
}

// Submit handles POST /api/admin/approvals
func (h *Handler) Submit(ctx *fasthttp.RequestCtx) {
	var req dto.SubmitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteError(ctx, h.mapper, errInvalidBody)
		return
	}

	approval, err := h.reviewer.Submit(ctx, entities.ContentType(req.ContentType), req.ContentRef)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponseWithStatus(ctx, approval, fasthttp.StatusCreated)
}

// Approve handles POST /api/admin/approvals/{id}/approve
func (h *Handler) Approve(ctx *fasthttp.RequestCtx) {
	h.review(ctx, h.reviewer.Approve)
}

// Reject handles POST /api/admin/approvals/{id}/reject
func (h *Handler) Reject(ctx *fasthttp.RequestCtx) {
	h.review(ctx, h.reviewer.Reject)
}

type decision func(ctx context.Context, id uint64, reviewer, notes string) (*entities.Approval, error)

func (h *Handler) review(ctx *fasthttp.RequestCtx, decide decision) {
	id, err := strconv.ParseUint(fmt.Sprint(ctx.UserValue("id")), 10, 64)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, approvalerrors.ErrInvalidID)
		return
	}

	var req dto.ReviewRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			httputil.WriteError(ctx, h.mapper, errInvalidBody)
			return
		}
	}

	approval, err := decide(ctx, id, req.Reviewer, req.Notes)
	if err != nil {
		httputil.WriteError(ctx, h.mapper, err)
		return
	}

	httputil.WriteResponse(ctx, approval)
}
