package http

import (
	"github.com/valyala/fasthttp"

	"github.com/Conte777/brewquest/internal/domain/health/deps"
	"github.com/Conte777/brewquest/internal/domain/health/entities"
	"github.com/Conte777/brewquest/pkg/httputil"
)

// Handler serves the liveness report
type Handler struct {
	checker deps.Checker
}

func NewHandler(checker deps.Checker) *Handler {
	return &Handler{checker: checker}
}

// Handle handles GET /health. A degraded service still answers 200.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	report := h.checker.Check(ctx)
	httputil.WriteHealthResponse(ctx, report, report.Status != entities.StatusUnhealthy)
}
