package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"counsel/internal/advisor"
	"counsel/internal/advisor/metrics"
	"counsel/internal/domain"
	"counsel/internal/history"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/requestcontext"
)

// Service defines the interface for advisory operations.
type Service interface {
	Advise(ctx context.Context, q advisor.Query, opts advisor.Options) (*domain.Result, error)
	History(n int) []history.Entry
}

// Handler wires advisory endpoints to the advisor service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs an advisor handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts advisory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/advise", h.HandleAdvise)
	r.Get("/advise/history", h.HandleHistory)
}

// HandleAdvise handles POST /advise requests.
func (h *Handler) HandleAdvise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AdviseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Advise(ctx, req.Query(), req.AdviseOptions())
	if err != nil {
		h.logger.ErrorContext(ctx, "advise failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "advise handled",
		"request_id", requestID,
		"advice_id", result.ID,
		"recommendations", len(result.Recommendations),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleHistory handles GET /advise/history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultCapacity
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries := h.service.History(limit)
	httputil.WriteJSON(w, http.StatusOK, FromHistory(entries))
}
