package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"rcgate/internal/birthnumber/service"
	dErrors "rcgate/pkg/domain-errors"
	"rcgate/pkg/platform/httputil"
	"rcgate/pkg/requestcontext"
)

// Service defines the interface for birth number operations.
type Service interface {
	Parse(ctx context.Context, input, separator string) (*service.Result, error)
	Format(ctx context.Context, input, separator string) (string, error)
	ParseBatch(ctx context.Context, inputs []string) ([]service.BatchItem, error)
}

// Handler wires birth number endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a birth number handler with its dependencies.
// A nil logger discards output.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts birth number endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/birth-numbers", func(r chi.Router) {
		r.Post("/parse", h.HandleParse)
		r.Post("/batch", h.HandleBatch)
		r.Get("/{value}/formatted", h.HandleFormatted)
	})
}

// HandleParse handles POST /birth-numbers/parse requests.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ParseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Parse(ctx, *req.Value, req.Separator)
	if err != nil {
		h.logFailure(ctx, "birth number rejected", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "birth number parsed",
		"request_id", requestID,
		"birth_number", result.BirthNumber.Masked(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleBatch handles POST /birth-numbers/batch requests.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	items, err := h.service.ParseBatch(ctx, req.Values)
	if err != nil {
		h.logFailure(ctx, "batch validation failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	resp := FromBatch(items)
	h.logger.InfoContext(ctx, "batch validated",
		"request_id", requestID,
		"size", len(items),
		"valid", resp.Valid,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleFormatted handles GET /birth-numbers/{value}/formatted requests.
func (h *Handler) HandleFormatted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	// chi matches on the escaped path, so "736028%2F0719" arrives undecoded.
	value, err := url.PathUnescape(chi.URLParam(r, "value"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "birth number path segment is not validly escaped"))
		return
	}
	separator := r.URL.Query().Get("separator")

	formatted, err := h.service.Format(ctx, value, separator)
	if err != nil {
		h.logFailure(ctx, "birth number rejected", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FormattedResponse{Formatted: formatted})
}

// logFailure logs only the coded message. Wrapped errors may embed the raw
// input, which must not reach the logs.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"code", code,
			"reason", dErrors.MessageOf(err),
		)
		return
	}
	h.logger.InfoContext(ctx, msg,
		"request_id", requestID,
		"code", code,
		"reason", dErrors.MessageOf(err),
	)
}
