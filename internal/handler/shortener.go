package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/penshort/userlinks/internal/handler/dto"
	"github.com/penshort/userlinks/internal/service"
)

// Shortener API messages.
const (
	MsgURLRequired       = "URL is required in request body"
	MsgInvalidURL        = "Invalid URL provided"
	MsgShortCodeNotFound = "Short code not found"
	MsgShortenerRunning  = "URL Shortener API is running"
)

const shortCodeParam = "short_code"

// ShortenerHandler handles HTTP requests for the URL shortener.
type ShortenerHandler struct {
	svc    *service.ShortenerService
	logger *slog.Logger
}

// NewShortenerHandler creates a new ShortenerHandler.
func NewShortenerHandler(svc *service.ShortenerService, logger *slog.Logger) *ShortenerHandler {
	return &ShortenerHandler{
		svc:    svc,
		logger: logger,
	}
}

// Health handles GET /api/health.
func (h *ShortenerHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.StatusResponse{
		Status:  "ok",
		Message: MsgShortenerRunning,
	})
}

// Shorten handles POST /api/shorten.
func (h *ShortenerHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	var req dto.ShortenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == nil {
		writeError(w, http.StatusBadRequest, MsgURLRequired)
		return
	}

	mapping, err := h.svc.Shorten(r.Context(), *req.URL)
	if err != nil {
		h.handleServiceError(w, "shorten", err)
		return
	}

	h.logger.Info("url_shortened", "short_code", mapping.ShortCode)
	writeJSON(w, http.StatusCreated, dto.ShortenResponse{
		ShortCode: mapping.ShortCode,
		ShortURL:  h.svc.ShortURL(mapping.ShortCode),
	})
}

// Redirect handles GET /{short_code}.
func (h *ShortenerHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, shortCodeParam)

	mapping, err := h.svc.Resolve(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, "redirect", err)
		return
	}

	h.logger.Info("redirect_success",
		"short_code", code,
		"clicks", mapping.Clicks,
	)
	http.Redirect(w, r, mapping.OriginalURL, http.StatusFound)
}

// Stats handles GET /api/stats/{short_code}.
func (h *ShortenerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	mapping, err := h.svc.Stats(r.Context(), chi.URLParam(r, shortCodeParam))
	if err != nil {
		h.handleServiceError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToStatsResponse(mapping))
}

// Mappings handles GET /api/debug/mappings.
func (h *ShortenerHandler) Mappings(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.Mappings(r.Context())
	if err != nil {
		h.handleServiceError(w, "mappings", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToMappingsResponse(snapshot))
}

// handleServiceError maps service errors to HTTP responses.
func (h *ShortenerHandler) handleServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, MsgInvalidURL)
	case errors.Is(err, service.ErrShortCodeNotFound):
		writeError(w, http.StatusNotFound, MsgShortCodeNotFound)
	default:
		h.logger.Error("internal_error", "operation", op, "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternalError)
	}
}
