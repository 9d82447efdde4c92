package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/application"
	"github.com/ericfisherdev/sitesettings/internal/domain/model"
	"github.com/ericfisherdev/sitesettings/internal/domain/port/driven"
)

// maxRequestBody caps override request bodies.
const maxRequestBody = 64 << 10

// Handler is the HTTP driving adapter that serves the settings API.
type Handler struct {
	provider  *application.SettingsProvider
	overrides *application.OverrideService
	limiter   driven.RateLimiter
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. limiter
// throttles the write endpoints per client; nil disables throttling.
func NewHandler(
	provider *application.SettingsProvider,
	overrides *application.OverrideService,
	limiter driven.RateLimiter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		provider:  provider,
		overrides: overrides,
		limiter:   limiter,
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with no-cache, recovery, and logging middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("GET /api/v1/settings/reveal", h.GetRevealConfig)
	mux.HandleFunc("GET /api/v1/settings/colors", h.GetColors)
	mux.Handle("POST /api/v1/settings/reload", h.limitWrites(h.Reload))
	mux.HandleFunc("GET /api/v1/overrides", h.ListOverrides)
	mux.Handle("PUT /api/v1/overrides/{key}", h.limitWrites(h.SetOverride))
	mux.Handle("DELETE /api/v1/overrides/{key}", h.limitWrites(h.DeleteOverride))
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := noCacheMiddleware(mux)
	wrapped = recoveryMiddleware(logger, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// GetSettings returns the current site settings aggregate.
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toSettingsResponse(h.provider.Current()))
}

// GetRevealConfig returns the reveal options. The optional delay query
// parameter sets the delay in milliseconds; without it the default is used.
func (h *Handler) GetRevealConfig(w http.ResponseWriter, r *http.Request) {
	var delay *float64

	if raw := r.URL.Query().Get("delay"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
			writeError(w, http.StatusBadRequest, "invalid delay: expected a finite number of milliseconds")
			return
		}
		delay = &d
	}

	writeJSON(w, http.StatusOK, toRevealConfigResponse(h.provider.RevealConfig(delay)))
}

// GetColors returns the color palette.
func (h *Handler) GetColors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toColorsResponse(h.provider.Current().Colors))
}

// Reload rebuilds the settings snapshot from its sources.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Reload(r.Context()); err != nil {
		h.logger.Error("manual reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "reload failed: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOverrides returns every stored override.
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.overrides.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list overrides", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		resp = append(resp, toOverrideResponse(o))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SetOverride stores an override for the key in the path.
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req SetOverrideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	override, err := h.overrides.Set(r.Context(), key, *req.Value)
	if err != nil {
		h.writeOverrideError(w, key, err)
		return
	}

	writeJSON(w, http.StatusOK, toOverrideResponse(override))
}

// DeleteOverride removes the override for the key in the path.
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.overrides.Delete(r.Context(), key); err != nil {
		h.writeOverrideError(w, key, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	if loadedAt := h.provider.LoadedAt(); !loadedAt.IsZero() {
		resp.LoadedAt = loadedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeOverrideError(w http.ResponseWriter, key string, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownOverrideKey):
		writeError(w, http.StatusNotFound, "unknown override key: "+key)
	case errors.Is(err, model.ErrInvalidSettings):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("override operation failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
