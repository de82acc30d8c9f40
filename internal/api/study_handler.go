// Package api provides the HTTP handlers for the study session API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rayn18370-max/Study-Buddy/internal/api/shared"
	"github.com/rayn18370-max/Study-Buddy/internal/domain"
	"github.com/rayn18370-max/Study-Buddy/internal/service"
)

// GenerateRequest is the payload for POST /api/generate.
type GenerateRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=500"`
}

// StudyHandler handles study-session HTTP requests.
type StudyHandler struct {
	service  *service.StudyService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc *service.StudyService, logger *slog.Logger) *StudyHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("study service cannot be nil for StudyHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyHandler{
		service:  svc,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "study_handler")),
	}
}

// Generate handles POST /api/generate.
func (h *StudyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Topic must be between 2 and 500 characters")
		return
	}

	session, err := h.service.Generate(r.Context(), req.Topic)
	switch {
	case errors.Is(err, service.ErrDailyLimitReached):
		shared.RespondWithError(w, r, http.StatusTooManyRequests, "Daily generation limit reached")
		return
	case errors.Is(err, service.ErrGenerationUnavailable):
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Generation is not configured")
		return
	case err != nil:
		h.logger.Error("generation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadGateway, "Failed to generate study material")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// ListSessions handles GET /api/sessions.
func (h *StudyHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	history := h.service.History(r.Context())
	if history == nil {
		// Encode an empty list, not null.
		history = []domain.StudySession{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, history)
}

// GetSession handles GET /api/sessions/{id}.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), id)
	if errors.Is(err, service.ErrSessionNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load session", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, session)
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (h *StudyHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	err := h.service.DeleteSession(r.Context(), id)
	if errors.Is(err, service.ErrSessionNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete session", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetUsage handles GET /api/usage.
func (h *StudyHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.Usage(r.Context()))
}

func (h *StudyHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
