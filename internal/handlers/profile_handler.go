package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawmart/storefront-backend/internal/models"
	"github.com/pawmart/storefront-backend/internal/repository"
)

// ProfileHandler handles user profile HTTP requests. The backing
// document store is optional: when it is not configured the endpoints
// respond 503 without affecting cart or checkout.
type ProfileHandler struct {
	repo   repository.ProfileRepository // nil when Mongo is not configured
	logger *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(repo repository.ProfileRepository, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		repo:   repo,
		logger: logger,
	}
}

// GetProfile handles GET /api/profile/{userId}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		WriteError(w, http.StatusServiceUnavailable, "Profile storage is unavailable", h.logger)
		return
	}

	id := chi.URLParam(r, "userId")
	profile, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			WriteError(w, http.StatusNotFound, "Profile not found", h.logger)
			return
		}
		h.logger.Error("failed to get profile", "user_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, profile, h.logger)
}

// UpdateProfile handles PUT /api/profile/{userId}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		WriteError(w, http.StatusServiceUnavailable, "Profile storage is unavailable", h.logger)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.logger.Error("failed to decode profile", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	profile.UserID = chi.URLParam(r, "userId")

	if err := h.repo.Upsert(r.Context(), &profile); err != nil {
		h.logger.Error("failed to save profile", "user_id", profile.UserID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to save profile", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, profile, h.logger)
}
