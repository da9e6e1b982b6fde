package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/filmatch/match-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// POST /users/{userID}/ratings
func (h *Handler) RateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed request body")
		return
	}
	if req.MovieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie_id")
		return
	}
	value := domain.RatingValue(req.Rating)
	if value != domain.RatingLiked && value != domain.RatingDisliked {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Rating must be 1 or -1")
		return
	}

	if err := h.service.RateMovie(r.Context(), userID, req.MovieID, value, req.MovieData); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save rating")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /users/{userID}/preferences/{genreID}
func (h *Handler) SetGenrePreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	genreID, err := strconv.ParseInt(chi.URLParam(r, "genreID"), 10, 64)
	if err != nil || genreID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid genre_id parameter")
		return
	}

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Weight < 0 {
		writeError(w, http.StatusBadRequest, "invalid_body", "Weight must be a non-negative integer")
		return
	}

	if err := h.service.SetGenrePreference(r.Context(), userID, genreID, req.Weight); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save preference")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /users/{userID}/data
func (h *Handler) ClearUserData(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	if err := h.service.ClearUserData(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to clear user data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
