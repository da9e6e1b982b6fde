package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/filmatch/match-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GET /users/{userID}/watchlist
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	entries, err := h.service.GetWatchlist(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load watchlist")
		return
	}
	if entries == nil {
		entries = []domain.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// POST /users/{userID}/watchlist
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	var req WatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed request body")
		return
	}
	if req.MovieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie_id")
		return
	}

	if err := h.service.AddToWatchlist(r.Context(), userID, req.MovieID, req.MovieData); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save watchlist entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /users/{userID}/watchlist/{movieID}
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := watchlistParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid path parameter")
		return
	}

	if err := h.service.RemoveFromWatchlist(r.Context(), userID, movieID); err != nil {
		if errors.Is(err, domain.ErrWatchlistNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Movie is not in the watchlist")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to remove watchlist entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /users/{userID}/watchlist/{movieID}
func (h *Handler) GetWatchlistStatus(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := watchlistParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid path parameter")
		return
	}

	exists, err := h.service.InWatchlist(r.Context(), userID, movieID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to check watchlist")
		return
	}
	writeJSON(w, http.StatusOK, WatchlistStatusResponse{MovieID: movieID, InWatchlist: exists})
}

func watchlistParams(r *http.Request) (userID, movieID int64, ok bool) {
	userID, ok = userIDParam(r)
	if !ok {
		return 0, 0, false
	}
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil || movieID <= 0 {
		return 0, 0, false
	}
	return userID, movieID, true
}
