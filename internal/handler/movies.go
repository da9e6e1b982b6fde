package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/filmatch/match-service/internal/domain"
)

// GET /movies/popular
func (h *Handler) GetPopularMovies(w http.ResponseWriter, r *http.Request) {
	page, ok := pageQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page parameter")
		return
	}

	result, err := h.service.GetPopularMovies(r.Context(), page)
	if err != nil {
		catalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /movies/search
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Missing query parameter")
		return
	}

	page, ok := pageQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page parameter")
		return
	}

	result, err := h.service.SearchMovies(r.Context(), query, page)
	if err != nil {
		catalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /movies/discover
func (h *Handler) DiscoverMovies(w http.ResponseWriter, r *http.Request) {
	page, ok := pageQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page parameter")
		return
	}

	q := domain.DiscoverQuery{
		Page:   page,
		SortBy: r.URL.Query().Get("sort_by"),
	}
	if genreStr := r.URL.Query().Get("genre"); genreStr != "" {
		genreID, err := strconv.ParseInt(genreStr, 10, 64)
		if err != nil || genreID <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid genre parameter")
			return
		}
		q.GenreID = genreID
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1870 || year > 2100 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid year parameter")
			return
		}
		q.Year = year
	}

	result, err := h.service.DiscoverMovies(r.Context(), q)
	if err != nil {
		catalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /genres
func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetGenres(r.Context())
	if err != nil {
		catalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func catalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable",
			"Movie catalog is temporarily unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}
