package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/filmatch/match-service/internal/domain"
)

// GET /users/{userID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	page, ok := pageQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page parameter")
		return
	}

	result, err := h.service.GetRecommendations(r.Context(), userID, page)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		// The service already degraded as far as it could; reaching here
		// means even the popular page was unavailable.
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable",
			"Movie catalog is temporarily unavailable")
		return
	}

	resp := RecommendationResponse{
		UserID:          userID,
		Page:            result.Page,
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			Personalized: result.Personalized,
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			TotalCount:   len(result.Recommendations),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
