package handler

import (
	"encoding/json"

	"github.com/filmatch/match-service/internal/chat"
	"github.com/filmatch/match-service/internal/domain"
)

type RecommendationResponse struct {
	UserID          int64                     `json:"user_id"`
	Page            int                       `json:"page"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RatingRequest struct {
	MovieID   int64           `json:"movie_id"`
	Rating    int             `json:"rating"`
	MovieData json.RawMessage `json:"movie_data,omitempty"`
}

type PreferenceRequest struct {
	Weight int64 `json:"weight"`
}

type WatchlistRequest struct {
	MovieID   int64           `json:"movie_id"`
	MovieData json.RawMessage `json:"movie_data,omitempty"`
}

type WatchlistStatusResponse struct {
	MovieID     int64 `json:"movie_id"`
	InWatchlist bool  `json:"in_watchlist"`
}

type ChatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
