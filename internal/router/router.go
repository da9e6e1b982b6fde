package router

import (
	"net/http"
	"time"

	"github.com/filmatch/match-service/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Catalog pass-throughs
	r.Get("/movies/popular", h.GetPopularMovies)
	r.Get("/movies/search", h.SearchMovies)
	r.Get("/movies/discover", h.DiscoverMovies)
	r.Get("/genres", h.GetGenres)

	// Per-user routes
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/recommendations", h.GetRecommendations)
		r.Post("/ratings", h.RateMovie)
		r.Put("/preferences/{genreID}", h.SetGenrePreference)
		r.Get("/watchlist", h.GetWatchlist)
		r.Post("/watchlist", h.AddToWatchlist)
		r.Get("/watchlist/{movieID}", h.GetWatchlistStatus)
		r.Delete("/watchlist/{movieID}", h.RemoveFromWatchlist)
		r.Post("/chat", h.Chat)
		r.Delete("/data", h.ClearUserData)
	})

	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
