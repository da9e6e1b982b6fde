package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/filmatch/match-service/internal/chat"
	"github.com/filmatch/match-service/internal/domain"
	"github.com/filmatch/match-service/internal/engine"
	"github.com/rs/zerolog"
)

const (
	favoriteGenreLimit = 5
	likedTitlesLimit   = 5
)

// Store is the ratings/preferences/watchlist persistence contract, scoped by
// user id. Failures surface as errors; the service decides how to degrade.
type Store interface {
	GetAllRatings(ctx context.Context, userID int64) ([]domain.Rating, error)
	GetFavoriteGenreIDs(ctx context.Context, userID int64, limit int) ([]int64, error)
	UpsertRating(ctx context.Context, userID, movieID int64, value domain.RatingValue, snapshot json.RawMessage) error
	UpsertGenrePreference(ctx context.Context, userID, genreID, weight int64) error
	IncrementGenreWeights(ctx context.Context, userID int64, genreIDs []int64) error
	AddToWatchlist(ctx context.Context, userID, movieID int64, snapshot json.RawMessage) error
	RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error
	InWatchlist(ctx context.Context, userID, movieID int64) (bool, error)
	GetWatchlist(ctx context.Context, userID int64) ([]domain.WatchlistEntry, error)
	ClearUserData(ctx context.Context, userID int64) error
}

// Catalog is the full read-only movie-metadata contract.
type Catalog interface {
	engine.Catalog
	Search(ctx context.Context, query string, page int) (*domain.MoviePage, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
}

// CatalogCache holds short-TTL copies of user-independent catalog responses.
type CatalogCache interface {
	GetPopularPage(ctx context.Context, page int) (*domain.MoviePage, bool, error)
	SetPopularPage(ctx context.Context, page int, result *domain.MoviePage) error
	GetGenres(ctx context.Context) ([]domain.Genre, bool, error)
	SetGenres(ctx context.Context, genres []domain.Genre) error
}

// Completer is the hosted chat/completion contract.
type Completer interface {
	Complete(ctx context.Context, system string, history []chat.Message) (string, error)
}

type Service struct {
	store   Store
	catalog Catalog
	cache   CatalogCache
	engine  *engine.Engine
	chat    Completer
	log     zerolog.Logger
}

func New(store Store, catalog Catalog, cache CatalogCache, eng *engine.Engine, completer Completer, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		cache:   cache,
		engine:  eng,
		chat:    completer,
		log:     log.With().Str("component", "service").Logger(),
	}
}

// GetRecommendations returns one page of suggestions for the user. Any
// upstream failure degrades to the unpersonalized popular page; the caller
// only sees an error when even that page cannot be fetched.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, page int) (*domain.RecommendationResult, error) {
	if page < 1 {
		page = 1
	}

	history, err := s.store.GetAllRatings(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("rating history unavailable, falling back to popular")
		return s.popularResult(ctx, page)
	}

	favorites, err := s.store.GetFavoriteGenreIDs(ctx, userID, favoriteGenreLimit)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("favorite genres unavailable, falling back to popular")
		return s.popularResult(ctx, page)
	}

	result, err := s.engine.Recommend(ctx, engine.Request{
		Page:             page,
		FavoriteGenreIDs: favorites,
		History:          history,
		GenreNames:       s.genreNameMap(ctx),
	})
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("engine failed, falling back to popular")
		return s.popularResult(ctx, page)
	}
	return result, nil
}

// GetPopularMovies serves the generic popular page, cache first.
func (s *Service) GetPopularMovies(ctx context.Context, page int) (*domain.MoviePage, error) {
	if page < 1 {
		page = 1
	}

	cached, found, err := s.cache.GetPopularPage(ctx, page)
	if err != nil {
		s.log.Warn().Err(err).Int("page", page).Msg("popular cache get failed")
	}
	if found {
		return cached, nil
	}

	result, err := s.catalog.Popular(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch popular page %d: %v", domain.ErrCatalogUnavailable, page, err)
	}

	if err := s.cache.SetPopularPage(ctx, page, result); err != nil {
		s.log.Warn().Err(err).Int("page", page).Msg("popular cache set failed")
	}
	return result, nil
}

func (s *Service) SearchMovies(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.catalog.Search(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("%w: search movies: %v", domain.ErrCatalogUnavailable, err)
	}
	return result, nil
}

func (s *Service) DiscoverMovies(ctx context.Context, q domain.DiscoverQuery) (*domain.MoviePage, error) {
	if q.SortBy == "" {
		q.SortBy = domain.SortPopularityDesc
	}
	result, err := s.catalog.Discover(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: discover movies: %v", domain.ErrCatalogUnavailable, err)
	}
	return result, nil
}

// GetGenres returns the genre taxonomy, cache first.
func (s *Service) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	cached, found, err := s.cache.GetGenres(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("genre cache get failed")
	}
	if found {
		return cached, nil
	}

	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch genres: %v", domain.ErrCatalogUnavailable, err)
	}

	if err := s.cache.SetGenres(ctx, genres); err != nil {
		s.log.Warn().Err(err).Msg("genre cache set failed")
	}
	return genres, nil
}

// RateMovie records a like or dislike. A like also bumps the weight of every
// genre in the snapshot, fanned out as parallel writes.
func (s *Service) RateMovie(ctx context.Context, userID, movieID int64, value domain.RatingValue, snapshot json.RawMessage) error {
	if err := s.store.UpsertRating(ctx, userID, movieID, value, snapshot); err != nil {
		return err
	}

	if value != domain.RatingLiked {
		return nil
	}

	snap := domain.DecodeSnapshot(snapshot)
	if len(snap.GenreIDs) == 0 {
		return nil
	}
	if err := s.store.IncrementGenreWeights(ctx, userID, snap.GenreIDs); err != nil {
		return fmt.Errorf("update genre weights: %w", err)
	}
	return nil
}

func (s *Service) SetGenrePreference(ctx context.Context, userID, genreID, weight int64) error {
	return s.store.UpsertGenrePreference(ctx, userID, genreID, weight)
}

func (s *Service) AddToWatchlist(ctx context.Context, userID, movieID int64, snapshot json.RawMessage) error {
	return s.store.AddToWatchlist(ctx, userID, movieID, snapshot)
}

func (s *Service) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error {
	return s.store.RemoveFromWatchlist(ctx, userID, movieID)
}

func (s *Service) InWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	return s.store.InWatchlist(ctx, userID, movieID)
}

func (s *Service) GetWatchlist(ctx context.Context, userID int64) ([]domain.WatchlistEntry, error) {
	return s.store.GetWatchlist(ctx, userID)
}

func (s *Service) ClearUserData(ctx context.Context, userID int64) error {
	return s.store.ClearUserData(ctx, userID)
}

// Chat answers a user message through the completion service, grounding the
// system context in the same taste profile the engine builds.
func (s *Service) Chat(ctx context.Context, userID int64, message string, history []chat.Message) (string, error) {
	ratings, err := s.store.GetAllRatings(ctx, userID)
	if err != nil {
		// A chat without taste context is still useful.
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("rating history unavailable for chat context")
		ratings = nil
	}

	profile := engine.BuildTasteProfile(ratings)

	var genreNames []string
	if favorites, err := s.store.GetFavoriteGenreIDs(ctx, userID, favoriteGenreLimit); err == nil {
		names := s.genreNameMap(ctx)
		for _, id := range favorites {
			if name, ok := names[id]; ok {
				genreNames = append(genreNames, name)
			}
		}
	}

	var likedTitles []string
	for _, r := range ratings {
		if !r.Liked() {
			continue
		}
		if snap := domain.DecodeSnapshot(r.MovieData); snap.Title != "" {
			likedTitles = append(likedTitles, snap.Title)
		}
		if len(likedTitles) == likedTitlesLimit {
			break
		}
	}

	system := chat.ComposeContext(profile, genreNames, likedTitles)
	messages := append(history, chat.Message{Role: "user", Content: message})

	reply, err := s.chat.Complete(ctx, system, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
	}
	return reply, nil
}

// popularResult wraps the popular page as an unscored recommendation list.
func (s *Service) popularResult(ctx context.Context, page int) (*domain.RecommendationResult, error) {
	p, err := s.GetPopularMovies(ctx, page)
	if err != nil {
		return nil, err
	}

	recs := make([]domain.Recommendation, 0, len(p.Results))
	for _, c := range p.Results {
		recs = append(recs, domain.Recommendation{Candidate: c})
	}
	return &domain.RecommendationResult{
		Page:            page,
		Personalized:    false,
		Recommendations: recs,
	}, nil
}

// genreNameMap resolves genre ids to names; an empty map on failure keeps
// recommendations flowing with unnamed genre matches.
func (s *Service) genreNameMap(ctx context.Context) map[int64]string {
	genres, err := s.GetGenres(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("genre names unavailable")
		return map[int64]string{}
	}

	names := make(map[int64]string, len(genres))
	for _, g := range genres {
		names[g.ID] = g.Name
	}
	return names
}
