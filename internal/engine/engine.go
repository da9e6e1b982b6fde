// Package engine implements the recommendation scoring engine: taste-profile
// extraction, candidate sourcing, multi-factor scoring, selection with
// normalized match percentages, and explanation generation.
//
// The engine is a pure function over its collaborators. Each request builds
// its own taste profile and candidate pool; nothing is cached or shared
// between invocations.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/filmatch/match-service/internal/domain"
	"github.com/rs/zerolog"
)

const maxFavoriteGenres = 5

// Catalog is the read-only movie-metadata source the engine draws
// candidates from.
type Catalog interface {
	Discover(ctx context.Context, q domain.DiscoverQuery) (*domain.MoviePage, error)
	Popular(ctx context.Context, page int) (*domain.MoviePage, error)
}

// Request carries everything a recommendation invocation needs. History and
// favorite genres come from the caller so the engine itself never touches
// the store.
type Request struct {
	Page             int
	FavoriteGenreIDs []int64
	History          []domain.Rating
	GenreNames       map[int64]string
}

type Engine struct {
	catalog Catalog
	now     func() time.Time
	newRNG  func() *rand.Rand
	log     zerolog.Logger
}

// Option overrides an engine default; used by tests to pin the clock and
// the randomness source.
type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithRandSource(newRNG func() *rand.Rand) Option {
	return func(e *Engine) { e.newRNG = newRNG }
}

func New(catalog Catalog, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		now:     time.Now,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		log: log.With().Str("component", "engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend produces one page of ranked, explained suggestions. With no
// favorite genres yet (cold start) or an empty unrated pool it degrades to
// the unscored popular page. A catalog failure surfaces as an error; the
// caller owns the final popular-page fallback.
func (e *Engine) Recommend(ctx context.Context, req Request) (*domain.RecommendationResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	favorites := req.FavoriteGenreIDs
	if len(favorites) > maxFavoriteGenres {
		favorites = favorites[:maxFavoriteGenres]
	}

	if len(favorites) == 0 {
		e.log.Debug().Int("page", page).Msg("cold start, serving popular")
		return e.popularPage(ctx, page)
	}

	rng := e.newRNG()

	pool, err := e.sourceCandidates(ctx, rng, page, favorites, req.History)
	if err != nil {
		return nil, fmt.Errorf("source candidates: %w", err)
	}
	if len(pool) == 0 {
		e.log.Debug().Int("page", page).Msg("empty unrated pool, serving popular")
		return e.popularPage(ctx, page)
	}

	favoriteSet := make(map[int64]bool, len(favorites))
	for _, id := range favorites {
		favoriteSet[id] = true
	}
	disliked := dislikedGenreSets(req.History)
	likedCount := 0
	for _, r := range req.History {
		if r.Liked() {
			likedCount++
		}
	}

	now := e.now()
	scored := make([]scoredCandidate, 0, len(pool))
	for _, c := range pool {
		scored = append(scored, scoreCandidate(c, favoriteSet, disliked, now))
	}

	rankCandidates(rng, scored)
	selected := selectWindow(scored, page)
	percents := normalizePercent(selected)

	recs := make([]domain.Recommendation, 0, len(selected))
	for i, s := range selected {
		recs = append(recs, domain.Recommendation{
			Candidate: s.candidate,
			Match:     buildBreakdown(s, percents[i], req.GenreNames, favoriteSet, likedCount),
		})
	}

	e.log.Debug().Int("page", page).Int("pool", len(pool)).Int("selected", len(recs)).Msg("recommendations generated")

	return &domain.RecommendationResult{
		Page:            page,
		Personalized:    true,
		Recommendations: recs,
	}, nil
}

// popularPage serves the generic popular movies list verbatim, unscored.
func (e *Engine) popularPage(ctx context.Context, page int) (*domain.RecommendationResult, error) {
	p, err := e.catalog.Popular(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("fetch popular page %d: %w", page, err)
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
