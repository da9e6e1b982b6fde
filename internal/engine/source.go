package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/filmatch/match-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Era buckets for discovery queries. Recent releases dominate the query mix;
// older eras stay present but underrepresented. Floors loosen with age since
// back-catalog titles accumulate fewer votes.
const (
	recentEraWeight     = 0.6
	recentPastEraWeight = 0.15
	classicEraWeight    = 0.15
	// remaining 0.1 falls through to the pre-1990 bucket

	extraQueryChance = 0.5
)

// buildQueryPlan assembles the discovery queries for one request: per
// favorite genre, one era-bucketed query with a rotated sort order, plus an
// occasional stricter single-year query for variety.
func (e *Engine) buildQueryPlan(rng *rand.Rand, page int, favoriteGenres []int64) []domain.DiscoverQuery {
	sorts := []string{
		domain.SortPopularityDesc,
		domain.SortRatingDesc,
		domain.SortVoteCountDesc,
		domain.SortReleaseDateDesc,
	}
	currentYear := e.now().Year()

	var queries []domain.DiscoverQuery
	for i, genreID := range favoriteGenres {
		q := domain.DiscoverQuery{
			GenreID: genreID,
			SortBy:  sorts[i%len(sorts)],
			Page:    page,
		}
		applyEraBucket(&q, rng, currentYear)
		queries = append(queries, q)

		if rng.Float64() < extraQueryChance {
			queries = append(queries, domain.DiscoverQuery{
				GenreID:        genreID,
				SortBy:         domain.SortRatingDesc,
				Page:           1,
				Year:           currentYear - rng.Intn(25),
				MinVoteCount:   100,
				MinVoteAverage: 7.0,
			})
		}
	}
	return queries
}

func applyEraBucket(q *domain.DiscoverQuery, rng *rand.Rand, currentYear int) {
	r := rng.Float64()
	switch {
	case r < recentEraWeight:
		q.YearFrom = currentYear - 2
		q.MinVoteCount = 200
		q.MinVoteAverage = 6.0
	case r < recentEraWeight+recentPastEraWeight:
		q.YearFrom = currentYear - 10
		q.YearTo = currentYear - 3
		q.MinVoteCount = 300
		q.MinVoteAverage = 6.5
	case r < recentEraWeight+recentPastEraWeight+classicEraWeight:
		q.YearFrom = 1990
		q.YearTo = currentYear - 11
		q.MinVoteCount = 150
		q.MinVoteAverage = 6.5
	default:
		q.YearTo = 1989
		q.MinVoteCount = 50
		q.MinVoteAverage = 6.5
	}
}

// sourceCandidates fans the query plan out against the catalog, merges the
// pages, deduplicates by movie id (first occurrence wins), and drops every
// movie the user has already rated. An empty return is not an error; the
// caller decides whether to fall back to the popular page.
func (e *Engine) sourceCandidates(ctx context.Context, rng *rand.Rand, page int, favoriteGenres []int64, history []domain.Rating) ([]domain.Candidate, error) {
	queries := e.buildQueryPlan(rng, page, favoriteGenres)

	// Fan out; results keep query order so the first-wins merge is
	// deterministic for a pinned rand source.
	pages := make([]*domain.MoviePage, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			result, err := e.catalog.Discover(gctx, q)
			if err != nil {
				return fmt.Errorf("discover genre %d: %w", q.GenreID, err)
			}
			pages[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rated := make(map[int64]bool, len(history))
	for _, r := range history {
		rated[r.MovieID] = true
	}

	seen := make(map[int64]bool)
	var pool []domain.Candidate
	for _, p := range pages {
		for _, c := range p.Results {
			if seen[c.ID] || rated[c.ID] {
				continue
			}
			seen[c.ID] = true
			pool = append(pool, c)
		}
	}
	return pool, nil
}
