package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/filmatch/match-service/internal/chat"
	"github.com/filmatch/match-service/internal/domain"
	"github.com/filmatch/match-service/internal/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	ratings      []domain.Rating
	ratingsErr   error
	favorites    []int64
	favoritesErr error

	upserts map[int64]domain.RatingValue
	weights map[int64]int64
	cleared bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		upserts: make(map[int64]domain.RatingValue),
		weights: make(map[int64]int64),
	}
}

func (f *fakeStore) GetAllRatings(ctx context.Context, userID int64) ([]domain.Rating, error) {
	return f.ratings, f.ratingsErr
}

func (f *fakeStore) GetFavoriteGenreIDs(ctx context.Context, userID int64, limit int) ([]int64, error) {
	if f.favoritesErr != nil {
		return nil, f.favoritesErr
	}
	if len(f.favorites) > limit {
		return f.favorites[:limit], nil
	}
	return f.favorites, nil
}

func (f *fakeStore) UpsertRating(ctx context.Context, userID, movieID int64, value domain.RatingValue, snapshot json.RawMessage) error {
	f.upserts[movieID] = value
	return nil
}

func (f *fakeStore) UpsertGenrePreference(ctx context.Context, userID, genreID, weight int64) error {
	f.weights[genreID] = weight
	return nil
}

func (f *fakeStore) IncrementGenreWeights(ctx context.Context, userID int64, genreIDs []int64) error {
	for _, id := range genreIDs {
		f.weights[id]++
	}
	return nil
}

func (f *fakeStore) AddToWatchlist(ctx context.Context, userID, movieID int64, snapshot json.RawMessage) error {
	return nil
}

func (f *fakeStore) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error {
	return nil
}

func (f *fakeStore) InWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	return false, nil
}

func (f *fakeStore) GetWatchlist(ctx context.Context, userID int64) ([]domain.WatchlistEntry, error) {
	return nil, nil
}

func (f *fakeStore) ClearUserData(ctx context.Context, userID int64) error {
	f.cleared = true
	return nil
}

type fakeCatalog struct {
	popular      []domain.Candidate
	popularCalls int
	genres       []domain.Genre
}

func (f *fakeCatalog) Discover(ctx context.Context, q domain.DiscoverQuery) (*domain.MoviePage, error) {
	return &domain.MoviePage{Page: q.Page}, nil
}

func (f *fakeCatalog) Popular(ctx context.Context, page int) (*domain.MoviePage, error) {
	f.popularCalls++
	return &domain.MoviePage{Page: page, Results: f.popular, TotalPages: 1, TotalResults: len(f.popular)}, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	return &domain.MoviePage{Page: page}, nil
}

func (f *fakeCatalog) Genres(ctx context.Context) ([]domain.Genre, error) {
	return f.genres, nil
}

type fakeCache struct {
	popular map[int]*domain.MoviePage
	genres  []domain.Genre
}

func newFakeCache() *fakeCache {
	return &fakeCache{popular: make(map[int]*domain.MoviePage)}
}

func (f *fakeCache) GetPopularPage(ctx context.Context, page int) (*domain.MoviePage, bool, error) {
	p, ok := f.popular[page]
	return p, ok, nil
}

func (f *fakeCache) SetPopularPage(ctx context.Context, page int, result *domain.MoviePage) error {
	f.popular[page] = result
	return nil
}

func (f *fakeCache) GetGenres(ctx context.Context) ([]domain.Genre, bool, error) {
	return f.genres, f.genres != nil, nil
}

func (f *fakeCache) SetGenres(ctx context.Context, genres []domain.Genre) error {
	f.genres = genres
	return nil
}

type fakeCompleter struct {
	system string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, system string, history []chat.Message) (string, error) {
	f.system = system
	return f.reply, f.err
}

func newTestService(st *fakeStore, cat *fakeCatalog, completer *fakeCompleter) *Service {
	eng := engine.New(cat, zerolog.Nop())
	return New(st, cat, newFakeCache(), eng, completer, zerolog.Nop())
}

func popularCandidates(n int) []domain.Candidate {
	out := make([]domain.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Candidate{ID: int64(1000 + i), Title: fmt.Sprintf("Popular %d", i)})
	}
	return out
}

func TestGetRecommendationsFallsBackOnStoreFailure(t *testing.T) {
	st := newFakeStore()
	st.ratingsErr = errors.New("store down")
	cat := &fakeCatalog{popular: popularCandidates(20)}
	svc := newTestService(st, cat, &fakeCompleter{})

	result, err := svc.GetRecommendations(context.Background(), 1, 2)
	require.NoError(t, err, "store failure must not reach the caller")

	popular, err := svc.GetPopularMovies(context.Background(), 2)
	require.NoError(t, err)

	assert.False(t, result.Personalized)
	assert.Equal(t, 2, result.Page)
	require.Len(t, result.Recommendations, len(popular.Results))
	for i, rec := range result.Recommendations {
		assert.Equal(t, popular.Results[i].ID, rec.ID)
		assert.Nil(t, rec.Match)
	}
}

func TestGetRecommendationsFallsBackOnPreferenceFailure(t *testing.T) {
	st := newFakeStore()
	st.favoritesErr = errors.New("store down")
	cat := &fakeCatalog{popular: popularCandidates(5)}
	svc := newTestService(st, cat, &fakeCompleter{})

	result, err := svc.GetRecommendations(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.False(t, result.Personalized)
	assert.Len(t, result.Recommendations, 5)
}

func TestRateMovieLikeIncrementsGenreWeights(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(st, &fakeCatalog{}, &fakeCompleter{})

	snapshot := json.RawMessage(`{"title":"Midnight Pursuit","genre_ids":[28,53]}`)
	require.NoError(t, svc.RateMovie(context.Background(), 1, 101, domain.RatingLiked, snapshot))

	assert.Equal(t, domain.RatingLiked, st.upserts[101])
	assert.Equal(t, int64(1), st.weights[28])
	assert.Equal(t, int64(1), st.weights[53])

	// A second like on the same movie is another like event.
	require.NoError(t, svc.RateMovie(context.Background(), 1, 101, domain.RatingLiked, snapshot))
	assert.Equal(t, int64(2), st.weights[28])
}

func TestRateMovieDislikeLeavesWeightsAlone(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(st, &fakeCatalog{}, &fakeCompleter{})

	snapshot := json.RawMessage(`{"genre_ids":[28,27]}`)
	require.NoError(t, svc.RateMovie(context.Background(), 1, 107, domain.RatingDisliked, snapshot))

	assert.Equal(t, domain.RatingDisliked, st.upserts[107])
	assert.Empty(t, st.weights)
}

func TestGetPopularMoviesUsesCache(t *testing.T) {
	cat := &fakeCatalog{popular: popularCandidates(3)}
	svc := newTestService(newFakeStore(), cat, &fakeCompleter{})

	first, err := svc.GetPopularMovies(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.GetPopularMovies(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, 1, cat.popularCalls, "second call should be served from cache")
}

func TestChatComposesTasteContext(t *testing.T) {
	st := newFakeStore()
	st.ratings = []domain.Rating{
		{MovieID: 101, Rating: domain.RatingLiked, MovieData: json.RawMessage(`{"title":"Midnight Pursuit","genre_ids":[28],"director":"Lena Ng"}`)},
	}
	st.favorites = []int64{28}
	cat := &fakeCatalog{genres: []domain.Genre{{ID: 28, Name: "Action"}}}
	completer := &fakeCompleter{reply: "Try Copper Alley."}
	svc := newTestService(st, cat, completer)

	reply, err := svc.Chat(context.Background(), 1, "what should I watch tonight?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Try Copper Alley.", reply)

	assert.Contains(t, completer.system, "Action")
	assert.Contains(t, completer.system, "Midnight Pursuit")
	assert.Contains(t, completer.system, "Lena Ng")
}

func TestChatUnavailable(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("429")}
	svc := newTestService(newFakeStore(), &fakeCatalog{}, completer)

	_, err := svc.Chat(context.Background(), 1, "hi", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChatUnavailable)
}

func TestClearUserData(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(st, &fakeCatalog{}, &fakeCompleter{})

	require.NoError(t, svc.ClearUserData(context.Background(), 1))
	assert.True(t, st.cleared)
}
