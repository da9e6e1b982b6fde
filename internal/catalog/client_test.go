package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filmatch/match-service/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverEncodesQuery(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/discover/movie", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{"page":1,"results":[{"id":42,"title":"Midnight Pursuit","vote_average":7.4,"genre_ids":[28,53]}],"total_pages":10,"total_results":200}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	page, err := c.Discover(context.Background(), domain.DiscoverQuery{
		GenreID:        28,
		SortBy:         domain.SortRatingDesc,
		Page:           3,
		MinVoteCount:   200,
		MinVoteAverage: 6.5,
		YearFrom:       2010,
		YearTo:         2020,
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "28", gotQuery["with_genres"])
	assert.Equal(t, "vote_average.desc", gotQuery["sort_by"])
	assert.Equal(t, "3", gotQuery["page"])
	assert.Equal(t, "200", gotQuery["vote_count.gte"])
	assert.Equal(t, "6.5", gotQuery["vote_average.gte"])
	assert.Equal(t, "2010-01-01", gotQuery["primary_release_date.gte"])
	assert.Equal(t, "2020-12-31", gotQuery["primary_release_date.lte"])

	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(42), page.Results[0].ID)
	assert.Equal(t, []int64{28, 53}, page.Results[0].GenreIDs)
	assert.Equal(t, 10, page.TotalPages)
}

func TestPopularDefaultsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	_, err := c.Popular(context.Background(), 0)
	require.NoError(t, err)
}

func TestSearchPassesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "paper lanterns", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"results":[{"id":106,"title":"Paper Lanterns"}],"total_pages":1,"total_results":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	page, err := c.Search(context.Background(), "paper lanterns", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Paper Lanterns", page.Results[0].Title)
}

func TestGenres(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/genre/movie/list", r.URL.Path)
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zerolog.Nop())
	genres, err := c.Genres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestNon200SurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", zerolog.Nop())
	_, err := c.Popular(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
