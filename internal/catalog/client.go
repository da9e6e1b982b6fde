package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/filmatch/match-service/internal/domain"
	"github.com/rs/zerolog"
)

// Client talks to the movie-metadata catalog (a TMDB-compatible API).
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log.With().Str("component", "catalog").Logger(),
	}
}

// Discover fetches movies matching the query from the discover endpoint.
func (c *Client) Discover(ctx context.Context, q domain.DiscoverQuery) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("sort_by", q.SortBy)
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	params.Set("include_adult", "false")
	if q.GenreID != 0 {
		params.Set("with_genres", strconv.FormatInt(q.GenreID, 10))
	}
	if q.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(q.MinVoteCount))
	}
	if q.MinVoteAverage > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(q.MinVoteAverage, 'f', 1, 64))
	}
	if q.Year != 0 {
		params.Set("primary_release_year", strconv.Itoa(q.Year))
	}
	if q.YearFrom != 0 {
		params.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", q.YearFrom))
	}
	if q.YearTo != 0 {
		params.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", q.YearTo))
	}

	c.log.Debug().Int64("genre_id", q.GenreID).Str("sort_by", q.SortBy).Int("year", q.Year).Msg("discover")
	return c.getPage(ctx, "/discover/movie", params)
}

// Popular fetches the generic popular-movies page.
func (c *Client) Popular(ctx context.Context, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(max(page, 1)))

	c.log.Debug().Int("page", page).Msg("popular")
	return c.getPage(ctx, "/movie/popular", params)
}

// Search fetches movies matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(max(page, 1)))
	params.Set("include_adult", "false")

	c.log.Debug().Str("query", query).Int("page", page).Msg("search")
	return c.getPage(ctx, "/search/movie", params)
}

// Genres fetches the full genre id/name list.
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	body, err := c.get(ctx, "/genre/movie/list", url.Values{})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var result struct {
		Genres []domain.Genre `json:"genres"`
	}
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode genre list: %w", err)
	}
	return result.Genres, nil
}

func (c *Client) getPage(ctx context.Context, path string, params url.Values) (*domain.MoviePage, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var page domain.MoviePage
	if err := json.NewDecoder(body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (io.ReadCloser, error) {
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("catalog %s returned status %d: %s", path, resp.StatusCode, string(msg))
	}
	return resp.Body, nil
}
