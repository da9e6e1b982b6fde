package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/filmatch/match-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Cache holds short-lived copies of catalog responses that are identical for
// every user: popular pages and the genre list. Personalized results are
// never cached; the engine rebuilds those per request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func popularKey(page int) string {
	return fmt.Sprintf("catalog:popular:page:%d", page)
}

const genresKey = "catalog:genres"

// GetPopularPage returns a cached popular page, reporting whether it was found.
func (c *Cache) GetPopularPage(ctx context.Context, page int) (*domain.MoviePage, bool, error) {
	val, err := c.client.Get(ctx, popularKey(page)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get popular page %d from cache: %w", page, err)
	}

	var result domain.MoviePage
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached popular page %d: %w", page, err)
	}
	return &result, true, nil
}

func (c *Cache) SetPopularPage(ctx context.Context, page int, result *domain.MoviePage) error {
	val, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal popular page: %w", err)
	}
	if err := c.client.Set(ctx, popularKey(page), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set popular page %d in cache: %w", page, err)
	}
	return nil
}

// GetGenres returns the cached genre list, reporting whether it was found.
func (c *Cache) GetGenres(ctx context.Context) ([]domain.Genre, bool, error) {
	val, err := c.client.Get(ctx, genresKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get genres from cache: %w", err)
	}

	var genres []domain.Genre
	if err := json.Unmarshal([]byte(val), &genres); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached genres: %w", err)
	}
	return genres, true, nil
}

func (c *Cache) SetGenres(ctx context.Context, genres []domain.Genre) error {
	val, err := json.Marshal(genres)
	if err != nil {
		return fmt.Errorf("marshal genres: %w", err)
	}
	// Genre taxonomy changes rarely; hold it well past the page TTL.
	if err := c.client.Set(ctx, genresKey, val, 12*time.Hour).Err(); err != nil {
		return fmt.Errorf("set genres in cache: %w", err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
