package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/filmatch/match-service/internal/domain"
)

// GetAllRatings returns the user's full rating history, newest first.
func (s *Store) GetAllRatings(ctx context.Context, userID int64) ([]domain.Rating, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT movie_id, rating, movie_data, created_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var r domain.Rating
		var data []byte
		if err := rows.Scan(&r.MovieID, &r.Rating, &data, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		r.MovieData = json.RawMessage(data)
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// UpsertRating records a verdict on one movie. Rating the same movie again
// overwrites the prior verdict; no history of changes is kept.
func (s *Store) UpsertRating(ctx context.Context, userID, movieID int64, value domain.RatingValue, snapshot json.RawMessage) error {
	var data any
	if len(snapshot) > 0 {
		data = []byte(snapshot)
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO ratings (user_id, movie_id, rating, movie_data, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET rating = EXCLUDED.rating, movie_data = EXCLUDED.movie_data, created_at = NOW()`,
		userID, movieID, value, data,
	)
	if err != nil {
		return fmt.Errorf("upsert rating user=%d movie=%d: %w", userID, movieID, err)
	}
	return nil
}
