package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/filmatch/match-service/internal/domain"
)

// AddToWatchlist saves a movie for later. Adding an already-saved movie
// refreshes its snapshot rather than failing.
func (s *Store) AddToWatchlist(ctx context.Context, userID, movieID int64, snapshot json.RawMessage) error {
	var data any
	if len(snapshot) > 0 {
		data = []byte(snapshot)
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO watchlist (user_id, movie_id, movie_data, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET movie_data = EXCLUDED.movie_data`,
		userID, movieID, data,
	)
	if err != nil {
		return fmt.Errorf("add to watchlist user=%d movie=%d: %w", userID, movieID, err)
	}
	return nil
}

func (s *Store) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2`,
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("remove from watchlist user=%d movie=%d: %w", userID, movieID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWatchlistNotFound
	}
	return nil
}

func (s *Store) InWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlist WHERE user_id = $1 AND movie_id = $2)`,
		userID, movieID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check watchlist user=%d movie=%d: %w", userID, movieID, err)
	}
	return exists, nil
}

// GetWatchlist returns the user's saved movies, most recently added first.
func (s *Store) GetWatchlist(ctx context.Context, userID int64) ([]domain.WatchlistEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT movie_id, movie_data, added_at
		FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query watchlist for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []domain.WatchlistEntry
	for rows.Next() {
		var e domain.WatchlistEntry
		var data []byte
		if err := rows.Scan(&e.MovieID, &data, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		e.MovieData = json.RawMessage(data)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return entries, nil
}
