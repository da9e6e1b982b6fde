package store

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GetFavoriteGenreIDs returns the user's genre ids ordered by descending
// accumulated like-weight. Genres with zero weight never appear.
func (s *Store) GetFavoriteGenreIDs(ctx context.Context, userID int64, limit int) ([]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT genre_id
		FROM genre_preferences
		WHERE user_id = $1 AND weight > 0
		ORDER BY weight DESC, genre_id
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorite genres for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan genre id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite genres: %w", err)
	}
	return ids, nil
}

// UpsertGenrePreference sets the weight for one (user, genre) pair.
func (s *Store) UpsertGenrePreference(ctx context.Context, userID, genreID, weight int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO genre_preferences (user_id, genre_id, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, genre_id)
		DO UPDATE SET weight = EXCLUDED.weight`,
		userID, genreID, weight,
	)
	if err != nil {
		return fmt.Errorf("upsert genre preference user=%d genre=%d: %w", userID, genreID, err)
	}
	return nil
}

// IncrementGenreWeights bumps the weight of every listed genre by one, one
// parallel write per genre. Weights only ever grow through this path.
func (s *Store) IncrementGenreWeights(ctx context.Context, userID int64, genreIDs []int64) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, genreID := range genreIDs {
		genreID := genreID
		g.Go(func() error {
			_, err := s.pool.Exec(gctx,
				`INSERT INTO genre_preferences (user_id, genre_id, weight)
				VALUES ($1, $2, 1)
				ON CONFLICT (user_id, genre_id)
				DO UPDATE SET weight = genre_preferences.weight + 1`,
				userID, genreID,
			)
			if err != nil {
				return fmt.Errorf("increment genre %d for user %d: %w", genreID, userID, err)
			}
			return nil
		})
	}
	return g.Wait()
}
