// Package store persists ratings, genre preferences, and watchlist entries,
// all scoped by user id.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ClearUserData removes every rating, genre preference, and watchlist entry
// for the user. Backs the explicit "clear all data" action; nothing else
// deletes user state.
func (s *Store) ClearUserData(ctx context.Context, userID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin clear user data: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"ratings", "genre_preferences", "watchlist"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1", userID); err != nil {
			return fmt.Errorf("clear %s for user %d: %w", table, userID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit clear user data: %w", err)
	}
	return nil
}
