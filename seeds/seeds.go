// Package seeds populates a development database with a small set of users,
// ratings, and watchlist entries so recommendations are exercisable locally.
package seeds

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const seedUsers = 5

// TMDB genre ids.
const (
	genreAction    = 28
	genreAdventure = 12
	genreAnimation = 16
	genreComedy    = 35
	genreCrime     = 80
	genreDrama     = 18
	genreHorror    = 27
	genreSciFi     = 878
	genreThriller  = 53
)

type seedMovie struct {
	ID       int64
	Title    string
	Vote     float64
	Genres   []int64
	Director string
	Cast     []string
	Keywords []string
	Studio   string
}

var seedMovies = []seedMovie{
	{101, "Midnight Pursuit", 7.4, []int64{genreAction, genreThriller}, "Lena Ng", []string{"Marcus Hale", "Ava Reyes"}, []string{"heist", "chase"}, "Vantage Pictures"},
	{102, "The Quiet Orchard", 8.1, []int64{genreDrama}, "Paul Imura", []string{"June Carmody"}, []string{"family", "grief"}, "Stillwater Films"},
	{103, "Laugh Track", 6.8, []int64{genreComedy}, "Dana Wolfe", []string{"Benny Ortiz", "Priya Shah"}, []string{"sitcom", "satire"}, "Harlequin Studios"},
	{104, "Event Horizon Delta", 7.9, []int64{genreSciFi, genreThriller}, "Theo Brandt", []string{"Ava Reyes", "Ken Watari"}, []string{"space", "first contact"}, "Ion Light"},
	{105, "Copper Alley", 7.2, []int64{genreCrime, genreDrama}, "Lena Ng", []string{"Marcus Hale"}, []string{"detective", "corruption"}, "Vantage Pictures"},
	{106, "Paper Lanterns", 8.4, []int64{genreAnimation, genreAdventure}, "Mei Sato", []string{"(voice) Lily Chen"}, []string{"coming of age", "festival"}, "Kitsune Animation"},
	{107, "The Hollow Below", 6.5, []int64{genreHorror, genreThriller}, "Ruben Voss", []string{"Priya Shah"}, []string{"cave", "isolation"}, "Blackpine"},
	{108, "Second Serve", 7.0, []int64{genreComedy, genreDrama}, "Dana Wolfe", []string{"June Carmody", "Benny Ortiz"}, []string{"tennis", "comeback"}, "Harlequin Studios"},
	{109, "Orbital Decay", 7.6, []int64{genreSciFi}, "Theo Brandt", []string{"Ken Watari"}, []string{"space station", "survival"}, "Ion Light"},
	{110, "Driftwood", 8.0, []int64{genreDrama, genreAdventure}, "Paul Imura", []string{"Ava Reyes"}, []string{"sailing", "solitude"}, "Stillwater Films"},
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE ratings, genre_preferences, watchlist
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting ratings")
	likesByGenre, err := seedRatings(ctx, pool, rng)
	if err != nil {
		return fmt.Errorf("seed ratings: %w", err)
	}

	log.Println("[seed] inserting genre preferences")
	if err := seedPreferences(ctx, pool, likesByGenre); err != nil {
		return fmt.Errorf("seed preferences: %w", err)
	}

	log.Println("[seed] inserting watchlist")
	if err := seedWatchlist(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed watchlist: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func snapshotJSON(m seedMovie) []byte {
	data, _ := json.Marshal(map[string]any{
		"title":        m.Title,
		"poster_path":  fmt.Sprintf("/posters/%d.jpg", m.ID),
		"vote_average": m.Vote,
		"genre_ids":    m.Genres,
		"director":     m.Director,
		"cast":         m.Cast,
		"keywords":     m.Keywords,
		"studio":       m.Studio,
	})
	return data
}

// seedRatings gives each user a verdict on roughly two thirds of the movie
// set and returns the per-user like counts per genre, which drive the
// preference rows.
func seedRatings(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) (map[int64]map[int64]int64, error) {
	likesByGenre := make(map[int64]map[int64]int64)

	rows := []string{}
	args := []any{}

	for userID := int64(1); userID <= seedUsers; userID++ {
		likesByGenre[userID] = make(map[int64]int64)
		for _, m := range seedMovies {
			if rng.Float64() > 0.65 {
				continue
			}

			rating := 1
			if rng.Float64() < 0.3 {
				rating = -1
			}
			if rating == 1 {
				for _, g := range m.Genres {
					likesByGenre[userID][g]++
				}
			}
			createdAt := time.Now().AddDate(0, 0, -rng.Intn(120))

			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
			args = append(args, userID, m.ID, rating, snapshotJSON(m), createdAt)
		}
	}

	if len(rows) == 0 {
		return likesByGenre, nil
	}

	query := "INSERT INTO ratings (user_id, movie_id, rating, movie_data, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return likesByGenre, err
}

func seedPreferences(ctx context.Context, pool *pgxpool.Pool, likesByGenre map[int64]map[int64]int64) error {
	rows := []string{}
	args := []any{}

	for userID, genres := range likesByGenre {
		for genreID, weight := range genres {
			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
			args = append(args, userID, genreID, weight)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO genre_preferences (user_id, genre_id, weight) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedWatchlist(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	for userID := int64(1); userID <= seedUsers; userID++ {
		for _, m := range seedMovies {
			if rng.Float64() > 0.15 {
				continue
			}
			addedAt := time.Now().AddDate(0, 0, -rng.Intn(60))

			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
			args = append(args, userID, m.ID, snapshotJSON(m), addedAt)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO watchlist (user_id, movie_id, movie_data, added_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}
