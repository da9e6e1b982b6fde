package domain

import (
	"encoding/json"
	"time"
)

type RatingValue int

const (
	RatingLiked    RatingValue = 1
	RatingDisliked RatingValue = -1
)

// Rating is a user's verdict on one movie. At most one Rating exists per
// (user, movie) pair; a new rating for the same movie overwrites the prior one.
type Rating struct {
	MovieID   int64           `json:"movie_id"`
	Rating    RatingValue     `json:"rating"`
	CreatedAt time.Time       `json:"created_at"`
	MovieData json.RawMessage `json:"movie_data,omitempty"`
}

func (r Rating) Liked() bool    { return r.Rating == RatingLiked }
func (r Rating) Disliked() bool { return r.Rating == RatingDisliked }

// GenrePreference is the accumulated like-weight for one genre. Weight only
// grows: +1 per like touching the genre, reset only by clear-all.
type GenrePreference struct {
	GenreID int64 `json:"genre_id"`
	Weight  int64 `json:"weight"`
}

// WatchlistEntry is a movie saved for later. Independent of Rating: a movie
// may be rated and watchlisted at the same time, or neither.
type WatchlistEntry struct {
	MovieID   int64           `json:"movie_id"`
	MovieData json.RawMessage `json:"movie_data,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}
