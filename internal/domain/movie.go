package domain

// Candidate is a catalog movie under consideration for recommendation.
// Sourced from the catalog service; read-only to the engine.
type Candidate struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int64 `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
}

// MoviePage is one page of catalog results.
type MoviePage struct {
	Page         int         `json:"page"`
	Results      []Candidate `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog discovery sort orders.
const (
	SortPopularityDesc  = "popularity.desc"
	SortRatingDesc      = "vote_average.desc"
	SortVoteCountDesc   = "vote_count.desc"
	SortReleaseDateDesc = "primary_release_date.desc"
)

// DiscoverQuery parameterizes one catalog discovery call. Zero values mean
// "no constraint" and are omitted from the outgoing request.
type DiscoverQuery struct {
	GenreID        int64
	SortBy         string
	Page           int
	MinVoteCount   int
	MinVoteAverage float64
	Year           int
	YearFrom       int
	YearTo         int
}
