package domain

// TasteProfile summarizes a user's liked movies across four attribute
// dimensions. Built fresh per request from rating history; never persisted.
type TasteProfile struct {
	Keywords  map[string]int
	Directors map[string]int
	Actors    map[string]int
	Studios   map[string]int
}

func NewTasteProfile() TasteProfile {
	return TasteProfile{
		Keywords:  make(map[string]int),
		Directors: make(map[string]int),
		Actors:    make(map[string]int),
		Studios:   make(map[string]int),
	}
}

// Age categories assigned by the scorer from a candidate's release year.
const (
	AgeRecent        = "Recent"
	AgeRecentHit     = "Recent Hit"
	AgeModernClassic = "Modern Classic"
	AgeClassic       = "Classic"
)

// MatchBreakdown explains one recommendation to the user. Percentage is
// always within [50, 99] and Reasons is never empty.
type MatchBreakdown struct {
	Percentage       int      `json:"percentage"`
	GenreMatches     int      `json:"genre_matches"`
	GenreMatchNames  []string `json:"genre_match_names"`
	QualityScore     float64  `json:"quality_score"`
	AgeCategory      string   `json:"age_category"`
	TotalLikedMovies int      `json:"total_liked_movies"`
	Reasons          []string `json:"reasons"`
}

// Recommendation pairs a candidate with its match breakdown. Match is nil on
// the cold-start and fallback paths, where results are served unscored.
type Recommendation struct {
	Candidate
	Match *MatchBreakdown `json:"match,omitempty"`
}

type RecommendationResult struct {
	Page            int              `json:"page"`
	Personalized    bool             `json:"personalized"`
	Recommendations []Recommendation `json:"recommendations"`
}

type RecommendationMeta struct {
	Personalized bool   `json:"personalized"`
	GeneratedAt  string `json:"generated_at"`
	TotalCount   int    `json:"total_count"`
}
