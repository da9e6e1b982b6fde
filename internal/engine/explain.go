package engine

import (
	"fmt"

	"github.com/filmatch/match-service/internal/domain"
)

const highQualityThreshold = 7.5

// buildBreakdown turns one selected candidate's score components into the
// user-facing match breakdown. Reasons are appended in priority order and the
// list is never empty: a generic fallback covers candidates where no
// specific factor fired.
func buildBreakdown(s scoredCandidate, percent int, genreNames map[int64]string, favorites map[int64]bool, likedCount int) *domain.MatchBreakdown {
	var matchNames []string
	for _, id := range s.candidate.GenreIDs {
		if !favorites[id] {
			continue
		}
		if name, ok := genreNames[id]; ok {
			matchNames = append(matchNames, name)
		}
	}

	var reasons []string
	if s.genreMatches > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches %d of your favorite genres", s.genreMatches))
	}
	if s.candidate.VoteAverage >= highQualityThreshold {
		reasons = append(reasons, fmt.Sprintf("Highly rated at %.1f/10", s.candidate.VoteAverage))
	}
	if s.ageCategory != domain.AgeRecent {
		reasons = append(reasons, s.ageCategory)
	}
	if likedCount > 5 && s.genreMatches >= 2 {
		reasons = append(reasons, "Strong genre alignment with your taste")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Popular with viewers like you")
	}

	return &domain.MatchBreakdown{
		Percentage:       percent,
		GenreMatches:     s.genreMatches,
		GenreMatchNames:  matchNames,
		QualityScore:     s.candidate.VoteAverage,
		AgeCategory:      s.ageCategory,
		TotalLikedMovies: likedCount,
		Reasons:          reasons,
	}
}
