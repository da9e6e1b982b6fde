package engine

import (
	"strings"
	"testing"

	"github.com/filmatch/match-service/internal/domain"
)

var testGenreNames = map[int64]string{28: "Action", 53: "Thriller", 878: "Science Fiction"}

func TestBuildBreakdownAllFactors(t *testing.T) {
	s := scoredCandidate{
		candidate: domain.Candidate{
			ID: 1, VoteAverage: 8.2,
			GenreIDs: []int64{28, 53, 99},
		},
		genreMatches: 2,
		ageCategory:  domain.AgeModernClassic,
	}
	favorites := map[int64]bool{28: true, 53: true}

	b := buildBreakdown(s, 91, testGenreNames, favorites, 12)

	if b.Percentage != 91 {
		t.Errorf("expected percentage 91, got %d", b.Percentage)
	}
	if b.GenreMatches != 2 {
		t.Errorf("expected 2 genre matches, got %d", b.GenreMatches)
	}
	if len(b.GenreMatchNames) != 2 || b.GenreMatchNames[0] != "Action" || b.GenreMatchNames[1] != "Thriller" {
		t.Errorf("unexpected genre match names: %v", b.GenreMatchNames)
	}
	if b.TotalLikedMovies != 12 {
		t.Errorf("expected 12 liked movies, got %d", b.TotalLikedMovies)
	}

	// All four reasons fire, in priority order.
	if len(b.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", b.Reasons)
	}
	if !strings.Contains(b.Reasons[0], "2 of your favorite genres") {
		t.Errorf("expected genre reason first, got %q", b.Reasons[0])
	}
	if !strings.Contains(b.Reasons[1], "8.2") {
		t.Errorf("expected quality reason second, got %q", b.Reasons[1])
	}
	if b.Reasons[2] != domain.AgeModernClassic {
		t.Errorf("expected age category third, got %q", b.Reasons[2])
	}
	if !strings.Contains(b.Reasons[3], "genre alignment") {
		t.Errorf("expected alignment reason last, got %q", b.Reasons[3])
	}
}

func TestBuildBreakdownFallbackReason(t *testing.T) {
	s := scoredCandidate{
		candidate:   domain.Candidate{ID: 1, VoteAverage: 5.1},
		ageCategory: domain.AgeRecent,
	}

	b := buildBreakdown(s, 60, testGenreNames, nil, 0)

	if len(b.Reasons) != 1 {
		t.Fatalf("expected exactly one fallback reason, got %v", b.Reasons)
	}
	if b.Reasons[0] == "" {
		t.Error("fallback reason must not be empty")
	}
}

func TestBuildBreakdownNoAlignmentWithFewRatings(t *testing.T) {
	s := scoredCandidate{
		candidate:    domain.Candidate{ID: 1, VoteAverage: 6.0, GenreIDs: []int64{28, 53}},
		genreMatches: 2,
		ageCategory:  domain.AgeRecent,
	}
	favorites := map[int64]bool{28: true, 53: true}

	// 5 rated movies is not "more than 5"; alignment reason must not fire.
	b := buildBreakdown(s, 80, testGenreNames, favorites, 5)

	for _, reason := range b.Reasons {
		if strings.Contains(reason, "alignment") {
			t.Errorf("alignment reason fired with only 5 liked movies: %v", b.Reasons)
		}
	}
}

func TestBuildBreakdownUnknownGenreNames(t *testing.T) {
	s := scoredCandidate{
		candidate:    domain.Candidate{ID: 1, GenreIDs: []int64{777}},
		genreMatches: 1,
		ageCategory:  domain.AgeRecent,
	}
	favorites := map[int64]bool{777: true}

	b := buildBreakdown(s, 70, map[int64]string{}, favorites, 1)

	// Count still reported even when the name cannot be resolved.
	if b.GenreMatches != 1 {
		t.Errorf("expected 1 genre match, got %d", b.GenreMatches)
	}
	if len(b.GenreMatchNames) != 0 {
		t.Errorf("expected no resolvable names, got %v", b.GenreMatchNames)
	}
}
