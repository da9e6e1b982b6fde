package engine

import (
	"math"
	"strconv"
	"time"

	"github.com/filmatch/match-service/internal/domain"
)

// Scoring weights. Relative magnitudes are deliberate: genre affinity
// dominates, quality comes second, vote volume and popularity are
// log-damped and capped so blockbusters cannot swamp the ranking.
const (
	genreMatchWeight    = 100.0
	qualityWeight       = 15.0
	reliabilityFactor   = 3.0
	reliabilityCap      = 30.0
	popularityFactor    = 2.0
	popularityCap       = 20.0
	dislikeGenrePenalty = 15.0
)

type scoredCandidate struct {
	candidate    domain.Candidate
	score        float64
	genreMatches int
	ageCategory  string
}

// scoreCandidate assigns one candidate its raw desirability score along with
// the components the explanation generator needs. Scores are unbounded and
// may go negative after dislike penalties; normalization happens later.
func scoreCandidate(c domain.Candidate, favorites map[int64]bool, dislikedGenres [][]int64, now time.Time) scoredCandidate {
	matches := 0
	for _, id := range c.GenreIDs {
		if favorites[id] {
			matches++
		}
	}

	score := genreMatchWeight * float64(matches)
	score += qualityWeight * c.VoteAverage
	score += math.Min(reliabilityFactor*math.Log(float64(c.VoteCount)+1), reliabilityCap)
	score += math.Min(popularityFactor*math.Log(c.Popularity+1), popularityCap)

	ageBonus, ageCategory := ageBonusFor(c.ReleaseDate, now)
	score += ageBonus

	// Each disliked movie with overlapping genres compounds the penalty:
	// repeated aversion to a genre should weigh more than a single signal.
	for _, genres := range dislikedGenres {
		score -= dislikeGenrePenalty * float64(sharedGenres(c.GenreIDs, genres))
	}

	return scoredCandidate{
		candidate:    c,
		score:        score,
		genreMatches: matches,
		ageCategory:  ageCategory,
	}
}

// ageBonusFor offsets the recency bias of the sourcing queries: the older
// the release, the larger the bonus.
func ageBonusFor(releaseDate string, now time.Time) (float64, string) {
	year := releaseYear(releaseDate)
	if year == 0 {
		return 0, domain.AgeRecent
	}

	age := now.Year() - year
	switch {
	case age > 40:
		return 20, domain.AgeClassic
	case age > 10:
		return 15, domain.AgeModernClassic
	case age > 5:
		return 10, domain.AgeRecentHit
	default:
		return 0, domain.AgeRecent
	}
}

func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

func sharedGenres(a, b []int64) int {
	shared := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				shared++
				break
			}
		}
	}
	return shared
}

// dislikedGenreSets extracts the genre id list of every disliked movie's
// snapshot, one entry per disliked rating.
func dislikedGenreSets(history []domain.Rating) [][]int64 {
	var sets [][]int64
	for _, r := range history {
		if !r.Disliked() {
			continue
		}
		snap := domain.DecodeSnapshot(r.MovieData)
		if len(snap.GenreIDs) > 0 {
			sets = append(sets, snap.GenreIDs)
		}
	}
	return sets
}
