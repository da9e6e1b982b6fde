package engine

import "github.com/filmatch/match-service/internal/domain"

// BuildTasteProfile derives a preference summary from a user's rating
// history. Only liked ratings contribute; each liked movie's snapshot adds
// one count per keyword, the director, every listed actor, and the studio.
// Missing or malformed snapshots contribute nothing.
func BuildTasteProfile(history []domain.Rating) domain.TasteProfile {
	profile := domain.NewTasteProfile()

	for _, r := range history {
		if !r.Liked() {
			continue
		}
		snap := domain.DecodeSnapshot(r.MovieData)

		for _, kw := range snap.Keywords {
			profile.Keywords[kw]++
		}
		if snap.Director != "" {
			profile.Directors[snap.Director]++
		}
		for _, actor := range snap.Cast {
			profile.Actors[actor]++
		}
		if snap.Studio != "" {
			profile.Studios[snap.Studio]++
		}
	}

	return profile
}
