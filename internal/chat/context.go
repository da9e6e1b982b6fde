package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/filmatch/match-service/internal/domain"
)

const topAttributeCount = 5

// ComposeContext renders the user's taste profile into the system prompt for
// the completion service. The profile comes from the same builder the
// recommendation engine uses.
func ComposeContext(profile domain.TasteProfile, favoriteGenres, likedTitles []string) string {
	var b strings.Builder
	b.WriteString("You are a friendly movie assistant. Suggest movies and answer questions based on the user's taste.\n")

	if len(favoriteGenres) > 0 {
		fmt.Fprintf(&b, "Favorite genres: %s.\n", strings.Join(favoriteGenres, ", "))
	}
	if kws := topAttributes(profile.Keywords, topAttributeCount); len(kws) > 0 {
		fmt.Fprintf(&b, "Recurring themes they enjoy: %s.\n", strings.Join(kws, ", "))
	}
	if dirs := topAttributes(profile.Directors, topAttributeCount); len(dirs) > 0 {
		fmt.Fprintf(&b, "Directors they like: %s.\n", strings.Join(dirs, ", "))
	}
	if actors := topAttributes(profile.Actors, topAttributeCount); len(actors) > 0 {
		fmt.Fprintf(&b, "Actors they like: %s.\n", strings.Join(actors, ", "))
	}
	if studios := topAttributes(profile.Studios, topAttributeCount); len(studios) > 0 {
		fmt.Fprintf(&b, "Studios they gravitate to: %s.\n", strings.Join(studios, ", "))
	}
	if len(likedTitles) > 0 {
		fmt.Fprintf(&b, "Recently liked: %s.\n", strings.Join(likedTitles, ", "))
	}
	if len(favoriteGenres) == 0 && len(likedTitles) == 0 {
		b.WriteString("The user has not rated any movies yet; suggest broadly popular picks.\n")
	}

	return b.String()
}

// topAttributes returns the n highest-count keys, count descending with
// alphabetical tie-break so the prompt is stable across requests.
func topAttributes(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
