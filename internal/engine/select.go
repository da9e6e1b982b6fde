package engine

import (
	"math"
	"math/rand"
	"sort"
)

const (
	pageSize = 20

	// Repeated requests for the same page cycle through a few window
	// offsets so refreshes surface different subsets of the top ranks.
	windowOffsets = 3
	windowStep    = 7

	// Score gaps under this fraction of the top score count as ties and
	// are broken randomly.
	tieBand = 0.1

	minPercent = 50
	maxPercent = 99
)

// rankCandidates sorts scored candidates descending, breaking near-ties
// randomly so repeat requests do not render a visibly identical order.
func rankCandidates(rng *rand.Rand, scored []scoredCandidate) {
	top := 0.0
	for _, s := range scored {
		if s.score > top {
			top = s.score
		}
	}
	band := top * tieBand

	sort.Slice(scored, func(i, j int) bool {
		diff := scored[i].score - scored[j].score
		if math.Abs(diff) < band {
			return rng.Intn(2) == 0
		}
		return diff > 0
	})
}

// selectWindow slices one page out of the ranked list. The window start
// cycles with the page number; a short tail is padded from the remaining
// ranked items so a full page is returned whenever enough candidates exist.
func selectWindow(ranked []scoredCandidate, page int) []scoredCandidate {
	if len(ranked) == 0 {
		return nil
	}

	start := ((page - 1) % windowOffsets) * windowStep
	if start >= len(ranked) {
		start = 0
	}

	end := min(start+pageSize, len(ranked))
	selected := make([]scoredCandidate, 0, pageSize)
	selected = append(selected, ranked[start:end]...)

	for i := 0; len(selected) < pageSize && i < start; i++ {
		selected = append(selected, ranked[i])
	}
	return selected
}

// normalizePercent rescales raw scores into display percentages via min-max
// scaling within the selected batch, clamped to [minPercent, maxPercent].
// Every surfaced suggestion reads as a reasonably good match; the spread
// inside the batch still differentiates them.
func normalizePercent(selected []scoredCandidate) []int {
	if len(selected) == 0 {
		return nil
	}

	minScore, maxScore := selected[0].score, selected[0].score
	for _, s := range selected[1:] {
		minScore = math.Min(minScore, s.score)
		maxScore = math.Max(maxScore, s.score)
	}

	span := maxScore - minScore
	percents := make([]int, len(selected))
	for i, s := range selected {
		norm := 0.5
		if span > 0 {
			norm = (s.score - minScore) / span
		}
		pct := minPercent + int(math.Round(norm*float64(maxPercent-minPercent)))
		percents[i] = min(max(pct, minPercent), maxPercent)
	}
	return percents
}
