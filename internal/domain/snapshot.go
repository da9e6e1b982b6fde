package domain

import "encoding/json"

// MovieSnapshot is the denormalized catalog snapshot captured at rating time.
type MovieSnapshot struct {
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage float64  `json:"vote_average"`
	GenreIDs    []int64  `json:"genre_ids"`
	Director    string   `json:"director,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Studio      string   `json:"studio,omitempty"`
}

// DecodeSnapshot normalizes a stored movie snapshot into its canonical shape.
// The raw value may be a JSON object, a JSON string containing a serialized
// object, or absent entirely. Anything unparseable decodes to the empty
// snapshot rather than an error, so a corrupt record never aborts profile
// building.
func DecodeSnapshot(raw json.RawMessage) MovieSnapshot {
	var snap MovieSnapshot
	if len(raw) == 0 {
		return snap
	}

	if err := json.Unmarshal(raw, &snap); err == nil {
		return snap
	}

	// Some clients persist the snapshot double-encoded as a JSON string.
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return MovieSnapshot{}
	}
	var decoded MovieSnapshot
	if err := json.Unmarshal([]byte(inner), &decoded); err != nil {
		return MovieSnapshot{}
	}
	return decoded
}
