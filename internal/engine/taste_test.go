package engine

import (
	"encoding/json"
	"testing"

	"github.com/filmatch/match-service/internal/domain"
)

func likedRating(movieID int64, snapshot string) domain.Rating {
	return domain.Rating{
		MovieID:   movieID,
		Rating:    domain.RatingLiked,
		MovieData: json.RawMessage(snapshot),
	}
}

func TestBuildTasteProfile(t *testing.T) {
	history := []domain.Rating{
		likedRating(1, `{"keywords":["heist","noir"],"director":"Lena Ng","cast":["Marcus Hale","Ava Reyes"],"studio":"Vantage"}`),
		likedRating(2, `{"keywords":["heist"],"director":"Lena Ng","cast":["Ava Reyes"]}`),
		{MovieID: 3, Rating: domain.RatingDisliked, MovieData: json.RawMessage(`{"keywords":["musical"],"director":"Someone Else"}`)},
	}

	profile := BuildTasteProfile(history)

	if profile.Keywords["heist"] != 2 {
		t.Errorf("expected heist=2, got %d", profile.Keywords["heist"])
	}
	if profile.Keywords["noir"] != 1 {
		t.Errorf("expected noir=1, got %d", profile.Keywords["noir"])
	}
	if profile.Directors["Lena Ng"] != 2 {
		t.Errorf("expected Lena Ng=2, got %d", profile.Directors["Lena Ng"])
	}
	if profile.Actors["Ava Reyes"] != 2 {
		t.Errorf("expected Ava Reyes=2, got %d", profile.Actors["Ava Reyes"])
	}
	if profile.Studios["Vantage"] != 1 {
		t.Errorf("expected Vantage=1, got %d", profile.Studios["Vantage"])
	}

	// Disliked movies contribute nothing
	if _, exists := profile.Keywords["musical"]; exists {
		t.Error("disliked movie keywords should not appear in profile")
	}
	if _, exists := profile.Directors["Someone Else"]; exists {
		t.Error("disliked movie director should not appear in profile")
	}
}

func TestBuildTasteProfileStringSnapshot(t *testing.T) {
	inner := `{"keywords":["space"],"director":"Theo Brandt"}`
	raw, _ := json.Marshal(inner)
	history := []domain.Rating{
		{MovieID: 1, Rating: domain.RatingLiked, MovieData: raw},
	}

	profile := BuildTasteProfile(history)

	if profile.Keywords["space"] != 1 {
		t.Errorf("expected space=1 from string-encoded snapshot, got %d", profile.Keywords["space"])
	}
}

func TestBuildTasteProfileMalformedSnapshot(t *testing.T) {
	history := []domain.Rating{
		{MovieID: 1, Rating: domain.RatingLiked, MovieData: json.RawMessage(`{{{not json`)},
		{MovieID: 2, Rating: domain.RatingLiked},
		likedRating(3, `{"director":"Paul Imura"}`),
	}

	profile := BuildTasteProfile(history)

	// Malformed and absent snapshots contribute nothing but never abort.
	if profile.Directors["Paul Imura"] != 1 {
		t.Errorf("expected Paul Imura=1, got %d", profile.Directors["Paul Imura"])
	}
	if len(profile.Keywords) != 0 {
		t.Errorf("expected no keywords, got %v", profile.Keywords)
	}
}

func TestBuildTasteProfileEmptyHistory(t *testing.T) {
	profile := BuildTasteProfile(nil)

	if len(profile.Keywords) != 0 || len(profile.Directors) != 0 || len(profile.Actors) != 0 || len(profile.Studios) != 0 {
		t.Errorf("expected empty profile, got %+v", profile)
	}
}
