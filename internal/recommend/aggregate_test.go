package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/groupwatch/movienight/internal/domain"
)

var testGenres = domain.GenreIndex{
	"m1": {{ID: 35, Name: "Comedy"}},
	"m2": {{ID: 35, Name: "Comedy"}},
	"m3": {{ID: 35, Name: "Comedy"}},
	"m4": {{ID: 35, Name: "Comedy"}},
	"m5": {{ID: 35, Name: "Comedy"}},
	"m6": {{ID: 18, Name: "Drama"}, {ID: 10749, Name: "Romance"}},
}

func rating(member, movie string, score int) domain.RatingRecord {
	return domain.RatingRecord{
		MemberID: member,
		MovieID:  movie,
		Score:    score,
		RatedAt:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemberPreferences_MultiGenreContributesToEach(t *testing.T) {
	stats := memberPreferences([]domain.RatingRecord{rating("a", "m6", 80)}, testGenres)
	if len(stats) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(stats))
	}
	for _, id := range []int64{18, 10749} {
		stat, ok := stats[id]
		if !ok {
			t.Fatalf("genre %d missing", id)
		}
		if stat.count != 1 || stat.avg() != 80 {
			t.Fatalf("genre %d stat = %+v, want count 1 avg 80", id, stat)
		}
	}
}

func TestMemberPreferences_Empty(t *testing.T) {
	if stats := memberPreferences(nil, testGenres); len(stats) != 0 {
		t.Fatalf("expected empty stats, got %v", stats)
	}
}

func TestBuildGroupProfile_ColdMemberDoesNotDilute(t *testing.T) {
	histories := map[string][]domain.RatingRecord{
		"alice": {
			rating("alice", "m1", 90),
			rating("alice", "m2", 90),
			rating("alice", "m3", 90),
			rating("alice", "m4", 90),
			rating("alice", "m5", 90),
		},
		"bob": nil,
	}

	profile := BuildGroupProfile(histories, testGenres, 5)

	if profile.MemberCount != 2 {
		t.Fatalf("MemberCount = %d, want 2", profile.MemberCount)
	}
	if profile.TotalRatings != 5 {
		t.Fatalf("TotalRatings = %d, want 5", profile.TotalRatings)
	}
	if len(profile.SharedGenres) != 1 {
		t.Fatalf("SharedGenres = %+v, want one entry", profile.SharedGenres)
	}
	comedy := profile.SharedGenres[0]
	if comedy.GenreID != 35 {
		t.Fatalf("top genre = %d, want Comedy", comedy.GenreID)
	}
	if comedy.AvgScore != 90 {
		t.Fatalf("AvgScore = %v, want 90 (bob must not drag it down)", comedy.AvgScore)
	}
	if comedy.RatingCount != 5 {
		t.Fatalf("RatingCount = %d, want 5", comedy.RatingCount)
	}
	wantRank := 90 * math.Log(6)
	if math.Abs(comedy.Rank-wantRank) > 1e-9 {
		t.Fatalf("Rank = %v, want %v", comedy.Rank, wantRank)
	}
}

func TestBuildGroupProfile_EvidenceBeatsSingleRave(t *testing.T) {
	genres := domain.GenreIndex{
		"solo": {{ID: 27, Name: "Horror"}},
	}
	for i := 0; i < 10; i++ {
		genres["d"+string(rune('0'+i))] = []domain.Genre{{ID: 18, Name: "Drama"}}
	}

	history := []domain.RatingRecord{rating("a", "solo", 100)}
	for i := 0; i < 10; i++ {
		history = append(history, rating("a", "d"+string(rune('0'+i)), 80))
	}

	profile := BuildGroupProfile(map[string][]domain.RatingRecord{"a": history}, genres, 5)
	if len(profile.SharedGenres) != 2 {
		t.Fatalf("expected 2 shared genres, got %+v", profile.SharedGenres)
	}
	if profile.SharedGenres[0].GenreID != 18 {
		t.Fatalf("ten ratings averaging 80 should outrank one rating of 100, got %+v", profile.SharedGenres)
	}
}

func TestBuildGroupProfile_CombinedAvgIsMeanOfMemberMeans(t *testing.T) {
	genres := domain.GenreIndex{"m": {{ID: 28, Name: "Action"}}}
	histories := map[string][]domain.RatingRecord{
		"a": {rating("a", "m", 100)},
		"b": {rating("b", "m", 60), rating("b", "m", 80)},
	}

	profile := BuildGroupProfile(histories, genres, 5)
	action := profile.SharedGenres[0]
	// a averages 100, b averages 70; the combined average is their mean.
	if math.Abs(action.AvgScore-85) > 1e-9 {
		t.Fatalf("AvgScore = %v, want 85", action.AvgScore)
	}
	if action.RatingCount != 3 {
		t.Fatalf("RatingCount = %d, want 3", action.RatingCount)
	}
}

func TestBuildGroupProfile_TopKAndTieBreaks(t *testing.T) {
	genres := domain.GenreIndex{}
	histories := map[string][]domain.RatingRecord{"a": nil}
	// Six genres, identical score and count, so ranks tie and ordering must
	// fall back to genre id ascending.
	for i := 0; i < 6; i++ {
		movieID := "t" + string(rune('0'+i))
		genres[movieID] = []domain.Genre{{ID: int64(60 - i), Name: "G"}}
		histories["a"] = append(histories["a"], rating("a", movieID, 70))
	}

	profile := BuildGroupProfile(histories, genres, 5)
	if len(profile.SharedGenres) != 5 {
		t.Fatalf("top-K not applied: got %d genres", len(profile.SharedGenres))
	}
	for i := 1; i < len(profile.SharedGenres); i++ {
		prev, cur := profile.SharedGenres[i-1], profile.SharedGenres[i]
		if prev.Rank == cur.Rank && prev.GenreID > cur.GenreID {
			t.Fatalf("tie not broken by genre id ascending: %+v", profile.SharedGenres)
		}
	}
}

func TestBuildGroupProfile_ColdStart(t *testing.T) {
	profile := BuildGroupProfile(map[string][]domain.RatingRecord{"a": nil, "b": nil}, domain.GenreIndex{}, 5)
	if !profile.IsColdStart() {
		t.Fatalf("expected cold-start profile, got %+v", profile)
	}
	if profile.TotalRatings != 0 || len(profile.SharedGenres) != 0 {
		t.Fatalf("cold start must be empty: %+v", profile)
	}
	if profile.MemberCount != 2 {
		t.Fatalf("MemberCount = %d, want 2", profile.MemberCount)
	}
}
