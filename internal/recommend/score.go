package recommend

import (
	"math"
	"sort"

	"github.com/groupwatch/movienight/internal/domain"
)

// neutralGenreScore is used when the group profile has no shared genres
// (cold start), so ranking degrades to vote average instead of an arbitrary
// tie order.
const neutralGenreScore = 50

// Recommendation is one scored candidate in the engine's output. It is never
// persisted; the caller consumes it and throws it away.
type Recommendation struct {
	Movie           domain.MovieCandidate
	GroupFitScore   int
	GenreMatchScore int
	SeenBy          []string
}

// scoreCandidates computes group-fit and genre-match scores for every
// candidate that matches the selected moods. Mood is an eliminating gate:
// with moods selected, a candidate must satisfy at least one of them to be
// scored at all; with none selected, every candidate passes.
func scoreCandidates(pool []domain.MovieCandidate, profile domain.GroupProfile, moods []string, p Params) []Recommendation {
	var rankTotal float64
	for _, pref := range profile.SharedGenres {
		rankTotal += pref.Rank
	}

	scored := make([]Recommendation, 0, len(pool))
	for _, movie := range pool {
		if !matchesAnyMood(movie, moods, p) {
			continue
		}
		genreScore := genreMatchScore(movie, profile.SharedGenres, rankTotal)
		voteScore := clampScore(movie.VoteAverage * 10)
		fit := clampScore(p.GenreWeight*float64(genreScore) + p.VoteWeight*voteScore)
		scored = append(scored, Recommendation{
			Movie:           movie,
			GroupFitScore:   int(math.Round(fit)),
			GenreMatchScore: genreScore,
		})
	}
	return scored
}

// genreMatchScore measures the rank-weighted overlap between a candidate's
// genres and the group's shared genres, scaled to 0-100.
func genreMatchScore(movie domain.MovieCandidate, shared []domain.GenrePreference, rankTotal float64) int {
	if len(shared) == 0 || rankTotal <= 0 {
		return neutralGenreScore
	}
	var overlap float64
	for _, pref := range shared {
		if movie.HasGenre(pref.GenreID) {
			overlap += pref.Rank
		}
	}
	return int(math.Round(clampScore(overlap / rankTotal * 100)))
}

func clampScore(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return math.Min(100, math.Max(0, value))
}

// annotateSeenBy marks which requested members have already rated each
// candidate. Informational only, never eliminating; member ids come back in
// sorted order so output stays deterministic.
func annotateSeenBy(recs []Recommendation, history []domain.RatingRecord) {
	seen := make(map[string]map[string]struct{})
	for _, record := range history {
		members := seen[record.MovieID]
		if members == nil {
			members = make(map[string]struct{})
			seen[record.MovieID] = members
		}
		members[record.MemberID] = struct{}{}
	}
	for i := range recs {
		members := seen[recs[i].Movie.ID]
		if len(members) == 0 {
			continue
		}
		ids := make([]string, 0, len(members))
		for id := range members {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		recs[i].SeenBy = ids
	}
}
