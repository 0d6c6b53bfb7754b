package recommend

import "sort"

// rankAndPage orders scored candidates into a total, fully deterministic
// order and returns the requested fixed-size page. "Shuffle" is the caller
// resubmitting the same query with page+1: because the order is total, pages
// never overlap, and a page past the end comes back empty rather than
// wrapping around.
func rankAndPage(recs []Recommendation, page, pageSize int) []Recommendation {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].GroupFitScore != recs[j].GroupFitScore {
			return recs[i].GroupFitScore > recs[j].GroupFitScore
		}
		if recs[i].Movie.VoteAverage != recs[j].Movie.VoteAverage {
			return recs[i].Movie.VoteAverage > recs[j].Movie.VoteAverage
		}
		return recs[i].Movie.ID < recs[j].Movie.ID
	})

	start := (page - 1) * pageSize
	if start >= len(recs) {
		return []Recommendation{}
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end]
}
