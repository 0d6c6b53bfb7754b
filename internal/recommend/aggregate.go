package recommend

import (
	"math"
	"sort"

	"github.com/groupwatch/movienight/internal/domain"
)

// memberGenreStat accumulates one member's ratings inside a single genre.
type memberGenreStat struct {
	name  string
	sum   int
	count int
}

func (s memberGenreStat) avg() float64 {
	return float64(s.sum) / float64(s.count)
}

// memberPreferences computes one member's per-genre rating statistics.
// A movie tagged with several genres contributes to each of them. A member
// with no ratings yields an empty map; that is the expected cold case, not
// an error.
func memberPreferences(history []domain.RatingRecord, genres domain.GenreIndex) map[int64]memberGenreStat {
	stats := make(map[int64]memberGenreStat)
	for _, record := range history {
		for _, genre := range genres[record.MovieID] {
			stat := stats[genre.ID]
			stat.name = genre.Name
			stat.sum += record.Score
			stat.count++
			stats[genre.ID] = stat
		}
	}
	return stats
}

// BuildGroupProfile merges every member's rating history into one collective
// taste profile. It is a pure function of its inputs and is recomputed for
// each request.
//
// Per genre, the combined average is the mean of the member averages for
// members who rated that genre at all: a member with no ratings in a genre is
// left out of the mean rather than counted as zero, so a single enthusiast is
// not diluted by quieter members. The rank combinedAvg * log(1+combinedCount)
// favors genres with both high scores and enough evidence to trust them.
func BuildGroupProfile(histories map[string][]domain.RatingRecord, genres domain.GenreIndex, topK int) domain.GroupProfile {
	type merged struct {
		name    string
		avgSum  float64
		members int
		count   int
	}
	byGenre := make(map[int64]*merged)
	totalRatings := 0

	for _, history := range histories {
		for genreID, stat := range memberPreferences(history, genres) {
			m := byGenre[genreID]
			if m == nil {
				m = &merged{name: stat.name}
				byGenre[genreID] = m
			}
			m.avgSum += stat.avg()
			m.members++
			m.count += stat.count
			totalRatings += stat.count
		}
	}

	prefs := make([]domain.GenrePreference, 0, len(byGenre))
	for genreID, m := range byGenre {
		combinedAvg := m.avgSum / float64(m.members)
		prefs = append(prefs, domain.GenrePreference{
			GenreID:     genreID,
			GenreName:   m.name,
			AvgScore:    combinedAvg,
			RatingCount: m.count,
			Rank:        combinedAvg * math.Log(1+float64(m.count)),
		})
	}

	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Rank != prefs[j].Rank {
			return prefs[i].Rank > prefs[j].Rank
		}
		if prefs[i].RatingCount != prefs[j].RatingCount {
			return prefs[i].RatingCount > prefs[j].RatingCount
		}
		return prefs[i].GenreID < prefs[j].GenreID
	})

	if topK > 0 && len(prefs) > topK {
		prefs = prefs[:topK]
	}

	return domain.GroupProfile{
		MemberCount:  len(histories),
		SharedGenres: prefs,
		TotalRatings: totalRatings,
	}
}
