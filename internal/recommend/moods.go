package recommend

import (
	"sort"
	"strings"

	"github.com/groupwatch/movienight/internal/domain"
)

// moodRule maps one mood to the genre tags that satisfy it. A rule with
// useVoteFloor set gates on vote average instead of genre membership
// ("acclaimed" is about reception, not subject matter).
type moodRule struct {
	genres       []string
	useVoteFloor bool
}

// moodRules is the static mood vocabulary. Kept as package data, separate
// from the scoring math, so it can be tuned and tested on its own.
var moodRules = map[string]moodRule{
	"fun":       {genres: []string{"Comedy", "Family"}},
	"funny":     {genres: []string{"Comedy"}},
	"intense":   {genres: []string{"Thriller", "Action"}},
	"emotional": {genres: []string{"Drama", "Romance"}},
	"scary":     {genres: []string{"Horror"}},
	"acclaimed": {useVoteFloor: true},
}

// KnownMood reports whether the mood name is part of the vocabulary.
func KnownMood(name string) bool {
	_, ok := moodRules[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Moods lists the supported mood names, sorted so validation errors and API
// responses stay stable.
func Moods() []string {
	names := make([]string, 0, len(moodRules))
	for name := range moodRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matchesAnyMood reports whether the candidate satisfies at least one of the
// selected moods. An empty selection matches everything.
func matchesAnyMood(movie domain.MovieCandidate, moods []string, p Params) bool {
	if len(moods) == 0 {
		return true
	}
	for _, mood := range moods {
		rule, ok := moodRules[strings.ToLower(strings.TrimSpace(mood))]
		if !ok {
			continue
		}
		if rule.useVoteFloor {
			if movie.VoteAverage >= p.AcclaimedVoteFloor {
				return true
			}
			continue
		}
		for _, want := range rule.genres {
			for _, g := range movie.Genres {
				if strings.EqualFold(g.Name, want) {
					return true
				}
			}
		}
	}
	return false
}
