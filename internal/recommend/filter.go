package recommend

import "github.com/groupwatch/movienight/internal/domain"

// applyFilters drops candidates that violate any hard constraint in the
// query. Filters are pure elimination and order-independent; a candidate
// survives only if every set constraint holds.
func applyFilters(pool []domain.MovieCandidate, q Query) []domain.MovieCandidate {
	survivors := make([]domain.MovieCandidate, 0, len(pool))
	for _, movie := range pool {
		if !passesRuntime(movie, q.MaxRuntime) {
			continue
		}
		if !passesCertification(movie, q.ContentRating) {
			continue
		}
		if !passesReleaseWindow(movie, q.Era, q.StartYear) {
			continue
		}
		if !passesProviders(movie, q.ProviderIDs) {
			continue
		}
		if !passesParental(movie, q.Parental) {
			continue
		}
		survivors = append(survivors, movie)
	}
	return survivors
}

// passesRuntime enforces the runtime ceiling. A candidate with unknown
// runtime fails a set ceiling: "maximum runtime" is a promise to the user,
// so unverifiable candidates do not sneak through.
func passesRuntime(movie domain.MovieCandidate, maxRuntime *int) bool {
	if maxRuntime == nil {
		return true
	}
	if movie.Runtime == nil {
		return false
	}
	return *movie.Runtime <= *maxRuntime
}

// passesCertification enforces the content-rating ceiling on the
// G < PG < PG-13 < R scale, inclusive. Missing or unrecognized certification
// passes: it cannot be verified, which is not the same as being excluded.
func passesCertification(movie domain.MovieCandidate, ceiling *string) bool {
	if ceiling == nil {
		return true
	}
	ceilingRank, ok := domain.CertificationRank(*ceiling)
	if !ok {
		return true
	}
	if movie.Certification == nil {
		return true
	}
	movieRank, ok := domain.CertificationRank(*movie.Certification)
	if !ok {
		return true
	}
	return movieRank <= ceilingRank
}

// passesReleaseWindow applies the era bucket or the start-year floor. When
// both are set, era wins and startYear is ignored.
func passesReleaseWindow(movie domain.MovieCandidate, era *string, startYear *int) bool {
	if era != nil {
		decade, err := parseEra(*era)
		if err != nil {
			return true // unparseable eras are rejected at validation time
		}
		year, ok := movie.ReleaseYear()
		if !ok {
			return false
		}
		return year >= decade && year <= decade+9
	}
	if startYear != nil {
		year, ok := movie.ReleaseYear()
		if !ok {
			return false
		}
		return year >= *startYear
	}
	return true
}

// passesProviders requires availability on at least one requested streaming
// provider. An empty provider list means no filtering.
func passesProviders(movie domain.MovieCandidate, providerIDs []int64) bool {
	if len(providerIDs) == 0 {
		return true
	}
	for _, want := range providerIDs {
		for _, have := range movie.ProviderIDs {
			if want == have {
				return true
			}
		}
	}
	return false
}

// passesParental checks the five content-severity ceilings. A movie with no
// parental guide, or no data for one category, passes that check: undocumented
// movies are never silently excluded.
func passesParental(movie domain.MovieCandidate, ceilings ParentalCeilings) bool {
	guide := movie.ParentalGuide
	if guide == nil {
		return true
	}
	checks := []struct {
		level   *domain.ContentLevel
		ceiling *domain.ContentLevel
	}{
		{guide.Violence, ceilings.Violence},
		{guide.SexNudity, ceilings.SexNudity},
		{guide.Profanity, ceilings.Profanity},
		{guide.Substances, ceilings.Substances},
		{guide.Frightening, ceilings.Frightening},
	}
	for _, check := range checks {
		if check.ceiling == nil || check.level == nil {
			continue
		}
		if *check.level > *check.ceiling {
			return false
		}
	}
	return true
}
