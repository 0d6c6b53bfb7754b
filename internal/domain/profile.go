package domain

// GenrePreference summarizes how strongly a genre ranks inside a group's
// combined rating history.
type GenrePreference struct {
	GenreID     int64   `json:"genreId"`
	GenreName   string  `json:"genreName"`
	AvgScore    float64 `json:"avgScore"`
	RatingCount int     `json:"ratingCount"`
	Rank        float64 `json:"rank"`
}

// GroupProfile is the collective taste profile built fresh for each request.
// SharedGenres is ordered by descending rank and never contains duplicate
// genre ids. A profile with TotalRatings == 0 is the valid cold-start case,
// not an error.
type GroupProfile struct {
	MemberCount  int               `json:"memberCount"`
	SharedGenres []GenrePreference `json:"sharedGenres"`
	TotalRatings int               `json:"totalRatings"`
}

// IsColdStart reports whether the profile was built from members with no
// rating history at all.
func (p GroupProfile) IsColdStart() bool {
	return p.TotalRatings == 0
}
