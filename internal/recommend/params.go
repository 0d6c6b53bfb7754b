package recommend

// Params collects the engine's tunable constants. The defaults match current
// product behavior but nothing in the engine hard-codes them; callers can
// override any knob at construction time.
type Params struct {
	// TopGenres caps how many shared genres make it into the group profile.
	TopGenres int
	// GenreWeight and VoteWeight blend the genre-match sub-score with the
	// normalized vote average into the group-fit score. They should sum to 1.
	GenreWeight float64
	VoteWeight  float64
	// PageSize is the fixed number of recommendations per page.
	PageSize int
	// AcclaimedVoteFloor is the minimum vote average (0-10 scale) for the
	// "acclaimed" mood, which gates on reception rather than genre.
	AcclaimedVoteFloor float64
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		TopGenres:          5,
		GenreWeight:        0.7,
		VoteWeight:         0.3,
		PageSize:           10,
		AcclaimedVoteFloor: 7.5,
	}
}
