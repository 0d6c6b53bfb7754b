package domain

import "time"

// Genre identifies a catalog genre. IDs follow the external catalog's
// numbering; names are carried for display and mood matching.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieCandidate is one movie from the external catalog's candidate pool.
// The engine never mutates a candidate; it only filters, scores, and ranks.
type MovieCandidate struct {
	ID            string
	Title         string
	Genres        []Genre
	Runtime       *int
	ReleaseDate   *time.Time
	Certification *string
	VoteAverage   float64
	ProviderIDs   []int64
	ParentalGuide *ParentalGuide
	Reasoning     []string
}

// ReleaseYear returns the candidate's release year, or ok=false when the
// catalog has no release date for it.
func (m MovieCandidate) ReleaseYear() (int, bool) {
	if m.ReleaseDate == nil {
		return 0, false
	}
	return m.ReleaseDate.Year(), true
}

// HasGenre reports whether the candidate carries the given genre id.
func (m MovieCandidate) HasGenre(genreID int64) bool {
	for _, g := range m.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

// GenreIndex maps movie ids to their genre tags. The per-member preference
// aggregation joins rating history against it.
type GenreIndex map[string][]Genre
