package domain

import "time"

// RatingRecord is a single member's historical rating of a movie.
// Scores are on a 0-100 scale. Owned by the rating store; read-only here.
type RatingRecord struct {
	MemberID string
	MovieID  string
	Score    int
	RatedAt  time.Time
}
