package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupwatch/movienight/internal/store"
)

// Repository bundles read access to the rating store. It satisfies the
// engine's RatingSource contract.
type Repository struct {
	Ratings *RatingsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool constructs repositories directly from a pgx pool; tests use
// this with an embedded database.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Ratings: &RatingsRepository{pool: pool},
	}
}
