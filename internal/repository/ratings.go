package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupwatch/movienight/internal/domain"
)

// RatingsRepository reads members' rating history and the movie→genre index
// the engine joins it against. The engine only ever reads; writes belong to
// the rating-capture service that owns this schema.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// History returns every rating the given members have submitted, ordered for
// deterministic processing. An unknown member simply contributes no rows.
func (r *RatingsRepository) History(ctx context.Context, memberIDs []string) ([]domain.RatingRecord, error) {
	const query = `
        SELECT member_id, movie_id, score, rated_at
        FROM ratings
        WHERE member_id = ANY($1)
        ORDER BY member_id, movie_id, rated_at
    `

	rows, err := r.pool.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("query rating history: %w", err)
	}
	defer rows.Close()

	var records []domain.RatingRecord
	for rows.Next() {
		var record domain.RatingRecord
		if err := rows.Scan(&record.MemberID, &record.MovieID, &record.Score, &record.RatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return records, nil
}

// GenreIndex maps the given movie ids to their genre tags. Movies without
// genre rows are simply absent from the result.
func (r *RatingsRepository) GenreIndex(ctx context.Context, movieIDs []string) (domain.GenreIndex, error) {
	const query = `
        SELECT movie_id, genre_id, genre_name
        FROM movie_genres
        WHERE movie_id = ANY($1)
        ORDER BY movie_id, genre_id
    `

	rows, err := r.pool.Query(ctx, query, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("query genre index: %w", err)
	}
	defer rows.Close()

	index := domain.GenreIndex{}
	for rows.Next() {
		var movieID string
		var genre domain.Genre
		if err := rows.Scan(&movieID, &genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		index[movieID] = append(index[movieID], genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}
	return index, nil
}
