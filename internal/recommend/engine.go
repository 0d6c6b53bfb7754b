package recommend

import (
	"context"
	"log"

	"github.com/groupwatch/movienight/internal/domain"
)

// RatingSource provides read access to members' historical ratings and the
// movie-to-genre index those ratings join against.
type RatingSource interface {
	History(ctx context.Context, memberIDs []string) ([]domain.RatingRecord, error)
	GenreIndex(ctx context.Context, movieIDs []string) (domain.GenreIndex, error)
}

// CandidateHints narrows the candidate pool a source needs to return. The
// engine still applies every hard filter itself; hints only save the source
// from shipping obviously irrelevant movies.
type CandidateHints struct {
	ProviderIDs []int64
	StartYear   *int
}

// CandidateSource supplies the movie pool to score, with streaming
// availability and parental-guide data already attached.
type CandidateSource interface {
	Candidates(ctx context.Context, hints CandidateHints) ([]domain.MovieCandidate, error)
}

// Engine runs the full aggregation, filtering, scoring, ranking, and
// pagination pass for one request. It holds no cross-request state: every
// intermediate value is request-local, so concurrent calls are independent
// and an abandoned request leaves nothing behind.
type Engine struct {
	ratings    RatingSource
	candidates CandidateSource
	params     Params
	logger     *log.Logger
}

// NewEngine wires an engine from its two data sources.
func NewEngine(ratings RatingSource, candidates CandidateSource, params Params, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if params.PageSize <= 0 {
		params.PageSize = DefaultParams().PageSize
	}
	return &Engine{ratings: ratings, candidates: candidates, params: params, logger: logger}
}

// Result is the engine's complete answer for one query. The profile is always
// populated, so the caller can tell "no taste data" (TotalRatings == 0)
// apart from "your filters are too strict" (empty Recommendations).
type Result struct {
	Recommendations []Recommendation
	Profile         domain.GroupProfile
}

// Recommend executes one recommendation request end to end. Failures in any
// stage abort the whole request; the engine never returns a partially
// filtered or partially scored list.
func (e *Engine) Recommend(ctx context.Context, q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}

	history, err := e.ratings.History(ctx, q.MemberIDs)
	if err != nil {
		return Result{}, upstreamErr("fetch rating history", err)
	}

	genres := domain.GenreIndex{}
	if len(history) > 0 {
		movieIDs := distinctMovieIDs(history)
		genres, err = e.ratings.GenreIndex(ctx, movieIDs)
		if err != nil {
			return Result{}, upstreamErr("fetch genre index", err)
		}
	}

	profile := BuildGroupProfile(groupByMember(q.MemberIDs, history), genres, e.params.TopGenres)
	if profile.IsColdStart() {
		e.logger.Printf("recommend: cold start for %d member(s), ranking degrades to vote average", profile.MemberCount)
	}

	pool, err := e.candidates.Candidates(ctx, candidateHints(q))
	if err != nil {
		return Result{}, upstreamErr("fetch candidate pool", err)
	}

	survivors := applyFilters(pool, q)
	scored := scoreCandidates(survivors, profile, q.Moods, e.params)
	annotateSeenBy(scored, history)
	page := rankAndPage(scored, q.Page, e.params.PageSize)

	return Result{Recommendations: page, Profile: profile}, nil
}

// candidateHints narrows the pool the source has to ship. The start-year
// hint is withheld when an era is set: the era window wins over startYear,
// so a source honoring the hint would drop movies the era filter must keep.
func candidateHints(q Query) CandidateHints {
	hints := CandidateHints{ProviderIDs: q.ProviderIDs}
	if q.Era == nil {
		hints.StartYear = q.StartYear
	}
	return hints
}

// groupByMember buckets history per member, keeping an entry for every
// requested member so cold members still count toward MemberCount.
func groupByMember(memberIDs []string, history []domain.RatingRecord) map[string][]domain.RatingRecord {
	grouped := make(map[string][]domain.RatingRecord, len(memberIDs))
	for _, id := range memberIDs {
		grouped[id] = nil
	}
	for _, record := range history {
		if _, requested := grouped[record.MemberID]; requested {
			grouped[record.MemberID] = append(grouped[record.MemberID], record)
		}
	}
	return grouped
}

func distinctMovieIDs(history []domain.RatingRecord) []string {
	seen := make(map[string]struct{}, len(history))
	ids := make([]string, 0, len(history))
	for _, record := range history {
		if _, ok := seen[record.MovieID]; ok {
			continue
		}
		seen[record.MovieID] = struct{}{}
		ids = append(ids, record.MovieID)
	}
	return ids
}
