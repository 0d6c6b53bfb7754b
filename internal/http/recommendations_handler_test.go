package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/groupwatch/movienight/internal/config"
	"github.com/groupwatch/movienight/internal/domain"
	"github.com/groupwatch/movienight/internal/recommend"
)

// fakeRecommender returns a canned result or error for handler tests.
type fakeRecommender struct {
	result    recommend.Result
	err       error
	lastQuery recommend.Query
}

func (f *fakeRecommender) Recommend(_ context.Context, q recommend.Query) (recommend.Result, error) {
	f.lastQuery = q
	if f.err != nil {
		return recommend.Result{}, f.err
	}
	return f.result, nil
}

func buildTestServer(tb testing.TB, engine Recommender) *Server {
	tb.Helper()
	cfg := config.Config{
		Port:             "0",
		AuthToken:        "secret",
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
	}
	logger := log.New(io.Discard, "", 0)
	return New(cfg, nil, engine, logger)
}

func postRecommendations(t testing.TB, srv *Server, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommendations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer secret")
	}
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func sampleResult() recommend.Result {
	release := time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)
	runtime := 136
	cert := "R"
	return recommend.Result{
		Recommendations: []recommend.Recommendation{
			{
				Movie: domain.MovieCandidate{
					ID:            "603",
					Title:         "The Matrix",
					Genres:        []domain.Genre{{ID: 28, Name: "Action"}},
					Runtime:       &runtime,
					ReleaseDate:   &release,
					Certification: &cert,
					VoteAverage:   8.2,
					ProviderIDs:   []int64{8},
					Reasoning:     []string{"Everyone liked Inception"},
				},
				GroupFitScore:   87,
				GenreMatchScore: 91,
				SeenBy:          []string{"alice"},
			},
		},
		Profile: domain.GroupProfile{
			MemberCount: 2,
			SharedGenres: []domain.GenrePreference{
				{GenreID: 28, GenreName: "Action", AvgScore: 88.5, RatingCount: 12, Rank: 220.1},
			},
			TotalRatings: 12,
		},
	}
}

func TestHandleRecommend_Success(t *testing.T) {
	engine := &fakeRecommender{result: sampleResult()}
	srv := buildTestServer(t, engine)

	body := `{
		"memberIds": ["alice", "bob"],
		"moods": ["intense"],
		"maxRuntime": 150,
		"contentRating": "R",
		"streamingProviders": [8],
		"parentalFilters": {"maxViolence": "Moderate"},
		"page": 2
	}`
	rec := postRecommendations(t, srv, body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(resp.Recommendations))
	}
	item := resp.Recommendations[0]
	if item.ID != "603" || item.GroupFitScore != 87 || item.GenreMatchScore != 91 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.ReleaseDate == nil || *item.ReleaseDate != "1999-03-31" {
		t.Fatalf("releaseDate = %v, want 1999-03-31", item.ReleaseDate)
	}
	if len(item.Reasoning) != 1 {
		t.Fatalf("reasoning must pass through: %+v", item)
	}
	if resp.GroupProfile.TotalRatings != 12 || resp.GroupProfile.MemberCount != 2 {
		t.Fatalf("unexpected profile: %+v", resp.GroupProfile)
	}

	// The query mapping must carry every constraint through.
	q := engine.lastQuery
	if q.Page != 2 || len(q.MemberIDs) != 2 || len(q.Moods) != 1 {
		t.Fatalf("query not mapped: %+v", q)
	}
	if q.Parental.Violence == nil || *q.Parental.Violence != domain.LevelModerate {
		t.Fatalf("parental ceiling not mapped: %+v", q.Parental)
	}
	if q.MaxRuntime == nil || *q.MaxRuntime != 150 {
		t.Fatalf("maxRuntime not mapped: %+v", q.MaxRuntime)
	}
}

func TestHandleRecommend_DefaultsPageToOne(t *testing.T) {
	engine := &fakeRecommender{result: recommend.Result{Profile: domain.GroupProfile{MemberCount: 1}}}
	srv := buildTestServer(t, engine)

	rec := postRecommendations(t, srv, `{"memberIds": ["solo"]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if engine.lastQuery.Page != 1 {
		t.Fatalf("page defaulted to %d, want 1", engine.lastQuery.Page)
	}
}

func TestHandleRecommend_Unauthorized(t *testing.T) {
	srv := buildTestServer(t, &fakeRecommender{})
	rec := postRecommendations(t, srv, `{"memberIds": ["a"]}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandleRecommend_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty members", `{"memberIds": [], "page": 1}`},
		{"missing members", `{"page": 1}`},
		{"negative page", `{"memberIds": ["a"], "page": -1}`},
		{"bad parental level", `{"memberIds": ["a"], "parentalFilters": {"maxViolence": "Extreme"}}`},
		{"malformed json", `{"memberIds": ["a"`},
		{"unknown field", `{"memberIds": ["a"], "surprise": true}`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := buildTestServer(t, &fakeRecommender{err: errors.New("must not be reached")})
			rec := postRecommendations(t, srv, tt.body, true)
			if rec.Code != http.StatusUnprocessableEntity && rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 4xx validation failure (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRecommend_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid query", recommend.ErrInvalidQuery, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"upstream down", recommend.ErrUpstream, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"},
		{"unexpected", errors.New("kaboom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := buildTestServer(t, &fakeRecommender{err: tt.err})
			rec := postRecommendations(t, srv, `{"memberIds": ["a"], "page": 1}`, true)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleRecommend_EmptyResultKeepsProfile(t *testing.T) {
	engine := &fakeRecommender{result: recommend.Result{
		Profile: domain.GroupProfile{MemberCount: 3, TotalRatings: 40},
	}}
	srv := buildTestServer(t, engine)

	rec := postRecommendations(t, srv, `{"memberIds": ["a", "b", "c"], "page": 9}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("no matches must still be 200, got %d", rec.Code)
	}
	var resp recommendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Recommendations == nil || len(resp.Recommendations) != 0 {
		t.Fatalf("recommendations must be an empty array, got %v", resp.Recommendations)
	}
	if resp.GroupProfile.TotalRatings != 40 {
		t.Fatalf("profile must survive an empty page: %+v", resp.GroupProfile)
	}
}
