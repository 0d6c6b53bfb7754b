package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/groupwatch/movienight/internal/domain"
	"github.com/groupwatch/movienight/internal/recommend"
)

// ErrUnavailable is returned when the catalog service cannot be reached or
// answers with an unexpected status.
var ErrUnavailable = errors.New("catalog: unavailable")

// HTTPClient fetches the candidate pool from the catalog service, which
// returns movies with streaming availability and parental-guide data already
// attached. It satisfies the engine's CandidateSource contract.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed catalog client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Candidates retrieves the candidate pool. Hints are forwarded so the catalog
// can skip obviously irrelevant movies; the engine still enforces every hard
// filter itself.
func (c *HTTPClient) Candidates(ctx context.Context, hints recommend.CandidateHints) ([]domain.MovieCandidate, error) {
	rel := &url.URL{Path: "/candidates"}
	q := rel.Query()
	if len(hints.ProviderIDs) > 0 {
		ids := make([]string, 0, len(hints.ProviderIDs))
		for _, id := range hints.ProviderIDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		q.Set("providers", strings.Join(ids, ","))
	}
	if hints.StartYear != nil {
		q.Set("startYear", strconv.Itoa(*hints.StartYear))
	}
	rel.RawQuery = q.Encode()
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("catalog: unexpected status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return convertCandidates(payload), nil
}

type apiResponse struct {
	Candidates []candidatePayload `json:"candidates"`
}

type candidatePayload struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Genres        []domain.Genre        `json:"genres"`
	Runtime       *int                  `json:"runtime"`
	ReleaseDate   *string               `json:"releaseDate"`
	Certification *string               `json:"certification"`
	VoteAverage   float64               `json:"voteAverage"`
	ProviderIDs   []int64               `json:"providerIds"`
	ParentalGuide *parentalGuidePayload `json:"parentalGuide"`
	Reasoning     []string              `json:"reasoning"`
}

type parentalGuidePayload struct {
	Violence    *string `json:"violence"`
	SexNudity   *string `json:"sexNudity"`
	Profanity   *string `json:"profanity"`
	Substances  *string `json:"substances"`
	Frightening *string `json:"frightening"`
}

func convertCandidates(payload apiResponse) []domain.MovieCandidate {
	out := make([]domain.MovieCandidate, 0, len(payload.Candidates))
	for _, entry := range payload.Candidates {
		out = append(out, convertCandidate(entry))
	}
	return out
}

func convertCandidate(entry candidatePayload) domain.MovieCandidate {
	movie := domain.MovieCandidate{
		ID:            entry.ID,
		Title:         entry.Title,
		Genres:        entry.Genres,
		Runtime:       entry.Runtime,
		Certification: entry.Certification,
		VoteAverage:   entry.VoteAverage,
		ProviderIDs:   entry.ProviderIDs,
		Reasoning:     entry.Reasoning,
	}
	if entry.ReleaseDate != nil {
		if parsed, err := time.Parse("2006-01-02", *entry.ReleaseDate); err == nil {
			movie.ReleaseDate = &parsed
		}
	}
	if entry.ParentalGuide != nil {
		movie.ParentalGuide = &domain.ParentalGuide{
			Violence:    convertLevel(entry.ParentalGuide.Violence),
			SexNudity:   convertLevel(entry.ParentalGuide.SexNudity),
			Profanity:   convertLevel(entry.ParentalGuide.Profanity),
			Substances:  convertLevel(entry.ParentalGuide.Substances),
			Frightening: convertLevel(entry.ParentalGuide.Frightening),
		}
	}
	return movie
}

// convertLevel parses a severity name; anything unrecognized becomes nil,
// which downstream filtering treats as "unknown, passes".
func convertLevel(value *string) *domain.ContentLevel {
	if value == nil {
		return nil
	}
	level, err := domain.ParseContentLevel(*value)
	if err != nil {
		return nil
	}
	return &level
}
