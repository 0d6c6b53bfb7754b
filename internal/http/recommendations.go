package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/groupwatch/movienight/internal/domain"
	"github.com/groupwatch/movienight/internal/recommend"
)

const maxRequestBody = 1 << 20 // 1 MiB

var validate = validator.New()

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type parentalFiltersRequest struct {
	MaxViolence    *string `json:"maxViolence"`
	MaxSexNudity   *string `json:"maxSexNudity"`
	MaxProfanity   *string `json:"maxProfanity"`
	MaxSubstances  *string `json:"maxSubstances"`
	MaxFrightening *string `json:"maxFrightening"`
}

type recommendRequest struct {
	MemberIDs          []string                `json:"memberIds" validate:"required,min=1,dive,required"`
	Moods              []string                `json:"moods"`
	MaxRuntime         *int                    `json:"maxRuntime" validate:"omitempty,gt=0"`
	ContentRating      *string                 `json:"contentRating"`
	Era                *string                 `json:"era"`
	StartYear          *int                    `json:"startYear" validate:"omitempty,gte=1888"`
	StreamingProviders []int64                 `json:"streamingProviders"`
	ParentalFilters    *parentalFiltersRequest `json:"parentalFilters"`
	Page               int                     `json:"page" validate:"gte=1"`
}

type genrePreferenceResponse struct {
	GenreID     int64   `json:"genreId"`
	GenreName   string  `json:"genreName"`
	AvgScore    float64 `json:"avgScore"`
	RatingCount int     `json:"ratingCount"`
}

type groupProfileResponse struct {
	MemberCount  int                       `json:"memberCount"`
	SharedGenres []genrePreferenceResponse `json:"sharedGenres"`
	TotalRatings int                       `json:"totalRatings"`
}

type recommendationResponse struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Genres          []domain.Genre `json:"genres"`
	Runtime         *int           `json:"runtime,omitempty"`
	ReleaseDate     *string        `json:"releaseDate,omitempty"`
	Certification   *string        `json:"certification,omitempty"`
	VoteAverage     float64        `json:"voteAverage"`
	ProviderIDs     []int64        `json:"providerIds,omitempty"`
	GroupFitScore   int            `json:"groupFitScore"`
	GenreMatchScore int            `json:"genreMatchScore"`
	SeenBy          []string       `json:"seenBy"`
	Reasoning       []string       `json:"reasoning,omitempty"`
}

type recommendResponse struct {
	Recommendations []recommendationResponse `json:"recommendations"`
	GroupProfile    groupProfileResponse     `json:"groupProfile"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req recommendRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if err := validate.Struct(req); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err))
		return
	}

	query, err := toQuery(req)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := s.engine.Recommend(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidQuery):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, recommend.ErrUpstream):
			s.logger.Printf("recommend upstream error: %v", err)
			s.respondError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "A data source is unavailable, please retry")
		default:
			s.logger.Printf("recommend error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build recommendations")
		}
		return
	}

	s.respondJSON(w, http.StatusOK, toRecommendResponse(result))
}

// toQuery maps the wire payload onto the engine's query type, resolving
// severity names to their ordinal levels.
func toQuery(req recommendRequest) (recommend.Query, error) {
	query := recommend.Query{
		MemberIDs:     req.MemberIDs,
		Moods:         req.Moods,
		MaxRuntime:    req.MaxRuntime,
		ContentRating: normalizeStringPtr(req.ContentRating),
		Era:           normalizeStringPtr(req.Era),
		StartYear:     req.StartYear,
		ProviderIDs:   req.StreamingProviders,
		Page:          req.Page,
	}

	if req.ParentalFilters != nil {
		ceilings := []struct {
			field string
			raw   *string
			dst   **domain.ContentLevel
		}{
			{"maxViolence", req.ParentalFilters.MaxViolence, &query.Parental.Violence},
			{"maxSexNudity", req.ParentalFilters.MaxSexNudity, &query.Parental.SexNudity},
			{"maxProfanity", req.ParentalFilters.MaxProfanity, &query.Parental.Profanity},
			{"maxSubstances", req.ParentalFilters.MaxSubstances, &query.Parental.Substances},
			{"maxFrightening", req.ParentalFilters.MaxFrightening, &query.Parental.Frightening},
		}
		for _, ceiling := range ceilings {
			if ceiling.raw == nil || strings.TrimSpace(*ceiling.raw) == "" {
				continue
			}
			level, err := domain.ParseContentLevel(*ceiling.raw)
			if err != nil {
				return recommend.Query{}, fmt.Errorf("parentalFilters.%s: %v", ceiling.field, err)
			}
			*ceiling.dst = &level
		}
	}
	return query, nil
}

func toRecommendResponse(result recommend.Result) recommendResponse {
	recs := make([]recommendationResponse, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		item := recommendationResponse{
			ID:              rec.Movie.ID,
			Title:           rec.Movie.Title,
			Genres:          rec.Movie.Genres,
			Runtime:         rec.Movie.Runtime,
			Certification:   rec.Movie.Certification,
			VoteAverage:     rec.Movie.VoteAverage,
			ProviderIDs:     rec.Movie.ProviderIDs,
			GroupFitScore:   rec.GroupFitScore,
			GenreMatchScore: rec.GenreMatchScore,
			SeenBy:          rec.SeenBy,
			Reasoning:       rec.Movie.Reasoning,
		}
		if item.SeenBy == nil {
			item.SeenBy = []string{}
		}
		if rec.Movie.ReleaseDate != nil {
			formatted := rec.Movie.ReleaseDate.Format("2006-01-02")
			item.ReleaseDate = &formatted
		}
		recs = append(recs, item)
	}

	shared := make([]genrePreferenceResponse, 0, len(result.Profile.SharedGenres))
	for _, pref := range result.Profile.SharedGenres {
		shared = append(shared, genrePreferenceResponse{
			GenreID:     pref.GenreID,
			GenreName:   pref.GenreName,
			AvgScore:    pref.AvgScore,
			RatingCount: pref.RatingCount,
		})
	}

	return recommendResponse{
		Recommendations: recs,
		GroupProfile: groupProfileResponse{
			MemberCount:  result.Profile.MemberCount,
			SharedGenres: shared,
			TotalRatings: result.Profile.TotalRatings,
		},
	}
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return fmt.Sprintf("Invalid value for field %s", first.Field())
	}
	return "Request validation failed"
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

func normalizeStringPtr(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}

func (s *Server) verifyBearer(header string) bool {
	if header == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token == s.cfg.AuthToken
}
