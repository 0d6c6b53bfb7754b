package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/groupwatch/movienight/internal/domain"
)

// ParentalCeilings holds the five independent content-severity ceilings.
// A nil ceiling means "no constraint" for that category.
type ParentalCeilings struct {
	Violence    *domain.ContentLevel
	SexNudity   *domain.ContentLevel
	Profanity   *domain.ContentLevel
	Substances  *domain.ContentLevel
	Frightening *domain.ContentLevel
}

// Query is the caller-supplied constraint bundle for one recommendation
// request. The engine keeps no memory of prior pages: "shuffle" is the same
// query resubmitted with Page incremented by the caller.
//
// When both Era and StartYear are set, Era takes priority and StartYear is
// ignored.
type Query struct {
	MemberIDs     []string
	Moods         []string
	MaxRuntime    *int
	ContentRating *string
	Era           *string
	StartYear     *int
	ProviderIDs   []int64
	Parental      ParentalCeilings
	Page          int
}

// Validate rejects malformed queries before any data access.
func (q Query) Validate() error {
	if len(q.MemberIDs) == 0 {
		return invalidQueryf("memberIds must not be empty")
	}
	for _, id := range q.MemberIDs {
		if strings.TrimSpace(id) == "" {
			return invalidQueryf("memberIds must not contain blank entries")
		}
	}
	if q.Page < 1 {
		return invalidQueryf("page must be >= 1")
	}
	for _, mood := range q.Moods {
		if !KnownMood(mood) {
			return invalidQueryf("unknown mood %q, supported: %s", mood, strings.Join(Moods(), ", "))
		}
	}
	if q.ContentRating != nil {
		if _, ok := domain.CertificationRank(*q.ContentRating); !ok {
			return invalidQueryf("unknown content rating %q", *q.ContentRating)
		}
	}
	if q.Era != nil {
		if _, err := parseEra(*q.Era); err != nil {
			return invalidQueryf("%v", err)
		}
	}
	return nil
}

// parseEra turns a decade label like "1990s" into its starting year.
func parseEra(era string) (int, error) {
	trimmed := strings.TrimSpace(era)
	if len(trimmed) != 5 || !strings.HasSuffix(trimmed, "s") {
		return 0, fmt.Errorf("era must look like \"1990s\", got %q", era)
	}
	year, err := strconv.Atoi(trimmed[:4])
	if err != nil || year%10 != 0 {
		return 0, fmt.Errorf("era must start on a decade boundary, got %q", era)
	}
	return year, nil
}
