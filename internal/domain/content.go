package domain

import (
	"fmt"
	"strings"
)

// ContentLevel is the severity scale used by parental guides, both as a
// per-movie rating and as a caller-supplied ceiling.
type ContentLevel int

const (
	LevelNone ContentLevel = iota
	LevelMild
	LevelModerate
	LevelSevere
)

var contentLevelNames = map[ContentLevel]string{
	LevelNone:     "None",
	LevelMild:     "Mild",
	LevelModerate: "Moderate",
	LevelSevere:   "Severe",
}

func (l ContentLevel) String() string {
	if name, ok := contentLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("ContentLevel(%d)", int(l))
}

// ParseContentLevel maps a severity name to its ContentLevel. Comparison is
// case-insensitive so upstream data quirks don't turn into filtering bugs.
func ParseContentLevel(value string) (ContentLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return LevelNone, nil
	case "mild":
		return LevelMild, nil
	case "moderate":
		return LevelModerate, nil
	case "severe":
		return LevelSevere, nil
	}
	return LevelNone, fmt.Errorf("unknown content level %q", value)
}

// ParentalGuide holds the five independent severity ratings for a movie.
// A nil category means the guide has no data for it; a movie may also lack
// a guide entirely. Missing data never excludes a movie from results.
type ParentalGuide struct {
	Violence    *ContentLevel
	SexNudity   *ContentLevel
	Profanity   *ContentLevel
	Substances  *ContentLevel
	Frightening *ContentLevel
}

// certificationRanks orders the MPA scale G < PG < PG-13 < R.
var certificationRanks = map[string]int{
	"G":     1,
	"PG":    2,
	"PG-13": 3,
	"R":     4,
}

// CertificationRank returns the ordinal position of a certification on the
// G < PG < PG-13 < R scale. Unrecognized values report ok=false and are
// treated like missing data by the filter.
func CertificationRank(certification string) (int, bool) {
	rank, ok := certificationRanks[strings.ToUpper(strings.TrimSpace(certification))]
	return rank, ok
}
