package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery marks client mistakes caught before any data access.
var ErrInvalidQuery = errors.New("recommend: invalid query")

// ErrUpstream marks rating-store or catalog failures. These abort the whole
// request; a partial result would be indistinguishable from "no matches".
var ErrUpstream = errors.New("recommend: upstream unavailable")

func invalidQueryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

func upstreamErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}
