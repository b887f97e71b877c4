package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned for filter input that cannot form a query.
	ErrInvalidConfig = errors.New("invalid query config")

	// ErrNetwork classifies every fetch failure: timeouts, non-200 responses
	// and transport errors.
	ErrNetwork = errors.New("network error")
)

// FetchError describes a failed feed request. It matches ErrNetwork under
// errors.Is.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrNetwork }
