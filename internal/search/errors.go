package search

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrRateLimited marks a provider that refused to serve the request because
// of rate limiting. Callers surface it to the user; nothing retries.
var ErrRateLimited = errors.New("rate limited")

// ProviderError wraps a failure reported by a search provider so callers can
// name the provider when surfacing the error.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err originates from provider rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout reports whether err was caused by the provider not answering
// within the deadline, as opposed to answering with a failure.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
