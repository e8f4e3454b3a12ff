// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamRateLimited signals the search API refused the request with a rate limit.
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	// ErrUpstreamUnavailable signals any other upstream or network failure.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNoFallbackAvailable signals a failed fetch with nothing cached to serve instead.
	ErrNoFallbackAvailable = errors.New("no cached fallback available")
	// ErrUnauthorized signals a wrong invalidation secret.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals an invalidation request for an author this process does not track.
	ErrForbidden = errors.New("forbidden")
	// ErrMalformedItem signals an upstream item that cannot be normalized.
	ErrMalformedItem = errors.New("malformed item")
	// ErrSnapshotNotFound signals that no snapshot was persisted for the author.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// FetchError is returned by fetchers when the upstream call fails.
// Kind is ErrUpstreamRateLimited or ErrUpstreamUnavailable; StatusCode is
// zero when no HTTP response was received.
type FetchError struct {
	StatusCode int
	Kind       error
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch pull requests: %v (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch pull requests: %v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
